package buffer

// ReleaseReason tells why a Batch was released.
type ReleaseReason int

const (
	// SoftCapReached means the buffer held at least SoftCap items.
	SoftCapReached ReleaseReason = iota
	// TimeElapsed means ReleaseAfter passed since the previous release.
	TimeElapsed
	// Shutdown means intake ended and the remaining items were flushed.
	Shutdown
)

// String returns the string representation of the reason.
func (r ReleaseReason) String() string {
	switch r {
	case SoftCapReached:
		return "soft_cap_reached"
	case TimeElapsed:
		return "time_elapsed"
	case Shutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Resolution is the state of a Batch.
type Resolution int

const (
	Unresolved Resolution = iota
	Confirmed
	Returned
)

// String returns the string representation of the resolution.
func (r Resolution) String() string {
	switch r {
	case Unresolved:
		return "unresolved"
	case Confirmed:
		return "confirmed"
	case Returned:
		return "returned"
	default:
		return "unknown"
	}
}
