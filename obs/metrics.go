package obs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MasterOfBinary/relabuf/buffer"
)

// Metrics is a buffer.StatsCollector that exports buffer activity to
// Prometheus. It also keeps a BasicStatsCollector so GetStats keeps working.
type Metrics struct {
	*buffer.BasicStatsCollector

	ItemsRead       prometheus.Counter
	IntakeBlocked   prometheus.Counter
	QueueLength     prometheus.Gauge
	Releases        *prometheus.CounterVec
	BatchSize       *prometheus.HistogramVec
	BatchAge        *prometheus.HistogramVec
	BatchesResolved *prometheus.CounterVec
	ItemsResolved   *prometheus.CounterVec
	Suppression     prometheus.Histogram
	SourceErrors    prometheus.Counter
}

var _ buffer.StatsCollector = (*Metrics)(nil)

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BasicStatsCollector: buffer.NewBasicStatsCollector(),
		ItemsRead: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "relabuf_items_read_total",
				Help: "Total items read from the source",
			},
		),
		IntakeBlocked: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "relabuf_intake_blocked_total",
				Help: "Total times intake paused at the hard cap",
			},
		),
		QueueLength: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "relabuf_queue_length",
				Help: "Items currently buffered, not counting unresolved batches",
			},
		),
		Releases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relabuf_releases_total",
				Help: "Total batches released, by release reason",
			},
			[]string{"reason"},
		),
		BatchSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "relabuf_batch_size",
				Help:    "Items per released batch",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"reason"},
		),
		BatchAge: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "relabuf_batch_elapsed_seconds",
				Help:    "Time since the previous release when a batch is released",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"reason"},
		),
		BatchesResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relabuf_batches_resolved_total",
				Help: "Total batches resolved, by resolution",
			},
			[]string{"resolution"},
		),
		ItemsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relabuf_items_resolved_total",
				Help: "Total items in resolved batches, by resolution",
			},
			[]string{"resolution"},
		),
		Suppression: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "relabuf_backoff_suppression_seconds",
				Help:    "Time trigger suppression armed by each returned batch",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			},
		),
		SourceErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "relabuf_source_errors_total",
				Help: "Total source failures",
			},
		),
	}

	reg.MustRegister(
		m.ItemsRead, m.IntakeBlocked, m.QueueLength, m.Releases, m.BatchSize,
		m.BatchAge, m.BatchesResolved, m.ItemsResolved, m.Suppression, m.SourceErrors,
	)
	return m
}

func (m *Metrics) RecordItemRead() {
	m.BasicStatsCollector.RecordItemRead()
	m.ItemsRead.Inc()
}

func (m *Metrics) RecordIntakeBlocked() {
	m.BasicStatsCollector.RecordIntakeBlocked()
	m.IntakeBlocked.Inc()
}

func (m *Metrics) RecordQueueLength(n int) {
	m.BasicStatsCollector.RecordQueueLength(n)
	m.QueueLength.Set(float64(n))
}

func (m *Metrics) RecordRelease(reason buffer.ReleaseReason, batchSize int, elapsed time.Duration) {
	m.BasicStatsCollector.RecordRelease(reason, batchSize, elapsed)
	r := reason.String()
	m.Releases.WithLabelValues(r).Inc()
	m.BatchSize.WithLabelValues(r).Observe(float64(batchSize))
	m.BatchAge.WithLabelValues(r).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordConfirm(batchSize int) {
	m.BasicStatsCollector.RecordConfirm(batchSize)
	r := buffer.Confirmed.String()
	m.BatchesResolved.WithLabelValues(r).Inc()
	m.ItemsResolved.WithLabelValues(r).Add(float64(batchSize))
}

func (m *Metrics) RecordReturn(batchSize int, suppression time.Duration) {
	m.BasicStatsCollector.RecordReturn(batchSize, suppression)
	r := buffer.Returned.String()
	m.BatchesResolved.WithLabelValues(r).Inc()
	m.ItemsResolved.WithLabelValues(r).Add(float64(batchSize))
	m.Suppression.Observe(suppression.Seconds())
}

func (m *Metrics) RecordSourceError() {
	m.BasicStatsCollector.RecordSourceError()
	m.SourceErrors.Inc()
}
