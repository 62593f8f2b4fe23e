// Package config loads the YAML configuration of the relabuf binary.
//
// A minimal file:
//
//	log_level: debug
//	metrics_addr: ":9090"
//	buffer:
//	  soft_cap: 3
//	  hard_cap: 5
//	  release_after: 5s
//	  backoff:
//	    initial_interval: 500ms
//	source:
//	  kind: redis
//	  redis:
//	    addr: localhost:6379
//	    key: jobs
package config
