// Package influxdb provides InfluxDB connectivity for the Hearthwatch planner.
//
// It wraps the official influxdb-client-go v2 library with connection
// management, metric writing, and health monitoring.
//
// # Purpose
//
// This package handles time-series data storage for:
//   - Coverage overlay computation timings
//   - Tier plan build timings and outcomes
//   - API request latency
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "hearthwatch",
//	    Bucket: "metrics",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Record a plan build
//	client.WritePlanBuild("silver", "complete_with_addons", elapsed)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are logged via a callback.
// Connection and health check errors are returned directly.
//
// # Performance
//
// Writes are batched according to config.yaml settings (batch_size, flush_interval).
// This reduces network overhead under request load.
package influxdb
