// Package influxdb provides time-series telemetry storage for the DMX engine.
//
// It wraps the official influxdb-client-go v2 library with engine-specific
// patterns for connection management, metric writing, and health monitoring.
//
// # Purpose
//
// This package handles time-series data storage for:
//   - Channel output levels for show playback analysis
//   - Effect lifecycle timings (fades, chases, strobes)
//   - Scene load events
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "stagelight",
//	    Bucket: "dmx",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WriteChannelLevel("main", 12, 255)
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
// This keeps a 44Hz refresh loop from paying a network round trip per frame.
package influxdb
