package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteCoverageCompute records a coverage overlay computation.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - layoutID: The layout the overlay was computed for
//   - floorID: The floor within the layout
//   - duration: Wall time spent computing the overlay
//   - roomCount: Number of rooms sampled
//
// Example:
//
//	client.WriteCoverageCompute(layout.ID, floor.ID, elapsed, len(floor.Rooms))
func (c *Client) WriteCoverageCompute(layoutID, floorID string, duration time.Duration, roomCount int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"coverage_compute",
		map[string]string{
			"layout_id": layoutID,
			"floor_id":  floorID,
		},
		map[string]interface{}{
			"duration_ms": float64(duration.Microseconds()) / 1000.0,
			"room_count":  roomCount,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePlanBuild records a tier plan build.
//
// Parameters:
//   - tier: The tier the plan was built for ("bronze", "silver", "gold")
//   - status: The resulting coverage status
//   - duration: Wall time spent building the plan
func (c *Client) WritePlanBuild(tier, status string, duration time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"plan_build",
		map[string]string{
			"tier":   tier,
			"status": status,
		},
		map[string]interface{}{
			"duration_ms": float64(duration.Microseconds()) / 1000.0,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteHTTPRequest records an API request for latency tracking.
//
// Route should be the chi route pattern, not the raw path, to keep
// tag cardinality low.
//
// Parameters:
//   - method: HTTP method ("GET", "POST", ...)
//   - route: Route pattern (e.g., "/api/v1/layouts/{layoutID}")
//   - statusCode: Response status code
//   - duration: Request handling time
func (c *Client) WriteHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"http_request",
		map[string]string{
			"method": method,
			"route":  route,
		},
		map[string]interface{}{
			"status_code": statusCode,
			"duration_ms": float64(duration.Microseconds()) / 1000.0,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("system_stats",
//	    map[string]string{"host": "planner-01"},
//	    map[string]interface{}{"cpu_percent": 45.2, "memory_mb": 512})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., delayed data).
//
// Parameters:
//   - measurement: The measurement name
//   - tags: Key-value pairs for indexing
//   - fields: Key-value pairs for the data
//   - timestamp: The exact time for this data point
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
