package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteChannelLevel records a channel output level.
//
// The write is non-blocking; data is batched and sent asynchronously.
// Channel is tagged as a string to keep Flux queries simple.
//
// Example:
//
//	client.WriteChannelLevel("main", 12, 255)
func (c *Client) WriteChannelLevel(universeID string, channel int, value int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"channel_levels",
		map[string]string{
			"universe_id": universeID,
			"channel":     strconv.Itoa(channel),
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteEffectLifecycle records an effect state transition.
//
// Used for show playback analysis: how long fades ran, how often
// chases were cut short by the operator.
//
// Parameters:
//   - effectID: Effect identifier
//   - universeID: Universe the effect was running on
//   - kind: Effect kind ("fade", "chase", "strobe")
//   - state: Terminal or current state ("running", "completed", "stopped")
//   - elapsed: Time since the effect started
func (c *Client) WriteEffectLifecycle(effectID, universeID, kind, state string, elapsed time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"effect_lifecycle",
		map[string]string{
			"effect_id":   effectID,
			"universe_id": universeID,
			"kind":        kind,
			"state":       state,
		},
		map[string]interface{}{
			"elapsed_ms": elapsed.Milliseconds(),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteSceneLoad records a scene load and how many channel writes it applied.
func (c *Client) WriteSceneLoad(sceneID string, applied int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"scene_loads",
		map[string]string{
			"scene_id": sceneID,
		},
		map[string]interface{}{
			"channels_applied": applied,
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
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., replayed show data).
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
