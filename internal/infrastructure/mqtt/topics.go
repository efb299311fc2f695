package mqtt

import "fmt"

// Topic prefixes for the engine's MQTT namespace.
//
// All topics live under dmxcore/ so a single ACL rule can scope
// broker access for consoles and panels.
const (
	// TopicPrefix is the base for all engine topics.
	TopicPrefix = "dmxcore"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "dmxcore/system"
)

// Topics provides builders for engine MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	t := topics.Event("effect.started")
//	// Returns: "dmxcore/event/effect.started"
type Topics struct{}

// Event returns the topic for lifecycle events.
//
// Example: dmxcore/event/universe.connected
func (Topics) Event(eventType string) string {
	return fmt.Sprintf("%s/event/%s", TopicPrefix, eventType)
}

// UniverseState returns the retained state topic for a universe.
//
// Example: dmxcore/universe/main/state
func (Topics) UniverseState(universeID string) string {
	return fmt.Sprintf("%s/universe/%s/state", TopicPrefix, universeID)
}

// SceneLoaded returns the topic for scene load announcements.
//
// Example: dmxcore/scene/blackout/loaded
func (Topics) SceneLoaded(sceneID string) string {
	return fmt.Sprintf("%s/scene/%s/loaded", TopicPrefix, sceneID)
}

// SystemStatus returns the system status topic.
//
// Example: dmxcore/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllEvents returns a pattern matching all lifecycle events.
//
// Pattern: dmxcore/event/+
func (Topics) AllEvents() string {
	return fmt.Sprintf("%s/event/+", TopicPrefix)
}

// AllUniverseStates returns a pattern matching all universe state topics.
//
// Pattern: dmxcore/universe/+/state
func (Topics) AllUniverseStates() string {
	return fmt.Sprintf("%s/universe/+/state", TopicPrefix)
}

// AllTopics returns a pattern matching the entire engine namespace.
// Use with caution - this receives ALL traffic.
//
// Pattern: dmxcore/#
func (Topics) AllTopics() string {
	return "dmxcore/#"
}
