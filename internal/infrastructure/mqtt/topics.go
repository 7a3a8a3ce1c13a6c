package mqtt

import "fmt"

// Topic prefixes for the Hearthwatch MQTT namespace.
//
// The planner is a publish-only MQTT participant: it announces planning
// events (layout saved, coverage computed, plan created) and its own
// online/offline status. Downstream consumers (installer dashboards,
// notification services) subscribe to these topics.
const (
	// TopicPrefix is the base for all Hearthwatch topics.
	TopicPrefix = "hearthwatch"

	// TopicPrefixEvent is the base for planning event topics.
	TopicPrefixEvent = "hearthwatch/event"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "hearthwatch/system"
)

// Topics provides builders for Hearthwatch MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	topic := topics.EventPlanCreated("plan-abc123")
//	// Returns: "hearthwatch/event/plan/plan-abc123/created"
type Topics struct{}

// =============================================================================
// Event Topics
// =============================================================================

// EventLayoutSaved returns the topic for layout create/update events.
//
// Example: hearthwatch/event/layout/layout-abc123/saved
func (Topics) EventLayoutSaved(layoutID string) string {
	return fmt.Sprintf("%s/layout/%s/saved", TopicPrefixEvent, layoutID)
}

// EventLayoutDeleted returns the topic for layout deletion events.
//
// Example: hearthwatch/event/layout/layout-abc123/deleted
func (Topics) EventLayoutDeleted(layoutID string) string {
	return fmt.Sprintf("%s/layout/%s/deleted", TopicPrefixEvent, layoutID)
}

// EventCoverageComputed returns the topic for coverage overlay events.
//
// Example: hearthwatch/event/coverage/layout-abc123/floor-1/computed
func (Topics) EventCoverageComputed(layoutID, floorID string) string {
	return fmt.Sprintf("%s/coverage/%s/%s/computed", TopicPrefixEvent, layoutID, floorID)
}

// EventPlanCreated returns the topic for plan snapshot events.
//
// Example: hearthwatch/event/plan/plan-abc123/created
func (Topics) EventPlanCreated(planID string) string {
	return fmt.Sprintf("%s/plan/%s/created", TopicPrefixEvent, planID)
}

// =============================================================================
// System Topics
// =============================================================================

// SystemStatus returns the system status topic.
//
// The planner publishes retained online/offline payloads here, and the
// broker publishes the Last Will payload on unexpected disconnect.
//
// Example: hearthwatch/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// =============================================================================
// Wildcard Patterns for Consumers
// =============================================================================

// AllLayoutEvents returns a pattern matching all layout events.
// The planner itself never subscribes; this is for downstream consumers.
//
// Pattern: hearthwatch/event/layout/+/+
func (Topics) AllLayoutEvents() string {
	return fmt.Sprintf("%s/layout/+/+", TopicPrefixEvent)
}

// AllPlanEvents returns a pattern matching all plan events.
//
// Pattern: hearthwatch/event/plan/+/+
func (Topics) AllPlanEvents() string {
	return fmt.Sprintf("%s/plan/+/+", TopicPrefixEvent)
}

// AllCoverageEvents returns a pattern matching all coverage events.
//
// Pattern: hearthwatch/event/coverage/+/+/+
func (Topics) AllCoverageEvents() string {
	return fmt.Sprintf("%s/coverage/+/+/+", TopicPrefixEvent)
}

// AllTopics returns a pattern matching all Hearthwatch topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: hearthwatch/#
func (Topics) AllTopics() string {
	return "hearthwatch/#"
}
