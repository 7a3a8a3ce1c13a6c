package mqtt

import (
	"encoding/json"
	"fmt"
	"time"
)

// Planning event payloads published on hearthwatch/event/... topics.
//
// All events carry an RFC3339 UTC timestamp. Events are fire-and-forget
// notifications: consumers fetch full documents over the REST API.

// LayoutSavedEvent announces a layout create or update.
type LayoutSavedEvent struct {
	LayoutID   string    `json:"layout_id"`
	Name       string    `json:"name"`
	FloorCount int       `json:"floor_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// LayoutDeletedEvent announces a layout deletion.
type LayoutDeletedEvent struct {
	LayoutID  string    `json:"layout_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CoverageComputedEvent announces a fresh coverage overlay for one floor.
type CoverageComputedEvent struct {
	LayoutID    string    `json:"layout_id"`
	FloorID     string    `json:"floor_id"`
	GreenRooms  int       `json:"green_rooms"`
	YellowRooms int       `json:"yellow_rooms"`
	RedRooms    int       `json:"red_rooms"`
	Exceptions  int       `json:"exceptions"`
	Timestamp   time.Time `json:"timestamp"`
}

// PlanCreatedEvent announces a persisted plan snapshot.
type PlanCreatedEvent struct {
	PlanID    string    `json:"plan_id"`
	LayoutID  string    `json:"layout_id,omitempty"`
	Tier      string    `json:"tier"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// PublishLayoutSaved publishes a layout saved event.
// A zero Timestamp is stamped with the current UTC time.
func (c *Client) PublishLayoutSaved(event LayoutSavedEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return c.publishEvent(Topics{}.EventLayoutSaved(event.LayoutID), event)
}

// PublishLayoutDeleted publishes a layout deleted event.
func (c *Client) PublishLayoutDeleted(event LayoutDeletedEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return c.publishEvent(Topics{}.EventLayoutDeleted(event.LayoutID), event)
}

// PublishCoverageComputed publishes a coverage computed event.
func (c *Client) PublishCoverageComputed(event CoverageComputedEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return c.publishEvent(Topics{}.EventCoverageComputed(event.LayoutID, event.FloorID), event)
}

// PublishPlanCreated publishes a plan created event.
func (c *Client) PublishPlanCreated(event PlanCreatedEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return c.publishEvent(Topics{}.EventPlanCreated(event.PlanID), event)
}

// publishEvent marshals the event and publishes it at the configured QoS.
// Events are not retained: they describe moments, not state.
func (c *Client) publishEvent(topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %w", ErrPublishFailed, err)
	}
	return c.Publish(topic, payload, byte(c.cfg.QoS), false)
}
