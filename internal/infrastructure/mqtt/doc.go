// Package mqtt provides MQTT event publishing for the Hearthwatch planner.
//
// This package manages:
//   - Connection to Mosquitto broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Typed planning event payloads (layout saved, coverage computed, plan created)
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The planner is a publish-only MQTT participant. It announces planning
// events on hearthwatch/event/... topics for downstream consumers
// (installer dashboards, notification services) and never subscribes.
//
//	Hearthwatch Planner → MQTT Broker → Event Consumers
//
// MQTT is optional: when cfg.MQTT.Enabled is false the planner runs
// without a broker and event publishing becomes a no-op at the caller.
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Announce a plan snapshot
//	err = client.PublishPlanCreated(mqtt.PlanCreatedEvent{
//	    PlanID:   saved.ID,
//	    LayoutID: saved.LayoutID,
//	    Tier:     string(saved.Tier),
//	    Status:   string(saved.Plan.Status),
//	})
package mqtt
