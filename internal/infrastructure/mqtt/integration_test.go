//go:build integration

package mqtt

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/hearthwatch/planner-core/internal/infrastructure/config"
)

// Integration tests for event publishing end-to-end.
// These tests require a running MQTT broker at 127.0.0.1:1883.
//
// Run with:
//   go test -tags=integration -v ./internal/infrastructure/mqtt/...
//
// The planner client is publish-only, so these tests use a raw paho
// client as the consumer side.

func integrationConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Enabled: true,
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "hearthwatch-integration-test",
			TLS:      false,
		},
		Auth: config.MQTTAuthConfig{
			Username: "",
			Password: "",
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

// rawConsumer connects a plain paho client for the subscriber side.
func rawConsumer(t *testing.T, clientID string) pahomqtt.Client {
	t.Helper()

	opts := pahomqtt.NewClientOptions()
	opts.AddBroker("tcp://127.0.0.1:1883")
	opts.SetClientID(clientID)

	consumer := pahomqtt.NewClient(opts)
	token := consumer.Connect()
	if !token.WaitTimeout(5 * time.Second) {
		t.Fatal("consumer connect timeout")
	}
	if err := token.Error(); err != nil {
		t.Fatalf("consumer connect error = %v", err)
	}

	t.Cleanup(func() { consumer.Disconnect(250) })
	return consumer
}

// TestIntegration_PlanCreatedRoundtrip verifies a plan event reaches consumers.
func TestIntegration_PlanCreatedRoundtrip(t *testing.T) {
	cfg := integrationConfig()
	cfg.Broker.ClientID = "hearthwatch-int-pub"

	client, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	consumer := rawConsumer(t, "hearthwatch-int-sub")

	received := make(chan []byte, 1)
	var once sync.Once

	token := consumer.Subscribe(Topics{}.AllPlanEvents(), 1, func(_ pahomqtt.Client, msg pahomqtt.Message) {
		once.Do(func() {
			received <- msg.Payload()
		})
	})
	if !token.WaitTimeout(5 * time.Second) {
		t.Fatal("consumer subscribe timeout")
	}

	time.Sleep(100 * time.Millisecond)

	event := PlanCreatedEvent{
		PlanID:   "plan-int-test",
		LayoutID: "layout-int-test",
		Tier:     "gold",
		Status:   "complete_with_addons",
	}
	if err := client.PublishPlanCreated(event); err != nil {
		t.Fatalf("PublishPlanCreated() error = %v", err)
	}

	select {
	case payload := <-received:
		var decoded PlanCreatedEvent
		if err := json.Unmarshal(payload, &decoded); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if decoded.PlanID != event.PlanID || decoded.Tier != event.Tier {
			t.Errorf("decoded = %+v, want plan_id=%s tier=%s", decoded, event.PlanID, event.Tier)
		}
		if decoded.Timestamp.IsZero() {
			t.Error("decoded.Timestamp is zero, want stamped")
		}
	case <-time.After(5 * time.Second):
		t.Error("Timeout waiting for plan event")
	}
}

// TestIntegration_RetainedStatus verifies late subscribers see online status.
func TestIntegration_RetainedStatus(t *testing.T) {
	cfg := integrationConfig()
	cfg.Broker.ClientID = "hearthwatch-int-status"

	client, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	// Status publish may lag the connect handshake slightly.
	time.Sleep(200 * time.Millisecond)

	consumer := rawConsumer(t, "hearthwatch-int-status-sub")

	received := make(chan []byte, 1)
	var once sync.Once

	token := consumer.Subscribe(Topics{}.SystemStatus(), 1, func(_ pahomqtt.Client, msg pahomqtt.Message) {
		once.Do(func() {
			received <- msg.Payload()
		})
	})
	if !token.WaitTimeout(5 * time.Second) {
		t.Fatal("consumer subscribe timeout")
	}

	select {
	case payload := <-received:
		var status struct {
			Status   string `json:"status"`
			ClientID string `json:"client_id"`
		}
		if err := json.Unmarshal(payload, &status); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if status.Status != "online" {
			t.Errorf("status = %q, want online", status.Status)
		}
		if status.ClientID != cfg.Broker.ClientID {
			t.Errorf("client_id = %q, want %q", status.ClientID, cfg.Broker.ClientID)
		}
	case <-time.After(5 * time.Second):
		t.Error("Timeout waiting for retained status")
	}
}

// TestIntegration_CoverageEventTopic verifies floor-scoped coverage topics.
func TestIntegration_CoverageEventTopic(t *testing.T) {
	cfg := integrationConfig()
	cfg.Broker.ClientID = "hearthwatch-int-coverage"

	client, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	consumer := rawConsumer(t, "hearthwatch-int-coverage-sub")

	received := make(chan string, 1)
	var once sync.Once

	token := consumer.Subscribe(Topics{}.AllCoverageEvents(), 1, func(_ pahomqtt.Client, msg pahomqtt.Message) {
		once.Do(func() {
			received <- msg.Topic()
		})
	})
	if !token.WaitTimeout(5 * time.Second) {
		t.Fatal("consumer subscribe timeout")
	}

	time.Sleep(100 * time.Millisecond)

	err = client.PublishCoverageComputed(CoverageComputedEvent{
		LayoutID:   "layout-cov",
		FloorID:    "floor-2",
		GreenRooms: 4,
	})
	if err != nil {
		t.Fatalf("PublishCoverageComputed() error = %v", err)
	}

	want := fmt.Sprintf("%s/coverage/layout-cov/floor-2/computed", TopicPrefixEvent)
	select {
	case topic := <-received:
		if topic != want {
			t.Errorf("topic = %q, want %q", topic, want)
		}
	case <-time.After(5 * time.Second):
		t.Error("Timeout waiting for coverage event")
	}
}
