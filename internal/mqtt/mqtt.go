// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sweeney/shield-clock/internal/clock"
)

// Topic is the MQTT topic for stopwatch events.
const Topic = "shield/clock/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "shield/clock/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a stopwatch event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event clock.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Clock ClockPayload `json:"clock"`
}

// ClockPayload contains the stopwatch event details.
type ClockPayload struct {
	Timestamp  string  `json:"timestamp"`
	Event      string  `json:"event"`
	Elapsed    string  `json:"elapsed"`
	Minutes    int     `json:"minutes"`
	Seconds    int     `json:"seconds"`
	VoltMode   bool    `json:"volt_mode"`
	MinVoltage float64 `json:"min_voltage"`
	MaxVoltage float64 `json:"max_voltage"`
}

// FormatElapsed renders accumulated time as MM:SS.
func FormatElapsed(minutes, seconds int) string {
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatPayload creates the JSON payload for a stopwatch event.
func FormatPayload(event clock.Event) ([]byte, error) {
	payload := Payload{
		Clock: ClockPayload{
			Timestamp:  event.Timestamp.UTC().Format(time.RFC3339),
			Event:      string(event.Type),
			Elapsed:    FormatElapsed(event.Minutes, event.Seconds),
			Minutes:    event.Minutes,
			Seconds:    event.Seconds,
			VoltMode:   event.VoltMode,
			MinVoltage: event.MinVoltage,
			MaxVoltage: event.MaxVoltage,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
