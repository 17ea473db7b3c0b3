// Package clock contains the pure stopwatch and voltmeter-mode logic.
// This package has NO hardware dependencies (no GPIO, ADC, MQTT, or
// time.Sleep). Time is always injectable via time.Time parameters.
package clock

import "time"

// EventType identifies a button-driven state change.
type EventType string

const (
	EventReset   EventType = "RESET"
	EventModeOn  EventType = "MODE_ON"
	EventModeOff EventType = "MODE_OFF"
)

// Event represents a state change to be published.
type Event struct {
	Timestamp  time.Time
	Type       EventType
	Minutes    int
	Seconds    int
	VoltMode   bool
	MinVoltage float64
	MaxVoltage float64
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	Resets  int
	ModeOn  int
	ModeOff int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
