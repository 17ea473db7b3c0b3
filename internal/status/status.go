// Package status provides a thread-safe status tracker for the shield-clock
// daemon. It is designed to be read by HTTP handlers while the run loop
// updates it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/shield-clock/internal/clock"
)

// NetworkInfo contains network state. This is a local copy to avoid
// importing internal/mqtt from status.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	TickMs      int64
	RefreshMs   int64
	HeartbeatMs int64
	Broker      string
	HTTPPort    string
	WSBroker    string // Websocket broker URL for browser MQTT (empty = disabled)
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Minutes       int
	Seconds       int
	VoltMode      bool
	MinVoltage    float64
	MaxVoltage    float64
	Counts        clock.EventCounts
	Frames        uint64 // multiplex frames committed to the display
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			MinVoltage: 3.3,
			StartTime:  startTime,
			Config:     cfg,
		},
	}
}

// Update sets stopwatch state and event counts.
// Called from the run loop on every tick.
func (t *Tracker) Update(minutes, seconds int, voltMode bool, minV, maxV float64, counts clock.EventCounts) {
	t.mu.Lock()
	t.snap.Minutes = minutes
	t.snap.Seconds = seconds
	t.snap.VoltMode = voltMode
	t.snap.MinVoltage = minV
	t.snap.MaxVoltage = maxV
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetFrames sets the count of multiplex frames committed so far.
func (t *Tracker) SetFrames(n uint64) {
	t.mu.Lock()
	t.snap.Frames = n
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
