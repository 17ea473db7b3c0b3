package clock

import (
	"time"

	"github.com/sweeney/shield-clock/internal/sevenseg"
)

// DPPos is the digit position that carries the decimal point (and the ADC
// sample) while volt mode is active. With volts*100 as the display value
// this renders X.XX as XX.X across positions 1-3.
const DPPos = 1

// referenceVoltage is the ADC reference; min tracking starts here so the
// first observed sample always tightens it.
const referenceVoltage = 3.3

// Stopwatch holds the accumulated time, the volt-mode flag, and the min/max
// voltage observations. It is not safe for concurrent use: all mutation is
// expected to happen on the run-loop goroutine, with cross-goroutine reads
// going through the status tracker.
type Stopwatch struct {
	seconds  int
	minutes  int
	voltMode bool

	minVoltage float64
	maxVoltage float64

	counts        EventCounts
	startTime     time.Time
	lastHeartbeat time.Time
}

// NewStopwatch creates a zeroed stopwatch. The startTime is used for
// calculating uptime in heartbeat events.
func NewStopwatch(startTime time.Time) *Stopwatch {
	return &Stopwatch{
		minVoltage:    referenceVoltage,
		maxVoltage:    0.0,
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// TickSecond advances the accumulated time by one second. Seconds wrap
// 59→0 carrying into minutes; minutes wrap 99→0.
func (s *Stopwatch) TickSecond() {
	s.seconds++
	if s.seconds >= 60 {
		s.seconds = 0
		s.minutes = (s.minutes + 1) % 100
	}
}

// Reset zeroes both counters regardless of their prior value and returns
// the event to publish.
func (s *Stopwatch) Reset(now time.Time) Event {
	s.seconds = 0
	s.minutes = 0
	s.counts.Resets++
	return s.event(EventReset, now)
}

// SetVoltMode sets or clears the volt-mode flag. Repeated edges of the same
// polarity are idempotent: an event is returned only on an actual change.
func (s *Stopwatch) SetVoltMode(on bool, now time.Time) *Event {
	if s.voltMode == on {
		return nil
	}
	s.voltMode = on
	typ := EventModeOff
	if on {
		typ = EventModeOn
		s.counts.ModeOn++
	} else {
		s.counts.ModeOff++
	}
	e := s.event(typ, now)
	return &e
}

// ObserveVoltage tightens the running min/max with a new sample.
func (s *Stopwatch) ObserveVoltage(v float64) {
	if v < s.minVoltage {
		s.minVoltage = v
	}
	if v > s.maxVoltage {
		s.maxVoltage = v
	}
}

// RefreshDigit computes the segment and digit-select bytes for one multiplex
// pass over digit position pos (0-3). The display value is not driven by the
// accumulated time — outside volt mode every pass renders from zero, matching
// the board firmware this daemon replaces. When volt mode is active and pos
// is DPPos, sample is called, the reading feeds min/max tracking, the decimal
// point is lit, and volts*100 becomes the display value for this pass. A
// sample error leaves the digit rendering zero without the decimal point.
func (s *Stopwatch) RefreshDigit(pos int, sample func() (float64, error)) (bits, sel byte) {
	dispVal := 0
	dp := false
	if s.voltMode && pos == DPPos && sample != nil {
		if v, err := sample(); err == nil {
			s.ObserveVoltage(v)
			dispVal = int(v * 100)
			dp = true
		}
	}
	digits := sevenseg.Decompose(dispVal)
	return sevenseg.Encode(digits[pos], dp), sevenseg.DigitSelect[pos]
}

// Elapsed returns the accumulated minutes and seconds.
func (s *Stopwatch) Elapsed() (minutes, seconds int) {
	return s.minutes, s.seconds
}

// VoltMode reports whether the voltage display mode is active.
func (s *Stopwatch) VoltMode() bool {
	return s.voltMode
}

// MinMax returns the minimum and maximum voltage observed so far.
func (s *Stopwatch) MinMax() (min, max float64) {
	return s.minVoltage, s.maxVoltage
}

// Counts returns the event counts since startup.
func (s *Stopwatch) Counts() EventCounts {
	return s.counts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since
// the last heartbeat (or startup). Returns nil if the interval has not
// elapsed, or if interval is <= 0 (disabled).
func (s *Stopwatch) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(s.lastHeartbeat) < interval {
		return nil
	}

	s.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(s.startTime),
		Counts:    s.counts,
	}
}

func (s *Stopwatch) event(typ EventType, now time.Time) Event {
	return Event{
		Timestamp:  now,
		Type:       typ,
		Minutes:    s.minutes,
		Seconds:    s.seconds,
		VoltMode:   s.voltMode,
		MinVoltage: s.minVoltage,
		MaxVoltage: s.maxVoltage,
	}
}
