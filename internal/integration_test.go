package internal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/shield-clock/internal/adc"
	"github.com/sweeney/shield-clock/internal/buttons"
	"github.com/sweeney/shield-clock/internal/clock"
	"github.com/sweeney/shield-clock/internal/mqtt"
	"github.com/sweeney/shield-clock/internal/sevenseg"
	"github.com/sweeney/shield-clock/internal/shiftreg"
)

// TestIntegrationStopwatchFlow drives the stopwatch from fake hardware to
// fake MQTT: accumulate time, reset, hold the mode button, release.
func TestIntegrationStopwatchFlow(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sw := clock.NewStopwatch(start)
	publisher := mqtt.NewFakePublisher()

	publish := func(e *clock.Event) {
		t.Helper()
		if e == nil {
			return
		}
		if err := publisher.Publish(*e); err != nil {
			t.Fatalf("publish error: %v", err)
		}
	}

	// 95 seconds pass.
	for i := 0; i < 95; i++ {
		sw.TickSecond()
	}
	if m, s := sw.Elapsed(); m != 1 || s != 35 {
		t.Fatalf("expected 01:35, got %02d:%02d", m, s)
	}

	// S1 press zeroes the counters.
	e := sw.Reset(start.Add(95 * time.Second))
	publish(&e)

	// S3 held: volt mode on; released: off.
	publish(sw.SetVoltMode(true, start.Add(100*time.Second)))
	sw.ObserveVoltage(1.2)
	sw.ObserveVoltage(2.9)
	publish(sw.SetVoltMode(false, start.Add(103*time.Second)))

	if len(publisher.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(publisher.Events))
	}

	wantTypes := []clock.EventType{clock.EventReset, clock.EventModeOn, clock.EventModeOff}
	for i, want := range wantTypes {
		if publisher.Events[i].Type != want {
			t.Errorf("event %d: expected %s, got %s", i, want, publisher.Events[i].Type)
		}
	}

	// The MODE_OFF event carries the tightened min/max.
	last := publisher.Events[2]
	if last.MinVoltage != 1.2 {
		t.Errorf("expected min 1.2, got %v", last.MinVoltage)
	}
	if last.MaxVoltage != 2.9 {
		t.Errorf("expected max 2.9, got %v", last.MaxVoltage)
	}

	// Verify published payloads are well-formed.
	for i, payload := range publisher.Payloads {
		var parsed mqtt.Payload
		if err := json.Unmarshal(payload, &parsed); err != nil {
			t.Errorf("payload %d: invalid JSON: %v", i, err)
		}
		if parsed.Clock.Timestamp == "" {
			t.Errorf("payload %d: missing timestamp", i)
		}
		if parsed.Clock.Event == "" {
			t.Errorf("payload %d: missing event", i)
		}
	}
}

// TestIntegrationDisplayMultiplex runs full refresh cycles against the fake
// shift register in and out of volt mode.
func TestIntegrationDisplayMultiplex(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sw := clock.NewStopwatch(start)
	display := shiftreg.NewFakeWriter()
	pot := adc.NewFakeReader([]float64{1.65, 1.70, 0.40})

	cycle := func() {
		t.Helper()
		for pos := 0; pos < sevenseg.Digits; pos++ {
			bits, sel := sw.RefreshDigit(pos, pot.Read)
			if err := display.Write(bits, sel); err != nil {
				t.Fatalf("write error: %v", err)
			}
		}
	}

	// Plain stopwatch mode: one cycle, all zeros, select lines in order.
	sw.TickSecond()
	cycle()

	if len(display.Frames) != 4 {
		t.Fatalf("expected 4 frames, got %d", len(display.Frames))
	}
	for i, frame := range display.Frames {
		if frame.Bits != sevenseg.DigitBits[0] {
			t.Errorf("frame %d: expected zero digit, got %#02x", i, frame.Bits)
		}
		if frame.Sel != sevenseg.DigitSelect[i] {
			t.Errorf("frame %d: expected select %#02x, got %#02x", i, sevenseg.DigitSelect[i], frame.Sel)
		}
	}

	// Volt mode: three cycles consume three samples, min/max tighten.
	display.Reset()
	sw.SetVoltMode(true, start)
	cycle()
	cycle()
	cycle()

	if len(display.Frames) != 12 {
		t.Fatalf("expected 12 frames, got %d", len(display.Frames))
	}

	// First cycle sampled 1.65 V → display value 165, DP digit shows 1.
	dpFrame := display.Frames[clock.DPPos]
	if want := sevenseg.Encode(1, true); dpFrame.Bits != want {
		t.Errorf("DP frame: expected %#02x, got %#02x", want, dpFrame.Bits)
	}
	if dpFrame.Bits&sevenseg.DPMask != 0 {
		t.Error("DP frame: decimal point should be lit")
	}

	min, max := sw.MinMax()
	if min != 0.40 {
		t.Errorf("expected min 0.40, got %v", min)
	}
	if max != 1.70 {
		t.Errorf("expected max 1.70, got %v", max)
	}
}

// TestIntegrationButtonEdgeSemantics exercises the shield's edge wiring:
// S1 rising = reset press, S3 falling = mode press, S3 rising = release.
func TestIntegrationButtonEdgeSemantics(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sw := clock.NewStopwatch(start)
	watcher := buttons.NewFakeWatcher()

	watcher.Push(buttons.Event{Button: buttons.ButtonMode, Rising: false, Time: start})
	watcher.Push(buttons.Event{Button: buttons.ButtonMode, Rising: true, Time: start.Add(time.Second)})
	watcher.Push(buttons.Event{Button: buttons.ButtonReset, Rising: true, Time: start.Add(2 * time.Second)})

	for i := 0; i < 3; i++ {
		e := <-watcher.Events()
		switch e.Button {
		case buttons.ButtonReset:
			if e.Rising {
				sw.Reset(e.Time)
			}
		case buttons.ButtonMode:
			sw.SetVoltMode(!e.Rising, e.Time)
		}
	}

	if sw.VoltMode() {
		t.Error("volt mode should be off after release")
	}
	counts := sw.Counts()
	if counts.ModeOn != 1 || counts.ModeOff != 1 || counts.Resets != 1 {
		t.Errorf("unexpected counts: %+v", counts)
	}
}
