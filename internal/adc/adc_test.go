package adc

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIIOReaderWithScale(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "in_voltage0_raw", "2048\n")
	writeFile(t, dir, "in_voltage0_scale", "0.805664\n") // mV per count, 12-bit @ 3.3V

	r, err := NewIIOReader(dir, 0)
	if err != nil {
		t.Fatalf("NewIIOReader: %v", err)
	}
	defer r.Close()

	v, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := 2048 * 0.805664 / 1000.0
	if math.Abs(v-want) > 1e-9 {
		t.Errorf("expected %v V, got %v V", want, v)
	}
}

func TestIIOReaderSharedScale(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "in_voltage2_raw", "1000")
	writeFile(t, dir, "in_voltage_scale", "1.0")

	r, err := NewIIOReader(dir, 2)
	if err != nil {
		t.Fatalf("NewIIOReader: %v", err)
	}

	v, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if math.Abs(v-1.0) > 1e-9 {
		t.Errorf("expected 1.0 V, got %v V", v)
	}
}

func TestIIOReaderDefaultScale(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "in_voltage0_raw", "4095")

	r, err := NewIIOReader(dir, 0)
	if err != nil {
		t.Fatalf("NewIIOReader: %v", err)
	}

	// Full-scale raw with the assumed 12-bit scale reads as VRef.
	v, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if math.Abs(v-VRef) > 1e-9 {
		t.Errorf("expected %v V, got %v V", VRef, v)
	}
}

func TestIIOReaderMissingChannel(t *testing.T) {
	dir := t.TempDir()

	_, err := NewIIOReader(dir, 0)
	if err == nil {
		t.Fatal("expected error for missing channel")
	}
}

func TestIIOReaderBadSample(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "in_voltage0_raw", "garbage")

	r, err := NewIIOReader(dir, 0)
	if err != nil {
		t.Fatalf("NewIIOReader: %v", err)
	}

	if _, err := r.Read(); err == nil {
		t.Error("expected parse error for garbage sample")
	}
}

func TestIIOReaderBadScale(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "in_voltage0_raw", "100")
	writeFile(t, dir, "in_voltage0_scale", "not-a-number")

	if _, err := NewIIOReader(dir, 0); err == nil {
		t.Error("expected error for unparseable scale")
	}
}

func TestFakeReaderSamples(t *testing.T) {
	f := NewFakeReader([]float64{1.1, 2.2, 3.3})

	for i, want := range []float64{1.1, 2.2, 3.3} {
		v, err := f.Read()
		if err != nil {
			t.Fatalf("sample %d: unexpected error: %v", i, err)
		}
		if v != want {
			t.Errorf("sample %d: expected %v, got %v", i, want, v)
		}
	}

	// Exhausted samples repeat the last value.
	v, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 3.3 {
		t.Errorf("expected repeated last sample 3.3, got %v", v)
	}
}

func TestFakeReaderNoSamples(t *testing.T) {
	f := NewFakeReader(nil)

	if _, err := f.Read(); err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakeReaderError(t *testing.T) {
	f := NewFakeReader([]float64{1.0})
	f.ReadError = errors.New("simulated error")

	if _, err := f.Read(); err == nil {
		t.Error("expected error to be returned")
	}
}

func TestFakeReaderReset(t *testing.T) {
	f := NewFakeReader([]float64{1.0, 2.0})
	f.Read()
	f.Reset()

	v, _ := f.Read()
	if v != 1.0 {
		t.Errorf("after reset: expected 1.0, got %v", v)
	}
}
