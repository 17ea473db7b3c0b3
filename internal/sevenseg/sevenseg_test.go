package sevenseg

import "testing"

func TestDecomposeFourDigits(t *testing.T) {
	got := Decompose(1234)
	want := [4]int{1, 2, 3, 4}
	if got != want {
		t.Errorf("Decompose(1234): got %v, want %v", got, want)
	}
}

func TestDecomposeZero(t *testing.T) {
	got := Decompose(0)
	want := [4]int{0, 0, 0, 0}
	if got != want {
		t.Errorf("Decompose(0): got %v, want %v", got, want)
	}
}

func TestDecomposeLeadingZeros(t *testing.T) {
	got := Decompose(42)
	want := [4]int{0, 0, 4, 2}
	if got != want {
		t.Errorf("Decompose(42): got %v, want %v", got, want)
	}
}

func TestDecomposeTruncatesOverflow(t *testing.T) {
	// 12345 wraps to its last four digits, same as the modulo arithmetic
	// on the display loop.
	got := Decompose(12345)
	want := [4]int{2, 3, 4, 5}
	if got != want {
		t.Errorf("Decompose(12345): got %v, want %v", got, want)
	}
}

func TestDecomposeNegative(t *testing.T) {
	got := Decompose(-7)
	want := [4]int{0, 0, 0, 0}
	if got != want {
		t.Errorf("Decompose(-7): got %v, want %v", got, want)
	}
}

func TestEncodeWithoutDP(t *testing.T) {
	for d := 0; d <= 9; d++ {
		if got := Encode(d, false); got != DigitBits[d] {
			t.Errorf("Encode(%d, false): got %#02x, want %#02x", d, got, DigitBits[d])
		}
	}
}

func TestEncodeWithDP(t *testing.T) {
	// DP is active-low: the top bit must be cleared, all segment bits kept.
	got := Encode(3, true)
	want := DigitBits[3] &^ byte(DPMask)
	if got != want {
		t.Errorf("Encode(3, true): got %#02x, want %#02x", got, want)
	}
	if got&DPMask != 0 {
		t.Errorf("Encode(3, true): DP bit still set in %#02x", got)
	}
}

func TestSegmentTableValues(t *testing.T) {
	// Patterns for the multifunction shield's common-anode display.
	want := [10]byte{0xC0, 0xF9, 0xA4, 0xB0, 0x99, 0x92, 0x82, 0xF8, 0x80, 0x90}
	if DigitBits != want {
		t.Errorf("DigitBits: got %#02x, want %#02x", DigitBits, want)
	}
}

func TestDigitSelectValues(t *testing.T) {
	want := [4]byte{0x01, 0x02, 0x04, 0x08}
	if DigitSelect != want {
		t.Errorf("DigitSelect: got %#02x, want %#02x", DigitSelect, want)
	}
}
