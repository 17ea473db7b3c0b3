// Package sevenseg encodes numerals for a 4-digit common-anode 7-segment
// display driven through a 74HC595 shift-register pair. Segment patterns are
// active-low: a 0 bit lights the segment.
package sevenseg

// Digits is the number of multiplexed digit positions on the display.
const Digits = 4

// DPMask is the decimal-point bit. Clearing it (active-low) lights the point.
const DPMask = 0x80

// DigitBits maps a numeral 0-9 to its active-low segment pattern.
var DigitBits = [10]byte{
	0b11000000, // 0
	0b11111001, // 1
	0b10100100, // 2
	0b10110000, // 3
	0b10011001, // 4
	0b10010010, // 5
	0b10000010, // 6
	0b11111000, // 7
	0b10000000, // 8
	0b10010000, // 9
}

// DigitSelect maps a digit position 0-3 to the byte that activates its
// digit-select line. Position 0 is the leftmost digit.
var DigitSelect = [Digits]byte{0x01, 0x02, 0x04, 0x08}

// Decompose splits a value into its four display digits, thousands first.
// Values outside 0-9999 are truncated to their last four decimal digits;
// negative values display as zero.
func Decompose(n int) [Digits]int {
	if n < 0 {
		n = 0
	}
	return [Digits]int{
		(n / 1000) % 10,
		(n / 100) % 10,
		(n / 10) % 10,
		n % 10,
	}
}

// Encode returns the segment byte for a single numeral, with the decimal
// point lit when dp is true.
func Encode(digit int, dp bool) byte {
	bits := DigitBits[digit]
	if dp {
		bits &^= DPMask
	}
	return bits
}
