// Package adc reads the potentiometer voltage.
// The real implementation reads a Linux IIO ADC channel through sysfs.
// The fake implementation allows testing without hardware.
package adc

// VRef is the ADC reference voltage.
const VRef = 3.3

// Reader samples the potentiometer.
type Reader interface {
	// Read returns the current voltage in volts.
	Read() (float64, error)

	// Close releases resources.
	Close() error
}

// DefaultDevice is the sysfs directory of the ADC the shield's
// potentiometer is wired to.
const DefaultDevice = "/sys/bus/iio/devices/iio:device0"

// DefaultChannel is the ADC channel the potentiometer is wired to.
const DefaultChannel = 0
