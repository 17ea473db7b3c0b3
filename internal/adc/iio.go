package adc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// IIOReader reads one channel of a Linux IIO ADC through its sysfs files.
// Raw samples are converted with the channel's reported scale (millivolts
// per count); if the driver exposes no scale file, a 12-bit full-scale
// swing over VRef is assumed.
type IIOReader struct {
	rawPath string
	scale   float64 // volts per count
}

// NewIIOReader opens the given channel of the ADC at dir (for example
// /sys/bus/iio/devices/iio:device0).
func NewIIOReader(dir string, channel int) (*IIOReader, error) {
	rawPath := filepath.Join(dir, fmt.Sprintf("in_voltage%d_raw", channel))
	if _, err := os.Stat(rawPath); err != nil {
		return nil, fmt.Errorf("open adc channel %d: %w", channel, err)
	}

	r := &IIOReader{rawPath: rawPath}

	scalePath := filepath.Join(dir, fmt.Sprintf("in_voltage%d_scale", channel))
	data, err := os.ReadFile(scalePath)
	if err != nil {
		// Some drivers expose a single shared scale file.
		data, err = os.ReadFile(filepath.Join(dir, "in_voltage_scale"))
	}
	if err == nil {
		mv, perr := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
		if perr != nil {
			return nil, fmt.Errorf("parse adc scale: %w", perr)
		}
		r.scale = mv / 1000.0
	} else {
		r.scale = VRef / 4095.0
	}

	return r, nil
}

// Read samples the channel and returns the voltage.
func (r *IIOReader) Read() (float64, error) {
	data, err := os.ReadFile(r.rawPath)
	if err != nil {
		return 0, fmt.Errorf("read adc: %w", err)
	}
	raw, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse adc sample: %w", err)
	}
	return raw * r.scale, nil
}

// Close releases resources. Sysfs needs no teardown.
func (r *IIOReader) Close() error {
	return nil
}
