package renderer

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped

	// PresentModeMailbox replaces the queued frame with the newest one instead of blocking.
	// Not every adapter supports it.
	PresentModeMailbox
)

// String returns the lowercase name used in configuration files.
func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	case PresentModeMailbox:
		return "mailbox"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(m))
	}
}

// WGPU maps the present mode to its WebGPU value.
func (m PresentMode) WGPU() wgpu.PresentMode {
	switch m {
	case PresentModeUncapped:
		return wgpu.PresentModeImmediate
	case PresentModeMailbox:
		return wgpu.PresentModeMailbox
	default:
		return wgpu.PresentModeFifo
	}
}

// ParsePresentMode parses a present mode name. The empty string selects VSync.
//
// Parameters:
//   - s: one of "vsync", "uncapped" or "mailbox", case-insensitive
//
// Returns:
//   - PresentMode: the parsed mode
//   - error: error if the name is unknown
func ParsePresentMode(s string) (PresentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vsync", "fifo":
		return PresentModeVSync, nil
	case "uncapped", "immediate":
		return PresentModeUncapped, nil
	case "mailbox":
		return PresentModeMailbox, nil
	default:
		return PresentModeVSync, fmt.Errorf("unknown present mode %q", s)
	}
}

// PowerPreference selects which adapter the context asks for.
type PowerPreference int

const (
	// PowerDefault lets the implementation choose.
	PowerDefault PowerPreference = iota
	// PowerLow prefers an integrated, low-power adapter.
	PowerLow
	// PowerHigh prefers a discrete, high-performance adapter.
	PowerHigh
)

// String returns the lowercase name used in configuration files.
func (p PowerPreference) String() string {
	switch p {
	case PowerLow:
		return "low"
	case PowerHigh:
		return "high"
	default:
		return "default"
	}
}

// WGPU maps the preference to its WebGPU value.
func (p PowerPreference) WGPU() wgpu.PowerPreference {
	switch p {
	case PowerLow:
		return wgpu.PowerPreferenceLowPower
	case PowerHigh:
		return wgpu.PowerPreferenceHighPerformance
	default:
		return wgpu.PowerPreferenceUndefined
	}
}

// ParsePowerPreference parses a power preference name. The empty string selects PowerDefault.
//
// Parameters:
//   - s: one of "default", "low" or "high", case-insensitive
//
// Returns:
//   - PowerPreference: the parsed preference
//   - error: error if the name is unknown
func ParsePowerPreference(s string) (PowerPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return PowerDefault, nil
	case "low", "low-power":
		return PowerLow, nil
	case "high", "high-performance":
		return PowerHigh, nil
	default:
		return PowerDefault, fmt.Errorf("unknown power preference %q", s)
	}
}
