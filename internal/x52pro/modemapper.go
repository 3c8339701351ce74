package x52pro

import "x52lc-go/internal/ship"

// ModeMapper maps status levels to light modes. One mapper exists per
// global status; the active mapper is swapped on the device when the global
// status changes. Built once from configuration, immutable afterwards.
type ModeMapper struct {
	Inactive LightMode
	Active   LightMode
	Blocked  LightMode
	Alert    LightMode
}

// Map returns the configured light mode for the given status level.
func (m ModeMapper) Map(level ship.StatusLevel) LightMode {
	switch level {
	case ship.Active:
		return m.Active
	case ship.Blocked:
		return m.Blocked
	case ship.Alert:
		return m.Alert
	default:
		return m.Inactive
	}
}
