package x52pro

import (
	"fmt"
	"time"
)

// FlashMilliseconds is the length of one flash phase. All animated lights
// derive their phase from one shared reference instant, so every flashing
// light flips in unison.
const FlashMilliseconds = 500

// BooleanMode is the configured behaviour of a single on/off LED.
type BooleanMode int

const (
	BooleanOff BooleanMode = iota
	BooleanOn
	BooleanFlash
)

// ColorMode is the configured behaviour of a red/green LED pair. The
// flashing variants alternate between two colors, where "off" counts as a
// color of its own.
type ColorMode int

const (
	ColorOff ColorMode = iota
	ColorRed
	ColorAmber
	ColorGreen
	FlashRedAmber
	FlashRedGreen
	FlashRedOff
	FlashAmberRed
	FlashAmberGreen
	FlashAmberOff
	FlashGreenRed
	FlashGreenAmber
	FlashGreenOff
)

// LightMode pairs the boolean and color behaviours configured for one
// status level. Which half applies depends on the shape of the target LED.
type LightMode struct {
	Boolean BooleanMode
	Color   ColorMode
}

// Animated reports whether the mode needs periodic re-rendering.
func (m LightMode) Animated() bool {
	if m.Boolean == BooleanFlash {
		return true
	}
	switch m.Color {
	case FlashRedAmber, FlashRedGreen, FlashRedOff,
		FlashAmberRed, FlashAmberGreen, FlashAmberOff,
		FlashGreenRed, FlashGreenAmber, FlashGreenOff:
		return true
	}
	return false
}

// BooleanState is the instantaneous value of a single on/off LED.
type BooleanState int

const (
	BooleanStateOff BooleanState = iota
	BooleanStateOn
)

// ColorState is the instantaneous value of a red/green LED pair.
type ColorState int

const (
	ColorStateOff ColorState = iota
	ColorStateRed
	ColorStateAmber
	ColorStateGreen
)

// LightState is the concrete value written to a light at one moment in
// time. It carries both shapes; the device picks the half that matches the
// target LED.
type LightState struct {
	Boolean BooleanState
	Color   ColorState
}

// colorPhases returns the two colors an animated color mode alternates
// between. For static modes both phases are the same color.
func colorPhases(mode ColorMode) (ColorState, ColorState) {
	switch mode {
	case ColorOff:
		return ColorStateOff, ColorStateOff
	case ColorRed:
		return ColorStateRed, ColorStateRed
	case ColorAmber:
		return ColorStateAmber, ColorStateAmber
	case ColorGreen:
		return ColorStateGreen, ColorStateGreen
	case FlashRedAmber:
		return ColorStateRed, ColorStateAmber
	case FlashRedGreen:
		return ColorStateRed, ColorStateGreen
	case FlashRedOff:
		return ColorStateRed, ColorStateOff
	case FlashAmberRed:
		return ColorStateAmber, ColorStateRed
	case FlashAmberGreen:
		return ColorStateAmber, ColorStateGreen
	case FlashAmberOff:
		return ColorStateAmber, ColorStateOff
	case FlashGreenRed:
		return ColorStateGreen, ColorStateRed
	case FlashGreenAmber:
		return ColorStateGreen, ColorStateAmber
	case FlashGreenOff:
		return ColorStateGreen, ColorStateOff
	default:
		return ColorStateOff, ColorStateOff
	}
}

// StateForMode returns the light state for the given mode at the given
// elapsed time since the shared reference instant. Static modes ignore the
// elapsed time entirely.
func StateForMode(mode LightMode, elapsed time.Duration) LightState {
	secondPhase := (elapsed.Milliseconds()/FlashMilliseconds)%2 == 1

	var boolean BooleanState
	switch mode.Boolean {
	case BooleanOn:
		boolean = BooleanStateOn
	case BooleanFlash:
		if secondPhase {
			boolean = BooleanStateOff
		} else {
			boolean = BooleanStateOn
		}
	}

	first, second := colorPhases(mode.Color)
	color := first
	if secondPhase {
		color = second
	}

	return LightState{Boolean: boolean, Color: color}
}

// ParseBooleanMode maps a configuration token to a boolean mode. Tokens are
// a documented vocabulary; anything else is a configuration error.
func ParseBooleanMode(token string) (BooleanMode, error) {
	switch token {
	case "off":
		return BooleanOff, nil
	case "on":
		return BooleanOn, nil
	case "flash":
		return BooleanFlash, nil
	default:
		return BooleanOff, fmt.Errorf("unknown boolean mode %q (expected off, on or flash)", token)
	}
}

// ParseColorMode maps a configuration token to a color mode. Flashing
// combinations are written as the two phase colors joined by a dash, e.g.
// "red-amber". Anything else is a configuration error.
func ParseColorMode(token string) (ColorMode, error) {
	switch token {
	case "off":
		return ColorOff, nil
	case "red":
		return ColorRed, nil
	case "amber":
		return ColorAmber, nil
	case "green":
		return ColorGreen, nil
	case "red-amber":
		return FlashRedAmber, nil
	case "red-green":
		return FlashRedGreen, nil
	case "red-off":
		return FlashRedOff, nil
	case "amber-red":
		return FlashAmberRed, nil
	case "amber-green":
		return FlashAmberGreen, nil
	case "amber-off":
		return FlashAmberOff, nil
	case "green-red":
		return FlashGreenRed, nil
	case "green-amber":
		return FlashGreenAmber, nil
	case "green-off":
		return FlashGreenOff, nil
	default:
		return ColorOff, fmt.Errorf("unknown color mode %q", token)
	}
}
