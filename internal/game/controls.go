package game

import (
	"x52lc-go/internal/ship"
	"x52lc-go/internal/x52pro"
)

// Device and key names the game uses for X52 Pro inputs in bindings files.
const (
	x52proDevice = "SaitekX52Pro"

	x52proClutch   = "Joy_31"
	x52proFire     = "Joy_2"
	x52proFireA    = "Joy_3"
	x52proFireB    = "Joy_4"
	x52proFireD    = "Joy_7"
	x52proFireE    = "Joy_8"
	x52proT1       = "Joy_9"
	x52proT2       = "Joy_10"
	x52proT3       = "Joy_11"
	x52proT4       = "Joy_12"
	x52proT5       = "Joy_13"
	x52proT6       = "Joy_14"
	x52proPOV2Up   = "Joy_POV2Up"
	x52proThrottle = "Joy_ZAxis"
)

// Control is a game control a device input can be bound to.
type Control int

const (
	ControlBoost Control = iota
	ControlCargoScoop
	ControlExternalLights
	ControlHardpoints
	ControlHeatSink
	ControlHyperspace
	ControlHyperSuperCombination
	ControlLandingGear
	ControlSilentRunning
	ControlSupercruise
	ControlThrottle
)

// ControlsForAttribute returns the game controls whose bound inputs should
// display the given attribute's status level. The frame shift drive fans
// out to all three drive engagement controls; every other attribute feeds
// its namesake control.
func ControlsForAttribute(attribute ship.Attribute) []Control {
	switch attribute {
	case ship.CargoScoopAttribute:
		return []Control{ControlCargoScoop}
	case ship.ExternalLightsAttribute:
		return []Control{ControlExternalLights}
	case ship.FrameShiftDriveAttribute:
		return []Control{ControlHyperspace, ControlHyperSuperCombination, ControlSupercruise}
	case ship.LandingGearAttribute:
		return []Control{ControlLandingGear}
	case ship.HeatSinkAttribute:
		return []Control{ControlHeatSink}
	case ship.SilentRunningAttribute:
		return []Control{ControlSilentRunning}
	case ship.HardpointsAttribute:
		return []Control{ControlHardpoints}
	case ship.BoostAttribute:
		return []Control{ControlBoost}
	case ship.ThrottleAttribute:
		return []Control{ControlThrottle}
	default:
		return nil
	}
}

// Controls answers which device inputs are bound to which game controls,
// as loaded from a bindings file.
type Controls struct {
	bindings ControlBindings
}

// NewControls returns controls backed by the given parsed bindings.
func NewControls(bindings ControlBindings) *Controls {
	return &Controls{bindings: bindings}
}

// ControlsFromFile loads the bindings file at the given path.
func ControlsFromFile(path string) (*Controls, error) {
	bindings, err := ReadControlBindings(path)
	if err != nil {
		return nil, err
	}
	return NewControls(bindings), nil
}

// InputsForControl returns the X52 Pro inputs bound to the given control.
// The slice is empty when none of the supported inputs is bound to it.
func (c *Controls) InputsForControl(control Control) []x52pro.Input {
	binding := c.bindingForControl(control)

	inputs := make([]x52pro.Input, 0, 2)
	for _, bound := range []BoundInput{binding.Primary, binding.Secondary, binding.Binding} {
		if input, ok := inputFromBoundInput(bound); ok {
			inputs = append(inputs, input)
		}
	}

	return inputs
}

func (c *Controls) bindingForControl(control Control) ControlBinding {
	switch control {
	case ControlBoost:
		return c.bindings.Boost
	case ControlCargoScoop:
		return c.bindings.CargoScoop
	case ControlExternalLights:
		return c.bindings.ExternalLights
	case ControlHardpoints:
		return c.bindings.Hardpoints
	case ControlHeatSink:
		return c.bindings.HeatSink
	case ControlHyperspace:
		return c.bindings.Hyperspace
	case ControlHyperSuperCombination:
		return c.bindings.HyperSuperCombo
	case ControlLandingGear:
		return c.bindings.LandingGear
	case ControlSilentRunning:
		return c.bindings.SilentRunning
	case ControlSupercruise:
		return c.bindings.Supercruise
	case ControlThrottle:
		return c.bindings.Throttle
	default:
		return ControlBinding{}
	}
}

// inputFromBoundInput maps a bindings file input reference to an X52 Pro
// input, filtering out bindings for other devices.
func inputFromBoundInput(bound BoundInput) (x52pro.Input, bool) {
	if bound.Device != x52proDevice {
		return 0, false
	}

	switch bound.Key {
	case x52proClutch:
		return x52pro.InputClutch, true
	case x52proFire:
		return x52pro.InputFire, true
	case x52proFireA:
		return x52pro.InputFireA, true
	case x52proFireB:
		return x52pro.InputFireB, true
	case x52proFireD:
		return x52pro.InputFireD, true
	case x52proFireE:
		return x52pro.InputFireE, true
	case x52proT1:
		return x52pro.InputT1, true
	case x52proT2:
		return x52pro.InputT2, true
	case x52proT3:
		return x52pro.InputT3, true
	case x52proT4:
		return x52pro.InputT4, true
	case x52proT5:
		return x52pro.InputT5, true
	case x52proT6:
		return x52pro.InputT6, true
	case x52proPOV2Up:
		return x52pro.InputPOV2, true
	case x52proThrottle:
		return x52pro.InputThrottle, true
	default:
		return 0, false
	}
}
