// Package x52pro drives the LEDs of a Saitek X52 Pro flight controller. It
// resolves per-input status levels onto the fixed set of physical LEDs,
// maps the resolved levels to configured light modes and renders those
// modes into concrete LED writes, re-rendering animated lights on demand.
package x52pro

import (
	"fmt"

	"go.uber.org/zap"

	"x52lc-go/internal/ship"
	"x52lc-go/internal/x52pro/directoutput"
)

// Input is a physical button or axis on the device that a game control can
// be bound to.
type Input int

const (
	InputClutch Input = iota
	InputFire
	InputFireA
	InputFireB
	InputFireD
	InputFireE
	InputT1
	InputT2
	InputT3
	InputT4
	InputT5
	InputT6
	InputPOV2
	InputThrottle
)

// String returns the input name for logging.
func (i Input) String() string {
	switch i {
	case InputClutch:
		return "clutch"
	case InputFire:
		return "fire"
	case InputFireA:
		return "fire_a"
	case InputFireB:
		return "fire_b"
	case InputFireD:
		return "fire_d"
	case InputFireE:
		return "fire_e"
	case InputT1:
		return "t1"
	case InputT2:
		return "t2"
	case InputT3:
		return "t3"
	case InputT4:
		return "t4"
	case InputT5:
		return "t5"
	case InputT6:
		return "t6"
	case InputPOV2:
		return "pov2"
	case InputThrottle:
		return "throttle"
	default:
		return "unknown"
	}
}

// LED identifies a controllable light on the device. Adjacent T buttons
// share one LED, so several inputs can legitimately map to the same LED.
type LED int

const (
	LEDFire LED = iota
	LEDFireA
	LEDFireB
	LEDFireD
	LEDFireE
	LEDT1T2
	LEDT3T4
	LEDT5T6
	LEDPOV2
	LEDClutch
	LEDThrottle

	ledCount
)

// ledForInput returns the LED lit for the given input.
func ledForInput(input Input) LED {
	switch input {
	case InputFire:
		return LEDFire
	case InputFireA:
		return LEDFireA
	case InputFireB:
		return LEDFireB
	case InputFireD:
		return LEDFireD
	case InputFireE:
		return LEDFireE
	case InputT1, InputT2:
		return LEDT1T2
	case InputT3, InputT4:
		return LEDT3T4
	case InputT5, InputT6:
		return LEDT5T6
	case InputPOV2:
		return LEDPOV2
	case InputThrottle:
		return LEDThrottle
	case InputClutch:
		return LEDClutch
	default:
		return LEDClutch
	}
}

type outputShape int

const (
	// singleOutput is a lone on/off LED addressed by one id.
	singleOutput outputShape = iota
	// pairedOutput is a red/green LED pair addressed by two correlated ids;
	// lighting both yields amber.
	pairedOutput
)

// ledOutput describes the physical write fan-out for one LED.
type ledOutput struct {
	shape   outputShape
	onID    uint32
	redID   uint32
	greenID uint32
}

// ledOutputs is the fixed id table from the DirectOutput SDK, indexed by
// LED.
var ledOutputs = [ledCount]ledOutput{
	LEDFire:     {shape: singleOutput, onID: 0},
	LEDFireA:    {shape: pairedOutput, redID: 1, greenID: 2},
	LEDFireB:    {shape: pairedOutput, redID: 3, greenID: 4},
	LEDFireD:    {shape: pairedOutput, redID: 5, greenID: 6},
	LEDFireE:    {shape: pairedOutput, redID: 7, greenID: 8},
	LEDT1T2:     {shape: pairedOutput, redID: 9, greenID: 10},
	LEDT3T4:     {shape: pairedOutput, redID: 11, greenID: 12},
	LEDT5T6:     {shape: pairedOutput, redID: 13, greenID: 14},
	LEDPOV2:     {shape: pairedOutput, redID: 15, greenID: 16},
	LEDClutch:   {shape: pairedOutput, redID: 17, greenID: 18},
	LEDThrottle: {shape: singleOutput, onID: 19},
}

// InputStatusLevel associates an input with a status level observed for the
// attribute the input is bound to.
type InputStatusLevel struct {
	Input Input
	Level ship.StatusLevel
}

// Device drives the LEDs of one X52 Pro through the vendor driver. It is
// owned and mutated exclusively by the event-processing loop.
type Device struct {
	driver   directoutput.Driver
	mapper   ModeMapper
	states   StateMapper
	modes    [ledCount]LightMode
	animated [ledCount]bool
	logger   *zap.Logger
}

// NewDevice returns a device writing through the given driver, using the
// given mode mapper until SetModeMapper replaces it.
func NewDevice(driver directoutput.Driver, mapper ModeMapper, logger *zap.Logger) *Device {
	return &Device{
		driver: driver,
		mapper: mapper,
		states: NewStateMapper(),
		logger: logger,
	}
}

// SetModeMapper replaces the active status-level-to-mode table. The new
// table takes effect on the next SetInputStatusLevels call.
func (d *Device) SetModeMapper(mapper ModeMapper) {
	d.mapper = mapper
}

// SetInputStatusLevels resolves the given input status levels onto the
// device's LEDs and writes the result. Where several inputs share one LED
// the most severe level wins; LEDs with no contributing input fall back to
// inactive. LEDs whose resolved mode is animated are remembered for
// UpdateAnimatedLights until the next call.
func (d *Device) SetInputStatusLevels(levels []InputStatusLevel) error {
	var resolved [ledCount]ship.StatusLevel

	for _, isl := range levels {
		led := ledForInput(isl.Input)
		if isl.Level > resolved[led] {
			resolved[led] = isl.Level
		}
	}

	for led := LED(0); led < ledCount; led++ {
		mode := d.mapper.Map(resolved[led])
		d.modes[led] = mode
		d.animated[led] = mode.Animated()

		if err := d.renderLED(led, mode); err != nil {
			return err
		}
	}

	return nil
}

// UpdateAnimatedLights re-renders the LEDs flagged as animated by the last
// SetInputStatusLevels call. It performs no writes when nothing is
// animated. Callers must invoke it at least every FlashMilliseconds for
// visually correct flashing.
func (d *Device) UpdateAnimatedLights() error {
	for led := LED(0); led < ledCount; led++ {
		if !d.animated[led] {
			continue
		}
		if err := d.renderLED(led, d.modes[led]); err != nil {
			return err
		}
	}
	return nil
}

// renderLED converts the mode to its current state and writes it, fanning
// out to one or two LED ids depending on the output shape.
func (d *Device) renderLED(led LED, mode LightMode) error {
	state := d.states.State(mode)
	output := ledOutputs[led]

	switch output.shape {
	case singleOutput:
		on := state.Boolean == BooleanStateOn
		if err := d.driver.SetLED(output.onID, on); err != nil {
			return fmt.Errorf("failed to set LED %d: %w", output.onID, err)
		}
	case pairedOutput:
		var red, green bool
		switch state.Color {
		case ColorStateRed:
			red = true
		case ColorStateAmber:
			red, green = true, true
		case ColorStateGreen:
			green = true
		}

		if err := d.driver.SetLED(output.redID, red); err != nil {
			return fmt.Errorf("failed to set LED %d: %w", output.redID, err)
		}
		if err := d.driver.SetLED(output.greenID, green); err != nil {
			return fmt.Errorf("failed to set LED %d: %w", output.greenID, err)
		}
	}

	return nil
}
