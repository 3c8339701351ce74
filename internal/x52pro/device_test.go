package x52pro

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"x52lc-go/internal/ship"
	"x52lc-go/internal/x52pro/directoutput"
)

func testMapper() ModeMapper {
	return ModeMapper{
		Inactive: LightMode{BooleanOff, ColorGreen},
		Active:   LightMode{BooleanOn, ColorAmber},
		Blocked:  LightMode{BooleanOff, ColorRed},
		Alert:    LightMode{BooleanFlash, FlashRedAmber},
	}
}

// newTestDevice returns a device on a fake driver with a controllable
// clock. Advancing *elapsed moves the animation phase.
func newTestDevice(t *testing.T) (*Device, *directoutput.Fake, *time.Duration) {
	t.Helper()

	fake := directoutput.NewFake()
	device := NewDevice(fake, testMapper(), zap.NewNop())

	elapsed := new(time.Duration)
	reference := time.Unix(0, 0)
	device.states = newStateMapperAt(reference, func() time.Time {
		return reference.Add(*elapsed)
	})

	return device, fake, elapsed
}

func pairIDs(led LED) (uint32, uint32) {
	return ledOutputs[led].redID, ledOutputs[led].greenID
}

func TestSetInputStatusLevels_EveryLEDAlwaysWritten(t *testing.T) {
	device, fake, _ := newTestDevice(t)

	require.NoError(t, device.SetInputStatusLevels(nil))

	// 9 paired LEDs at two writes each, 2 single LEDs at one write each.
	assert.Len(t, fake.Writes, 20)

	// With no contributing input every LED falls back to inactive: paired
	// LEDs green, single LEDs off.
	red, green := pairIDs(LEDClutch)
	assert.False(t, fake.LEDs[red])
	assert.True(t, fake.LEDs[green])
	assert.False(t, fake.LEDs[ledOutputs[LEDFire].onID])
	assert.False(t, fake.LEDs[ledOutputs[LEDThrottle].onID])
}

func TestSetInputStatusLevels_SharedLEDTakesMaximum(t *testing.T) {
	device, fake, _ := newTestDevice(t)

	// T1 and T2 share one LED; the more severe level must win regardless of
	// order.
	require.NoError(t, device.SetInputStatusLevels([]InputStatusLevel{
		{Input: InputT1, Level: ship.Active},
		{Input: InputT2, Level: ship.Alert},
	}))

	// Alert renders flashing red-amber; phase zero is red.
	red, green := pairIDs(LEDT1T2)
	assert.True(t, fake.LEDs[red])
	assert.False(t, fake.LEDs[green])
}

func TestSetInputStatusLevels_SingleAndPairedFanOut(t *testing.T) {
	device, fake, _ := newTestDevice(t)

	require.NoError(t, device.SetInputStatusLevels([]InputStatusLevel{
		{Input: InputFire, Level: ship.Active},
		{Input: InputFireA, Level: ship.Active},
	}))

	// Active is on/amber: the single Fire LED lights, the FireA pair lights
	// both ids.
	assert.True(t, fake.LEDs[ledOutputs[LEDFire].onID])
	red, green := pairIDs(LEDFireA)
	assert.True(t, fake.LEDs[red])
	assert.True(t, fake.LEDs[green])
}

func TestSetInputStatusLevels_BlockedRendersRed(t *testing.T) {
	device, fake, _ := newTestDevice(t)

	require.NoError(t, device.SetInputStatusLevels([]InputStatusLevel{
		{Input: InputT3, Level: ship.Blocked},
	}))

	red, green := pairIDs(LEDT3T4)
	assert.True(t, fake.LEDs[red])
	assert.False(t, fake.LEDs[green])
}

func TestUpdateAnimatedLights_NoWritesWhenNothingAnimated(t *testing.T) {
	device, fake, _ := newTestDevice(t)

	require.NoError(t, device.SetInputStatusLevels([]InputStatusLevel{
		{Input: InputT1, Level: ship.Active},
	}))

	fake.Reset()
	require.NoError(t, device.UpdateAnimatedLights())

	assert.Empty(t, fake.Writes)
}

func TestUpdateAnimatedLights_RefreshesOnlyAnimatedLEDs(t *testing.T) {
	device, fake, elapsed := newTestDevice(t)

	require.NoError(t, device.SetInputStatusLevels([]InputStatusLevel{
		{Input: InputFire, Level: ship.Alert},
		{Input: InputT1, Level: ship.Alert},
		{Input: InputT3, Level: ship.Active},
	}))

	// Enter the second flash phase.
	*elapsed = FlashMilliseconds * time.Millisecond
	fake.Reset()
	require.NoError(t, device.UpdateAnimatedLights())

	// Only the two alert LEDs are re-rendered: one single write plus one
	// pair write.
	assert.Len(t, fake.Writes, 3)

	// Both flipped in unison: the boolean flash is now off, the color
	// flash is now amber.
	assert.False(t, fake.LEDs[ledOutputs[LEDFire].onID])
	red, green := pairIDs(LEDT1T2)
	assert.True(t, fake.LEDs[red])
	assert.True(t, fake.LEDs[green])

	// And back again one phase later.
	*elapsed = 2 * FlashMilliseconds * time.Millisecond
	require.NoError(t, device.UpdateAnimatedLights())
	assert.True(t, fake.LEDs[ledOutputs[LEDFire].onID])
	assert.True(t, fake.LEDs[red])
	assert.False(t, fake.LEDs[green])
}

func TestSetModeMapper_TakesEffectOnNextResolve(t *testing.T) {
	device, fake, _ := newTestDevice(t)

	require.NoError(t, device.SetInputStatusLevels([]InputStatusLevel{
		{Input: InputT1, Level: ship.Inactive},
	}))
	red, green := pairIDs(LEDT1T2)
	assert.True(t, fake.LEDs[green])

	// An alternate table that shows inactive as red.
	mapper := testMapper()
	mapper.Inactive = LightMode{BooleanOff, ColorRed}
	device.SetModeMapper(mapper)

	require.NoError(t, device.SetInputStatusLevels([]InputStatusLevel{
		{Input: InputT1, Level: ship.Inactive},
	}))
	assert.True(t, fake.LEDs[red])
	assert.False(t, fake.LEDs[green])
}

func TestSetInputStatusLevels_DriverFailureIsFatal(t *testing.T) {
	device, fake, _ := newTestDevice(t)
	fake.Err = errors.New("device gone")

	assert.Error(t, device.SetInputStatusLevels(nil))
}

func TestLedForInput(t *testing.T) {
	tests := []struct {
		input Input
		want  LED
	}{
		{InputClutch, LEDClutch},
		{InputFire, LEDFire},
		{InputFireA, LEDFireA},
		{InputFireB, LEDFireB},
		{InputFireD, LEDFireD},
		{InputFireE, LEDFireE},
		{InputT1, LEDT1T2},
		{InputT2, LEDT1T2},
		{InputT3, LEDT3T4},
		{InputT4, LEDT3T4},
		{InputT5, LEDT5T6},
		{InputT6, LEDT5T6},
		{InputPOV2, LEDPOV2},
		{InputThrottle, LEDThrottle},
	}

	for _, tt := range tests {
		t.Run(tt.input.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ledForInput(tt.input))
		})
	}
}
