package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"x52lc-go/internal/events"
	"x52lc-go/internal/game"
	"x52lc-go/internal/journal"
	"x52lc-go/internal/ship"
	"x52lc-go/internal/x52pro"
	"x52lc-go/internal/x52pro/directoutput"
)

// T3 shares LED ids 11 (red) and 12 (green) with T4 in the DirectOutput
// SDK; the tests below bind the landing gear to T3 and observe those ids.
const (
	t3RedID   = 11
	t3GreenID = 12
)

func testMappers() map[ship.GlobalStatus]x52pro.ModeMapper {
	normal := x52pro.ModeMapper{
		Inactive: x52pro.LightMode{Boolean: x52pro.BooleanOff, Color: x52pro.ColorGreen},
		Active:   x52pro.LightMode{Boolean: x52pro.BooleanOn, Color: x52pro.ColorAmber},
		Blocked:  x52pro.LightMode{Boolean: x52pro.BooleanOff, Color: x52pro.ColorRed},
		// Static alert so assertions do not depend on the flash phase; the
		// animation itself is covered by the x52pro tests.
		Alert: x52pro.LightMode{Boolean: x52pro.BooleanOn, Color: x52pro.ColorRed},
	}

	hardpoints := normal
	hardpoints.Inactive = x52pro.LightMode{Boolean: x52pro.BooleanOff, Color: x52pro.ColorRed}

	return map[ship.GlobalStatus]x52pro.ModeMapper{
		ship.GlobalNormal:             normal,
		ship.GlobalHardpointsDeployed: hardpoints,
	}
}

func newTestApp(t *testing.T) (*App, *directoutput.Fake) {
	t.Helper()

	fake := directoutput.NewFake()
	mappers := testMappers()

	controls := game.NewControls(game.ControlBindings{
		LandingGear: game.ControlBinding{
			Primary: game.BoundInput{Device: "SaitekX52Pro", Key: "Joy_11"},
		},
	})

	return &App{
		logger:   zap.NewNop(),
		ship:     ship.NewShip(),
		controls: controls,
		driver:   fake,
		device:   x52pro.NewDevice(fake, mappers[ship.GlobalNormal], zap.NewNop()),
		reader:   journal.NewReader(zap.NewNop()),
		mappers:  mappers,
		global:   ship.GlobalNormal,
		events:   make(chan events.Event, eventBuffer),
		done:     make(chan struct{}),
	}, fake
}

func TestHandleStatusUpdate_RendersOnChange(t *testing.T) {
	app, fake := newTestApp(t)

	require.NoError(t, app.handleStatusUpdate(game.Status{Flags: 1 << 2}))

	// Landing gear deployed renders active (amber) on the bound T3 LED.
	assert.NotEmpty(t, fake.Writes)
	assert.True(t, fake.LEDs[t3RedID])
	assert.True(t, fake.LEDs[t3GreenID])
}

func TestHandleStatusUpdate_IdenticalSnapshotIsNoOp(t *testing.T) {
	app, fake := newTestApp(t)

	require.NoError(t, app.handleStatusUpdate(game.Status{Flags: 1 << 2}))
	fake.Reset()

	require.NoError(t, app.handleStatusUpdate(game.Status{Flags: 1 << 2}))
	assert.Empty(t, fake.Writes, "repeated identical snapshot must not re-render")
}

func TestHandleStatusUpdate_DockingAlertSurvivesSnapshots(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Journal.2024-01-02T030405.01.log")
	require.NoError(t, os.WriteFile(path, []byte(`{ "event":"DockingGranted" }`+"\n"), 0o644))

	app, fake := newTestApp(t)
	defer app.reader.Close()
	require.NoError(t, app.reader.Open(path))

	// The journal event lands together with the snapshot; gear is up, so
	// the gear light alerts (red).
	require.NoError(t, app.handleStatusUpdate(game.Status{Flags: 0}))
	assert.True(t, fake.LEDs[t3RedID])
	assert.False(t, fake.LEDs[t3GreenID])

	// A later snapshot with unrelated bits must not clear the derived
	// docking state.
	require.NoError(t, app.handleStatusUpdate(game.Status{Flags: 1 << 8}))
	assert.True(t, fake.LEDs[t3RedID])
	assert.False(t, fake.LEDs[t3GreenID])
}

func TestHandleStatusUpdate_GlobalStatusSwitchesModeTable(t *testing.T) {
	app, fake := newTestApp(t)

	// Hardpoints out: the alternate table shows inactive as red, so the
	// idle gear LED turns red instead of green.
	require.NoError(t, app.handleStatusUpdate(game.Status{Flags: 1 << 6}))
	assert.True(t, fake.LEDs[t3RedID])
	assert.False(t, fake.LEDs[t3GreenID])
	assert.Equal(t, ship.GlobalHardpointsDeployed, app.global)

	// And back to normal.
	require.NoError(t, app.handleStatusUpdate(game.Status{Flags: 0}))
	assert.False(t, fake.LEDs[t3RedID])
	assert.True(t, fake.LEDs[t3GreenID])
	assert.Equal(t, ship.GlobalNormal, app.global)
}

func TestLatestJournalFile(t *testing.T) {
	dir := t.TempDir()

	_, ok, err := latestJournalFile(dir)
	require.NoError(t, err)
	assert.False(t, ok)

	for _, name := range []string{
		"Journal.2024-01-01T000000.01.log",
		"Journal.2024-01-02T030405.01.log",
		"Status.json",
		"NavRoute.json",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	path, ok, err := latestJournalFile(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "Journal.2024-01-02T030405.01.log"), path)
}

func TestLatestJournalFile_MissingDir(t *testing.T) {
	_, _, err := latestJournalFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
