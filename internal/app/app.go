// Package app wires the engine together: it starts the file watch,
// animation tick and signal producers, and runs the single consumer loop
// that owns the ship state and the device.
package app

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"x52lc-go/internal/config"
	"x52lc-go/internal/events"
	"x52lc-go/internal/game"
	"x52lc-go/internal/journal"
	"x52lc-go/internal/ship"
	"x52lc-go/internal/x52pro"
	"x52lc-go/internal/x52pro/directoutput"
)

// eventBuffer bounds the event channel. Producers are slow (file writes,
// one tick per flash phase) so a small buffer is plenty.
const eventBuffer = 16

// App holds everything the consumer loop owns. Only that loop touches the
// ship, the journal reader and the device; producers communicate solely
// through the event channel.
type App struct {
	logger *zap.Logger

	statusFile string
	journalDir string

	ship     *ship.Ship
	controls *game.Controls
	driver   directoutput.Driver
	device   *x52pro.Device
	reader   *journal.Reader
	mappers  map[ship.GlobalStatus]x52pro.ModeMapper
	global   ship.GlobalStatus

	events chan events.Event
	done   chan struct{}
}

// New builds the application from configuration: mode tables, control
// bindings, the device driver and the engine state. Every failure here is
// fatal to startup.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	mappers, err := cfg.ModeMappers()
	if err != nil {
		return nil, err
	}

	statusFile, err := cfg.StatusFilePath()
	if err != nil {
		return nil, err
	}
	journalDir, err := cfg.JournalDirPath()
	if err != nil {
		return nil, err
	}
	bindingsFile, err := cfg.BindingsFilePath()
	if err != nil {
		return nil, err
	}

	logger.Debug("Game file locations",
		zap.String("status_file", statusFile),
		zap.String("journal_dir", journalDir),
		zap.String("bindings_file", bindingsFile))

	controls, err := game.ControlsFromFile(bindingsFile)
	if err != nil {
		return nil, err
	}

	driver, err := directoutput.Open(logger.Named("directoutput"))
	if err != nil {
		return nil, err
	}

	return &App{
		logger:     logger,
		statusFile: statusFile,
		journalDir: journalDir,
		ship:       ship.NewShip(),
		controls:   controls,
		driver:     driver,
		device:     x52pro.NewDevice(driver, mappers[ship.GlobalNormal], logger.Named("x52pro")),
		reader:     journal.NewReader(logger.Named("journal")),
		mappers:    mappers,
		global:     ship.GlobalNormal,
		events:     make(chan events.Event, eventBuffer),
		done:       make(chan struct{}),
	}, nil
}

// Close releases the journal reader and the device driver.
func (a *App) Close() error {
	if err := a.reader.Close(); err != nil {
		return err
	}
	return a.driver.Close()
}

// Run seeds the initial state, starts the producers and processes events
// until an Exit event arrives. Device and journal read failures are fatal
// and end the loop with an error.
func (a *App) Run() error {
	defer close(a.done)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(a.statusFile); err != nil {
		return fmt.Errorf("failed to watch status file: %w", err)
	}
	if err := watcher.Add(a.journalDir); err != nil {
		return fmt.Errorf("failed to watch journal directory: %w", err)
	}

	go a.watchLoop(watcher)
	go a.tickLoop()
	go a.signalLoop()

	// The new-journal-file event must precede the initial status update so
	// the journal is read before the first render.
	if path, ok, err := latestJournalFile(a.journalDir); err != nil {
		return err
	} else if ok {
		a.send(events.NewJournalFile{Path: path})
	} else {
		a.logger.Debug("No journal file found")
	}

	if status, ok, err := game.ReadStatusFile(a.statusFile); err != nil {
		return err
	} else if ok {
		a.send(events.StatusUpdate{Status: status})
	}

	a.logger.Info("Watching for changes")

	for event := range a.events {
		switch event := event.(type) {
		case events.NewJournalFile:
			if err := a.reader.Open(event.Path); err != nil {
				return err
			}
		case events.AnimationTick:
			if err := a.device.UpdateAnimatedLights(); err != nil {
				return err
			}
		case events.StatusUpdate:
			if err := a.handleStatusUpdate(event.Status); err != nil {
				return err
			}
		case events.Exit:
			a.logger.Info("Exiting")
			return nil
		}
	}

	return nil
}

// send delivers an event unless the consumer loop has already ended.
func (a *App) send(event events.Event) {
	select {
	case a.events <- event:
	case <-a.done:
	}
}

// watchLoop translates file system notifications into application events.
// A write to the status file triggers a read-and-send; a new journal file
// in the journal directory is announced for the reader to switch to.
func (a *App) watchLoop(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			a.handleFileEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			a.logger.Error("File watcher error", zap.Error(err))
		case <-a.done:
			return
		}
	}
}

func (a *App) handleFileEvent(event fsnotify.Event) {
	if event.Name == a.statusFile {
		if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}

		status, ok, err := game.ReadStatusFile(a.statusFile)
		if err != nil {
			// Malformed payloads are reported and dropped; the loop keeps
			// running on the previous state.
			a.logger.Warn("Dropping unreadable status update", zap.Error(err))
			return
		}
		if !ok {
			a.logger.Debug("Status file empty")
			return
		}

		a.send(events.StatusUpdate{Status: status})
		return
	}

	if event.Op&fsnotify.Create != 0 && filepath.Dir(event.Name) == a.journalDir {
		name := filepath.Base(event.Name)
		if journal.IsJournalFile(name) {
			a.logger.Debug("New journal file", zap.String("name", name))
			a.send(events.NewJournalFile{Path: event.Name})
		}
	}
}

// tickLoop drives animated lights. The tick matches the flash phase length
// so flashing is visually correct.
func (a *App) tickLoop() {
	ticker := time.NewTicker(x52pro.FlashMilliseconds * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.send(events.AnimationTick{})
		case <-a.done:
			return
		}
	}
}

// signalLoop turns an interrupt into a cooperative Exit event.
func (a *App) signalLoop() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		a.logger.Info("Received signal", zap.String("signal", sig.String()))
		a.send(events.Exit{})
	case <-a.done:
	}
}

// handleStatusUpdate applies any journal events that accumulated since the
// last snapshot, then the snapshot itself. Lights are re-resolved only when
// something actually changed.
//
// The game keeps the current journal file open, which suppresses timely
// write notifications on it, so the journal is drained on every status
// update instead of being watched directly.
func (a *App) handleStatusUpdate(status game.Status) error {
	journalEvents, err := a.reader.NewEvents()
	if err != nil {
		return err
	}

	for _, event := range journalEvents {
		a.ship.ApplyJournalEvent(event)
	}

	if !a.ship.UpdateStatus(uint64(status.Flags)) && len(journalEvents) == 0 {
		a.logger.Debug("Status file updated but change not relevant")
		return nil
	}

	return a.refreshLights()
}

// refreshLights recomputes every input's status level from the ship state
// and pushes the result to the device, switching the mode table first when
// the global status changed.
func (a *App) refreshLights() error {
	if global := a.ship.GlobalStatus(); global != a.global {
		a.logger.Info("Global status changed",
			zap.String("from", a.global.String()),
			zap.String("to", global.String()))
		a.global = global
		a.device.SetModeMapper(a.mappers[global])
	}

	var levels []x52pro.InputStatusLevel
	for _, status := range a.ship.Statuses() {
		for _, control := range game.ControlsForAttribute(status.Attribute) {
			for _, input := range a.controls.InputsForControl(control) {
				a.logger.Debug("Input status level",
					zap.Stringer("input", input),
					zap.Stringer("attribute", status.Attribute),
					zap.Stringer("level", status.Level))
				levels = append(levels, x52pro.InputStatusLevel{Input: input, Level: status.Level})
			}
		}
	}

	return a.device.SetInputStatusLevels(levels)
}

// latestJournalFile returns the newest journal file in the given directory.
// Journal file names embed their creation timestamp, so lexical order
// matches chronological order.
func latestJournalFile(dir string) (string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, fmt.Errorf("failed to read journal directory: %w", err)
	}

	var latest string
	for _, entry := range entries {
		if entry.IsDir() || !journal.IsJournalFile(entry.Name()) {
			continue
		}
		if entry.Name() > latest {
			latest = entry.Name()
		}
	}

	if latest == "" {
		return "", false, nil
	}
	return filepath.Join(dir, latest), true, nil
}
