// Package events defines the messages flowing through the application's
// single event channel. Producers (file watchers, the animation ticker, the
// signal handler) only ever send; the one consumer loop owns all state.
package events

import "x52lc-go/internal/game"

// Event is one message on the application event channel. The set of
// implementations is closed.
type Event interface {
	isEvent()
}

// StatusUpdate carries a freshly parsed status snapshot.
type StatusUpdate struct {
	Status game.Status
}

// NewJournalFile announces that a new journal file has appeared and should
// become the one read incrementally.
type NewJournalFile struct {
	Path string
}

// AnimationTick asks the consumer to re-render animated lights.
type AnimationTick struct{}

// Exit asks the consumer loop to terminate cooperatively.
type Exit struct{}

func (StatusUpdate) isEvent()   {}
func (NewJournalFile) isEvent() {}
func (AnimationTick) isEvent()  {}
func (Exit) isEvent()           {}
