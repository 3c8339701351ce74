// Package journal reads the incremental event log the game appends to while
// running. Journal files hold one JSON object per line, discriminated by an
// "event" field. Only a small closed set of event kinds is of interest here;
// everything else parses to KindOther so an unknown entry can never fail the
// stream.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Kind identifies a journal event kind.
type Kind string

const (
	KindDocked            Kind = "Docked"
	KindDockingCancelled  Kind = "DockingCancelled"
	KindDockingGranted    Kind = "DockingGranted"
	KindDockingTimeout    Kind = "DockingTimeout"
	KindLegalStateChanged Kind = "LegalStateChanged"

	// KindOther is the distinguished value for every event kind outside the
	// known set. It is logged by the reader and never applied to state.
	KindOther Kind = "Other"
)

// LegalStateSpeeding is the legal state value that marks the ship as
// exceeding the speed limit near a station.
const LegalStateSpeeding = "Speeding"

// Event is a single parsed journal entry.
type Event struct {
	Kind Kind

	// LegalState carries the new legal state for KindLegalStateChanged
	// events and is empty otherwise.
	LegalState string
}

type rawEvent struct {
	Event      string `json:"event"`
	LegalState string `json:"LegalState"`
}

// ParseEvent parses a single journal line. Unknown event kinds map to
// KindOther; only malformed JSON returns an error.
func ParseEvent(line []byte) (Event, error) {
	var raw rawEvent
	if err := json.Unmarshal(line, &raw); err != nil {
		return Event{}, fmt.Errorf("failed to parse journal entry: %w", err)
	}

	switch Kind(raw.Event) {
	case KindDocked, KindDockingCancelled, KindDockingGranted, KindDockingTimeout:
		return Event{Kind: Kind(raw.Event)}, nil
	case KindLegalStateChanged:
		return Event{Kind: KindLegalStateChanged, LegalState: raw.LegalState}, nil
	default:
		return Event{Kind: KindOther}, nil
	}
}

// IsJournalFile reports whether the given file name looks like a journal
// file written by the game.
func IsJournalFile(name string) bool {
	return strings.HasPrefix(name, "Journal") && strings.HasSuffix(name, ".log")
}

// Reader is a stateful incremental reader over the active journal file.
// Each call to NewEvents returns only the entries appended since the last
// call. The game keeps the current journal open for writing, so the file is
// held open read-only and polled rather than watched.
type Reader struct {
	file   *os.File
	buf    *bufio.Reader
	logger *zap.Logger
}

// NewReader returns a reader not yet associated with a journal file.
// NewEvents returns nothing until Open is called.
func NewReader(logger *zap.Logger) *Reader {
	return &Reader{logger: logger}
}

// Open switches the reader to the journal file at the given path, closing
// any previously opened file. The next NewEvents call returns every entry
// already present in the new file.
func (r *Reader) Open(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open journal file: %w", err)
	}

	if r.file != nil {
		r.file.Close()
	}

	r.logger.Debug("Opened journal file", zap.String("path", path))
	r.file = file
	r.buf = bufio.NewReader(file)
	return nil
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	r.buf = nil
	return err
}

// NewEvents returns the recognized events appended to the journal since the
// last call. Entries of unknown kind and malformed lines are logged and
// dropped; they never stop the stream.
func (r *Reader) NewEvents() ([]Event, error) {
	if r.buf == nil {
		return nil, nil
	}

	var events []Event
	for {
		line, err := r.buf.ReadBytes('\n')
		if err == io.EOF {
			// A partial line without a trailing newline is still being
			// written; leave it for the next call.
			if len(line) > 0 {
				if _, serr := r.file.Seek(int64(-len(line)), io.SeekCurrent); serr != nil {
					return events, fmt.Errorf("failed to rewind partial journal line: %w", serr)
				}
				r.buf.Reset(r.file)
			}
			return events, nil
		}
		if err != nil {
			return events, fmt.Errorf("failed to read journal file: %w", err)
		}

		event, perr := ParseEvent(line)
		if perr != nil {
			r.logger.Warn("Dropping malformed journal entry", zap.Error(perr))
			continue
		}
		if event.Kind == KindOther {
			r.logger.Debug("Ignoring journal event of unknown kind")
			continue
		}

		r.logger.Info("Journal event", zap.String("kind", string(event.Kind)))
		events = append(events, event)
	}
}
