// Package game reads the files Elite Dangerous writes for third-party
// tools: the status snapshot and the control bindings.
package game

import (
	"encoding/json"
	"fmt"
	"os"
)

// Status is the subset of the status snapshot file this application uses.
type Status struct {
	Flags      uint32 `json:"Flags"`
	LegalState string `json:"LegalState"`
}

// ParseStatus parses the content of the status file. It returns ok=false
// for an empty payload: the game momentarily writes an empty file during
// certain transitions, which means "no update available", not an error.
func ParseStatus(data []byte) (Status, bool, error) {
	if len(data) == 0 {
		return Status{}, false, nil
	}

	var status Status
	if err := json.Unmarshal(data, &status); err != nil {
		return Status{}, false, fmt.Errorf("failed to parse status file: %w", err)
	}

	return status, true, nil
}

// ReadStatusFile reads and parses the status snapshot at the given path.
func ReadStatusFile(path string) (Status, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Status{}, false, fmt.Errorf("failed to read status file: %w", err)
	}

	return ParseStatus(data)
}
