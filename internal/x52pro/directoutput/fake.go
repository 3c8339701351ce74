package directoutput

// Fake is a recording driver for tests.
type Fake struct {
	// Writes holds every SetLED call in order.
	Writes []Write

	// LEDs holds the last state written per LED id.
	LEDs map[uint32]bool

	// Err, when set, is returned by every SetLED call.
	Err error
}

// Write is one recorded SetLED call.
type Write struct {
	ID uint32
	On bool
}

// NewFake returns an empty recording driver.
func NewFake() *Fake {
	return &Fake{LEDs: make(map[uint32]bool)}
}

// SetLED records the call.
func (f *Fake) SetLED(id uint32, on bool) error {
	if f.Err != nil {
		return f.Err
	}
	f.Writes = append(f.Writes, Write{ID: id, On: on})
	f.LEDs[id] = on
	return nil
}

// Close is a no-op.
func (f *Fake) Close() error { return nil }

// Reset clears the recorded writes but keeps the per-LED states.
func (f *Fake) Reset() {
	f.Writes = nil
}
