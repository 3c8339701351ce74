package x52pro

import "time"

// StateMapper converts light modes to concrete light states. The returned
// states change over time because flashing modes are animated. The clock is
// injected so animation is deterministic in tests.
type StateMapper struct {
	reference time.Time
	now       func() time.Time
}

// NewStateMapper returns a mapper whose reference instant is the moment of
// the call, using the wall clock.
func NewStateMapper() StateMapper {
	return StateMapper{reference: time.Now(), now: time.Now}
}

// newStateMapperAt returns a mapper with a fixed reference instant and
// clock, for tests.
func newStateMapperAt(reference time.Time, now func() time.Time) StateMapper {
	return StateMapper{reference: reference, now: now}
}

// State returns the light state for the given mode at the current moment.
func (m StateMapper) State(mode LightMode) LightState {
	return StateForMode(mode, m.now().Sub(m.reference))
}
