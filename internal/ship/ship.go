// Package ship maintains the authoritative ship state as a packed bit field
// and classifies it into discrete status levels per ship attribute.
//
// Bits in the low half of the word mirror flags reported by the game's
// status snapshot file. Bits in the high half are derived from the journal
// event stream and are never touched by snapshot updates.
package ship

import "x52lc-go/internal/journal"

// Status flags reported by the game in the status snapshot.
// See: https://elite-journal.readthedocs.io/en/latest/Status%20File/
const (
	Docked              uint64 = 1 << 0
	Landed              uint64 = 1 << 1
	LandingGearDeployed uint64 = 1 << 2
	Supercruise         uint64 = 1 << 4
	HardpointsDeployed  uint64 = 1 << 6
	ExternalLightsOn    uint64 = 1 << 8
	CargoScoopDeployed  uint64 = 1 << 9
	SilentRunning       uint64 = 1 << 10
	FsdMassLocked       uint64 = 1 << 16
	FsdCharging         uint64 = 1 << 17
	FsdCooldown         uint64 = 1 << 18
	Overheating         uint64 = 1 << 20
)

// Flags derived from journal events. These live in the high half of the
// word so they can never collide with snapshot-reported flags.
const (
	DockingGranted uint64 = 1 << 32
	Speeding       uint64 = 1 << 33
)

// statusFilter masks a raw snapshot value down to the supported flags so
// that unsupported bits never register as a change.
const statusFilter = Docked |
	Landed |
	LandingGearDeployed |
	Supercruise |
	HardpointsDeployed |
	ExternalLightsOn |
	CargoScoopDeployed |
	SilentRunning |
	FsdMassLocked |
	FsdCharging |
	FsdCooldown |
	Overheating

// Attribute is a ship subsystem that a status level can be derived for.
type Attribute int

const (
	CargoScoopAttribute Attribute = iota
	ExternalLightsAttribute
	FrameShiftDriveAttribute
	LandingGearAttribute
	HeatSinkAttribute
	SilentRunningAttribute
	HardpointsAttribute
	BoostAttribute
	ThrottleAttribute

	attributeCount
)

// String returns the attribute name for logging.
func (a Attribute) String() string {
	switch a {
	case CargoScoopAttribute:
		return "cargo_scoop"
	case ExternalLightsAttribute:
		return "external_lights"
	case FrameShiftDriveAttribute:
		return "frame_shift_drive"
	case LandingGearAttribute:
		return "landing_gear"
	case HeatSinkAttribute:
		return "heat_sink"
	case SilentRunningAttribute:
		return "silent_running"
	case HardpointsAttribute:
		return "hardpoints"
	case BoostAttribute:
		return "boost"
	case ThrottleAttribute:
		return "throttle"
	default:
		return "unknown"
	}
}

// StatusLevel classifies an attribute's current condition. Levels are
// ordered by severity; the ordering is used to pick the most severe matched
// condition for an attribute and later to resolve conflicts when several
// attributes share one light.
type StatusLevel int

const (
	Inactive StatusLevel = iota
	Active
	Blocked
	Alert
)

// String returns the level name for logging.
func (l StatusLevel) String() string {
	switch l {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	case Blocked:
		return "blocked"
	case Alert:
		return "alert"
	default:
		return "unknown"
	}
}

// Status associates an attribute with its current status level.
type Status struct {
	Attribute Attribute
	Level     StatusLevel
}

// GlobalStatus is a coarse classification of the whole ship that selects
// which light mode table is in effect.
type GlobalStatus int

const (
	GlobalNormal GlobalStatus = iota
	GlobalHardpointsDeployed
)

// String returns the global status name for logging.
func (g GlobalStatus) String() string {
	switch g {
	case GlobalNormal:
		return "normal"
	case GlobalHardpointsDeployed:
		return "hardpoints_deployed"
	default:
		return "unknown"
	}
}

// rule maps a bit condition to the status level it signifies. A rule with
// anyOf set matches when at least one of its bits is set; otherwise it
// matches when all of its bits are set.
type rule struct {
	bits  uint64
	anyOf bool
	level StatusLevel
}

func allOf(bits uint64, level StatusLevel) rule {
	return rule{bits: bits, level: level}
}

func anyOf(bits uint64, level StatusLevel) rule {
	return rule{bits: bits, anyOf: true, level: level}
}

func (r rule) matches(flags uint64) bool {
	if r.anyOf {
		return flags&r.bits != 0
	}
	return flags&r.bits == r.bits
}

// attributeRules holds the ordered condition list per attribute. Evaluation
// is first-match-wins, so more severe conditions must be listed before
// weaker conditions that would also match. The exact ordering is domain
// knowledge, not user configuration.
var attributeRules = [attributeCount][]rule{
	CargoScoopAttribute: {
		allOf(CargoScoopDeployed, Active),
	},
	ExternalLightsAttribute: {
		allOf(ExternalLightsOn, Active),
	},
	FrameShiftDriveAttribute: {
		allOf(FsdCharging|Overheating, Alert),
		anyOf(FsdMassLocked|FsdCooldown|LandingGearDeployed|CargoScoopDeployed|HardpointsDeployed, Blocked),
		allOf(FsdCharging, Active),
		allOf(Supercruise, Active),
	},
	LandingGearAttribute: {
		allOf(LandingGearDeployed, Active),
		// Docking clearance held but gear still up.
		allOf(DockingGranted, Alert),
	},
	HeatSinkAttribute: {
		allOf(Overheating, Alert),
		allOf(SilentRunning, Active),
	},
	SilentRunningAttribute: {
		allOf(SilentRunning|Overheating, Alert),
		allOf(SilentRunning, Active),
	},
	HardpointsAttribute: {
		allOf(HardpointsDeployed, Active),
	},
	BoostAttribute: {
		anyOf(LandingGearDeployed|CargoScoopDeployed, Blocked),
	},
	ThrottleAttribute: {
		allOf(Speeding, Alert),
		allOf(DockingGranted, Active),
	},
}

// Ship owns the packed status bit field. It is mutated only by the single
// event-processing loop, so it carries no locking.
type Ship struct {
	flags uint64
}

// NewShip returns a ship with no flags set.
func NewShip() *Ship {
	return &Ship{}
}

// UpdateStatus replaces the snapshot-reported half of the bit field with the
// given raw flags, masked to the supported set. It returns false without
// mutating anything when the masked value matches the current state, so
// repeated identical snapshots never trigger downstream work. Derived bits
// are preserved untouched.
func (s *Ship) UpdateStatus(rawFlags uint64) bool {
	updated := rawFlags & statusFilter
	if s.flags&statusFilter == updated {
		return false
	}

	s.flags = s.flags&^statusFilter | updated
	return true
}

// ApplyJournalEvent sets or clears the derived bit the given event governs.
// Events of unknown kind change nothing.
func (s *Ship) ApplyJournalEvent(event journal.Event) {
	switch event.Kind {
	case journal.KindDockingGranted:
		s.flags |= DockingGranted
	case journal.KindDocked, journal.KindDockingCancelled, journal.KindDockingTimeout:
		s.flags &^= DockingGranted
	case journal.KindLegalStateChanged:
		if event.LegalState == journal.LegalStateSpeeding {
			s.flags |= Speeding
		} else {
			s.flags &^= Speeding
		}
	}
}

// Statuses returns one Status per attribute giving its current level,
// evaluated against the current bit field. The call is side-effect free.
func (s *Ship) Statuses() []Status {
	statuses := make([]Status, 0, attributeCount)

	for attribute := Attribute(0); attribute < attributeCount; attribute++ {
		statuses = append(statuses, Status{
			Attribute: attribute,
			Level:     s.levelFor(attribute),
		})
	}

	return statuses
}

// GlobalStatus classifies the whole ship from its dominant flags,
// independent of the per-attribute rules.
func (s *Ship) GlobalStatus() GlobalStatus {
	if s.flags&HardpointsDeployed != 0 {
		return GlobalHardpointsDeployed
	}
	return GlobalNormal
}

func (s *Ship) levelFor(attribute Attribute) StatusLevel {
	for _, r := range attributeRules[attribute] {
		if r.matches(s.flags) {
			return r.level
		}
	}
	return Inactive
}
