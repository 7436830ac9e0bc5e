// Package upgrade turns score milestones into weapon upgrade offers.
package upgrade

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gunjam/internal/combat"
	"github.com/vovakirdan/gunjam/internal/events"
)

// ErrNoWeaponSource is returned when the system has nothing to upgrade.
var ErrNoWeaponSource = errors.New("upgrade: no weapon source")

// eps absorbs float drift when comparing a stepped multiplier to its limit.
const eps = 1e-9

// Track is one upgradeable weapon stat.
type Track int

const (
	TrackReloadTime Track = iota
	TrackDamage
	TrackJamChance
)

// Tracks lists every track in card order.
var Tracks = []Track{TrackReloadTime, TrackDamage, TrackJamChance}

func (t Track) String() string {
	switch t {
	case TrackReloadTime:
		return "reload"
	case TrackDamage:
		return "damage"
	case TrackJamChance:
		return "jam"
	default:
		return "unknown"
	}
}

// Rules are the upgrade steps and limits.
type Rules struct {
	PointsPerUpgrade int

	ReloadStep  float64 // Subtracted from the reload multiplier
	ReloadFloor float64
	DamageStep  float64 // Added to the damage multiplier
	DamageCeil  float64
	JamStep     float64 // Subtracted from the jam multiplier
	JamFloor    float64
}

// DefaultRules returns the stock upgrade table.
func DefaultRules() Rules {
	return Rules{
		PointsPerUpgrade: 100,
		ReloadStep:       0.2,
		ReloadFloor:      0.25,
		DamageStep:       0.15,
		DamageCeil:       2.0,
		JamStep:          0.1,
		JamFloor:         0.1,
	}
}

// WeaponSource yields the weapon upgrades apply to.
type WeaponSource interface {
	Active() *combat.Weapon
}

// System tracks milestones and open upgrade offers.
type System struct {
	rules  Rules
	source WeaponSource
	bus    *events.Bus
	logger *log.Logger

	milestone int // Milestones already crossed
	pending   int // Offers waiting for a choice
}

// New creates an upgrade system. Bus and logger may be nil.
func New(rules Rules, source WeaponSource, bus *events.Bus, logger *log.Logger) (*System, error) {
	if source == nil {
		return nil, ErrNoWeaponSource
	}
	if rules.PointsPerUpgrade <= 0 {
		rules.PointsPerUpgrade = DefaultRules().PointsPerUpgrade
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &System{rules: rules, source: source, bus: bus, logger: logger}, nil
}

// Rules returns the active rules.
func (s *System) Rules() Rules { return s.rules }

// OnScore reacts to a new score total. Every milestone crossed since the
// last call opens one offer, so a single big kill can open several.
func (s *System) OnScore(total int) {
	reached := total / s.rules.PointsPerUpgrade
	for s.milestone < reached {
		s.milestone++
		s.offer()
	}
}

// Force opens an offer regardless of score. It reports whether an offer
// was opened.
func (s *System) Force() bool {
	return s.offer()
}

func (s *System) offer() bool {
	choices := s.Eligible()
	if len(choices) == 0 {
		s.logger.Debug("upgrade skipped, nothing left to upgrade")
		return false
	}
	s.pending++
	names := make([]string, len(choices))
	for i, c := range choices {
		names[i] = c.String()
	}
	s.bus.Emit(events.UpgradeOffered{Choices: names})
	return true
}

// Pending reports whether an offer is waiting. Gameplay pauses meanwhile.
func (s *System) Pending() bool {
	return s.pending > 0
}

// Offers returns the number of open offers.
func (s *System) Offers() int { return s.pending }

// Eligible returns the tracks whose next step stays within its limit.
// It is empty when there is no active weapon.
func (s *System) Eligible() []Track {
	w := s.source.Active()
	if w == nil {
		return nil
	}
	var out []Track
	for _, t := range Tracks {
		if s.canApply(w.Modifiers(), t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *System) canApply(m combat.Modifiers, t Track) bool {
	switch t {
	case TrackReloadTime:
		return m.ReloadTime-s.rules.ReloadStep >= s.rules.ReloadFloor-eps
	case TrackDamage:
		return m.Damage+s.rules.DamageStep <= s.rules.DamageCeil+eps
	case TrackJamChance:
		return m.JamChance-s.rules.JamStep >= s.rules.JamFloor-eps
	default:
		return false
	}
}

// Apply spends the open offer on track. It returns false, changing nothing,
// when no offer is open or the track is maxed.
func (s *System) Apply(t Track) bool {
	if s.pending == 0 {
		return false
	}
	w := s.source.Active()
	if w == nil {
		s.pending = 0
		return false
	}
	m := w.Modifiers()
	if !s.canApply(m, t) {
		return false
	}

	var value float64
	switch t {
	case TrackReloadTime:
		m.ReloadTime -= s.rules.ReloadStep
		value = m.ReloadTime
	case TrackDamage:
		m.Damage += s.rules.DamageStep
		value = m.Damage
	case TrackJamChance:
		m.JamChance -= s.rules.JamStep
		value = m.JamChance
	}
	w.SetModifiers(m)
	s.pending--

	if s.pending > 0 && len(s.Eligible()) == 0 {
		s.pending = 0
	}

	s.logger.Info("upgrade applied", "track", t, "value", value)
	s.bus.Emit(events.UpgradeApplied{Track: t.String(), Value: value})
	return true
}

// Reset forgets milestones and open offers.
func (s *System) Reset() {
	s.milestone = 0
	s.pending = 0
}
