// Package repair implements the anvil timing minigame that clears a jam.
//
// While active, a slider sweeps back and forth across [0,1]. Each stop
// inside the tolerance window around the target counts one repair, each
// miss takes one back. Reaching the needed count unjams the linked weapon.
package repair

import (
	"errors"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gunjam/internal/core"
	"github.com/vovakirdan/gunjam/internal/events"
)

// Defaults for Options.
const (
	DefaultTolerance = 0.032
	DefaultRollSpeed = 1.0
	TargetMin        = 0.2
	TargetMax        = 0.8
)

var (
	ErrNoClock  = errors.New("repair: minigame has no clock")
	ErrNoWeapon = errors.New("repair: no weapon to repair")
)

// Clock supplies the current simulated time.
type Clock interface {
	Now() float64
}

// Jammable is the part of a weapon the minigame repairs.
type Jammable interface {
	Jammed() bool
	Unjam()
}

// Outcome is the result of one AttemptStop.
type Outcome int

const (
	OutcomeNone      Outcome = iota // Minigame was not active
	OutcomeCorrect                  // Inside tolerance, more repairs needed
	OutcomeIncorrect                // Outside tolerance
	OutcomeCompleted                // Inside tolerance and the jam is cleared
)

// Options configure a Minigame.
type Options struct {
	Clock     Clock
	Bus       *events.Bus
	Rand      *rand.Rand
	Logger    *log.Logger
	Tolerance float64 // Defaults to DefaultTolerance
	RollSpeed float64 // Defaults to DefaultRollSpeed
}

// Minigame is the single repair minigame of a game.
type Minigame struct {
	clock     Clock
	bus       *events.Bus
	rng       *rand.Rand
	logger    *log.Logger
	tolerance float64
	rollSpeed float64

	active      bool
	needed      int
	current     int
	target      float64
	rolling     float64
	activatedAt float64
	weapon      Jammable
}

// New creates an inactive minigame.
func New(opts Options) (*Minigame, error) {
	if opts.Clock == nil {
		return nil, ErrNoClock
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.RollSpeed <= 0 {
		opts.RollSpeed = DefaultRollSpeed
	}
	return &Minigame{
		clock:     opts.Clock,
		bus:       opts.Bus,
		rng:       opts.Rand,
		logger:    opts.Logger,
		tolerance: opts.Tolerance,
		rollSpeed: opts.RollSpeed,
		target:    0.5,
	}, nil
}

// Activate starts the minigame for weapon with a fresh counter and target.
// Activating while already active restarts it.
func (m *Minigame) Activate(needed int, weapon Jammable) error {
	if weapon == nil {
		return ErrNoWeapon
	}
	if needed < 1 {
		needed = 1
	}
	m.active = true
	m.needed = needed
	m.current = 0
	m.weapon = weapon
	m.activatedAt = m.clock.Now()
	m.rolling = 0
	m.Randomize()

	m.logger.Debug("repair started", "needed", needed)
	m.bus.Emit(events.RepairStarted{Needed: needed})
	return nil
}

// Randomize picks a new target in [TargetMin, TargetMax).
func (m *Minigame) Randomize() {
	m.target = TargetMin + m.rng.Float64()*(TargetMax-TargetMin)
}

// Frame updates the slider position for time now.
func (m *Minigame) Frame(now float64) {
	if !m.active {
		return
	}
	m.rolling = core.PingPong((now-m.activatedAt)*m.rollSpeed, 1)
}

// AttemptStop stops the slider where it is now and scores the attempt.
func (m *Minigame) AttemptStop() Outcome {
	if !m.active {
		return OutcomeNone
	}
	m.Frame(m.clock.Now())

	if math.Abs(m.rolling-m.target) <= m.tolerance {
		return m.correct()
	}
	return m.incorrect()
}

func (m *Minigame) correct() Outcome {
	pitch := m.Pitch()
	m.Randomize()
	if m.current < m.needed {
		m.current++
	}
	m.bus.Emit(events.RepairedCorrectly{Current: m.current, Needed: m.needed, Pitch: pitch})

	if m.current < m.needed {
		return OutcomeCorrect
	}

	weapon := m.weapon
	m.Hide()
	if weapon.Jammed() {
		weapon.Unjam()
	}
	m.logger.Debug("repair completed")
	m.bus.Emit(events.RepairCompleted{})
	return OutcomeCompleted
}

func (m *Minigame) incorrect() Outcome {
	m.Randomize()
	if m.current > 0 {
		m.current--
	}
	m.bus.Emit(events.RepairedIncorrectly{Current: m.current, Needed: m.needed})
	return OutcomeIncorrect
}

// Hide deactivates the minigame without touching the weapon.
func (m *Minigame) Hide() {
	m.active = false
	m.weapon = nil
}

// Pitch is the feedback pitch for the next correct stop: rising with each
// repair, and exactly 1 when that stop completes the repair.
func (m *Minigame) Pitch() float64 {
	if m.current+1 >= m.needed {
		return 1
	}
	return core.ClampF(0.8+0.1*float64(m.current), 0.8, 1.1)
}

func (m *Minigame) Active() bool       { return m.active }
func (m *Minigame) Needed() int        { return m.needed }
func (m *Minigame) Current() int       { return m.current }
func (m *Minigame) Target() float64    { return m.target }
func (m *Minigame) Rolling() float64   { return m.rolling }
func (m *Minigame) Tolerance() float64 { return m.tolerance }
