// Package waves runs the round-based enemy spawner.
//
// Each round spawns round*PerRound enemies on a fixed interval from either
// side of the arena. A round ends once everything has spawned and the live
// population is empty; the next round spawns faster, may unlock another
// enemy tier, and every BossEvery rounds brings a growing number of bosses.
package waves

import (
	"errors"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gunjam/internal/core"
	"github.com/vovakirdan/gunjam/internal/events"
)

var (
	ErrNoTemplates = errors.New("waves: no enemy templates")
	ErrNoFactory   = errors.New("waves: no enemy factory")
)

// Category decides where an enemy appears and how it moves.
type Category int

const (
	CategoryGround Category = iota // Walks in from a side
	CategoryFlying                 // Flies in high above a side
	CategoryTop                    // Drops in from above the middle
)

func (c Category) String() string {
	switch c {
	case CategoryGround:
		return "ground"
	case CategoryFlying:
		return "flying"
	case CategoryTop:
		return "top"
	default:
		return "unknown"
	}
}

// Template describes one enemy type.
type Template struct {
	Name     string
	Category Category
	Health   float64
	Speed    float64
	Score    int
	Boss     bool
}

// Factory creates enemies in the world.
type Factory interface {
	SpawnEnemy(tpl Template, pos core.Vec2, fromLeft bool) ID
}

// Options configure a Spawner. Zero numeric fields take the defaults noted.
type Options struct {
	Templates []Template // Ordered by tier; required
	Boss      *Template  // Nil disables boss waves

	Left, Right core.Vec2 // Spawn points
	AreaHeight  float64   // Ground spawn band height (2)

	Interval    float64 // Starting spawn interval (1)
	Adjustment  float64 // Interval decrease per round; zero keeps it fixed
	MinInterval float64 // Interval floor (0.2)
	PerRound    int     // Enemies per round number (5)
	TierEvery   int     // Unlock a tier on rounds divisible by this (2)
	BossEvery   int     // Boss rounds (5)

	FlyMin, FlyMax float64 // Flying lift above the spawn point (8, 10)
	TopY           float64 // Altitude of top and boss spawns (16)
	TopSpread      float64 // Half width of top and boss spawns (2)

	Factory    Factory     // Required
	Population *Population // Created when nil
	Bus        *events.Bus
	Rand       *rand.Rand
	Logger     *log.Logger
}

func (o *Options) defaults() {
	setF := func(v *float64, d float64) {
		if *v <= 0 {
			*v = d
		}
	}
	setI := func(v *int, d int) {
		if *v <= 0 {
			*v = d
		}
	}
	setF(&o.AreaHeight, 2)
	setF(&o.Interval, 1)
	setF(&o.MinInterval, 0.2)
	setI(&o.PerRound, 5)
	setI(&o.TierEvery, 2)
	setI(&o.BossEvery, 5)
	setF(&o.FlyMin, 8)
	setF(&o.FlyMax, 10)
	setF(&o.TopY, 16)
	setF(&o.TopSpread, 2)
	if o.Adjustment < 0 {
		o.Adjustment = 0
	}
	if o.MinInterval > o.Interval {
		o.MinInterval = o.Interval
	}
	if o.FlyMax < o.FlyMin {
		o.FlyMax = o.FlyMin
	}
	if o.Population == nil {
		o.Population = NewPopulation()
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(1))
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Spawner is the round state machine.
type Spawner struct {
	opts Options

	round     int
	interval  float64
	toSpawn   int
	spawned   int
	tiers     int
	bossCount int
	timer     float64
}

// New creates a spawner at the start of round 1.
func New(opts Options) (*Spawner, error) {
	if len(opts.Templates) == 0 {
		return nil, ErrNoTemplates
	}
	if opts.Factory == nil {
		return nil, ErrNoFactory
	}
	opts.defaults()

	s := &Spawner{
		opts:      opts,
		round:     1,
		interval:  opts.Interval,
		tiers:     1,
		bossCount: 1,
	}
	s.startRound()
	return s, nil
}

func (s *Spawner) startRound() {
	s.spawned = 0
	s.toSpawn = s.round * s.opts.PerRound
	s.opts.Logger.Debug("round started", "round", s.round, "to_spawn", s.toSpawn, "interval", s.interval)
}

// Tick advances the spawn timer by dt, spawning at most one enemy, then
// checks whether the round is over.
func (s *Spawner) Tick(dt float64) {
	s.timer += dt
	if s.timer >= s.interval && s.spawned < s.toSpawn {
		s.spawnOne()
		s.timer -= s.interval
	}
	s.checkRound()
}

func (s *Spawner) checkRound() {
	if s.spawned >= s.toSpawn && s.opts.Population.Len() == 0 {
		s.nextRound()
	}
}

func (s *Spawner) nextRound() {
	s.round++
	s.opts.Logger.Info("round completed", "round", s.round-1)
	s.opts.Bus.Emit(events.RoundCompleted{Round: s.round})

	s.interval = math.Max(s.interval-s.opts.Adjustment, s.opts.MinInterval)

	if s.round%s.opts.TierEvery == 0 && s.tiers < len(s.opts.Templates) {
		s.tiers++
		s.opts.Logger.Debug("enemy tier unlocked", "tiers", s.tiers)
	}

	if s.round%s.opts.BossEvery == 0 && s.opts.Boss != nil {
		for i := 0; i < s.bossCount; i++ {
			s.spawnBoss()
		}
		s.opts.Bus.Emit(events.BossWave{Round: s.round, Count: s.bossCount})
		s.bossCount++
	}

	s.startRound()
}

// uniform returns a value in [lo, hi).
func (s *Spawner) uniform(lo, hi float64) float64 {
	return lo + s.opts.Rand.Float64()*(hi-lo)
}

// SpawnPosition picks where an enemy of category c appears.
func (s *Spawner) SpawnPosition(c Category, fromLeft bool) core.Vec2 {
	pos := s.opts.Right
	if fromLeft {
		pos = s.opts.Left
	}
	switch c {
	case CategoryFlying:
		pos.Y += s.uniform(s.opts.FlyMin, s.opts.FlyMax)
	case CategoryTop:
		pos.X = s.uniform(-s.opts.TopSpread, s.opts.TopSpread)
		pos.Y = s.opts.TopY
	default:
		h := s.opts.AreaHeight / 2
		pos.Y += s.uniform(-h, h)
	}
	return pos
}

func (s *Spawner) spawnOne() {
	fromLeft := s.opts.Rand.Float64() < 0.5
	tpl := s.opts.Templates[s.opts.Rand.Intn(s.tiers)]
	pos := s.SpawnPosition(tpl.Category, fromLeft)

	id := s.opts.Factory.SpawnEnemy(tpl, pos, fromLeft)
	s.opts.Population.Add(id)
	s.spawned++
	s.opts.Bus.Emit(events.EnemySpawned{Name: tpl.Name})
}

func (s *Spawner) spawnBoss() {
	tpl := *s.opts.Boss
	tpl.Boss = true
	pos := core.V(s.uniform(-s.opts.TopSpread, s.opts.TopSpread), s.opts.TopY)
	fromLeft := pos.X < 0

	id := s.opts.Factory.SpawnEnemy(tpl, pos, fromLeft)
	s.opts.Population.Add(id)
	s.opts.Bus.Emit(events.EnemySpawned{Name: tpl.Name, Boss: true})
}

// Population returns the live enemy registry.
func (s *Spawner) Population() *Population { return s.opts.Population }

func (s *Spawner) Round() int        { return s.round }
func (s *Spawner) Interval() float64 { return s.interval }
func (s *Spawner) ToSpawn() int      { return s.toSpawn }
func (s *Spawner) Spawned() int      { return s.spawned }
func (s *Spawner) Tiers() int        { return s.tiers }
func (s *Spawner) BossCount() int    { return s.bossCount }
