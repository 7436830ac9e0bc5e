package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/gunjam/internal/core"
	"github.com/vovakirdan/gunjam/internal/events"
)

// Script names a built-in autopilot behaviour.
type Script string

const (
	ScriptIdle   Script = "idle"   // Stands still
	ScriptTurret Script = "turret" // Holds fire and sweeps the aim; never repairs
	ScriptDefend Script = "defend" // Tracks the nearest enemy and repairs at the anvil
)

// Scripts lists the built-in scripts.
var Scripts = []Script{ScriptIdle, ScriptTurret, ScriptDefend}

// ErrUnknownScript is returned by ParseScript for unknown names.
var ErrUnknownScript = errors.New("game: unknown script")

// ParseScript converts a name to a Script. Empty means defend.
func ParseScript(s string) (Script, error) {
	if s == "" {
		return ScriptDefend, nil
	}
	for _, sc := range Scripts {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScript, s)
}

const (
	sweepTop    = 40.0 // Turret sweep range in degrees
	sweepBottom = 0.0
	aimSlack    = 3.0  // Degrees of aim error before correcting
	fireCone    = 12.0 // Degrees of aim error the defender still fires at
	repairSlack = 0.8  // Fraction of the tolerance the marker must be within
)

// Autopilot produces input from game state for headless runs.
type Autopilot struct {
	script  Script
	sweepUp bool
	leaving bool
	picks   int
}

// NewAutopilot creates an autopilot running script.
func NewAutopilot(script Script) *Autopilot {
	return &Autopilot{script: script, sweepUp: true}
}

// Next returns the input for the coming frame.
func (a *Autopilot) Next(g *Game) core.InputFrame {
	in := core.NewInputFrame()
	st := g.State()
	if st.GameOver || st.Paused || a.script == ScriptIdle {
		return in
	}

	if st.Upgrading {
		if n := len(g.Upgrades().Eligible()); n > 0 {
			in.Set(core.ActionChoice1 + core.Action(a.picks%n))
			a.picks++
		}
		return in
	}

	if r := g.Repair(); r.Active() {
		if math.Abs(r.Rolling()-r.Target()) < r.Tolerance()*repairSlack {
			in.Set(core.ActionRepair)
		}
		return in
	}

	switch a.script {
	case ScriptTurret:
		a.sweep(g.Player(), &in)
		in.Hold(core.ActionFire)
	case ScriptDefend:
		if w := g.Weapon(); w != nil && w.Jammed() {
			a.seekAnvil(g, &in)
			return in
		}
		a.leaving = false
		a.track(g, &in)
	}
	return in
}

func (a *Autopilot) sweep(p *Player, in *core.InputFrame) {
	if a.sweepUp && p.Pitch >= sweepTop {
		a.sweepUp = false
	} else if !a.sweepUp && p.Pitch <= sweepBottom {
		a.sweepUp = true
	}
	if a.sweepUp {
		in.Hold(core.ActionUp)
	} else {
		in.Hold(core.ActionDown)
	}
}

// seekAnvil walks onto the anvil. The anvil only reacts to entry, so a
// gunner already standing on it steps off first.
func (a *Autopilot) seekAnvil(g *Game, in *core.InputFrame) {
	p := g.Player()
	anvil := g.world.anvil
	reach := anvil.Half.X + p.size.X/2
	dx := anvil.Center.X - p.Pos.X

	if g.inAnvil {
		a.leaving = true
	}
	if a.leaving {
		if math.Abs(dx) > reach+0.5 {
			a.leaving = false
		} else {
			in.Hold(walkAway(dx))
			return
		}
	}
	in.Hold(walkToward(dx))
}

// track turns toward the nearest live enemy, aims at it and fires.
func (a *Autopilot) track(g *Game, in *core.InputFrame) {
	p := g.Player()
	target := nearestEnemy(g.Enemies(), p.Pos)
	if target == nil {
		return
	}

	d := target.Pos.Sub(p.Pos)
	if d.X*p.Facing < 0 {
		in.Hold(walkToward(d.X))
	}

	want := core.ClampF(math.Atan2(d.Y, math.Abs(d.X))*180/math.Pi, MinPitch, MaxPitch)
	switch {
	case p.Pitch < want-aimSlack:
		in.Hold(core.ActionUp)
	case p.Pitch > want+aimSlack:
		in.Hold(core.ActionDown)
	}
	if math.Abs(p.Pitch-want) < fireCone && d.X*p.Facing >= 0 {
		in.Hold(core.ActionFire)
	}
}

func nearestEnemy(enemies []*Enemy, from core.Vec2) *Enemy {
	var best *Enemy
	bestDist := math.Inf(1)
	for _, e := range enemies {
		if e.Dead() {
			continue
		}
		if d := e.Pos.Dist(from); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

func walkToward(dx float64) core.Action {
	if dx < 0 {
		return core.ActionLeft
	}
	return core.ActionRight
}

func walkAway(dx float64) core.Action {
	if dx < 0 {
		return core.ActionRight
	}
	return core.ActionLeft
}

// Summary reports a headless run.
type Summary struct {
	Ticks          int
	Elapsed        float64
	Score          int
	HighScore      int
	NewHighScore   bool
	Round          int
	Kills          int
	Shots          int
	Jams           int
	Repairs        int
	FailedRepairs  int
	Upgrades       int
	BossesSpawned  int
	GameOver       bool
	UpgradeHistory []string
}

// Simulate plays g with the autopilot until game over or maxTicks frames.
func Simulate(g *Game, pilot *Autopilot, maxTicks int) Summary {
	var sum Summary
	var subs events.Scope
	defer subs.Close()

	bus := g.Bus()
	subs.Add(events.On(bus, func(events.Fired) { sum.Shots++ }))
	subs.Add(events.On(bus, func(events.Jammed) { sum.Jams++ }))
	subs.Add(events.On(bus, func(events.Unjammed) { sum.Repairs++ }))
	subs.Add(events.On(bus, func(events.RepairedIncorrectly) { sum.FailedRepairs++ }))
	subs.Add(events.On(bus, func(e events.BossWave) { sum.BossesSpawned += e.Count }))
	subs.Add(events.On(bus, func(events.NewHighScore) { sum.NewHighScore = true }))
	subs.Add(events.On(bus, func(e events.UpgradeApplied) {
		sum.Upgrades++
		sum.UpgradeHistory = append(sum.UpgradeHistory, e.Track)
	}))

	for sum.Ticks < maxTicks {
		st := g.Step(pilot.Next(g)).State
		sum.Ticks++
		if st.GameOver {
			break
		}
	}

	st := g.State()
	sum.Elapsed = st.Elapsed
	sum.Score = st.Score
	sum.HighScore = st.HighScore
	sum.Round = st.Round
	sum.Kills = st.Kills
	sum.GameOver = st.GameOver
	return sum
}
