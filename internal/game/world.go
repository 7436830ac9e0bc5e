package game

import (
	"math"

	"github.com/vovakirdan/gunjam/internal/combat"
	"github.com/vovakirdan/gunjam/internal/config"
	"github.com/vovakirdan/gunjam/internal/core"
)

// world holds the static colliders of the arena and answers hit queries
// against them and the live actors.
type world struct {
	g      *Game
	arena  config.ArenaConfig
	ground core.Box
	anvil  core.Box
	gates  [2]core.Box // Left, right
}

var _ combat.HitOracle = (*world)(nil)

func newWorld(g *Game, a config.ArenaConfig) *world {
	const overhang = 2 // Gates and ground reach past the edges
	gateW := a.GateWidth + overhang
	return &world{
		g:      g,
		arena:  a,
		ground: core.BoxAt(core.V(0, -1), core.V(2*a.HalfWidth+2*overhang, 2)),
		anvil:  core.BoxAt(core.V(a.AnvilX, 0.5), core.V(a.AnvilWidth, 1)),
		gates: [2]core.Box{
			core.BoxAt(core.V(-a.HalfWidth+a.GateWidth-gateW/2, a.GateHeight/2), core.V(gateW, a.GateHeight)),
			core.BoxAt(core.V(a.HalfWidth-a.GateWidth+gateW/2, a.GateHeight/2), core.V(gateW, a.GateHeight)),
		},
	}
}

// farGate returns the gate an enemy is heading for.
func (w *world) farGate(fromLeft bool) core.Box {
	if fromLeft {
		return w.gates[1]
	}
	return w.gates[0]
}

// CastSegment implements combat.HitOracle.
func (w *world) CastSegment(from, to core.Vec2, mask combat.Mask) (combat.Hit, bool) {
	best := math.Inf(1)
	var hit combat.Hit
	try := func(b core.Box, target any) {
		t, n, ok := b.SegmentHit(from, to)
		if ok && t < best {
			best = t
			hit = combat.Hit{Point: from.Lerp(to, t), Normal: n, Target: target}
		}
	}

	if mask.Has(combat.LayerGround) {
		try(w.ground, nil)
	}
	if mask.Has(combat.LayerEnemy) {
		for _, e := range w.g.enemies {
			if !e.dead {
				try(e.Box(), e)
			}
		}
	}
	if mask.Has(combat.LayerPlayer) && w.g.player != nil {
		try(w.g.player.Box(), w.g.player)
	}
	return hit, !math.IsInf(best, 1)
}

// OverlapRegion implements combat.HitOracle.
func (w *world) OverlapRegion(center, size core.Vec2, mask combat.Mask) bool {
	box := core.BoxAt(center, size)
	if mask.Has(combat.LayerGround) && box.Overlaps(w.ground) {
		return true
	}
	if mask.Has(combat.LayerAnvil) && box.Overlaps(w.anvil) {
		return true
	}
	if mask.Has(combat.LayerGate) && (box.Overlaps(w.gates[0]) || box.Overlaps(w.gates[1])) {
		return true
	}
	if mask.Has(combat.LayerPlayer) && w.g.player != nil && box.Overlaps(w.g.player.Box()) {
		return true
	}
	if mask.Has(combat.LayerEnemy) {
		for _, e := range w.g.enemies {
			if !e.dead && box.Overlaps(e.Box()) {
				return true
			}
		}
	}
	return false
}
