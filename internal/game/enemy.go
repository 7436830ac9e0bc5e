package game

import (
	"github.com/vovakirdan/gunjam/internal/combat"
	"github.com/vovakirdan/gunjam/internal/core"
	"github.com/vovakirdan/gunjam/internal/waves"
)

// bossScore is the score value from which a kill forces an upgrade offer.
const bossScore = 100

// Enemy is a live demon in the arena.
type Enemy struct {
	ID       waves.ID
	Template waves.Template
	Pos      core.Vec2 // Center
	Vel      core.Vec2
	Health   float64
	FromLeft bool

	size  core.Vec2
	dead  bool
	hitAt float64
	game  *Game
}

var _ combat.Damageable = (*Enemy)(nil)

func enemySize(tpl waves.Template) core.Vec2 {
	switch {
	case tpl.Boss:
		return core.V(2, 3)
	case tpl.Category == waves.CategoryFlying:
		return core.V(1, 1)
	default:
		return core.V(1, 1.5)
	}
}

// Box returns the enemy's collider.
func (e *Enemy) Box() core.Box {
	return core.BoxAt(e.Pos, e.size)
}

// Dead reports whether the enemy has been killed.
func (e *Enemy) Dead() bool { return e.dead }

// Flying reports whether the enemy ignores gravity and homes on the player.
func (e *Enemy) Flying() bool { return e.Template.Category == waves.CategoryFlying }

// TakeDamage implements combat.Damageable. Damage to a dead enemy is ignored.
func (e *Enemy) TakeDamage(amount float64) {
	if e.dead {
		return
	}
	e.Health -= amount
	e.hitAt = e.game.sched.Now()
	if e.Health <= 0 {
		e.dead = true
		e.game.kill(e)
	}
}

// Flashing reports whether the enemy was hit within the last 0.2s.
func (e *Enemy) Flashing(now float64) bool {
	return e.hitAt > 0 && now-e.hitAt < 0.2
}

func (e *Enemy) fixedStep(dt float64, target core.Vec2, gravity float64) {
	if e.dead {
		return
	}
	if e.Flying() {
		dir := target.Sub(e.Pos).Normalized()
		e.Pos = e.Pos.Add(dir.Scale(e.Template.Speed * dt))
		return
	}

	dir := -1.0
	if e.FromLeft {
		dir = 1
	}
	e.Vel.X = dir * e.Template.Speed
	e.Vel.Y -= gravity * dt
	e.Pos = e.Pos.Add(e.Vel.Scale(dt))

	if half := e.size.Y / 2; e.Pos.Y-half < 0 {
		e.Pos.Y = half
		e.Vel.Y = 0
	}
}
