package game

import (
	"math"

	"github.com/vovakirdan/gunjam/internal/combat"
	"github.com/vovakirdan/gunjam/internal/config"
	"github.com/vovakirdan/gunjam/internal/core"
)

// Aim limits in degrees above the horizontal.
const (
	MinPitch = -80.0
	MaxPitch = 85.0
)

// Player is the gunner. It carries the active weapon.
type Player struct {
	Pos    core.Vec2 // Center
	Vel    core.Vec2
	Pitch  float64 // Aim in degrees above the horizontal
	Facing float64 // 1 right, -1 left

	cfg      config.PlayerConfig
	size     core.Vec2
	axis     float64
	moveX    float64
	grounded bool
}

var _ combat.Carrier = (*Player)(nil)

func newPlayer(cfg config.PlayerConfig, pos core.Vec2) *Player {
	return &Player{
		Pos:    pos,
		Facing: 1,
		cfg:    cfg,
		size:   core.V(cfg.Width, cfg.Height),
	}
}

// Box returns the player's collider.
func (p *Player) Box() core.Box {
	return core.BoxAt(p.Pos, p.size)
}

// Grounded reports whether the last physics step found ground underfoot.
func (p *Player) Grounded() bool { return p.grounded }

// AimAngle returns the world heading of the gun in degrees.
func (p *Player) AimAngle() float64 {
	if p.Facing < 0 {
		return 180 - p.Pitch
	}
	return p.Pitch
}

// MuzzlePose implements combat.Carrier.
func (p *Player) MuzzlePose() (core.Vec2, float64) {
	angle := p.AimAngle()
	hand := p.Pos.Add(core.V(0, p.size.Y*0.15))
	return hand.Add(core.FromAngle(angle).Scale(0.6)), angle
}

func (p *Player) aim(delta float64) {
	p.Pitch = core.ClampF(p.Pitch+delta, MinPitch, MaxPitch)
}

func (p *Player) jump() {
	if p.grounded {
		p.Vel.Y = p.cfg.JumpPower
		p.grounded = false
	}
}

func (p *Player) fixedStep(dt float64, w *world) {
	if math.Abs(p.axis) < 0.1 {
		p.moveX = core.MoveTowards(p.moveX, 0, p.cfg.Deceleration)
	} else {
		dir := 1.0
		if p.axis < 0 {
			dir = -1
		}
		p.Facing = dir
		p.moveX = core.MoveTowards(p.moveX, dir*p.cfg.MaxSpeed, p.cfg.Acceleration)
	}

	p.Vel.X = p.moveX
	p.Vel.Y -= p.cfg.Gravity * dt
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))

	half := p.size.Scale(0.5)
	if p.Pos.Y-half.Y < 0 {
		p.Pos.Y = half.Y
		if p.Vel.Y < 0 {
			p.Vel.Y = 0
		}
	}
	limit := w.arena.HalfWidth - half.X
	if p.Pos.X < -limit || p.Pos.X > limit {
		p.Pos.X = core.ClampF(p.Pos.X, -limit, limit)
		p.moveX = 0
	}

	feet := core.V(p.Pos.X, p.Pos.Y-half.Y)
	p.grounded = w.OverlapRegion(feet, core.V(p.size.X*0.9, 0.1), combat.LayerGround)
}
