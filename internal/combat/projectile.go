package combat

import (
	"math/rand"

	"github.com/vovakirdan/gunjam/internal/core"
)

// Projectile is a bullet in flight.
type Projectile struct {
	Pos       core.Vec2
	Origin    core.Vec2
	Angle     float64 // Heading in degrees, deviation included
	Deviation float64 // Deviation applied at launch, in degrees
	Speed     float64
	Lifetime  float64
	FiredAt   float64
	Owner     Handle
	Mask      Mask

	dir  core.Vec2
	dead bool
}

// NewProjectile places an unlaunched projectile at origin facing angleDeg.
func NewProjectile(origin core.Vec2, angleDeg float64) *Projectile {
	return &Projectile{Pos: origin, Origin: origin, Angle: angleDeg}
}

// Launch rotates the projectile once by a uniform deviation in
// [-deviationDeg, deviationDeg] and sets it moving.
func (p *Projectile) Launch(owner Handle, speed, deviationDeg, lifetime float64, mask Mask, now float64, rng *rand.Rand) {
	if deviationDeg > 0 {
		p.Deviation = (rng.Float64()*2 - 1) * deviationDeg
	}
	p.Angle += p.Deviation
	p.dir = core.FromAngle(p.Angle)
	p.Owner = owner
	p.Speed = speed
	p.Lifetime = lifetime
	p.FiredAt = now
	p.Mask = mask
}

// Dir returns the unit heading.
func (p *Projectile) Dir() core.Vec2 { return p.dir }

// Dead reports whether the projectile has hit something or expired.
func (p *Projectile) Dead() bool { return p.dead }

// Kill marks the projectile for removal.
func (p *Projectile) Kill() { p.dead = true }

// Next returns where the projectile will be after dt seconds.
func (p *Projectile) Next(dt float64) core.Vec2 {
	return p.Pos.Add(p.dir.Scale(p.Speed * dt))
}

// FixedStep sweeps the projectile from its position to the next one. On a
// hit it dies where it struck and returns the hit; otherwise it moves.
func (p *Projectile) FixedStep(dt float64, oracle HitOracle) (Hit, bool) {
	if p.dead {
		return Hit{}, false
	}
	next := p.Next(dt)
	hit, ok := oracle.CastSegment(p.Pos, next, p.Mask)
	if ok {
		p.Pos = hit.Point
		p.dead = true
		return hit, true
	}
	p.Pos = next
	return Hit{}, false
}

// Expired reports whether more than Lifetime has passed since launch.
func (p *Projectile) Expired(now float64) bool {
	return now-p.FiredAt > p.Lifetime
}
