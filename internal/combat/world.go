package combat

import "github.com/vovakirdan/gunjam/internal/core"

// Mask is a set of collision layers.
type Mask uint32

// Collision layers.
const (
	LayerGround Mask = 1 << iota
	LayerEnemy
	LayerPlayer
	LayerAnvil
	LayerGate
)

// Has reports whether m includes any layer in l.
func (m Mask) Has(l Mask) bool {
	return m&l != 0
}

// Hit is the first contact found by a segment cast.
type Hit struct {
	Point  core.Vec2
	Normal core.Vec2
	Target any // The thing that was hit; may implement Damageable
}

// HitOracle answers collision queries against the arena.
type HitOracle interface {
	// CastSegment returns the first hit along from->to among mask layers.
	CastSegment(from, to core.Vec2, mask Mask) (Hit, bool)
	// OverlapRegion reports whether any mask collider overlaps the box.
	OverlapRegion(center, size core.Vec2, mask Mask) bool
}

// Damageable is anything a projectile can hurt.
type Damageable interface {
	TakeDamage(amount float64)
}

// Carrier is the entity holding a weapon.
type Carrier interface {
	// MuzzlePose returns where shots leave the gun and their heading in degrees.
	MuzzlePose() (origin core.Vec2, angleDeg float64)
}
