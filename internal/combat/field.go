package combat

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gunjam/internal/core"
	"github.com/vovakirdan/gunjam/internal/events"
	"github.com/vovakirdan/gunjam/internal/sched"
)

// FieldOptions are the collaborators a Field needs.
type FieldOptions struct {
	Oracle    HitOracle
	Scheduler *sched.Scheduler
	Bus       *events.Bus // Optional
	Rand      *rand.Rand  // Optional; seeded from 1 when nil
	Logger    *log.Logger // Optional
}

// Field owns the live weapons and every projectile in flight.
type Field struct {
	oracle  HitOracle
	sched   *sched.Scheduler
	bus     *events.Bus
	rng     *rand.Rand
	logger  *log.Logger
	weapons Arena[*Weapon]
	shots   []*Projectile
}

// NewField creates a field. Oracle and Scheduler are required.
func NewField(opts FieldOptions) (*Field, error) {
	if opts.Oracle == nil {
		return nil, ErrNoOracle
	}
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Field{
		oracle: opts.Oracle,
		sched:  opts.Scheduler,
		bus:    opts.Bus,
		rng:    opts.Rand,
		logger: opts.Logger,
	}, nil
}

// NewWeapon registers a fully loaded weapon held by carrier.
func (f *Field) NewWeapon(stats Stats, carrier Carrier) (*Weapon, error) {
	if carrier == nil {
		return nil, ErrNoCarrier
	}
	if err := stats.Validate(); err != nil {
		return nil, err
	}
	w := &Weapon{
		stats:     stats,
		mods:      NoModifiers(),
		carrier:   carrier,
		field:     f,
		logger:    f.logger.With("gun", stats.Name),
		ammo:      stats.MaxAmmo,
		lastFire:  math.Inf(-1),
		lastUnjam: math.Inf(-1),
	}
	w.handle = f.weapons.Insert(w)
	return w, nil
}

// Weapon resolves a handle. Stale handles return false.
func (f *Field) Weapon(h Handle) (*Weapon, bool) {
	return f.weapons.Get(h)
}

// Weapons returns the number of live weapons.
func (f *Field) Weapons() int {
	return f.weapons.Len()
}

// Now returns the field's clock.
func (f *Field) Now() float64 {
	return f.sched.Now()
}

func (f *Field) launch(w *Weapon, origin core.Vec2, angle float64) *Projectile {
	p := NewProjectile(origin, angle)
	p.Launch(w.handle, w.stats.BulletSpeed, w.stats.BulletSpread, w.stats.BulletLifetime, w.stats.HitMask, f.sched.Now(), f.rng)
	f.shots = append(f.shots, p)
	return p
}

// FixedStep moves every projectile one physics step and resolves hits.
// A hit is reported to the owning weapon only if it still exists.
func (f *Field) FixedStep(dt float64) {
	for _, p := range f.shots {
		hit, ok := p.FixedStep(dt, f.oracle)
		if !ok {
			continue
		}
		if w, alive := f.weapons.Get(p.Owner); alive {
			w.OnProjectileHit(p, hit)
		}
		f.bus.Emit(events.ProjectileHit{Point: hit.Point, Normal: hit.Normal})
	}
}

// Frame expires projectiles past their lifetime and drops dead ones.
func (f *Field) Frame(now float64) {
	kept := f.shots[:0]
	for _, p := range f.shots {
		if !p.dead && p.Expired(now) {
			p.dead = true
		}
		if !p.dead {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(f.shots); i++ {
		f.shots[i] = nil
	}
	f.shots = kept
}

// Projectiles returns the projectiles currently tracked. The slice is only
// valid until the next Frame.
func (f *Field) Projectiles() []*Projectile {
	return f.shots
}

// Clear drops every projectile and destroys every weapon.
func (f *Field) Clear() {
	for i := range f.weapons.slots {
		s := &f.weapons.slots[i]
		if s.used {
			s.val.Destroy()
		}
	}
	f.shots = nil
}
