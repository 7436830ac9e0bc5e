package combat

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/gunjam/internal/core"
	"github.com/vovakirdan/gunjam/internal/events"
	"github.com/vovakirdan/gunjam/internal/sched"
)

type stubCarrier struct {
	pos   core.Vec2
	angle float64
}

func (c *stubCarrier) MuzzlePose() (core.Vec2, float64) { return c.pos, c.angle }

// wallOracle reports a hit where a segment crosses the vertical line x.
type wallOracle struct {
	x      float64
	target any
	casts  int
}

func (o *wallOracle) CastSegment(from, to core.Vec2, _ Mask) (Hit, bool) {
	o.casts++
	if from.X >= o.x || to.X < o.x {
		return Hit{}, false
	}
	t := (o.x - from.X) / (to.X - from.X)
	return Hit{Point: from.Lerp(to, t), Normal: core.V(-1, 0), Target: o.target}, true
}

func (o *wallOracle) OverlapRegion(core.Vec2, core.Vec2, Mask) bool { return false }

type dummy struct {
	taken []float64
}

func (d *dummy) TakeDamage(amount float64) { d.taken = append(d.taken, amount) }

type rig struct {
	sched  *sched.Scheduler
	bus    *events.Bus
	field  *Field
	oracle *wallOracle
	got    []events.Event
}

func newRig(t *testing.T, seed int64) *rig {
	t.Helper()
	r := &rig{
		sched:  sched.New(),
		bus:    events.NewBus(nil),
		oracle: &wallOracle{x: 1e9},
	}
	r.bus.Subscribe(func(e events.Event) { r.got = append(r.got, e) })
	f, err := NewField(FieldOptions{
		Oracle:    r.oracle,
		Scheduler: r.sched,
		Bus:       r.bus,
		Rand:      rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	r.field = f
	return r
}

func (r *rig) weapon(t *testing.T, stats Stats) *Weapon {
	t.Helper()
	w, err := r.field.NewWeapon(stats, &stubCarrier{})
	if err != nil {
		t.Fatalf("NewWeapon: %v", err)
	}
	return w
}

// count flushes the bus and returns how many events of type T were seen.
func count[T events.Event](r *rig) int {
	r.bus.Flush()
	n := 0
	for _, e := range r.got {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}

// reliable returns pistol stats that never jam and shoot straight.
func reliable() Stats {
	s := DefaultStats()
	s.JamChance = 0
	s.BulletSpread = 0
	return s
}
