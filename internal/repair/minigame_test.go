package repair

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/gunjam/internal/events"
)

type fakeClock struct{ now float64 }

func (c *fakeClock) Now() float64 { return c.now }

type fakeGun struct {
	jammed bool
	unjams int
}

func (g *fakeGun) Jammed() bool { return g.jammed }
func (g *fakeGun) Unjam() {
	g.unjams++
	g.jammed = false
}

func newMinigame(t *testing.T) (*Minigame, *fakeClock, *events.Bus) {
	t.Helper()
	clock := &fakeClock{now: 3}
	bus := events.NewBus(nil)
	m, err := New(Options{Clock: clock, Bus: bus, Rand: rand.New(rand.NewSource(5))})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, clock, bus
}

// seek moves the clock forward to the next moment the slider sits at v.
func seek(m *Minigame, c *fakeClock, v float64) {
	elapsed := c.now - m.activatedAt
	cycles := math.Ceil((elapsed - v) / 2)
	if cycles < 0 {
		cycles = 0
	}
	c.now = m.activatedAt + 2*cycles + v
}

func hit(m *Minigame, c *fakeClock) Outcome {
	seek(m, c, m.Target())
	return m.AttemptStop()
}

func miss(m *Minigame, c *fakeClock) Outcome {
	seek(m, c, m.Target()+0.1)
	return m.AttemptStop()
}

func TestRollingIsTriangleWave(t *testing.T) {
	m, c, _ := newMinigame(t)
	if err := m.Activate(3, &fakeGun{jammed: true}); err != nil {
		t.Fatal(err)
	}

	tests := []struct{ elapsed, want float64 }{
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{1.5, 0.5},
		{2, 0},
		{3.25, 0.75},
	}
	for _, tc := range tests {
		m.Frame(c.now + tc.elapsed)
		if math.Abs(m.Rolling()-tc.want) > 1e-9 {
			t.Errorf("after %vs rolling = %v, expected %v", tc.elapsed, m.Rolling(), tc.want)
		}
	}
}

func TestTargetRange(t *testing.T) {
	m, _, _ := newMinigame(t)
	for i := 0; i < 1000; i++ {
		m.Randomize()
		if m.Target() < TargetMin || m.Target() > TargetMax {
			t.Fatalf("target %v outside [%v, %v]", m.Target(), TargetMin, TargetMax)
		}
	}
}

func TestThreeCorrectStopsUnjam(t *testing.T) {
	m, c, bus := newMinigame(t)
	gun := &fakeGun{jammed: true}
	completed := 0
	events.On(bus, func(events.RepairCompleted) { completed++ })

	m.Activate(3, gun)
	want := []Outcome{OutcomeCorrect, OutcomeCorrect, OutcomeCompleted}
	for i, w := range want {
		if got := hit(m, c); got != w {
			t.Fatalf("stop %d: outcome %v, expected %v", i+1, got, w)
		}
	}
	bus.Flush()

	if m.Active() {
		t.Error("minigame should deactivate on completion")
	}
	if gun.jammed || gun.unjams != 1 {
		t.Errorf("gun jammed = %v, unjams = %d", gun.jammed, gun.unjams)
	}
	if completed != 1 {
		t.Errorf("RepairCompleted events = %d, expected 1", completed)
	}

	if got := m.AttemptStop(); got != OutcomeNone {
		t.Errorf("AttemptStop while inactive = %v", got)
	}
	if gun.unjams != 1 {
		t.Error("inactive minigame unjammed again")
	}
}

func TestCounterTrajectory(t *testing.T) {
	m, c, _ := newMinigame(t)
	gun := &fakeGun{jammed: true}
	m.Activate(3, gun)

	var got []int
	got = append(got, m.Current())
	hit(m, c)
	got = append(got, m.Current())
	miss(m, c)
	got = append(got, m.Current())
	hit(m, c)
	got = append(got, m.Current())
	hit(m, c)
	got = append(got, m.Current())

	want := []int{0, 1, 0, 1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("trajectory = %v, expected %v", got, want)
	}
	if !m.Active() || gun.unjams != 0 {
		t.Error("one more repair should still be needed")
	}

	if hit(m, c) != OutcomeCompleted {
		t.Error("fifth stop should complete the repair")
	}
}

func TestMissFloorsAtZero(t *testing.T) {
	m, c, bus := newMinigame(t)
	misses := 0
	events.On(bus, func(e events.RepairedIncorrectly) {
		misses++
		if e.Current != 0 {
			t.Errorf("RepairedIncorrectly.Current = %d", e.Current)
		}
	})

	m.Activate(3, &fakeGun{jammed: true})
	for i := 0; i < 3; i++ {
		if got := miss(m, c); got != OutcomeIncorrect {
			t.Fatalf("miss %d: outcome %v", i, got)
		}
	}
	bus.Flush()

	if m.Current() != 0 {
		t.Errorf("Current() = %d, expected 0", m.Current())
	}
	if misses != 3 {
		t.Errorf("RepairedIncorrectly events = %d, expected 3", misses)
	}
}

func TestToleranceEdges(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		want   Outcome
	}{
		{"inside", 0.03, OutcomeCorrect},
		{"outside", 0.034, OutcomeIncorrect},
		{"inside below", -0.03, OutcomeCorrect},
		{"outside below", -0.034, OutcomeIncorrect},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, c, _ := newMinigame(t)
			m.Activate(3, &fakeGun{jammed: true})
			seek(m, c, m.Target()+tc.offset)
			if got := m.AttemptStop(); got != tc.want {
				t.Errorf("outcome %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestCompletionLeavesWorkingGunAlone(t *testing.T) {
	m, c, _ := newMinigame(t)
	gun := &fakeGun{jammed: false}
	m.Activate(1, gun)

	if hit(m, c) != OutcomeCompleted {
		t.Fatal("single needed repair should complete")
	}
	if gun.unjams != 0 {
		t.Error("Unjam should only be called on a jammed gun")
	}
}

func TestPitch(t *testing.T) {
	m, c, bus := newMinigame(t)
	var pitches []float64
	events.On(bus, func(e events.RepairedCorrectly) { pitches = append(pitches, e.Pitch) })

	m.Activate(4, &fakeGun{jammed: true})
	for i := 0; i < 4; i++ {
		hit(m, c)
	}
	bus.Flush()

	want := []float64{0.8, 0.9, 1.0, 1.0}
	if len(pitches) != len(want) {
		t.Fatalf("pitches = %v", pitches)
	}
	for i := range want {
		if math.Abs(pitches[i]-want[i]) > 1e-9 {
			t.Errorf("pitch %d = %v, expected %v", i, pitches[i], want[i])
		}
	}
}

func TestHideDoesNotUnjam(t *testing.T) {
	m, c, _ := newMinigame(t)
	gun := &fakeGun{jammed: true}
	m.Activate(3, gun)
	hit(m, c)

	m.Hide()
	if m.Active() || gun.unjams != 0 || !gun.jammed {
		t.Error("Hide should deactivate without unjamming")
	}
}

func TestErrors(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, ErrNoClock) {
		t.Errorf("New without clock: %v", err)
	}
	m, _, _ := newMinigame(t)
	if err := m.Activate(3, nil); !errors.Is(err, ErrNoWeapon) {
		t.Errorf("Activate without weapon: %v", err)
	}
	if m.Active() {
		t.Error("failed Activate should leave the minigame inactive")
	}
}
