package waves

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/gunjam/internal/core"
	"github.com/vovakirdan/gunjam/internal/events"
)

type spawnRecord struct {
	tpl      Template
	pos      core.Vec2
	fromLeft bool
}

type recordingFactory struct {
	next    ID
	spawned []spawnRecord
}

func (f *recordingFactory) SpawnEnemy(tpl Template, pos core.Vec2, fromLeft bool) ID {
	f.next++
	f.spawned = append(f.spawned, spawnRecord{tpl, pos, fromLeft})
	return f.next
}

func (f *recordingFactory) bosses() int {
	n := 0
	for _, r := range f.spawned {
		if r.tpl.Boss {
			n++
		}
	}
	return n
}

var demons = []Template{
	{Name: "imp", Category: CategoryGround, Health: 100, Speed: 0.4, Score: 10},
	{Name: "bat", Category: CategoryFlying, Health: 100, Speed: 1, Score: 10},
	{Name: "dropper", Category: CategoryTop, Health: 100, Speed: 1, Score: 10},
}

func newSpawner(t *testing.T, tpls []Template) (*Spawner, *recordingFactory, *events.Bus) {
	t.Helper()
	f := &recordingFactory{}
	bus := events.NewBus(nil)
	boss := Template{Name: "baron", Category: CategoryTop, Health: 1000, Speed: 0.3, Score: 100}
	s, err := New(Options{
		Templates:  tpls,
		Boss:       &boss,
		Left:       core.V(-12, 0),
		Right:      core.V(12, 0),
		Adjustment: 0.1,
		Factory:    f,
		Bus:        bus,
		Rand:       rand.New(rand.NewSource(9)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, f, bus
}

// clearRound ticks until the round ends, killing everything alive before
// each tick. Bosses spawned by the advance are left alive.
func clearRound(s *Spawner) {
	round := s.Round()
	for s.Round() == round {
		s.Population().Clear()
		s.Tick(s.Interval())
	}
}

func TestFirstRoundEndToEnd(t *testing.T) {
	s, f, bus := newSpawner(t, demons)
	var rounds []int
	events.On(bus, func(e events.RoundCompleted) { rounds = append(rounds, e.Round) })

	if s.Round() != 1 || s.ToSpawn() != 5 {
		t.Fatalf("start: round %d, to spawn %d", s.Round(), s.ToSpawn())
	}

	for i := 0; i < 5; i++ {
		s.Tick(1)
	}
	if s.Spawned() != 5 || len(f.spawned) != 5 {
		t.Fatalf("spawned %d, expected 5", s.Spawned())
	}
	if s.Round() != 1 {
		t.Fatal("round advanced with enemies alive")
	}

	s.Tick(1)
	if len(f.spawned) != 5 {
		t.Error("spawned past the round quota")
	}

	for id := ID(1); id <= 5; id++ {
		s.Population().Remove(id)
	}
	s.Tick(0)
	bus.Flush()

	if s.Round() != 2 {
		t.Fatalf("round = %d, expected 2", s.Round())
	}
	if math.Abs(s.Interval()-0.9) > 1e-9 {
		t.Errorf("interval = %v, expected 0.9", s.Interval())
	}
	if s.ToSpawn() != 10 || s.Spawned() != 0 {
		t.Errorf("to spawn %d spawned %d, expected 10 and 0", s.ToSpawn(), s.Spawned())
	}
	if len(rounds) != 1 || rounds[0] != 2 {
		t.Errorf("RoundCompleted events = %v", rounds)
	}
}

func TestTimerKeepsRemainder(t *testing.T) {
	s, f, _ := newSpawner(t, demons)
	s.Tick(1.5)
	if len(f.spawned) != 1 {
		t.Fatalf("spawned %d after 1.5s", len(f.spawned))
	}
	s.Tick(0.5)
	if len(f.spawned) != 2 {
		t.Errorf("remainder lost: spawned %d after 2s", len(f.spawned))
	}
}

func TestRoundMonotonicAndIntervalFloor(t *testing.T) {
	s, _, _ := newSpawner(t, demons)
	prevRound := s.Round()
	prevInterval := s.Interval()

	for i := 0; i < 3000 && s.Round() < 20; i++ {
		s.Tick(0.25)
		s.Population().Clear()

		if r := s.Round(); r != prevRound && r != prevRound+1 {
			t.Fatalf("round jumped from %d to %d", prevRound, r)
		}
		if s.Interval() > prevInterval {
			t.Fatalf("interval grew from %v to %v", prevInterval, s.Interval())
		}
		if s.Interval() < 0.2 {
			t.Fatalf("interval %v below the floor", s.Interval())
		}
		prevRound, prevInterval = s.Round(), s.Interval()
	}

	if s.Round() < 20 {
		t.Fatalf("only reached round %d", s.Round())
	}
	if s.Interval() != 0.2 {
		t.Errorf("interval = %v, expected the 0.2 floor", s.Interval())
	}
}

func TestBossWaves(t *testing.T) {
	s, f, bus := newSpawner(t, demons)
	var waves []events.BossWave
	events.On(bus, func(e events.BossWave) { waves = append(waves, e) })

	bossesAt := map[int]int{}
	for s.Round() < 16 {
		before := f.bosses()
		clearRound(s)
		bossesAt[s.Round()] = f.bosses() - before
	}
	bus.Flush()

	for round, n := range bossesAt {
		want := 0
		if round%5 == 0 {
			want = round / 5
		}
		if n != want {
			t.Errorf("round %d spawned %d bosses, expected %d", round, n, want)
		}
	}
	if len(waves) != 3 || waves[2].Count != 3 || waves[2].Round != 15 {
		t.Errorf("BossWave events = %+v", waves)
	}
	if s.BossCount() != 4 {
		t.Errorf("BossCount() = %d, expected 4", s.BossCount())
	}

	for _, r := range f.spawned {
		if !r.tpl.Boss {
			continue
		}
		if r.pos.Y != 16 || r.pos.X < -2 || r.pos.X >= 2 {
			t.Errorf("boss spawned at %v", r.pos)
		}
	}
}

func TestBossesKeepRoundOpen(t *testing.T) {
	s, f, _ := newSpawner(t, demons)
	for s.Round() < 5 {
		clearRound(s)
	}
	if s.Population().Len() != 1 {
		t.Fatalf("live after boss spawn = %d, expected 1", s.Population().Len())
	}

	for i := 0; i < 40; i++ {
		s.Tick(s.Interval())
		for idx, r := range f.spawned {
			if !r.tpl.Boss {
				s.Population().Remove(ID(idx + 1))
			}
		}
	}
	if s.Spawned() != s.ToSpawn() {
		t.Fatalf("spawned %d of %d", s.Spawned(), s.ToSpawn())
	}
	if s.Round() != 5 {
		t.Error("round 5 ended with its boss alive")
	}
}

func TestTierUnlocks(t *testing.T) {
	s, f, _ := newSpawner(t, demons)

	want := map[int]int{1: 1, 2: 2, 3: 2, 4: 3, 5: 3, 6: 3, 7: 3}
	for s.Round() < 7 {
		if got := s.Tiers(); got != want[s.Round()] {
			t.Errorf("round %d: tiers = %d, expected %d", s.Round(), got, want[s.Round()])
		}
		clearRound(s)
	}

	for _, r := range f.spawned[:5] {
		if r.tpl.Name != "imp" {
			t.Errorf("round 1 spawned locked template %q", r.tpl.Name)
		}
	}
}

func TestSpawnPositions(t *testing.T) {
	s, _, _ := newSpawner(t, demons)

	for i := 0; i < 500; i++ {
		fromLeft := i%2 == 0
		side := core.V(12, 0)
		if fromLeft {
			side = core.V(-12, 0)
		}

		g := s.SpawnPosition(CategoryGround, fromLeft)
		if g.X != side.X || g.Y < -1 || g.Y >= 1 {
			t.Fatalf("ground spawn %v", g)
		}
		fl := s.SpawnPosition(CategoryFlying, fromLeft)
		if fl.X != side.X || fl.Y < 8 || fl.Y >= 10 {
			t.Fatalf("flying spawn %v", fl)
		}
		top := s.SpawnPosition(CategoryTop, fromLeft)
		if top.Y != 16 || top.X < -2 || top.X >= 2 {
			t.Fatalf("top spawn %v", top)
		}
	}
}

func TestBothSidesUsed(t *testing.T) {
	s, f, _ := newSpawner(t, demons)
	for s.Round() < 4 {
		clearRound(s)
	}
	left := 0
	for _, r := range f.spawned {
		if r.fromLeft {
			left++
		}
	}
	if left == 0 || left == len(f.spawned) {
		t.Errorf("all %d spawns came from one side", len(f.spawned))
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(Options{Factory: &recordingFactory{}}); !errors.Is(err, ErrNoTemplates) {
		t.Errorf("no templates: %v", err)
	}
	if _, err := New(Options{Templates: demons}); !errors.Is(err, ErrNoFactory) {
		t.Errorf("no factory: %v", err)
	}
}

func TestPopulation(t *testing.T) {
	p := NewPopulation()
	p.Add(1)
	p.Add(2)
	p.Add(2)
	if p.Len() != 2 || !p.Contains(2) {
		t.Errorf("Len() = %d", p.Len())
	}
	if !p.Remove(1) || p.Remove(1) {
		t.Error("Remove should succeed once")
	}
	p.Clear()
	if p.Len() != 0 {
		t.Error("Clear left enemies behind")
	}
}
