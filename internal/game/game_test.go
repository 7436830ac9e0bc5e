package game

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/gunjam/internal/config"
	"github.com/vovakirdan/gunjam/internal/core"
	"github.com/vovakirdan/gunjam/internal/events"
	"github.com/vovakirdan/gunjam/internal/save"
	"github.com/vovakirdan/gunjam/internal/waves"
)

// quietConfig returns the default config with jamming off and the spawner
// effectively idle, so tests place every enemy themselves.
func quietConfig() config.Config {
	cfg := config.DefaultConfig()
	for i := range cfg.Weapons {
		cfg.Weapons[i].JamChance = 0
	}
	cfg.Spawner.Interval = 1000
	return cfg
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	if opts.Config.Weapons == nil {
		opts.Config = quietConfig()
	}
	g, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

func run(g *Game, frames int, in core.InputFrame) {
	for i := 0; i < frames; i++ {
		g.Step(in)
	}
}

func imp() waves.Template {
	return waves.Template{Name: "imp", Category: waves.CategoryGround, Health: 100, Speed: 1, Score: 10}
}

func TestNewErrors(t *testing.T) {
	_, err := New(Options{Config: quietConfig(), Gun: "bazooka"})
	if !errors.Is(err, ErrUnknownGun) {
		t.Errorf("unknown gun: got %v", err)
	}

	cfg := quietConfig()
	cfg.Weapons = nil
	if _, err := New(Options{Config: cfg}); err == nil {
		t.Error("expected an error for a config without weapons")
	}
}

func TestNewPicksGun(t *testing.T) {
	g := newTestGame(t, Options{Gun: "shotgun"})
	if got := g.Weapon().Stats().Name; got != "shotgun" {
		t.Errorf("equipped %q, expected shotgun", got)
	}
	if g.Gun().ID != "shotgun" {
		t.Errorf("Gun() = %q", g.Gun().ID)
	}

	g = newTestGame(t, Options{})
	if got := g.Weapon().Stats().Name; got != "pistol" {
		t.Errorf("default gun = %q, expected pistol", got)
	}
}

func TestFireKillsEnemy(t *testing.T) {
	g := newTestGame(t, Options{})
	p := g.Player()
	g.SpawnEnemy(imp(), core.V(p.Pos.X+5, 0.75), false)

	var scored []events.ScoreAdded
	events.On(g.Bus(), func(e events.ScoreAdded) { scored = append(scored, e) })

	fire := core.NewInputFrame()
	fire.Hold(core.ActionFire)
	run(g, 180, fire)

	if n := len(g.Enemies()); n != 0 {
		t.Fatalf("%d enemies still alive", n)
	}
	st := g.State()
	if st.Score != 10 || st.Kills != 1 {
		t.Errorf("score=%d kills=%d, expected 10 and 1", st.Score, st.Kills)
	}
	if len(scored) != 1 || scored[0].Total != 10 {
		t.Errorf("ScoreAdded events = %+v", scored)
	}
	// Ten shots emptied the pistol, so holding fire started a reload.
	if w := g.Weapon(); !w.Reloading() && w.Ammo() != w.MaxAmmo() {
		t.Errorf("weapon neither reloading nor reloaded: ammo=%d", w.Ammo())
	}
}

func TestDeadEnemyIgnoresDamage(t *testing.T) {
	g := newTestGame(t, Options{})
	g.SpawnEnemy(imp(), core.V(8, 0.75), false)
	e := g.Enemies()[0]

	e.TakeDamage(60)
	if e.Dead() || e.Health != 40 {
		t.Fatalf("after 60 damage: dead=%v health=%v", e.Dead(), e.Health)
	}
	e.TakeDamage(60)
	e.TakeDamage(60)
	if !e.Dead() {
		t.Fatal("enemy should be dead")
	}
	if st := g.State(); st.Kills != 1 || st.Score != 10 {
		t.Errorf("kills=%d score=%d after overkill", st.Kills, st.Score)
	}
}

func TestJamAndAnvilRepair(t *testing.T) {
	g := newTestGame(t, Options{})
	w := g.Weapon()
	w.Jam()

	unjammed := 0
	events.On(g.Bus(), func(events.Unjammed) { unjammed++ })

	g.Player().Pos.X = g.cfg.Arena.AnvilX
	g.Step(core.NewInputFrame())

	m := g.Repair()
	if !m.Active() {
		t.Fatal("stepping onto the anvil with a jammed gun should start the repair")
	}
	if m.Needed() != w.RepairsNeeded() {
		t.Errorf("needed = %d, expected %d", m.Needed(), w.RepairsNeeded())
	}

	// Movement input is ignored while repairing.
	x := g.Player().Pos.X
	left := core.NewInputFrame()
	left.Hold(core.ActionLeft)
	run(g, 10, left)
	if g.Player().Pos.X != x {
		t.Error("player moved during the repair")
	}

	for i := 0; i < 5000 && m.Active(); i++ {
		in := core.NewInputFrame()
		if math.Abs(m.Rolling()-m.Target()) <= m.Tolerance()*0.8 {
			in.Set(core.ActionRepair)
		}
		g.Step(in)
	}

	if m.Active() {
		t.Fatal("repair never completed")
	}
	if w.Jammed() {
		t.Error("weapon still jammed after the repair")
	}
	if unjammed != 1 {
		t.Errorf("Unjammed events = %d", unjammed)
	}
}

func TestAnvilIgnoresWorkingGun(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Player().Pos.X = g.cfg.Arena.AnvilX
	g.Step(core.NewInputFrame())
	if g.Repair().Active() {
		t.Error("repair started for a gun that is not jammed")
	}
}

func TestEnemyReachingGateEndsGame(t *testing.T) {
	g := newTestGame(t, Options{})

	var over []events.GameOver
	events.On(g.Bus(), func(e events.GameOver) { over = append(over, e) })

	// Standing in its own spawn gate does not count.
	g.SpawnEnemy(imp(), core.V(-11, 0.75), true)
	run(g, 10, core.NewInputFrame())
	if g.State().GameOver {
		t.Fatal("enemy in its spawn gate ended the game")
	}

	g.SpawnEnemy(imp(), core.V(-9, 0.75), false)
	run(g, 120, core.NewInputFrame())

	st := g.State()
	if !st.GameOver {
		t.Fatal("enemy reached the left gate but the game goes on")
	}
	if len(over) != 1 {
		t.Errorf("GameOver events = %d", len(over))
	}
	if g.Repair().Active() {
		t.Error("repair should be hidden at game over")
	}

	elapsed := st.Elapsed
	run(g, 10, core.NewInputFrame())
	if g.State().Elapsed != elapsed {
		t.Error("time kept running after game over")
	}
}

func TestBossKillForcesUpgrade(t *testing.T) {
	g := newTestGame(t, Options{})
	boss := imp()
	boss.Name, boss.Boss, boss.Score, boss.Health = "warlord", true, 100, 10
	g.SpawnEnemy(boss, core.V(8, 1.5), false)

	var offered []events.UpgradeOffered
	events.On(g.Bus(), func(e events.UpgradeOffered) { offered = append(offered, e) })

	g.Enemies()[0].TakeDamage(10)

	if !g.State().Upgrading {
		t.Fatal("boss kill should open an upgrade offer")
	}

	elapsed := g.State().Elapsed
	run(g, 5, core.NewInputFrame())
	if g.State().Elapsed != elapsed {
		t.Error("time passed while the upgrade menu was open")
	}
	if len(offered) != 1 {
		t.Errorf("UpgradeOffered events = %d, expected 1", len(offered))
	}

	// The 100 point milestone the boss crosses is the same offer.
	pick := core.NewInputFrame()
	pick.Set(core.ActionChoice2)
	g.Step(pick)
	if g.State().Upgrading {
		t.Fatal("one pick should spend the boss offer")
	}
	g.Step(pick)

	if got := g.Weapon().Modifiers().Damage; math.Abs(got-1.15) > 1e-9 {
		t.Errorf("damage multiplier = %v, expected 1.15", got)
	}
}

func TestBossOfferCount(t *testing.T) {
	tests := []struct {
		name       string
		points     int // Points per upgrade
		before     int // Score from imps killed before the boss
		bossScore  int
		wantOffers int
	}{
		{name: "boss crosses milestone", points: 100, before: 0, bossScore: 100, wantOffers: 1},
		{name: "boss below milestone", points: 250, before: 0, bossScore: 100, wantOffers: 1},
		{name: "boss after imps", points: 100, before: 30, bossScore: 100, wantOffers: 1},
		{name: "big boss crosses two", points: 100, before: 50, bossScore: 200, wantOffers: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := quietConfig()
			cfg.Upgrades.PointsPerUpgrade = tt.points
			g := newTestGame(t, Options{Config: cfg})

			for i := 0; i < tt.before/10; i++ {
				g.SpawnEnemy(imp(), core.V(8, 0.75), false)
				g.Enemies()[len(g.Enemies())-1].TakeDamage(100)
			}
			// Spend offers the imps earned so only the boss is counted.
			for g.Upgrades().Pending() {
				g.Upgrades().Apply(g.Upgrades().Eligible()[0])
			}

			boss := imp()
			boss.Name, boss.Boss, boss.Score, boss.Health = "warlord", true, tt.bossScore, 10
			g.SpawnEnemy(boss, core.V(8, 1.5), false)
			g.Enemies()[len(g.Enemies())-1].TakeDamage(10)
			if got := g.Upgrades().Offers(); got != tt.wantOffers {
				t.Errorf("offers = %d, expected %d", got, tt.wantOffers)
			}
		})
	}
}

func TestKillMidFrameFreezesArena(t *testing.T) {
	g := newTestGame(t, Options{})
	// Five physics steps per frame.
	rt := core.DefaultConfig()
	rt.TickRate = 10
	g.Reset(rt)

	p := g.Player()
	boss := imp()
	boss.Name, boss.Boss, boss.Score, boss.Health = "warlord", true, 100, 10
	g.SpawnEnemy(boss, core.V(p.Pos.X+2, 1.5), false)
	// Walks away from the player, out of the line of fire.
	g.SpawnEnemy(imp(), core.V(p.Pos.X-6, 0.75), false)
	walker := g.Enemies()[1]
	startX := walker.Pos.X

	fire := core.NewInputFrame()
	fire.Hold(core.ActionFire)
	g.Step(fire)

	st := g.State()
	if !st.Upgrading || st.Kills != 1 {
		t.Fatalf("upgrading=%v kills=%d after the first frame", st.Upgrading, st.Kills)
	}
	moved := math.Abs(walker.Pos.X - startX)
	step := imp().Speed * rt.FixedDelta()
	if moved > step+1e-9 {
		t.Errorf("walker moved %v, expected at most one physics step (%v)", moved, step)
	}
	if len(g.Enemies()) != 1 {
		t.Errorf("enemies = %d, expected the dead boss removed", len(g.Enemies()))
	}
}

func TestHighScorePersisted(t *testing.T) {
	saves, err := save.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	g := newTestGame(t, Options{Saves: saves})
	var highs []events.NewHighScore
	events.On(g.Bus(), func(e events.NewHighScore) { highs = append(highs, e) })

	for i := 0; i < 3; i++ {
		g.SpawnEnemy(imp(), core.V(8, 0.75), false)
		g.Enemies()[len(g.Enemies())-1].TakeDamage(100)
	}
	g.Step(core.NewInputFrame())

	if len(highs) != 1 || highs[0].Score != 10 {
		t.Errorf("NewHighScore events = %+v", highs)
	}
	got := save.LoadOrDefault(saves, save.KeyProgress, save.DefaultProgress(), nil)
	if got.HighScore != 30 {
		t.Errorf("stored high score = %d, expected 30", got.HighScore)
	}

	// A fresh game starts from the stored record and a smaller score
	// leaves it alone.
	g2 := newTestGame(t, Options{Saves: saves})
	if g2.State().HighScore != 30 {
		t.Errorf("loaded high score = %d", g2.State().HighScore)
	}
	g2.SpawnEnemy(imp(), core.V(8, 0.75), false)
	g2.Enemies()[0].TakeDamage(100)
	got = save.LoadOrDefault(saves, save.KeyProgress, save.DefaultProgress(), nil)
	if got.HighScore != 30 {
		t.Errorf("high score overwritten with %d", got.HighScore)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, Options{})
	run(g, 3, core.NewInputFrame())
	elapsed := g.State().Elapsed

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	run(g, 10, core.NewInputFrame())
	if g.State().Elapsed != elapsed {
		t.Error("time passed while paused")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Fatal("expected resumed")
	}
	if g.State().Elapsed <= elapsed {
		t.Error("time should advance after resuming")
	}
}

func TestSpawnerFeedsArena(t *testing.T) {
	cfg := config.DefaultConfig()
	g := newTestGame(t, Options{Config: cfg})

	run(g, 70, core.NewInputFrame())
	if n := len(g.Enemies()); n != 1 {
		t.Fatalf("expected one enemy after ~1.2s, got %d", n)
	}
	if g.Spawner().Population().Len() != 1 {
		t.Errorf("population = %d", g.Spawner().Population().Len())
	}
	if g.Enemies()[0].Template.Name != "imp" {
		t.Errorf("round one spawned %q", g.Enemies()[0].Template.Name)
	}
}

func TestPlayerMovement(t *testing.T) {
	g := newTestGame(t, Options{})
	p := g.Player()
	start := p.Pos

	right := core.NewInputFrame()
	right.Hold(core.ActionRight)
	run(g, 30, right)
	if p.Pos.X <= start.X {
		t.Errorf("player did not move right: %v -> %v", start.X, p.Pos.X)
	}
	if p.Facing != 1 {
		t.Errorf("facing = %v", p.Facing)
	}
	if !p.Grounded() {
		t.Error("player should be grounded")
	}

	jump := core.NewInputFrame()
	jump.Set(core.ActionJump)
	g.Step(jump)
	run(g, 5, core.NewInputFrame())
	if p.Pos.Y <= start.Y {
		t.Error("player did not leave the ground")
	}
	run(g, 120, core.NewInputFrame())
	if math.Abs(p.Pos.Y-start.Y) > 1e-9 || !p.Grounded() {
		t.Errorf("player did not land: y=%v", p.Pos.Y)
	}

	up := core.NewInputFrame()
	up.Hold(core.ActionUp)
	run(g, 600, up)
	if p.Pitch != MaxPitch {
		t.Errorf("pitch = %v, expected clamp at %v", p.Pitch, MaxPitch)
	}

	left := core.NewInputFrame()
	left.Hold(core.ActionLeft)
	run(g, 600, left)
	limit := -g.cfg.Arena.HalfWidth + g.cfg.Player.Width/2
	if p.Pos.X != limit {
		t.Errorf("x = %v, expected wall at %v", p.Pos.X, limit)
	}
	if _, angle := p.MuzzlePose(); angle != 180-MaxPitch {
		t.Errorf("muzzle angle = %v facing left", angle)
	}
}

func TestCameraShake(t *testing.T) {
	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)

	g := newTestGame(t, Options{Settings: save.DefaultSettings()})
	g.Step(fire)
	if g.shake <= 0 {
		t.Error("firing should shake the camera")
	}

	settings := save.DefaultSettings()
	settings.CameraShakeEnabled = false
	g = newTestGame(t, Options{Settings: settings})
	g.Step(fire)
	if g.shake != 0 {
		t.Error("shake should stay off when disabled")
	}
}

func TestResetKeepsHighScore(t *testing.T) {
	g := newTestGame(t, Options{})
	g.SpawnEnemy(imp(), core.V(8, 0.75), false)
	g.Enemies()[0].TakeDamage(100)
	run(g, 5, core.NewInputFrame())

	g.Reset(core.DefaultConfig())
	st := g.State()
	if st.Score != 0 || st.Kills != 0 || st.Elapsed != 0 || st.Round != 1 {
		t.Errorf("state after reset = %+v", st)
	}
	if st.HighScore != 10 {
		t.Errorf("high score = %d after reset", st.HighScore)
	}
	if len(g.Enemies()) != 0 {
		t.Error("enemies survived the reset")
	}
	if w := g.Weapon(); w.Ammo() != w.MaxAmmo() {
		t.Error("reset should hand out a fresh gun")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, Options{})
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	if !strings.Contains(scr.Row(0), "SCORE") || !strings.Contains(scr.Row(0), "10/10") {
		t.Errorf("HUD row = %q", scr.Row(0))
	}
	if scr.Get(0, 22) != GroundChar {
		t.Errorf("ground row starts with %q", scr.Get(0, 22))
	}
	if !strings.Contains(scr.String(), string(PlayerChar)) {
		t.Error("player not drawn")
	}

	g.Weapon().Jam()
	g.Player().Pos.X = g.cfg.Arena.AnvilX
	g.Step(core.NewInputFrame())
	g.Render(scr)
	if !strings.Contains(scr.String(), "REPAIR") {
		t.Error("repair panel not drawn")
	}

	g.SpawnEnemy(imp(), core.V(-9, 0.75), false)
	run(g, 120, core.NewInputFrame())
	g.Render(scr)
	if !strings.Contains(scr.String(), "GAME OVER") {
		t.Error("game over panel not drawn")
	}

	tiny := core.NewScreen(10, 4)
	g.Render(tiny)
	if !strings.Contains(tiny.Row(0), "terminal") {
		t.Errorf("tiny screen row = %q", tiny.Row(0))
	}
}
