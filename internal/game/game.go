// Package game implements the gunjam arena: a gunner defends two gates
// against waves of demons with a gun that jams, and fixes it at the anvil
// by playing the repair minigame.
//
// The game is pure simulation. Like every arcade game it only sees
// core.InputFrame values and draws into a core.Screen; the platform layer
// owns the terminal.
package game

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gunjam/internal/combat"
	"github.com/vovakirdan/gunjam/internal/config"
	"github.com/vovakirdan/gunjam/internal/core"
	"github.com/vovakirdan/gunjam/internal/events"
	"github.com/vovakirdan/gunjam/internal/repair"
	"github.com/vovakirdan/gunjam/internal/save"
	"github.com/vovakirdan/gunjam/internal/sched"
	"github.com/vovakirdan/gunjam/internal/upgrade"
	"github.com/vovakirdan/gunjam/internal/waves"
)

// ErrUnknownGun is returned when Options.Gun names no weapon preset.
var ErrUnknownGun = errors.New("game: unknown gun")

// Options configure a game.
type Options struct {
	Config   config.Config
	Gun      string       // Weapon preset id; empty picks the first preset
	Saves    save.Backend // Optional; without it the high score lives in memory
	Settings save.Settings
	Logger   *log.Logger
}

// Game is one gunjam arena.
type Game struct {
	opts    Options
	cfg     config.Config
	gun     config.WeaponConfig
	stats   combat.Stats
	runtime core.RuntimeConfig
	logger  *log.Logger

	sched *sched.Scheduler
	bus   *events.Bus
	subs  events.Scope
	rng   *rand.Rand

	world    *world
	player   *Player
	field    *combat.Field
	holster  *combat.Holster
	repair   *repair.Minigame
	spawner  *waves.Spawner
	upgrades *upgrade.System

	enemies []*Enemy
	nextID  waves.ID

	state    core.GameState
	progress save.Progress
	newHigh  bool
	acc      float64
	inAnvil  bool
	shake    float64
	message  string
	msgTimer sched.Token
}

// New creates a game ready to play with the default runtime config.
func New(opts Options) (*Game, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	gun := opts.Config.Weapons[0]
	if opts.Gun != "" {
		var ok bool
		if gun, ok = opts.Config.Weapon(opts.Gun); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGun, opts.Gun)
		}
	}
	stats, err := opts.Config.Stats(gun)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:     opts,
		cfg:      opts.Config,
		gun:      gun,
		stats:    stats,
		logger:   opts.Logger,
		progress: save.DefaultProgress(),
	}
	if opts.Saves != nil {
		g.progress = save.LoadOrDefault(opts.Saves, save.KeyProgress, save.DefaultProgress(), g.logger)
	}

	if err := g.reset(core.DefaultConfig()); err != nil {
		return nil, err
	}
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "gunjam" }

// Gun returns the equipped weapon preset.
func (g *Game) Gun() config.WeaponConfig { return g.gun }

// Reset restarts the run. The high score survives.
func (g *Game) Reset(rt core.RuntimeConfig) {
	if err := g.reset(rt); err != nil {
		// Config was validated in New, so this is a programming error.
		g.logger.Error("cannot reset game", "error", err)
		g.state.GameOver = true
	}
}

func (g *Game) reset(rt core.RuntimeConfig) error {
	g.subs.Close()
	if g.field != nil {
		g.field.Clear()
	}

	g.runtime = rt
	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.sched = sched.New()
	g.bus = events.NewBus(g.logger)
	g.world = newWorld(g, g.cfg.Arena)
	g.player = newPlayer(g.cfg.Player, core.V(g.cfg.Arena.StartX, g.cfg.Player.Height/2))
	g.enemies = nil
	g.nextID = 0

	var err error
	g.field, err = combat.NewField(combat.FieldOptions{
		Oracle:    g.world,
		Scheduler: g.sched,
		Bus:       g.bus,
		Rand:      g.rng,
		Logger:    g.logger,
	})
	if err != nil {
		return err
	}
	if g.holster, err = combat.NewHolster(g.field, g.player); err != nil {
		return err
	}
	if _, err = g.holster.Equip(g.stats); err != nil {
		return err
	}

	g.repair, err = repair.New(repair.Options{
		Clock:     g.sched,
		Bus:       g.bus,
		Rand:      g.rng,
		Logger:    g.logger,
		Tolerance: g.cfg.Repair.Tolerance,
		RollSpeed: g.cfg.Repair.RollSpeed,
	})
	if err != nil {
		return err
	}

	tpls, boss, err := g.cfg.Templates()
	if err != nil {
		return err
	}
	sp := g.cfg.Spawner
	spawnY := g.cfg.Spawner.AreaHeight/2 + 0.5
	g.spawner, err = waves.New(waves.Options{
		Templates:   tpls,
		Boss:        boss,
		Left:        core.V(-g.cfg.Arena.SpawnX, spawnY),
		Right:       core.V(g.cfg.Arena.SpawnX, spawnY),
		AreaHeight:  sp.AreaHeight,
		Interval:    sp.Interval,
		Adjustment:  sp.Adjustment,
		MinInterval: sp.MinInterval,
		PerRound:    sp.PerRound,
		TierEvery:   sp.TierEvery,
		BossEvery:   sp.BossEvery,
		FlyMin:      sp.FlyMin,
		FlyMax:      sp.FlyMax,
		TopY:        sp.TopY,
		TopSpread:   sp.TopSpread,
		Factory:     g,
		Bus:         g.bus,
		Rand:        g.rng,
		Logger:      g.logger,
	})
	if err != nil {
		return err
	}

	if g.upgrades, err = upgrade.New(g.cfg.Upgrades.Rules(), g.holster, g.bus, g.logger); err != nil {
		return err
	}

	g.state = core.GameState{Round: 1, HighScore: g.progress.HighScore}
	g.newHigh = false
	g.acc = 0
	g.inAnvil = false
	g.shake = 0
	g.message = ""
	g.msgTimer = 0
	g.subscribe()
	g.bus.Flush()

	g.logger.Debug("game reset", "gun", g.gun.ID, "seed", rt.Seed)
	return nil
}

func (g *Game) subscribe() {
	g.subs.Add(events.On(g.bus, func(events.Fired) {
		if g.opts.Settings.CameraShakeEnabled {
			g.shake = math.Max(g.shake, g.stats.Recoil)
		}
	}))
	g.subs.Add(g.bus.Subscribe(g.announce))
}

// announce turns notable events into the status line.
func (g *Game) announce(e events.Event) {
	switch e := e.(type) {
	case events.Jammed:
		g.say("JAMMED! Get to the anvil", 3)
	case events.Unjammed:
		g.say("Gun fixed", 1.5)
	case events.RepairedIncorrectly:
		g.say("Missed!", 1)
	case events.RoundCompleted:
		g.say(fmt.Sprintf("Round %d", e.Round), 2)
	case events.BossWave:
		g.say(fmt.Sprintf("BOSS WAVE x%d", e.Count), 3)
	case events.NewHighScore:
		g.say("New high score!", 2)
	}
}

func (g *Game) say(text string, seconds float64) {
	g.message = text
	g.sched.Cancel(g.msgTimer)
	g.msgTimer = g.sched.After(seconds, func() { g.message = "" })
}

// SpawnEnemy implements waves.Factory.
func (g *Game) SpawnEnemy(tpl waves.Template, pos core.Vec2, fromLeft bool) waves.ID {
	g.nextID++
	e := &Enemy{
		ID:       g.nextID,
		Template: tpl,
		Pos:      pos,
		Health:   tpl.Health,
		FromLeft: fromLeft,
		size:     enemySize(tpl),
		game:     g,
	}
	g.enemies = append(g.enemies, e)
	g.logger.Debug("enemy spawned", "name", tpl.Name, "id", e.ID, "boss", tpl.Boss)
	return e.ID
}

func (g *Game) kill(e *Enemy) {
	g.spawner.Population().Remove(e.ID)
	g.state.Kills++
	g.bus.Emit(events.EnemyKilled{Name: e.Template.Name, Score: e.Template.Score})

	// A boss kill is worth one offer. The milestone its score crosses
	// counts as that offer.
	offers := g.upgrades.Offers()
	g.addScore(e.Template.Score)
	if e.Template.Score >= bossScore && g.upgrades.Offers() == offers {
		g.upgrades.Force()
	}
}

func (g *Game) addScore(n int) {
	g.state.Score += n
	g.bus.Emit(events.ScoreAdded{Amount: n, Total: g.state.Score})

	if g.state.Score > g.progress.HighScore {
		g.progress.HighScore = g.state.Score
		g.state.HighScore = g.state.Score
		g.persist()
		if !g.newHigh {
			g.newHigh = true
			g.bus.Emit(events.NewHighScore{Score: g.state.Score})
		}
	}

	g.upgrades.OnScore(g.state.Score)
}

func (g *Game) persist() {
	if g.opts.Saves == nil {
		return
	}
	if err := save.Put(g.opts.Saves, save.KeyProgress, g.progress); err != nil {
		g.logger.Error("cannot save progress", "error", err)
	}
}

func (g *Game) gameOver() {
	if g.state.GameOver {
		return
	}
	g.state.GameOver = true
	g.repair.Hide()
	g.logger.Info("game over", "score", g.state.Score, "round", g.spawner.Round(), "kills", g.state.Kills)
	g.bus.Emit(events.GameOver{Score: g.state.Score, Round: g.spawner.Round()})
}

// Step advances the game by one frame tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.state.GameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	if g.state.Paused {
		return core.StepResult{State: g.State()}
	}

	// An open upgrade offer freezes the arena until a card is picked.
	if g.upgrades.Pending() {
		g.chooseUpgrade(in)
		g.bus.Flush()
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.FrameDelta()
	g.handleInput(in, dt)

	g.state.Elapsed += dt
	g.sched.Advance(g.state.Elapsed)

	fixed := g.runtime.FixedDelta()
	g.acc += dt
	for g.acc >= fixed && !g.state.GameOver && !g.upgrades.Pending() {
		g.fixedStep(fixed)
		g.acc -= fixed
	}
	if g.upgrades.Pending() {
		// A kill during physics opened an offer. The arena freezes here.
		g.compactEnemies()
		g.bus.Flush()
		return core.StepResult{State: g.State()}
	}

	now := g.sched.Now()
	g.field.Frame(now)
	g.repair.Frame(now)
	g.compactEnemies()
	g.checkAnvil()
	g.checkGates()

	if !g.state.GameOver {
		g.spawner.Tick(dt)
	}
	g.state.Round = g.spawner.Round()
	g.shake = math.Max(0, g.shake-dt)

	g.bus.Flush()
	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame, dt float64) {
	if g.repair.Active() {
		g.player.axis = 0
		if in.RepairJustPressed() || in.FireJustPressed() {
			g.repair.AttemptStop()
		}
		return
	}

	g.player.axis = in.MoveAxis()
	if in.IsHeld(core.ActionUp) {
		g.player.aim(g.cfg.Player.AimSpeed * dt)
	}
	if in.IsHeld(core.ActionDown) {
		g.player.aim(-g.cfg.Player.AimSpeed * dt)
	}
	if in.Has(core.ActionJump) {
		g.player.jump()
	}

	w := g.holster.Active()
	if w == nil {
		return
	}
	if in.FirePressed() {
		if w.CanFire() {
			w.Fire()
		} else if w.Ammo() == 0 && w.CanReload() {
			w.StartReload()
		}
	}
	if in.ReloadJustPressed() && w.CanReload() {
		w.StartReload()
	}
}

func (g *Game) chooseUpgrade(in core.InputFrame) {
	choices := g.upgrades.Eligible()
	for i, a := range []core.Action{core.ActionChoice1, core.ActionChoice2, core.ActionChoice3} {
		if in.Has(a) && i < len(choices) {
			g.upgrades.Apply(choices[i])
			return
		}
	}
}

func (g *Game) fixedStep(dt float64) {
	g.player.fixedStep(dt, g.world)
	for _, e := range g.enemies {
		e.fixedStep(dt, g.player.Pos, g.cfg.Player.Gravity)
	}
	g.field.FixedStep(dt)
}

func (g *Game) compactEnemies() {
	kept := g.enemies[:0]
	for _, e := range g.enemies {
		if !e.dead {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(g.enemies); i++ {
		g.enemies[i] = nil
	}
	g.enemies = kept
}

// checkAnvil starts the repair minigame when the player steps onto the
// anvil carrying a jammed gun.
func (g *Game) checkAnvil() {
	inside := g.player.Box().Overlaps(g.world.anvil)
	entered := inside && !g.inAnvil
	g.inAnvil = inside
	if !entered || g.repair.Active() {
		return
	}
	w := g.holster.Active()
	if w == nil || !w.Jammed() {
		return
	}
	if err := g.repair.Activate(w.RepairsNeeded(), w); err != nil {
		g.logger.Error("cannot start repair", "error", err)
	}
}

func (g *Game) checkGates() {
	for _, e := range g.enemies {
		if !e.dead && e.Box().Overlaps(g.world.farGate(e.FromLeft)) {
			g.logger.Debug("enemy reached the gate", "name", e.Template.Name, "id", e.ID)
			g.gameOver()
			return
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.state
	s.Round = g.spawner.Round()
	s.Upgrading = g.upgrades.Pending()
	return s
}

// Bus returns the game's event bus. Subscribers see events after each Step.
func (g *Game) Bus() *events.Bus { return g.bus }

// Player returns the gunner.
func (g *Game) Player() *Player { return g.player }

// Weapon returns the equipped weapon.
func (g *Game) Weapon() *combat.Weapon { return g.holster.Active() }

// Enemies returns the live enemies. The slice is only valid until the next Step.
func (g *Game) Enemies() []*Enemy { return g.enemies }

// Repair returns the repair minigame.
func (g *Game) Repair() *repair.Minigame { return g.repair }

// Spawner returns the wave spawner.
func (g *Game) Spawner() *waves.Spawner { return g.spawner }

// Upgrades returns the upgrade system.
func (g *Game) Upgrades() *upgrade.System { return g.upgrades }

// Now returns the simulated time in seconds.
func (g *Game) Now() float64 { return g.sched.Now() }
