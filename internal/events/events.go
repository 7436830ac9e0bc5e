package events

import "github.com/vovakirdan/gunjam/internal/core"

// Event is a fire-and-forget notification from the simulation.
// Subscribers use them for feedback only; nothing in the core waits on them.
type Event interface {
	gameEvent()
}

// WeaponEquipped is sent when a carrier picks up a new gun.
type WeaponEquipped struct {
	Name string
}

func (WeaponEquipped) gameEvent() {}

// Fired is sent once per shot, after ammo has been taken.
type Fired struct {
	Origin  core.Vec2
	Angle   float64 // Degrees, before deviation
	Pellets int
	Ammo    int // Ammo left after the shot
}

func (Fired) gameEvent() {}

// Jammed is sent when a shot jams the weapon.
type Jammed struct{}

func (Jammed) gameEvent() {}

// Unjammed is sent when the weapon leaves the jammed state.
type Unjammed struct{}

func (Unjammed) gameEvent() {}

// ReloadStarted is sent when a reload begins or restarts.
type ReloadStarted struct {
	Duration float64
	Spin     bool // Cosmetic spin-on-reload flag of the gun
}

func (ReloadStarted) gameEvent() {}

// Reloaded is sent when a reload completes.
type Reloaded struct {
	Ammo int
}

func (Reloaded) gameEvent() {}

// ProjectileHit is sent when a projectile stops on something.
type ProjectileHit struct {
	Point  core.Vec2
	Normal core.Vec2
}

func (ProjectileHit) gameEvent() {}

// RepairStarted is sent when the repair minigame opens.
type RepairStarted struct {
	Needed int
}

func (RepairStarted) gameEvent() {}

// RepairedCorrectly is sent for a stop inside the tolerance window.
type RepairedCorrectly struct {
	Current int
	Needed  int
	Pitch   float64 // Feedback pitch for the hit sound
}

func (RepairedCorrectly) gameEvent() {}

// RepairedIncorrectly is sent for a stop outside the tolerance window.
type RepairedIncorrectly struct {
	Current int
	Needed  int
}

func (RepairedIncorrectly) gameEvent() {}

// RepairCompleted is sent once when the last needed repair lands.
type RepairCompleted struct{}

func (RepairCompleted) gameEvent() {}

// RoundCompleted is sent when the spawner advances; Round is the new round.
type RoundCompleted struct {
	Round int
}

func (RoundCompleted) gameEvent() {}

// EnemySpawned is sent for every spawned enemy, bosses included.
type EnemySpawned struct {
	Name string
	Boss bool
}

func (EnemySpawned) gameEvent() {}

// BossWave is sent when a boss round spawns its bosses.
type BossWave struct {
	Round int
	Count int
}

func (BossWave) gameEvent() {}

// EnemyKilled is sent when an enemy's health reaches zero.
type EnemyKilled struct {
	Name  string
	Score int
}

func (EnemyKilled) gameEvent() {}

// ScoreAdded is sent whenever points are awarded.
type ScoreAdded struct {
	Amount int
	Total  int
}

func (ScoreAdded) gameEvent() {}

// NewHighScore is sent when the running score beats the stored best.
type NewHighScore struct {
	Score int
}

func (NewHighScore) gameEvent() {}

// UpgradeOffered is sent when a milestone opens the upgrade menu.
type UpgradeOffered struct {
	Choices []string
}

func (UpgradeOffered) gameEvent() {}

// UpgradeApplied is sent when the player picks an upgrade.
type UpgradeApplied struct {
	Track string
	Value float64 // New multiplier
}

func (UpgradeApplied) gameEvent() {}

// GameOver is sent when an enemy breaks through the gate.
type GameOver struct {
	Score int
	Round int
}

func (GameOver) gameEvent() {}
