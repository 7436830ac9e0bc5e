// Package config provides YAML-based game configuration loading and
// difficulty presets for gunjam.
package config

import (
	"errors"
	"fmt"
)

// Config contains every tunable of a game.
type Config struct {
	Weapons    []WeaponConfig   `yaml:"weapons"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Repair     RepairConfig     `yaml:"repair"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Enemies    EnemiesConfig    `yaml:"enemies"`
	Upgrades   UpgradesConfig   `yaml:"upgrades"`
	Player     PlayerConfig     `yaml:"player"`
	Arena      ArenaConfig      `yaml:"arena"`
}

// WeaponConfig is one selectable gun preset.
type WeaponConfig struct {
	ID             string      `yaml:"id"`
	Name           string      `yaml:"name"`
	Description    string      `yaml:"description"`
	FireDelay      float64     `yaml:"fire_delay"`
	JamChance      float64     `yaml:"jam_chance"`
	MaxAmmo        int         `yaml:"max_ammo"`
	ReloadTime     float64     `yaml:"reload_time"`
	Damage         float64     `yaml:"damage"`
	RepairsNeeded  int         `yaml:"repairs_needed"`
	BulletsPerShot int         `yaml:"bullets_per_shot"`
	BulletSpeed    float64     `yaml:"bullet_speed"`    // 0 uses projectile.speed
	BulletSpread   float64     `yaml:"bullet_spread"`   // Degrees either side
	BulletLifetime float64     `yaml:"bullet_lifetime"` // 0 uses projectile.lifetime
	Burst          BurstConfig `yaml:"burst"`
	SpinOnReload   bool        `yaml:"spin_on_reload"`
	Recoil         float64     `yaml:"recoil"`
	Hits           []string    `yaml:"hits"` // Layer names: ground, enemy, player
}

// BurstConfig configures burst fire.
type BurstConfig struct {
	Enabled bool    `yaml:"enabled"`
	Count   int     `yaml:"count"`
	Delay   float64 `yaml:"delay"`
}

// ProjectileConfig holds bullet defaults shared by all weapons.
type ProjectileConfig struct {
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"`
}

// RepairConfig tunes the repair minigame.
type RepairConfig struct {
	Tolerance float64 `yaml:"tolerance"`
	RollSpeed float64 `yaml:"roll_speed"`
}

// SpawnerConfig tunes enemy waves.
type SpawnerConfig struct {
	Interval    float64 `yaml:"interval"`
	Adjustment  float64 `yaml:"adjustment"`
	MinInterval float64 `yaml:"min_interval"`
	PerRound    int     `yaml:"per_round"`
	TierEvery   int     `yaml:"tier_every"`
	BossEvery   int     `yaml:"boss_every"`
	AreaHeight  float64 `yaml:"area_height"`
	FlyMin      float64 `yaml:"fly_min"`
	FlyMax      float64 `yaml:"fly_max"`
	TopY        float64 `yaml:"top_y"`
	TopSpread   float64 `yaml:"top_spread"`
}

// EnemyConfig describes one enemy type.
type EnemyConfig struct {
	Name   string  `yaml:"name"`
	Kind   string  `yaml:"kind"` // ground, flying or top
	Health float64 `yaml:"health"`
	Speed  float64 `yaml:"speed"`
	Score  int     `yaml:"score"`
}

// EnemiesConfig lists enemy tiers in unlock order plus the boss.
type EnemiesConfig struct {
	Tiers []EnemyConfig `yaml:"tiers"`
	Boss  *EnemyConfig  `yaml:"boss"`
}

// UpgradesConfig tunes the upgrade tracks.
type UpgradesConfig struct {
	PointsPerUpgrade int     `yaml:"points_per_upgrade"`
	ReloadStep       float64 `yaml:"reload_step"`
	ReloadFloor      float64 `yaml:"reload_floor"`
	DamageStep       float64 `yaml:"damage_step"`
	DamageCeil       float64 `yaml:"damage_ceil"`
	JamStep          float64 `yaml:"jam_step"`
	JamFloor         float64 `yaml:"jam_floor"`
}

// PlayerConfig defines player movement.
type PlayerConfig struct {
	MaxSpeed     float64 `yaml:"max_speed"`
	Acceleration float64 `yaml:"acceleration"` // Per physics step
	Deceleration float64 `yaml:"deceleration"` // Per physics step
	JumpPower    float64 `yaml:"jump_power"`
	Gravity      float64 `yaml:"gravity"`
	AimSpeed     float64 `yaml:"aim_speed"` // Degrees per second
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
}

// ArenaConfig defines the world layout. X runs from -half_width to
// half_width, Y from the ground (0) up to height. A gate gate_width deep
// stands at each edge; an enemy reaching the gate across from where it
// spawned ends the game.
type ArenaConfig struct {
	HalfWidth  float64 `yaml:"half_width"`
	Height     float64 `yaml:"height"`
	GateWidth  float64 `yaml:"gate_width"`
	GateHeight float64 `yaml:"gate_height"`
	AnvilX     float64 `yaml:"anvil_x"`
	AnvilWidth float64 `yaml:"anvil_width"`
	SpawnX     float64 `yaml:"spawn_x"`
	StartX     float64 `yaml:"start_x"`
}

// Weapon returns the preset with the given id.
func (c Config) Weapon(id string) (WeaponConfig, bool) {
	for _, w := range c.Weapons {
		if w.ID == id {
			return w, true
		}
	}
	return WeaponConfig{}, false
}

// Validate reports values the game cannot run with.
func (c Config) Validate() error {
	var errs []error

	if len(c.Weapons) == 0 {
		errs = append(errs, errors.New("no weapons defined"))
	}
	seen := make(map[string]bool)
	for _, w := range c.Weapons {
		if w.ID == "" {
			errs = append(errs, errors.New("weapon without id"))
			continue
		}
		if seen[w.ID] {
			errs = append(errs, fmt.Errorf("duplicate weapon id %q", w.ID))
		}
		seen[w.ID] = true
		if _, err := c.Stats(w); err != nil {
			errs = append(errs, err)
		}
	}

	if len(c.Enemies.Tiers) == 0 {
		errs = append(errs, errors.New("no enemy tiers defined"))
	}
	for _, e := range c.Enemies.Tiers {
		if _, err := e.Template(false); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Enemies.Boss != nil {
		if _, err := c.Enemies.Boss.Template(true); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Spawner.Interval <= 0 {
		errs = append(errs, fmt.Errorf("spawner interval must be positive, got %v", c.Spawner.Interval))
	}
	if c.Spawner.MinInterval <= 0 || c.Spawner.MinInterval > c.Spawner.Interval {
		errs = append(errs, fmt.Errorf("spawner min_interval must be in (0, interval], got %v", c.Spawner.MinInterval))
	}
	if c.Repair.Tolerance <= 0 || c.Repair.Tolerance >= 0.5 {
		errs = append(errs, fmt.Errorf("repair tolerance must be in (0, 0.5), got %v", c.Repair.Tolerance))
	}
	if c.Upgrades.PointsPerUpgrade <= 0 {
		errs = append(errs, fmt.Errorf("points_per_upgrade must be positive, got %d", c.Upgrades.PointsPerUpgrade))
	}
	if c.Arena.HalfWidth <= 0 || c.Arena.Height <= 0 {
		errs = append(errs, fmt.Errorf("arena must have positive size, got %vx%v", 2*c.Arena.HalfWidth, c.Arena.Height))
	}
	if c.Arena.SpawnX <= 0 || c.Arena.SpawnX > c.Arena.HalfWidth {
		errs = append(errs, fmt.Errorf("arena spawn_x must be in (0, half_width], got %v", c.Arena.SpawnX))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
