package config

import (
	_ "embed"
)

//go:embed defaults/gunjam.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It matches the
// embedded defaults/gunjam.yaml.
func DefaultConfig() Config {
	hits := func() []string { return []string{"ground", "enemy"} }
	return Config{
		Weapons: []WeaponConfig{
			{
				ID:             "pistol",
				Name:           "Pistol",
				Description:    "Reliable sidearm. Fast trigger, light hits.",
				FireDelay:      0.1,
				JamChance:      0.058,
				MaxAmmo:        10,
				ReloadTime:     2,
				Damage:         10,
				RepairsNeeded:  3,
				BulletsPerShot: 1,
				BulletSpread:   0.1,
				Burst:          BurstConfig{Count: 3, Delay: 0.05},
				SpinOnReload:   true,
				Recoil:         0.1,
				Hits:           hits(),
			},
			{
				ID:             "revolver",
				Name:           "Revolver",
				Description:    "Six heavy rounds. Rarely jams.",
				FireDelay:      0.35,
				JamChance:      0.03,
				MaxAmmo:        6,
				ReloadTime:     2.4,
				Damage:         45,
				RepairsNeeded:  2,
				BulletsPerShot: 1,
				SpinOnReload:   true,
				Recoil:         0.3,
				Hits:           hits(),
			},
			{
				ID:             "shotgun",
				Name:           "Shotgun",
				Description:    "Six pellets per shell, short range.",
				FireDelay:      0.6,
				JamChance:      0.08,
				MaxAmmo:        5,
				ReloadTime:     2.5,
				Damage:         14,
				RepairsNeeded:  4,
				BulletsPerShot: 6,
				BulletSpread:   8,
				BulletLifetime: 0.4,
				Recoil:         0.4,
				Hits:           hits(),
			},
			{
				ID:             "burst",
				Name:           "Burst Rifle",
				Description:    "Three-round bursts from a long magazine.",
				FireDelay:      0.3,
				JamChance:      0.07,
				MaxAmmo:        24,
				ReloadTime:     2.2,
				Damage:         12,
				RepairsNeeded:  3,
				BulletsPerShot: 1,
				BulletSpread:   1.5,
				Burst:          BurstConfig{Enabled: true, Count: 3, Delay: 0.05},
				Recoil:         0.15,
				Hits:           hits(),
			},
		},
		Projectile: ProjectileConfig{
			Speed:    50,
			Lifetime: 1,
		},
		Repair: RepairConfig{
			Tolerance: 0.032,
			RollSpeed: 1,
		},
		Spawner: SpawnerConfig{
			Interval:    1,
			Adjustment:  0.1,
			MinInterval: 0.2,
			PerRound:    5,
			TierEvery:   2,
			BossEvery:   5,
			AreaHeight:  2,
			FlyMin:      8,
			FlyMax:      10,
			TopY:        16,
			TopSpread:   2,
		},
		Enemies: EnemiesConfig{
			Tiers: []EnemyConfig{
				{Name: "imp", Kind: "ground", Health: 100, Speed: 1, Score: 10},
				{Name: "bat", Kind: "flying", Health: 60, Speed: 1.2, Score: 15},
				{Name: "brute", Kind: "ground", Health: 250, Speed: 0.6, Score: 25},
				{Name: "dropper", Kind: "top", Health: 120, Speed: 0.8, Score: 20},
			},
			Boss: &EnemyConfig{Name: "warlord", Kind: "top", Health: 1500, Speed: 0.5, Score: 100},
		},
		Upgrades: UpgradesConfig{
			PointsPerUpgrade: 100,
			ReloadStep:       0.2,
			ReloadFloor:      0.25,
			DamageStep:       0.15,
			DamageCeil:       2,
			JamStep:          0.1,
			JamFloor:         0.1,
		},
		Player: PlayerConfig{
			MaxSpeed:     6,
			Acceleration: 2,
			Deceleration: 1,
			JumpPower:    8.5,
			Gravity:      20,
			AimSpeed:     120,
			Width:        1,
			Height:       2,
		},
		Arena: ArenaConfig{
			HalfWidth:  12,
			Height:     18,
			GateWidth:  1.5,
			GateHeight: 4,
			AnvilX:     -4,
			AnvilWidth: 1.5,
			SpawnX:     11,
			StartX:     2,
		},
	}
}
