package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/gunjam/internal/combat"
	"github.com/vovakirdan/gunjam/internal/upgrade"
	"github.com/vovakirdan/gunjam/internal/waves"
)

var layerNames = map[string]combat.Mask{
	"ground": combat.LayerGround,
	"enemy":  combat.LayerEnemy,
	"player": combat.LayerPlayer,
}

// ParseMask turns layer names into a hit mask.
func ParseMask(names []string) (combat.Mask, error) {
	var m combat.Mask
	for _, n := range names {
		l, ok := layerNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("unknown layer %q", n)
		}
		m |= l
	}
	return m, nil
}

// Stats converts a weapon preset into combat stats, filling bullet
// defaults from the projectile section.
func (c Config) Stats(w WeaponConfig) (combat.Stats, error) {
	mask, err := ParseMask(w.Hits)
	if err != nil {
		return combat.Stats{}, fmt.Errorf("weapon %q: %w", w.ID, err)
	}

	s := combat.Stats{
		Name:           w.ID,
		FireDelay:      w.FireDelay,
		JamChance:      w.JamChance,
		MaxAmmo:        w.MaxAmmo,
		ReloadTime:     w.ReloadTime,
		Damage:         w.Damage,
		RepairsNeeded:  w.RepairsNeeded,
		BulletsPerShot: w.BulletsPerShot,
		BulletSpeed:    w.BulletSpeed,
		BulletSpread:   w.BulletSpread,
		BulletLifetime: w.BulletLifetime,
		Burst: combat.Burst{
			Enabled: w.Burst.Enabled,
			Count:   w.Burst.Count,
			Delay:   w.Burst.Delay,
		},
		SpinOnReload: w.SpinOnReload,
		Recoil:       w.Recoil,
		HitMask:      mask,
	}
	if s.BulletsPerShot == 0 {
		s.BulletsPerShot = 1
	}
	if s.BulletSpeed == 0 {
		s.BulletSpeed = c.Projectile.Speed
	}
	if s.BulletLifetime == 0 {
		s.BulletLifetime = c.Projectile.Lifetime
	}
	if err := s.Validate(); err != nil {
		return combat.Stats{}, err
	}
	return s, nil
}

// Category parses an enemy kind.
func Category(kind string) (waves.Category, error) {
	switch strings.ToLower(kind) {
	case "", "ground":
		return waves.CategoryGround, nil
	case "flying":
		return waves.CategoryFlying, nil
	case "top":
		return waves.CategoryTop, nil
	default:
		return 0, fmt.Errorf("unknown enemy kind %q", kind)
	}
}

// Template converts an enemy entry into a spawner template.
func (e EnemyConfig) Template(boss bool) (waves.Template, error) {
	cat, err := Category(e.Kind)
	if err != nil {
		return waves.Template{}, fmt.Errorf("enemy %q: %w", e.Name, err)
	}
	if e.Health <= 0 {
		return waves.Template{}, fmt.Errorf("enemy %q: health must be positive, got %v", e.Name, e.Health)
	}
	return waves.Template{
		Name:     e.Name,
		Category: cat,
		Health:   e.Health,
		Speed:    e.Speed,
		Score:    e.Score,
		Boss:     boss,
	}, nil
}

// Templates returns the tier templates and the boss template, if any.
func (c Config) Templates() ([]waves.Template, *waves.Template, error) {
	tpls := make([]waves.Template, 0, len(c.Enemies.Tiers))
	for _, e := range c.Enemies.Tiers {
		t, err := e.Template(false)
		if err != nil {
			return nil, nil, err
		}
		tpls = append(tpls, t)
	}
	if c.Enemies.Boss == nil {
		return tpls, nil, nil
	}
	b, err := c.Enemies.Boss.Template(true)
	if err != nil {
		return nil, nil, err
	}
	return tpls, &b, nil
}

// Rules converts the upgrades section.
func (u UpgradesConfig) Rules() upgrade.Rules {
	return upgrade.Rules{
		PointsPerUpgrade: u.PointsPerUpgrade,
		ReloadStep:       u.ReloadStep,
		ReloadFloor:      u.ReloadFloor,
		DamageStep:       u.DamageStep,
		DamageCeil:       u.DamageCeil,
		JamStep:          u.JamStep,
		JamFloor:         u.JamFloor,
	}
}
