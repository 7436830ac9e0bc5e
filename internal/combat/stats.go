package combat

import (
	"errors"
	"fmt"
)

// Burst configures burst-fire mode.
type Burst struct {
	Enabled bool
	Count   int     // Shots per trigger pull
	Delay   float64 // Seconds between burst shots
}

// Stats are the tunables of one gun.
type Stats struct {
	Name           string
	FireDelay      float64 // Minimum seconds between shots
	JamChance      float64 // Per-shot jam probability in [0,1]
	MaxAmmo        int
	ReloadTime     float64
	Damage         float64
	RepairsNeeded  int
	BulletsPerShot int
	BulletSpeed    float64 // World units per second
	BulletSpread   float64 // Max deviation in degrees, either side
	BulletLifetime float64
	Burst          Burst
	SpinOnReload   bool
	Recoil         float64 // Camera shake strength
	HitMask        Mask
}

// DefaultStats returns the stock pistol.
func DefaultStats() Stats {
	return Stats{
		Name:           "pistol",
		FireDelay:      0.1,
		JamChance:      0.058,
		MaxAmmo:        10,
		ReloadTime:     2,
		Damage:         10,
		RepairsNeeded:  3,
		BulletsPerShot: 1,
		BulletSpeed:    50,
		BulletSpread:   0.1,
		BulletLifetime: 1,
		Burst:          Burst{Count: 3, Delay: 0.05},
		SpinOnReload:   true,
		Recoil:         0.1,
		HitMask:        LayerGround | LayerEnemy,
	}
}

// Validate reports stats that would leave the weapon unusable.
func (s Stats) Validate() error {
	var errs []error
	if s.HitMask == 0 {
		errs = append(errs, ErrNoMask)
	}
	if s.MaxAmmo <= 0 {
		errs = append(errs, fmt.Errorf("max ammo must be positive, got %d", s.MaxAmmo))
	}
	if s.BulletsPerShot <= 0 {
		errs = append(errs, fmt.Errorf("bullets per shot must be positive, got %d", s.BulletsPerShot))
	}
	if s.JamChance < 0 || s.JamChance > 1 {
		errs = append(errs, fmt.Errorf("jam chance must be in [0,1], got %v", s.JamChance))
	}
	if s.RepairsNeeded <= 0 {
		errs = append(errs, fmt.Errorf("repairs needed must be positive, got %d", s.RepairsNeeded))
	}
	if s.Burst.Enabled && s.Burst.Count <= 0 {
		errs = append(errs, fmt.Errorf("burst count must be positive, got %d", s.Burst.Count))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("combat: invalid stats for %q: %w", s.Name, err)
	}
	return nil
}

// Modifiers scale weapon stats. Upgrades change them; 1 means unmodified.
type Modifiers struct {
	ReloadTime float64
	Damage     float64
	JamChance  float64
}

// NoModifiers returns the identity modifiers.
func NoModifiers() Modifiers {
	return Modifiers{ReloadTime: 1, Damage: 1, JamChance: 1}
}
