// Package combat implements guns, projectiles and hit resolution.
//
// A Weapon is an ammo/jam/reload state machine driven by a shared
// sched.Scheduler. Projectiles it fires live in a Field, which moves them on
// the fixed physics step, asks a HitOracle for the first contact, and
// reports hits back to the owning weapon through a generation-checked
// Handle. A weapon destroyed while its bullets are in flight simply stops
// resolving.
package combat

import (
	"errors"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gunjam/internal/events"
	"github.com/vovakirdan/gunjam/internal/sched"
)

// Errors returned when a required collaborator is missing.
var (
	ErrNoCarrier   = errors.New("combat: weapon has no carrier")
	ErrNoMask      = errors.New("combat: weapon has no hit mask")
	ErrNoOracle    = errors.New("combat: field has no hit oracle")
	ErrNoScheduler = errors.New("combat: field has no scheduler")
	ErrNoField     = errors.New("combat: holster has no field")
)

// UnjamGrace is how long after an unjam the weapon cannot jam again.
const UnjamGrace = 4.0

// State is the derived state of a weapon.
type State int

const (
	StateIdle State = iota
	StateFiring
	StateReloading
	StateJammed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFiring:
		return "firing"
	case StateReloading:
		return "reloading"
	case StateJammed:
		return "jammed"
	default:
		return "unknown"
	}
}

// Weapon is one gun held by a Carrier.
// Calls made while the weapon is ineligible are silent no-ops.
type Weapon struct {
	stats   Stats
	mods    Modifiers
	carrier Carrier
	field   *Field
	handle  Handle
	logger  *log.Logger

	ammo      int
	jammed    bool
	reloading bool
	retired   bool // Unequipped; waiting for its grace delay
	destroyed bool

	lastFire    float64
	lastUnjam   float64
	reloadStart float64
	reloadFor   float64

	reloadTok sched.Token
	burstTok  sched.Token
}

// Handle returns the weapon's handle in its field.
func (w *Weapon) Handle() Handle { return w.handle }

// Stats returns the weapon's base tunables.
func (w *Weapon) Stats() Stats { return w.stats }

// Modifiers returns the current upgrade multipliers.
func (w *Weapon) Modifiers() Modifiers { return w.mods }

// SetModifiers replaces the upgrade multipliers.
func (w *Weapon) SetModifiers(m Modifiers) { w.mods = m }

func (w *Weapon) Ammo() int             { return w.ammo }
func (w *Weapon) MaxAmmo() int          { return w.stats.MaxAmmo }
func (w *Weapon) RepairsNeeded() int    { return w.stats.RepairsNeeded }
func (w *Weapon) Jammed() bool          { return w.jammed }
func (w *Weapon) Reloading() bool       { return w.reloading }
func (w *Weapon) Destroyed() bool       { return w.destroyed }
func (w *Weapon) LastFireTime() float64 { return w.lastFire }

func (w *Weapon) now() float64 {
	return w.field.sched.Now()
}

// State derives the current state. Jammed wins over reloading, which wins
// over firing.
func (w *Weapon) State() State {
	switch {
	case w.jammed:
		return StateJammed
	case w.reloading:
		return StateReloading
	case w.field.sched.Pending(w.burstTok), w.now()-w.lastFire <= w.stats.FireDelay:
		return StateFiring
	default:
		return StateIdle
	}
}

// ReloadProgress returns how far the current reload is, in [0,1].
// It is 0 when not reloading.
func (w *Weapon) ReloadProgress() float64 {
	if !w.reloading || w.reloadFor <= 0 {
		return 0
	}
	return math.Min(1, (w.now()-w.reloadStart)/w.reloadFor)
}

// CanFire reports whether Fire would shoot right now.
func (w *Weapon) CanFire() bool {
	return !w.jammed &&
		!w.reloading &&
		!w.retired &&
		w.ammo > 0 &&
		w.now()-w.lastFire > w.stats.FireDelay
}

// Fire shoots once, or starts a burst in burst mode.
// A trigger pull during a running burst is ignored.
func (w *Weapon) Fire() {
	if !w.CanFire() || w.field.sched.Pending(w.burstTok) {
		return
	}
	if !w.stats.Burst.Enabled {
		w.fireSingle()
		return
	}
	w.burstShot(w.stats.Burst.Count)
}

// burstShot fires one burst shot and schedules the next while shots remain.
func (w *Weapon) burstShot(left int) {
	w.burstTok = 0
	if left <= 0 || w.ammo <= 0 || w.jammed || w.reloading || w.retired {
		return
	}
	w.fireSingle()
	if left > 1 && w.ammo > 0 && !w.jammed {
		w.burstTok = w.field.sched.After(w.stats.Burst.Delay, func() {
			w.burstShot(left - 1)
		})
	}
}

// fireSingle spawns BulletsPerShot projectiles and takes one round of ammo.
func (w *Weapon) fireSingle() {
	origin, angle := w.carrier.MuzzlePose()
	for i := 0; i < w.stats.BulletsPerShot; i++ {
		w.field.launch(w, origin, angle)
	}

	w.ammo--
	now := w.now()
	w.lastFire = now
	w.field.bus.Emit(events.Fired{
		Origin:  origin,
		Angle:   angle,
		Pellets: w.stats.BulletsPerShot,
		Ammo:    w.ammo,
	})

	if w.field.rng.Float64() < w.stats.JamChance*w.mods.JamChance && now-w.lastUnjam > UnjamGrace {
		w.Jam()
	}
}

// CanReload reports whether a reload would be useful right now.
func (w *Weapon) CanReload() bool {
	return !w.jammed && !w.reloading && !w.retired && w.ammo < w.stats.MaxAmmo
}

// StartReload begins a reload. Calling it again restarts the timer.
// It does nothing while jammed or after the weapon is destroyed.
func (w *Weapon) StartReload() {
	if w.jammed || w.destroyed {
		return
	}
	w.field.sched.Cancel(w.reloadTok)

	w.reloading = true
	w.reloadStart = w.now()
	w.reloadFor = w.stats.ReloadTime * w.mods.ReloadTime
	w.reloadTok = w.field.sched.After(w.reloadFor, w.finishReload)

	w.logger.Debug("reload started", "gun", w.stats.Name, "duration", w.reloadFor)
	w.field.bus.Emit(events.ReloadStarted{Duration: w.reloadFor, Spin: w.stats.SpinOnReload})
}

func (w *Weapon) finishReload() {
	w.reloadTok = 0
	w.reloading = false
	w.ammo = w.stats.MaxAmmo
	w.logger.Debug("reload finished", "gun", w.stats.Name)
	w.field.bus.Emit(events.Reloaded{Ammo: w.ammo})
}

// Jam puts the weapon in the jammed state. Any running burst or reload is
// cancelled.
func (w *Weapon) Jam() {
	if w.jammed || w.destroyed {
		return
	}
	w.jammed = true
	w.cancelTimers()
	w.reloading = false

	w.logger.Debug("weapon jammed", "gun", w.stats.Name, "ammo", w.ammo)
	w.field.bus.Emit(events.Jammed{})
}

// Unjam clears a jam and starts the re-jam grace window. It is the only way
// out of the jammed state and does nothing when the weapon is not jammed.
func (w *Weapon) Unjam() {
	if !w.jammed {
		return
	}
	w.jammed = false
	w.lastUnjam = w.now()

	w.logger.Debug("weapon unjammed", "gun", w.stats.Name)
	w.field.bus.Emit(events.Unjammed{})
}

// OnProjectileHit applies damage when the hit target can take it.
func (w *Weapon) OnProjectileHit(_ *Projectile, hit Hit) {
	d, ok := hit.Target.(Damageable)
	if !ok {
		return
	}
	d.TakeDamage(w.stats.Damage * w.mods.Damage)
}

// retire stops the weapon from shooting while its bullets finish flying.
func (w *Weapon) retire() {
	w.retired = true
	w.field.sched.Cancel(w.burstTok)
	w.burstTok = 0
}

// Destroy removes the weapon from its field. Projectiles still in flight
// keep flying but their hits no longer resolve.
func (w *Weapon) Destroy() {
	if w.destroyed {
		return
	}
	w.retired = true
	w.destroyed = true
	w.cancelTimers()
	w.reloading = false
	w.field.weapons.Remove(w.handle)
}

func (w *Weapon) cancelTimers() {
	w.field.sched.Cancel(w.burstTok)
	w.field.sched.Cancel(w.reloadTok)
	w.burstTok = 0
	w.reloadTok = 0
}
