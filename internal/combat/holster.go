package combat

import "github.com/vovakirdan/gunjam/internal/events"

// EquipGrace is how long an unequipped weapon lingers so its bullets in
// flight can still land.
const EquipGrace = 0.1

// Holster keeps exactly one active weapon for a carrier.
type Holster struct {
	field   *Field
	carrier Carrier
	active  *Weapon
}

// NewHolster creates an empty holster for carrier.
func NewHolster(field *Field, carrier Carrier) (*Holster, error) {
	if field == nil {
		return nil, ErrNoField
	}
	if carrier == nil {
		return nil, ErrNoCarrier
	}
	return &Holster{field: field, carrier: carrier}, nil
}

// Active returns the equipped weapon, or nil.
func (h *Holster) Active() *Weapon {
	return h.active
}

// Equip builds a weapon from stats and makes it active. The previous weapon
// stops firing at once and is destroyed after EquipGrace.
func (h *Holster) Equip(stats Stats) (*Weapon, error) {
	w, err := h.field.NewWeapon(stats, h.carrier)
	if err != nil {
		return nil, err
	}
	if old := h.active; old != nil {
		old.retire()
		h.field.sched.After(EquipGrace, old.Destroy)
	}
	h.active = w
	h.field.logger.Info("weapon equipped", "gun", stats.Name)
	h.field.bus.Emit(events.WeaponEquipped{Name: stats.Name})
	return w, nil
}
