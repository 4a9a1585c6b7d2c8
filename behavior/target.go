package behavior

import (
	"fmt"
	"strings"

	"github.com/milk9111/shooter/common"
)

// WeaponType tags a weapon slot.
type WeaponType int

const (
	WeaponSingleShot WeaponType = iota
	WeaponMachineGun
)

func (w WeaponType) String() string {
	switch w {
	case WeaponSingleShot:
		return "single_shot"
	case WeaponMachineGun:
		return "machine_gun"
	}
	return fmt.Sprintf("weapon(%d)", int(w))
}

func ParseWeaponType(s string) (WeaponType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single_shot", "single":
		return WeaponSingleShot, nil
	case "machine_gun", "machinegun":
		return WeaponMachineGun, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeapon, s)
}

// WeaponSlot is one weapon the target carries. Ammo stays in [0, Capacity].
type WeaponSlot struct {
	Type        WeaponType
	Name        string
	Ammo        int
	Capacity    int
	AmmoPerShot int
	Damage      int
}

const (
	MaxHealth = 100
	// DefaultFlashDuration matches a fade of 0.01 alpha per frame at 60 Hz.
	DefaultFlashDuration = 100.0 / 60.0
	DefaultGunDamage     = 10
)

type TargetConfig struct {
	MaxHealth     int
	GunDamage     int
	FlashDuration float64
	Weapons       []WeaponSlot
}

func DefaultTargetConfig() TargetConfig {
	return TargetConfig{
		MaxHealth:     MaxHealth,
		GunDamage:     DefaultGunDamage,
		FlashDuration: DefaultFlashDuration,
		Weapons: []WeaponSlot{
			{Type: WeaponSingleShot, Name: "Pistol", Ammo: 12, Capacity: 12, AmmoPerShot: 1},
			{Type: WeaponMachineGun, Name: "Machine Gun", Ammo: 60, Capacity: 60, AmmoPerShot: 3},
		},
	}
}

func (c TargetConfig) Validate() error {
	const actor = "target"
	if c.MaxHealth <= 0 {
		return invalid(actor, "max_health", "must be positive")
	}
	if c.GunDamage < 0 {
		return invalid(actor, "gun_damage", "must not be negative")
	}
	if c.FlashDuration <= 0 {
		return invalid(actor, "flash_duration", "must be positive")
	}
	if len(c.Weapons) == 0 {
		return invalid(actor, "weapons", "at least one weapon is required")
	}
	seen := make(map[WeaponType]bool, len(c.Weapons))
	for _, w := range c.Weapons {
		if seen[w.Type] {
			return invalid(actor, "weapons", fmt.Sprintf("duplicate weapon %s", w.Type))
		}
		seen[w.Type] = true
		if w.Capacity < 0 || w.AmmoPerShot < 0 || w.Damage < 0 {
			return invalid(actor, "weapons", fmt.Sprintf("%s has a negative stat", w.Type))
		}
	}
	return nil
}

// Target is the player side of combat: a health pool clamped to
// [0, MaxHealth], a cyclic list of weapons and a damage flash that fades
// linearly after every hit.
type Target struct {
	cfg     TargetConfig
	health  int
	weapons []WeaponSlot
	current int
	flash   float64

	OnHealthChanged func(health int)
	OnWeaponChanged func(info string)
}

func NewTarget(cfg TargetConfig) (*Target, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	weapons := append([]WeaponSlot(nil), cfg.Weapons...)
	for i := range weapons {
		weapons[i].Ammo = common.ClampInt(weapons[i].Ammo, 0, weapons[i].Capacity)
	}
	return &Target{cfg: cfg, health: cfg.MaxHealth, weapons: weapons}, nil
}

func (t *Target) Health() int { return t.health }

func (t *Target) MaxHealth() int { return t.cfg.MaxHealth }

func (t *Target) Dead() bool { return t.health <= 0 }

// FlashAlpha is the opacity of the damage overlay, 1 right after a hit.
func (t *Target) FlashAlpha() float64 { return t.flash }

// Hit takes damage off the health pool, never below zero, and restarts the
// damage flash.
func (t *Target) Hit(damage int) {
	if damage < 0 {
		damage = 0
	}
	t.flash = 1
	t.setHealth(t.health - damage)
}

func (t *Target) HealthBoost(value int) {
	if value <= 0 {
		return
	}
	t.setHealth(t.health + value)
}

func (t *Target) AmmoBoost(value int, weapon WeaponType) {
	i, ok := t.slot(weapon)
	if !ok || value <= 0 {
		return
	}
	w := &t.weapons[i]
	w.Ammo = common.ClampInt(w.Ammo+value, 0, w.Capacity)
	t.weaponChanged()
}

func (t *Target) IsHealthFull() bool {
	return t.health >= t.cfg.MaxHealth
}

// IsWeaponFull reports whether the named weapon is at capacity. Unknown
// weapons count as full so nothing tries to top them up.
func (t *Target) IsWeaponFull(weapon WeaponType) bool {
	i, ok := t.slot(weapon)
	if !ok {
		return true
	}
	return t.weapons[i].Ammo >= t.weapons[i].Capacity
}

func (t *Target) IsWeaponEmpty() bool {
	return t.weapons[t.current].Ammo <= 0
}

func (t *Target) CurrentWeapon() WeaponSlot {
	return t.weapons[t.current]
}

// Weapon returns a copy of the named weapon slot.
func (t *Target) Weapon(weapon WeaponType) (WeaponSlot, bool) {
	i, ok := t.slot(weapon)
	if !ok {
		return WeaponSlot{}, false
	}
	return t.weapons[i], true
}

func (t *Target) Weapons() []WeaponSlot {
	return append([]WeaponSlot(nil), t.weapons...)
}

// NextWeapon selects the next weapon, wrapping past the last to the first.
func (t *Target) NextWeapon() {
	t.current = (t.current + 1) % len(t.weapons)
	t.weaponChanged()
}

// PreviousWeapon selects the previous weapon, wrapping before the first to the last.
func (t *Target) PreviousWeapon() {
	t.current = (t.current - 1 + len(t.weapons)) % len(t.weapons)
	t.weaponChanged()
}

// Shoot fires the current weapon along dir. It does nothing on an empty
// weapon. A hit forwards the shot damage to whatever the ray found. It
// reports whether a shot was fired.
func (t *Target) Shoot(origin, dir common.Vec3, ray Raycaster) bool {
	if t.IsWeaponEmpty() {
		return false
	}
	w := &t.weapons[t.current]
	if ray != nil {
		if victim, ok := ray.Raycast(origin, dir); ok && victim != nil {
			victim.Hit(t.shotDamage(*w))
		}
	}
	w.Ammo = common.ClampInt(w.Ammo-w.AmmoPerShot, 0, w.Capacity)
	t.weaponChanged()
	return true
}

// Tick fades the damage flash.
func (t *Target) Tick(dt float64) {
	if t.flash <= 0 || dt <= 0 {
		return
	}
	t.flash -= dt / t.cfg.FlashDuration
	if t.flash < 0 {
		t.flash = 0
	}
}

// WeaponInfo is the HUD line for the current weapon.
func (t *Target) WeaponInfo() string {
	w := t.weapons[t.current]
	return fmt.Sprintf("%s: %d/%d", w.Name, w.Ammo, w.Capacity)
}

func (t *Target) shotDamage(w WeaponSlot) int {
	if w.Damage > 0 {
		return w.Damage
	}
	return t.cfg.GunDamage
}

func (t *Target) slot(weapon WeaponType) (int, bool) {
	for i := range t.weapons {
		if t.weapons[i].Type == weapon {
			return i, true
		}
	}
	return 0, false
}

func (t *Target) setHealth(v int) {
	t.health = common.ClampInt(v, 0, t.cfg.MaxHealth)
	if t.OnHealthChanged != nil {
		t.OnHealthChanged(t.health)
	}
}

func (t *Target) weaponChanged() {
	if t.OnWeaponChanged != nil {
		t.OnWeaponChanged(t.WeaponInfo())
	}
}
