package behavior

import (
	"errors"
	"testing"
)

type fakeBoostable struct {
	healthFull bool
	weaponFull map[WeaponType]bool
	health     []int
	ammo       []int
}

func (f *fakeBoostable) HealthBoost(v int)              { f.health = append(f.health, v) }
func (f *fakeBoostable) AmmoBoost(v int, _ WeaponType)  { f.ammo = append(f.ammo, v) }
func (f *fakeBoostable) IsHealthFull() bool             { return f.healthFull }
func (f *fakeBoostable) IsWeaponFull(w WeaponType) bool { return f.weaponFull[w] }

func newPickupRig(t *testing.T, cfg PickupConfig) (*Pickup, *fakeBoostable, *fakeSound, *fakeVisual) {
	t.Helper()
	target := &fakeBoostable{weaponFull: map[WeaponType]bool{}}
	sound := &fakeSound{}
	visual := &fakeVisual{visible: true}
	p, err := NewPickup(cfg, PickupDeps{Target: target, TargetID: playerID, Sound: sound, Visual: visual})
	if err != nil {
		t.Fatalf("NewPickup: %v", err)
	}
	return p, target, sound, visual
}

func ammoPickup() PickupConfig {
	return PickupConfig{
		Kind:        PickupAmmo,
		Value:       10,
		Weapon:      WeaponMachineGun,
		SpinSpeed:   DefaultSpinSpeed,
		RemoveDelay: DefaultRemoveDelay,
		Sound:       "pickup",
	}
}

func TestPickupAppliesOnce(t *testing.T) {
	p, target, sound, visual := newPickupRig(t, ammoPickup())
	collected := 0
	p.OnCollected = func(PickupKind, int) { collected++ }

	if p.OnContact(playerID + 3) {
		t.Fatalf("non-target contact should be ignored")
	}
	if !p.OnContact(playerID) {
		t.Fatalf("first contact should collect")
	}
	if p.OnContact(playerID) {
		t.Fatalf("second contact should not collect")
	}
	if len(target.ammo) != 1 || target.ammo[0] != 10 {
		t.Fatalf("ammo boosts = %v", target.ammo)
	}
	if p.Active() || visual.visible {
		t.Fatalf("pickup should be inactive and hidden")
	}
	if len(sound.played) != 1 || collected != 1 {
		t.Fatalf("sounds = %v collected = %d", sound.played, collected)
	}
}

func TestPickupSkippedWhenFull(t *testing.T) {
	tests := []struct {
		name string
		cfg  PickupConfig
		set  func(*fakeBoostable)
	}{
		{"health_full", PickupConfig{Kind: PickupHealth, Value: 25}, func(f *fakeBoostable) { f.healthFull = true }},
		{"weapon_full", ammoPickup(), func(f *fakeBoostable) { f.weaponFull[WeaponMachineGun] = true }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, target, _, visual := newPickupRig(t, tc.cfg)
			tc.set(target)
			if p.OnContact(playerID) {
				t.Fatalf("full resource should leave the pickup in place")
			}
			if !p.Active() || !visual.visible || len(target.health)+len(target.ammo) != 0 {
				t.Fatalf("pickup changed state while full")
			}
		})
	}
}

func TestPickupHealthBoost(t *testing.T) {
	p, target, _, _ := newPickupRig(t, PickupConfig{Kind: PickupHealth, Value: 25})
	p.OnContact(playerID)
	if len(target.health) != 1 || target.health[0] != 25 || len(target.ammo) != 0 {
		t.Fatalf("health = %v ammo = %v", target.health, target.ammo)
	}
}

func TestPickupSpinAndRemoval(t *testing.T) {
	p, _, _, _ := newPickupRig(t, ammoPickup())

	p.Tick(1)
	if p.Spin() != 50 {
		t.Fatalf("spin = %v, want 50", p.Spin())
	}
	p.OnContact(playerID)
	p.Tick(1)
	if p.Spin() != 100 || p.Removed() {
		t.Fatalf("spin = %v removed = %v", p.Spin(), p.Removed())
	}
	p.Tick(1)
	if !p.Removed() {
		t.Fatalf("pickup should remove itself two seconds after collection")
	}
	p.Tick(1)
	if p.Spin() != 150 {
		t.Fatalf("removed pickup kept spinning: %v", p.Spin())
	}
}

func TestNewPickupValidation(t *testing.T) {
	cfg := ammoPickup()
	cfg.Value = -1
	_, err := NewPickup(cfg, PickupDeps{Target: &fakeBoostable{}, Sound: &fakeSound{}, Visual: &fakeVisual{}})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v", err)
	}
	_, err = NewPickup(ammoPickup(), PickupDeps{Sound: &fakeSound{}, Visual: &fakeVisual{}})
	if !errors.Is(err, ErrMissingCollaborator) {
		t.Fatalf("err = %v", err)
	}
}
