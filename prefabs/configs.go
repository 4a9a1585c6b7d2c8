package prefabs

import (
	"fmt"
	"strings"

	"github.com/milk9111/shooter/behavior"
)

// The conversions below start from the behaviour defaults and take every
// field the prefab sets. Zero values mean "not set".

func (s *EnemySpec) EnemyConfig() behavior.EnemyConfig {
	cfg := behavior.DefaultEnemyConfig()
	if s == nil {
		return cfg
	}
	setFloat(&cfg.DistanceForTracking, s.DistanceForTracking)
	setFloat(&cfg.DistanceForAttacking, s.DistanceForAttacking)
	setFloat(&cfg.DistanceToHearPatrolSounds, s.DistanceToHearPatrolSounds)
	setFloat(&cfg.AttackFrequency, s.AttackFrequency)
	setInt(&cfg.DamageForSwing, s.DamageForSwing)
	setInt(&cfg.PatrolSoundChance, s.PatrolSoundChance)
	setString(&cfg.RunTrigger, s.RunTrigger)
	setString(&cfg.AttackTrigger, s.AttackTrigger)
	if len(s.FallTriggers) > 0 {
		cfg.FallTriggers = append([]string(nil), s.FallTriggers...)
	}
	if len(s.PatrolSounds) > 0 {
		cfg.PatrolSounds = append([]string(nil), s.PatrolSounds...)
	}
	if len(s.AttackSounds) > 0 {
		cfg.AttackSounds = append([]string(nil), s.AttackSounds...)
	}
	return cfg
}

func (s *BossSpec) BossConfig() behavior.BossConfig {
	cfg := behavior.DefaultBossConfig()
	if s == nil {
		return cfg
	}
	setFloat(&cfg.DistanceForStomp, s.DistanceForStomp)
	setFloat(&cfg.DistanceForProjectileThrow, s.DistanceForProjectileThrow)
	setFloat(&cfg.TimeBetweenStomps, s.TimeBetweenStomps)
	setFloat(&cfg.TimeBetweenProjectileThrows, s.TimeBetweenProjectileThrows)
	setInt(&cfg.DamageForStomp, s.DamageForStomp)
	setInt(&cfg.DamageForProjectile, s.DamageForProjectile)
	setFloat(&cfg.ShockwaveDelay, s.ShockwaveDelay)
	setFloat(&cfg.ProjectileReleaseDelay, s.ProjectileReleaseDelay)
	setFloat(&cfg.ProjectileImpulse, s.ProjectileImpulse)
	setString(&cfg.StompTrigger, s.StompTrigger)
	setString(&cfg.ThrowTrigger, s.ThrowTrigger)
	setString(&cfg.DeathTrigger, s.DeathTrigger)
	setString(&cfg.StompSound, s.StompSound)
	setString(&cfg.ProjectileSound, s.ProjectileSound)
	setInt(&cfg.Health, s.Health)
	return cfg
}

func (s *PlayerSpec) TargetConfig() (behavior.TargetConfig, error) {
	cfg := behavior.DefaultTargetConfig()
	if s == nil {
		return cfg, nil
	}
	setInt(&cfg.MaxHealth, s.MaxHealth)
	setInt(&cfg.GunDamage, s.GunDamage)
	setFloat(&cfg.FlashDuration, s.FlashDuration)
	if len(s.Weapons) == 0 {
		return cfg, nil
	}
	weapons := make([]behavior.WeaponSlot, 0, len(s.Weapons))
	for i, w := range s.Weapons {
		typ, err := behavior.ParseWeaponType(w.Type)
		if err != nil {
			return cfg, fmt.Errorf("prefabs: player %q weapon %d: %w", s.Name, i, err)
		}
		name := w.Name
		if strings.TrimSpace(name) == "" {
			name = typ.String()
		}
		weapons = append(weapons, behavior.WeaponSlot{
			Type:        typ,
			Name:        name,
			Ammo:        w.Ammo,
			Capacity:    w.Capacity,
			AmmoPerShot: w.AmmoPerShot,
			Damage:      w.Damage,
		})
	}
	cfg.Weapons = weapons
	return cfg, nil
}

func (s *PickupSpec) PickupConfig() (behavior.PickupConfig, error) {
	cfg := behavior.PickupConfig{
		SpinSpeed:   behavior.DefaultSpinSpeed,
		RemoveDelay: behavior.DefaultRemoveDelay,
	}
	if s == nil {
		return cfg, fmt.Errorf("prefabs: nil pickup spec")
	}
	switch strings.ToLower(strings.TrimSpace(s.Kind)) {
	case "ammo":
		cfg.Kind = behavior.PickupAmmo
		typ, err := behavior.ParseWeaponType(s.Weapon)
		if err != nil {
			return cfg, fmt.Errorf("prefabs: pickup %q: %w", s.Name, err)
		}
		cfg.Weapon = typ
	case "health":
		cfg.Kind = behavior.PickupHealth
	default:
		return cfg, fmt.Errorf("prefabs: pickup %q: unknown kind %q", s.Name, s.Kind)
	}
	cfg.Value = s.Value
	setFloat(&cfg.SpinSpeed, s.SpinSpeed)
	setFloat(&cfg.RemoveDelay, s.RemoveDelay)
	cfg.Sound = s.Sound
	return cfg, nil
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}
