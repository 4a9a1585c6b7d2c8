package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/shooter/common"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PositionSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (p PositionSpec) Vec3() common.Vec3 {
	return common.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

// AudioSpec describes one clip. Clips are synthesized tones; Duration also
// decides how long the owning channel stays busy.
type AudioSpec struct {
	Name      string  `yaml:"name"`
	Frequency float64 `yaml:"frequency"`
	Duration  float64 `yaml:"duration"`
	Volume    float64 `yaml:"volume"`
}

type EnemySpec struct {
	Name                       string      `yaml:"name"`
	MoveSpeed                  float64     `yaml:"move_speed"`
	Radius                     float64     `yaml:"radius"`
	StopDistance               float64     `yaml:"stop_distance"`
	Color                      *YAMLColor  `yaml:"color"`
	DistanceForTracking        float64     `yaml:"distance_for_tracking"`
	DistanceForAttacking       float64     `yaml:"distance_for_attacking"`
	DistanceToHearPatrolSounds float64     `yaml:"distance_to_hear_patrol_sounds"`
	AttackFrequency            float64     `yaml:"attack_frequency"`
	DamageForSwing             int         `yaml:"damage_for_swing"`
	PatrolSoundChance          int         `yaml:"patrol_sound_chance"`
	RunTrigger                 string      `yaml:"run_trigger"`
	AttackTrigger              string      `yaml:"attack_trigger"`
	FallTriggers               []string    `yaml:"fall_triggers"`
	PatrolSounds               []string    `yaml:"patrol_sounds"`
	AttackSounds               []string    `yaml:"attack_sounds"`
	Audio                      []AudioSpec `yaml:"audio"`
}

func LoadEnemySpec(filename string) (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type BossSpec struct {
	Name                        string       `yaml:"name"`
	Radius                      float64      `yaml:"radius"`
	Color                       *YAMLColor   `yaml:"color"`
	Health                      int          `yaml:"health"`
	DistanceForStomp            float64      `yaml:"distance_for_stomp"`
	DistanceForProjectileThrow  float64      `yaml:"distance_for_projectile_throw"`
	TimeBetweenStomps           float64      `yaml:"time_between_stomps"`
	TimeBetweenProjectileThrows float64      `yaml:"time_between_projectile_throws"`
	DamageForStomp              int          `yaml:"damage_for_stomp"`
	DamageForProjectile         int          `yaml:"damage_for_projectile"`
	ShockwaveDelay              float64      `yaml:"shockwave_delay"`
	ShockwaveRadius             float64      `yaml:"shockwave_radius"`
	ProjectileReleaseDelay      float64      `yaml:"projectile_release_delay"`
	ProjectileImpulse           float64      `yaml:"projectile_impulse"`
	ProjectileMass              float64      `yaml:"projectile_mass"`
	ProjectileRadius            float64      `yaml:"projectile_radius"`
	HandOffset                  PositionSpec `yaml:"hand_offset"`
	StompTrigger                string       `yaml:"stomp_trigger"`
	ThrowTrigger                string       `yaml:"throw_trigger"`
	DeathTrigger                string       `yaml:"death_trigger"`
	StompSound                  string       `yaml:"stomp_sound"`
	ProjectileSound             string       `yaml:"projectile_sound"`
	Audio                       []AudioSpec  `yaml:"audio"`
}

func LoadBossSpec(filename string) (*BossSpec, error) {
	spec, err := LoadSpec[BossSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type WeaponSpec struct {
	Type        string `yaml:"type"`
	Name        string `yaml:"name"`
	Ammo        int    `yaml:"ammo"`
	Capacity    int    `yaml:"capacity"`
	AmmoPerShot int    `yaml:"ammo_per_shot"`
	Damage      int    `yaml:"damage"`
}

type PlayerSpec struct {
	Name          string       `yaml:"name"`
	MoveSpeed     float64      `yaml:"move_speed"`
	JumpSpeed     float64      `yaml:"jump_speed"`
	Gravity       float64      `yaml:"gravity"`
	Radius        float64      `yaml:"radius"`
	ShotRange     float64      `yaml:"shot_range"`
	Color         *YAMLColor   `yaml:"color"`
	MaxHealth     int          `yaml:"max_health"`
	GunDamage     int          `yaml:"gun_damage"`
	FlashDuration float64      `yaml:"flash_duration"`
	Weapons       []WeaponSpec `yaml:"weapons"`
	Audio         []AudioSpec  `yaml:"audio"`
}

func LoadPlayerSpec(filename string) (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PickupSpec struct {
	Name        string      `yaml:"name"`
	Kind        string      `yaml:"kind"`
	Value       int         `yaml:"value"`
	Weapon      string      `yaml:"weapon"`
	Radius      float64     `yaml:"radius"`
	SpinSpeed   float64     `yaml:"spin_speed"`
	RemoveDelay float64     `yaml:"remove_delay"`
	Sound       string      `yaml:"sound"`
	Color       *YAMLColor  `yaml:"color"`
	Audio       []AudioSpec `yaml:"audio"`
}

func LoadPickupSpec(filename string) (*PickupSpec, error) {
	spec, err := LoadSpec[PickupSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ArenaSpec places every actor of one fight.
type ArenaSpec struct {
	Name    string            `yaml:"name"`
	Seed    uint64            `yaml:"seed"`
	Size    float64           `yaml:"size"`
	Player  ArenaPlayerSpec   `yaml:"player"`
	Enemies []ArenaEnemySpec  `yaml:"enemies"`
	Boss    *ArenaBossSpec    `yaml:"boss"`
	Pickups []ArenaPickupSpec `yaml:"pickups"`
}

type ArenaPlayerSpec struct {
	Prefab   string       `yaml:"prefab"`
	Position PositionSpec `yaml:"position"`
}

type ArenaEnemySpec struct {
	Prefab    string         `yaml:"prefab"`
	Position  PositionSpec   `yaml:"position"`
	Waypoints []PositionSpec `yaml:"waypoints"`
	Overrides map[string]any `yaml:"overrides"`
}

type ArenaBossSpec struct {
	Prefab    string         `yaml:"prefab"`
	Position  PositionSpec   `yaml:"position"`
	Overrides map[string]any `yaml:"overrides"`
}

type ArenaPickupSpec struct {
	Prefab   string       `yaml:"prefab"`
	Position PositionSpec `yaml:"position"`
}

func LoadArenaSpec(filename string) (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ApplyOverrides decodes raw over an already loaded spec. Keys missing from
// raw keep the spec's values.
func ApplyOverrides[T any](spec *T, raw map[string]any) error {
	if spec == nil || len(raw) == 0 {
		return nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("prefabs: encode overrides: %w", err)
	}
	if err := yaml.Unmarshal(b, spec); err != nil {
		return fmt.Errorf("prefabs: apply overrides: %w", err)
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

// Or returns the parsed color, or fallback when none was set.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
