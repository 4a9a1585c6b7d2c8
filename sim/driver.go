package sim

import (
	"fmt"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/shooter/arena"
	"github.com/milk9111/shooter/common"
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/ecs/component"
	"github.com/milk9111/shooter/prefabs"
)

// Driver steers the player with a scenario script. The script runs once per
// tick with `t` set to the elapsed seconds and leaves its commands in the
// globals move_x, move_z, aim_x, aim_z, shoot, jump and weapon.
type Driver struct {
	name     string
	arena    *arena.Arena
	compiled *tengo.Compiled
}

// script globals read back after every run
var driverOutputs = []string{"move_x", "move_z", "aim_x", "aim_z", "shoot", "jump", "weapon"}

func NewDriver(a *arena.Arena, scriptName string) (*Driver, error) {
	if a == nil {
		return nil, fmt.Errorf("sim: nil arena")
	}
	src, err := prefabs.LoadScript(scriptName)
	if err != nil {
		return nil, fmt.Errorf("sim: load script %s: %w", scriptName, err)
	}

	d := &Driver{name: scriptName, arena: a}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	_ = script.Add("t", 0.0)
	_ = script.Add("player_position", &tengo.UserFunction{Name: "player_position", Value: d.playerPosition})
	_ = script.Add("nearest_enemy", &tengo.UserFunction{Name: "nearest_enemy", Value: d.nearestEnemy})
	_ = script.Add("health", &tengo.UserFunction{Name: "health", Value: d.health})

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("sim: compile script %s: %w", scriptName, err)
	}
	d.compiled = compiled
	return d, nil
}

// Drive runs the script for the current tick and writes the player's input.
func (d *Driver) Drive() error {
	in := d.arena.Input()
	if in == nil {
		return nil
	}
	if err := d.compiled.Set("t", d.arena.World.Elapsed()); err != nil {
		return err
	}
	if err := d.compiled.Run(); err != nil {
		return fmt.Errorf("sim: script %s: %w", d.name, err)
	}

	out := make(map[string]*tengo.Variable, len(driverOutputs))
	for _, name := range driverOutputs {
		if d.compiled.IsDefined(name) {
			out[name] = d.compiled.Get(name)
		}
	}

	in.Move = common.Vec3{X: number(out["move_x"]), Z: number(out["move_z"])}
	in.Aim = common.Vec3{X: number(out["aim_x"]), Z: number(out["aim_z"])}
	in.Shoot = flag(out["shoot"])
	in.JumpPressed = flag(out["jump"])
	switch strings.ToLower(strings.TrimSpace(text(out["weapon"]))) {
	case "next":
		in.NextWeapon = true
	case "previous", "prev":
		in.PreviousWeapon = true
	}
	return nil
}

func (d *Driver) playerPosition(args ...tengo.Object) (tengo.Object, error) {
	t, ok := ecs.Get(d.arena.World, d.arena.Player, component.TransformComponent.Kind())
	if !ok {
		return tengo.UndefinedValue, nil
	}
	return vecObject(t.Position), nil
}

// nearestEnemy returns the position of the closest living enemy or boss.
func (d *Driver) nearestEnemy(args ...tengo.Object) (tengo.Object, error) {
	w := d.arena.World
	self, ok := ecs.Get(w, d.arena.Player, component.TransformComponent.Kind())
	if !ok {
		return tengo.UndefinedValue, nil
	}

	best := math.Inf(1)
	var found *common.Vec3
	consider := func(p common.Vec3) {
		if dist := common.Distance(self.Position.Flat(), p.Flat()); dist < best {
			best = dist
			found = &p
		}
	}
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, en *component.Enemy, t *component.Transform) {
		if en.Brain != nil && !en.Brain.Dead() {
			consider(t.Position)
		}
	})
	ecs.ForEach2(w, component.BossComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.Boss, t *component.Transform) {
		if b.Brain != nil && !b.Brain.Dead() {
			consider(t.Position)
		}
	})

	if found == nil {
		return tengo.UndefinedValue, nil
	}
	return vecObject(*found), nil
}

func (d *Driver) health(args ...tengo.Object) (tengo.Object, error) {
	target := d.arena.PlayerTarget()
	if target == nil {
		return tengo.UndefinedValue, nil
	}
	return &tengo.Int{Value: int64(target.Health())}, nil
}

func vecObject(v common.Vec3) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v.X},
		&tengo.Float{Value: v.Y},
		&tengo.Float{Value: v.Z},
	}}
}

func number(v *tengo.Variable) float64 {
	if v == nil || v.IsUndefined() {
		return 0
	}
	return v.Float()
}

func flag(v *tengo.Variable) bool {
	if v == nil || v.IsUndefined() {
		return false
	}
	return v.Bool()
}

func text(v *tengo.Variable) string {
	if v == nil || v.IsUndefined() {
		return ""
	}
	return v.String()
}
