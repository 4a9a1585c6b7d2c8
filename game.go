package main

import (
	"fmt"
	"log"
	"math"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/shooter/arena"
	"github.com/milk9111/shooter/common"
	"github.com/milk9111/shooter/ecs"
	"github.com/milk9111/shooter/prefabs"
	"github.com/milk9111/shooter/sim"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	feedLines = 6
)

type Game struct {
	arenaName string
	opts      arena.Options

	arena *arena.Arena
	sched *ecs.Scheduler
	frame sim.Frame
	feed  []string
	kills int
	shots int
	hits  int

	watcher *prefabs.Watcher

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

// NewGame loads arenaName. A non-nil watcher retunes the running arena when
// a prefab changes on disk.
func NewGame(arenaName string, opts arena.Options, watcher *prefabs.Watcher) (*Game, error) {
	g := &Game{arenaName: arenaName, opts: opts, watcher: watcher}
	if err := g.restart(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) restart() error {
	a, err := arena.Load(g.arenaName, g.opts)
	if err != nil {
		return fmt.Errorf("load arena %s: %w", g.arenaName, err)
	}
	g.arena = a
	g.sched = a.Scheduler()
	g.frame = sim.Snapshot(a, nil)
	g.feed = nil
	g.kills, g.shots, g.hits = 0, 0, 0
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.applyEdits()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && g.playerDead() {
		return g.restart()
	}

	g.readInput()
	g.sched.Update(g.arena.World, 1/float64(ebiten.TPS()))

	events := g.arena.World.Events().Drain()
	g.record(events)
	g.frame = sim.Snapshot(g.arena, events)
	return nil
}

// applyEdits drains the watcher without blocking the frame.
func (g *Game) applyEdits() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.arena.Reload(name); err != nil {
				log.Printf("game: reload %s: %v", name, err)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("game: watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) readInput() {
	in := g.arena.Input()
	if in == nil {
		return
	}

	var move common.Vec3
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move.Z++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move.Z--
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move.X++
	}

	const stickDeadzone = 0.2
	var aim common.Vec3
	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			move = common.Vec3{X: lx, Z: -ly}
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			aim = common.Vec3{X: rx, Z: -ry}
		}
		in.Shoot = in.Shoot || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.NextWeapon = in.NextWeapon || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
		in.PreviousWeapon = in.PreviousWeapon || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopLeft)
	}

	if aim.Len() == 0 {
		if p, ok := g.playerActor(); ok {
			mx, my := ebiten.CursorPosition()
			x, z := g.view().unproject(float64(mx), float64(my))
			aim = common.Vec3{X: x - p.X, Z: z - p.Z}
		}
	}

	in.Move = move
	in.Aim = aim
	in.Shoot = in.Shoot || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.JumpPressed = in.JumpPressed || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.NextWeapon = in.NextWeapon || inpututil.IsKeyJustPressed(ebiten.KeyE)
	in.PreviousWeapon = in.PreviousWeapon || inpututil.IsKeyJustPressed(ebiten.KeyQ)
	if _, dy := ebiten.Wheel(); dy < 0 {
		in.NextWeapon = true
	} else if dy > 0 {
		in.PreviousWeapon = true
	}
}

func (g *Game) record(events []ecs.Event) {
	for _, evt := range events {
		switch d := evt.Data.(type) {
		case ecs.Shot:
			g.shots++
			if d.Hit {
				g.hits++
			}
		case ecs.Death:
			if d.Entity != g.arena.Player {
				g.kills++
			}
		}
		if line, ok := sim.EventLine(evt); ok {
			g.feed = append(g.feed, line)
		}
	}
	if len(g.feed) > feedLines {
		g.feed = g.feed[len(g.feed)-feedLines:]
	}
}

func (g *Game) playerActor() (sim.Actor, bool) {
	for _, a := range g.frame.Actors {
		if a.Kind == "player" {
			return a, true
		}
	}
	return sim.Actor{}, false
}

func (g *Game) playerDead() bool {
	t := g.arena.PlayerTarget()
	return t != nil && t.Dead()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.draw(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
