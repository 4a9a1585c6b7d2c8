package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/shooter/assets"
	"github.com/milk9111/shooter/common"
	"github.com/milk9111/shooter/sim"
	"golang.org/x/image/colornames"
)

const (
	hudHeight     = 40
	mapMargin     = 16
	defaultSize   = 60
	jumpLift      = 0.5
	lineHeight    = 16
	heldAlpha     = 0.6
	deadFadeAlpha = 0.35
)

var (
	floorColor  = color.NRGBA{R: 0x1c, G: 0x1f, B: 0x24, A: 0xff}
	gridColor   = color.NRGBA{R: 0x2a, G: 0x2e, B: 0x36, A: 0xff}
	shadowColor = color.NRGBA{A: 0x60}
	flashColor  = color.NRGBA{R: 0xff, A: 0xff}
)

// view maps floor coordinates to the screen with +Z pointing up.
type view struct {
	ox, oy float64
	scale  float64
}

func (g *Game) view() view {
	size := g.frame.Size
	if size <= 0 {
		size = defaultSize
	}
	side := math.Min(baseWidth, baseHeight-hudHeight) - 2*mapMargin
	return view{
		ox:    baseWidth / 2,
		oy:    hudHeight + (baseHeight-hudHeight)/2,
		scale: side / size,
	}
}

func (v view) project(x, z float64) (float32, float32) {
	return float32(v.ox + x*v.scale), float32(v.oy - z*v.scale)
}

func (v view) unproject(sx, sy float64) (float64, float64) {
	return (sx - v.ox) / v.scale, (v.oy - sy) / v.scale
}

func (v view) length(d float64) float32 { return float32(d * v.scale) }

func (g *Game) draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	v := g.view()
	g.drawFloor(screen, v)

	for _, e := range g.frame.Effects {
		drawEffect(screen, v, e)
	}
	for _, a := range g.frame.Actors {
		g.drawActor(screen, v, a)
	}

	g.drawHUD(screen)
	if alpha := g.frame.Flash; alpha > 0 {
		vector.FillRect(screen, 0, 0, baseWidth, baseHeight, fade(flashColor, alpha*0.5), false)
	}
}

func (g *Game) drawFloor(screen *ebiten.Image, v view) {
	size := g.frame.Size
	if size <= 0 {
		size = defaultSize
	}
	x0, y0 := v.project(-size/2, size/2)
	side := v.length(size)
	vector.FillRect(screen, x0, y0, side, side, floorColor, false)

	const cell = 5
	for d := -size / 2; d <= size/2; d += cell {
		ax, ay := v.project(d, -size/2)
		bx, by := v.project(d, size/2)
		vector.StrokeLine(screen, ax, ay, bx, by, 1, gridColor, false)
		ax, ay = v.project(-size/2, d)
		bx, by = v.project(size/2, d)
		vector.StrokeLine(screen, ax, ay, bx, by, 1, gridColor, false)
	}
	vector.StrokeRect(screen, x0, y0, side, side, 2, colornames.Slategray, false)
}

func drawEffect(screen *ebiten.Image, v view, e sim.Effect) {
	switch e.Kind {
	case "shockwave":
		cx, cy := v.project(e.X, e.Z)
		r := common.Lerp(0, v.length(e.Radius), float32(e.Progress))
		vector.StrokeCircle(screen, cx, cy, r, 3, fade(colornames.Orange, 1-e.Progress), true)
	case "tracer":
		ax, ay := v.project(e.X, e.Z)
		bx, by := v.project(e.ToX, e.ToZ)
		vector.StrokeLine(screen, ax, ay, bx, by, 2, fade(colornames.Lightyellow, 1-e.Progress), true)
	}
}

func (g *Game) drawActor(screen *ebiten.Image, v view, a sim.Actor) {
	cx, cy := v.project(a.X, a.Z)
	r := v.length(a.Radius)
	if r < 3 {
		r = 3
	}
	clr := g.arena.Colors[a.Entity].Or(defaultColor(a.Kind))

	switch {
	case a.State == "dead":
		clr = fade(clr, deadFadeAlpha)
	case a.Kind == "projectile" && a.State == "held":
		clr = fade(clr, heldAlpha)
	}

	// airborne actors float above their shadow
	if a.Y > 0 {
		vector.FillCircle(screen, cx, cy, r, shadowColor, true)
		cy -= v.length(a.Y * jumpLift)
	}
	vector.FillCircle(screen, cx, cy, r, clr, true)

	if a.Kind == "projectile" || a.Kind == "pickup" {
		return
	}
	h := common.Heading(a.Yaw)
	hx, hy := cx+float32(h.X)*r*1.6, cy-float32(h.Z)*r*1.6
	vector.StrokeLine(screen, cx, cy, hx, hy, 2, colornames.White, true)

	if a.Kind != "player" {
		label := a.Name
		if a.State != "" {
			label += " " + a.State
		}
		drawText(screen, label, float64(cx)-float64(len(label))*3.5, float64(cy+r)+2, colornames.Lightgray)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, baseWidth, hudHeight, color.NRGBA{A: 0xc0}, false)
	hud := fmt.Sprintf("HEALTH %3d   %s   t=%.1fs", g.frame.Health, g.frame.Weapon, g.frame.T)
	drawText(screen, hud, 12, 12, colornames.White)
	drawText(screen, "WASD move  mouse aim  click shoot  Q/E weapon  space jump  esc pause", baseWidth-500, 12, colornames.Gray)

	for i, line := range g.feed {
		drawText(screen, line, 12, float64(hudHeight+8+i*lineHeight), colornames.Lightgray)
	}
	if g.playerDead() {
		msg := "YOU DIED - press R to restart"
		drawText(screen, msg, baseWidth/2-float64(len(msg))*3.5, baseHeight/2, colornames.Red)
	}
}

func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, assets.Face, op)
}

func defaultColor(kind string) color.Color {
	switch kind {
	case "player":
		return colornames.Deepskyblue
	case "enemy":
		return colornames.Crimson
	case "boss":
		return colornames.Purple
	case "projectile":
		return colornames.Sandybrown
	case "pickup":
		return colornames.Gold
	}
	return colornames.White
}

func fade(c color.Color, alpha float64) color.Color {
	alpha = common.ClampFloat(alpha, 0, 1)
	r, g, b, a := c.RGBA()
	return color.NRGBA64{
		R: uint16(r * 0xffff / max(a, 1)),
		G: uint16(g * 0xffff / max(a, 1)),
		B: uint16(b * 0xffff / max(a, 1)),
		A: uint16(float64(a) * alpha),
	}
}
