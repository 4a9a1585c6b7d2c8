package sim

import (
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/shooter/ecs"
)

const logLines = 4

var (
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBorder     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer     = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleEnemy      = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleDead       = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleBoss       = tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	stylePickup     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleEffect     = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleLog        = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// TerminalView draws frames top-down in a terminal. Escape, q or Ctrl-C
// closes the channel returned by Quit.
type TerminalView struct {
	screen tcell.Screen

	mu  sync.Mutex
	log []string

	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
}

// NewTerminalView takes over screen, or the real terminal when screen is nil.
func NewTerminalView(screen tcell.Screen) (*TerminalView, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("sim: terminal: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("sim: terminal: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	v := &TerminalView{screen: screen, quit: make(chan struct{}), done: make(chan struct{})}
	go v.poll()
	return v, nil
}

func (v *TerminalView) Quit() <-chan struct{} { return v.quit }

// Close restores the terminal.
func (v *TerminalView) Close() {
	v.screen.Fini()
	<-v.done
}

func (v *TerminalView) poll() {
	defer close(v.done)
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				v.quitOnce.Do(func() { close(v.quit) })
			}
		case *tcell.EventResize:
			v.screen.Sync()
		}
	}
}

// Draw renders f and the most recent event lines.
func (v *TerminalView) Draw(f Frame) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, evt := range f.Events {
		if line, ok := EventLine(evt); ok {
			v.log = append(v.log, line)
		}
	}
	if len(v.log) > logLines {
		v.log = v.log[len(v.log)-logLines:]
	}

	s := v.screen
	s.Clear()
	width, height := s.Size()
	mapTop, mapBottom := 1, height-logLines-1
	if width < 3 || mapBottom-mapTop < 3 {
		s.Show()
		return
	}

	putString(s, 0, 0, fmt.Sprintf("t=%5.1fs  health %3d  %s", f.T, f.Health, f.Weapon), styleHUD)
	drawBox(s, 0, mapTop, width-1, mapBottom)

	size := f.Size
	if size <= 0 {
		size = 60
	}
	project := func(x, z float64) (int, int) {
		cx := 1 + int((x/size+0.5)*float64(width-3))
		// +Z is up the screen
		cy := mapTop + 1 + int((0.5-z/size)*float64(mapBottom-mapTop-2))
		return cx, cy
	}
	inside := func(cx, cy int) bool {
		return cx > 0 && cx < width-1 && cy > mapTop && cy < mapBottom
	}

	for _, e := range f.Effects {
		switch e.Kind {
		case "shockwave":
			r := e.Radius * e.Progress
			for a := 0.0; a < 2*math.Pi; a += math.Pi / 12 {
				if cx, cy := project(e.X+r*math.Sin(a), e.Z+r*math.Cos(a)); inside(cx, cy) {
					s.SetContent(cx, cy, '*', nil, styleEffect)
				}
			}
		case "tracer":
			for i := 0; i <= 8; i++ {
				p := float64(i) / 8
				if cx, cy := project(e.X+(e.ToX-e.X)*p, e.Z+(e.ToZ-e.Z)*p); inside(cx, cy) {
					s.SetContent(cx, cy, '.', nil, styleEffect)
				}
			}
		}
	}

	for _, a := range f.Actors {
		cx, cy := project(a.X, a.Z)
		if !inside(cx, cy) {
			continue
		}
		r, style := actorGlyph(a)
		s.SetContent(cx, cy, r, nil, style)
	}

	for i, line := range v.log {
		putString(s, 0, mapBottom+1+i, line, styleLog)
	}
	s.Show()
}

func actorGlyph(a Actor) (rune, tcell.Style) {
	switch a.Kind {
	case "player":
		if a.State == "dead" {
			return 'p', styleDead
		}
		return '@', stylePlayer
	case "enemy":
		if a.State == "dead" {
			return 'x', styleDead
		}
		return 'E', styleEnemy
	case "boss":
		if a.State == "dead" {
			return 'X', styleDead
		}
		return 'B', styleBoss
	case "projectile":
		return 'o', styleProjectile
	case "pickup":
		if a.State == "health" {
			return 'h', stylePickup
		}
		return 'a', stylePickup
	}
	return '?', tcell.StyleDefault
}

// EventLine describes evt for an event feed. Events with nothing worth
// showing report false.
func EventLine(evt ecs.Event) (string, bool) {
	switch d := evt.Data.(type) {
	case ecs.StateChange:
		return fmt.Sprintf("%6.2f %s: %s -> %s", d.At, d.Actor, d.From, d.To), true
	case ecs.Damage:
		return fmt.Sprintf("%6.2f %s hit the player for %d", d.At, d.Source, d.Amount), true
	case ecs.PickupCollected:
		return fmt.Sprintf("%6.2f picked up %s +%d", d.At, d.Kind, d.Value), true
	case ecs.Death:
		return fmt.Sprintf("%6.2f %s died", d.At, d.Actor), true
	}
	return "", false
}

func putString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawBox(s tcell.Screen, x0, y0, x1, y1 int) {
	for x := x0; x <= x1; x++ {
		s.SetContent(x, y0, '-', nil, styleBorder)
		s.SetContent(x, y1, '-', nil, styleBorder)
	}
	for y := y0 + 1; y < y1; y++ {
		s.SetContent(x0, y, '|', nil, styleBorder)
		s.SetContent(x1, y, '|', nil, styleBorder)
	}
}
