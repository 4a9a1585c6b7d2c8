package sim

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/shooter/ecs"
)

func row(s tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestTerminalViewDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	v, err := NewTerminalView(screen)
	if err != nil {
		t.Fatalf("NewTerminalView: %v", err)
	}
	defer v.Close()
	screen.SetSize(40, 20)

	v.Draw(Frame{
		T:      3.5,
		Size:   60,
		Health: 80,
		Weapon: "Pistol: 11/12",
		Actors: []Actor{
			{Kind: "player", X: 0, Z: 0, State: "alive"},
			{Kind: "enemy", X: 30, Z: 0, State: "tracking"},
		},
		Events: []ecs.Event{{Type: ecs.EventDeath, Data: ecs.Death{Actor: "grunt#1", At: 3.5}}},
	})

	if hud := row(screen, 0, 40); !strings.Contains(hud, "health  80") || !strings.Contains(hud, "Pistol: 11/12") {
		t.Fatalf("unexpected HUD %q", hud)
	}
	if r, _, _, _ := screen.GetContent(19, 8); r != '@' {
		t.Fatalf("expected the player at the middle of the map, got %q", r)
	}
	if line := row(screen, 16, 40); !strings.Contains(line, "grunt#1 died") {
		t.Fatalf("expected the death in the log, got %q", line)
	}
}

func TestTerminalViewQuit(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	v, err := NewTerminalView(screen)
	if err != nil {
		t.Fatalf("NewTerminalView: %v", err)
	}
	defer v.Close()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case <-v.Quit():
	case <-time.After(2 * time.Second):
		t.Fatalf("expected q to quit")
	}
}

func TestActorGlyph(t *testing.T) {
	tests := []struct {
		actor Actor
		want  rune
	}{
		{Actor{Kind: "player"}, '@'},
		{Actor{Kind: "enemy", State: "dead"}, 'x'},
		{Actor{Kind: "boss", State: "idle"}, 'B'},
		{Actor{Kind: "pickup", State: "health"}, 'h'},
		{Actor{Kind: "pickup", State: "ammo"}, 'a'},
		{Actor{Kind: "projectile"}, 'o'},
	}
	for _, tt := range tests {
		if got, _ := actorGlyph(tt.actor); got != tt.want {
			t.Fatalf("%+v: expected %q, got %q", tt.actor, tt.want, got)
		}
	}
}
