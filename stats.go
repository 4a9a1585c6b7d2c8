package main

import (
	"fmt"
	"strings"
	"sync"

	"golang.design/x/clipboard"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// stats summarizes the run so far for the pause menu.
func (g *Game) stats() string {
	var b strings.Builder
	fmt.Fprintf(&b, "arena %s  t=%.1fs\n", g.arena.Spec.Name, g.frame.T)
	fmt.Fprintf(&b, "health %d\n", g.frame.Health)
	fmt.Fprintf(&b, "shots %d  hits %d  kills %d\n", g.shots, g.hits, g.kills)
	if t := g.arena.PlayerTarget(); t != nil {
		for _, w := range t.Weapons() {
			fmt.Fprintf(&b, "%s %d/%d\n", w.Name, w.Ammo, w.Capacity)
		}
	}
	return b.String()
}

func copyStats(s string) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return clipboardErr
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}
