package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/milk9111/shooter/arena"
	"github.com/milk9111/shooter/prefabs"
	"github.com/milk9111/shooter/sim"
	"github.com/milk9111/shooter/synth"
	"gopkg.in/yaml.v3"
)

func main() {
	arenaName := flag.String("arena", arena.DefaultArena, "arena prefab in prefabs/")
	scriptName := flag.String("script", sim.DefaultScript, "player script in prefabs/scripts/")
	duration := flag.Float64("duration", sim.DefaultDuration, "simulated seconds")
	step := flag.Float64("step", sim.DefaultStep, "seconds per tick")
	parallel := flag.Bool("parallel", false, "tick enemies concurrently")
	stopOnDeath := flag.Bool("stop-on-death", true, "end the run when the player dies")
	out := flag.String("out", "", "write the transcript as YAML to this file (- for stdout)")
	wavPath := flag.String("wav", "", "mix the run's sound cues into this wav file")
	serve := flag.String("serve", "", "stream frames to websocket spectators on this address (runs in real time)")
	tui := flag.Bool("tui", false, "draw the run in the terminal (runs in real time)")
	listScripts := flag.Bool("scripts", false, "list the built-in player scripts and exit")
	frameSchema := flag.Bool("frame-schema", false, "print the JSON schema of spectator frames and exit")
	flag.Parse()

	if *listScripts {
		for _, name := range prefabs.Scripts() {
			fmt.Println(name)
		}
		return
	}
	if *frameSchema {
		data, err := sim.FrameSchema()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(data))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := sim.Config{
		Arena:       *arenaName,
		Script:      *scriptName,
		Duration:    *duration,
		Step:        *step,
		Parallel:    *parallel,
		StopOnDeath: *stopOnDeath,
		Realtime:    *serve != "" || *tui,
	}

	var observers []func(sim.Frame)

	if *serve != "" {
		hub := sim.NewHub()
		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		srv := &http.Server{Addr: *serve, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("arenasim: serve: %v", err)
			}
		}()
		defer func() {
			hub.Close()
			shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdown)
		}()
		log.Printf("arenasim: spectators can connect to ws://%s/ws", *serve)
		observers = append(observers, hub.Publish)
	}

	if *tui {
		view, err := sim.NewTerminalView(nil)
		if err != nil {
			log.Fatal(err)
		}
		// the terminal is ours until Close, so keep the log out of it
		log.SetOutput(io.Discard)
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		go func() {
			select {
			case <-view.Quit():
				cancel()
			case <-ctx.Done():
			}
		}()
		defer func() {
			cancel()
			view.Close()
			log.SetOutput(os.Stderr)
		}()
		observers = append(observers, view.Draw)
	}

	if len(observers) > 0 {
		cfg.Observe = func(f sim.Frame) {
			for _, o := range observers {
				o(f)
			}
		}
	}

	tr, err := sim.Run(ctx, cfg)
	if err != nil && tr == nil {
		log.Fatal(err)
	}
	if err != nil {
		log.Printf("arenasim: run ended early: %v", err)
	}

	if *out != "" {
		if err := writeTranscript(*out, tr); err != nil {
			log.Fatal(err)
		}
	}
	if *wavPath != "" {
		if err := writeWAV(*wavPath, tr); err != nil {
			log.Fatal(err)
		}
	}
	printSummary(os.Stdout, tr)
}

func writeTranscript(path string, tr *sim.Transcript) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("arenasim: %w", err)
		}
		defer f.Close()
		w = f
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tr); err != nil {
		return fmt.Errorf("arenasim: encode transcript: %w", err)
	}
	return enc.Close()
}

func writeWAV(path string, tr *sim.Transcript) error {
	clips := make([]synth.Placed, 0, len(tr.Cues))
	for _, c := range tr.Cues {
		clips = append(clips, synth.Placed{At: c.At, Clip: c.Spec})
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("arenasim: %w", err)
	}
	defer f.Close()
	return synth.WriteWAV(f, clips, tr.Elapsed)
}

func printSummary(w io.Writer, tr *sim.Transcript) {
	fmt.Fprintf(w, "%s with %s: %d ticks, %.2fs\n", tr.Arena, tr.Script, tr.Ticks, tr.Elapsed)
	fmt.Fprintf(w, "player health %d", tr.FinalHealth)
	if tr.PlayerDead {
		fmt.Fprint(w, " (dead)")
	}
	fmt.Fprintln(w)
	for _, wpn := range tr.Weapons {
		fmt.Fprintf(w, "  %s: %d/%d\n", wpn.Name, wpn.Ammo, wpn.Capacity)
	}

	bySource := tr.DamageBySource()
	sources := make([]string, 0, len(bySource))
	for s := range bySource {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	for _, s := range sources {
		fmt.Fprintf(w, "  damage from %s: %d\n", s, bySource[s])
	}
	fmt.Fprintf(w, "%d shots, %d pickups, %d deaths, %d state changes, %d sound cues\n",
		len(tr.Shots), len(tr.Pickups), len(tr.Deaths), len(tr.StateChanges), len(tr.Cues))
	for _, d := range tr.Deaths {
		fmt.Fprintf(w, "  %s died at %.2fs\n", d.Actor, d.At)
	}
}
