package ecs

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/milk9111/shooter/common"
	"github.com/milk9111/shooter/ecs/component"
)

func spawnAt(t *testing.T, w *World, x, z float64) Entity {
	t.Helper()
	e := CreateEntity(w)
	if err := Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: common.Vec3{X: x, Z: z}}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	return e
}

func TestEntityLifecycle(t *testing.T) {
	tests := []struct {
		name    string
		create  int
		destroy int // -1 = none
	}{
		{"single", 1, 0},
		{"destroy_middle", 3, 1},
		{"keep_all", 2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, tt.create)
			for i := 0; i < tt.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			want := tt.create
			if tt.destroy >= 0 {
				if !DestroyEntity(w, ents[tt.destroy]) {
					t.Fatalf("DestroyEntity should succeed for a live entity")
				}
				if IsAlive(w, ents[tt.destroy]) {
					t.Fatalf("entity still alive after destroy")
				}
				want--
			}
			if got := len(Entities(w)); got != want {
				t.Fatalf("expected %d entities, got %d", want, got)
			}
		})
	}
}

func TestComponentsMutateInPlace(t *testing.T) {
	w := NewWorld()
	e := spawnAt(t, w, 1, 2)

	tr, ok := Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("expected a transform")
	}
	tr.Yaw = 90

	again, _ := Get(w, e, component.TransformComponent.Kind())
	if again.Yaw != 90 {
		t.Fatalf("expected the stored pointer to be shared, yaw = %v", again.Yaw)
	}
	if Has(w, e, component.TTLComponent.Kind()) {
		t.Fatalf("unexpected TTL")
	}
	if !Remove(w, e, component.TransformComponent.Kind()) || Has(w, e, component.TransformComponent.Kind()) {
		t.Fatalf("expected the transform to be removed")
	}
	if Remove(w, e, component.TransformComponent.Kind()) {
		t.Fatalf("second remove should report false")
	}
}

func TestQueriesIntersect(t *testing.T) {
	w := NewWorld()
	both := spawnAt(t, w, 0, 0)
	onlyTransform := spawnAt(t, w, 1, 0)
	onlyTTL := CreateEntity(w)
	for _, e := range []Entity{both, onlyTTL} {
		if err := Add(w, e, component.TTLComponent.Kind(), &component.TTL{Remaining: 1, Total: 1}); err != nil {
			t.Fatal(err)
		}
	}
	if err := Add(w, both, component.TracerComponent.Kind(), &component.Tracer{}); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, both, component.ShockwaveComponent.Kind(), &component.Shockwave{}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		run  func() []Entity
		want []Entity
	}{
		{"one", func() (out []Entity) {
			ForEach(w, component.TransformComponent.Kind(), func(e Entity, _ *component.Transform) {
				out = append(out, e)
			})
			return
		}, []Entity{both, onlyTransform}},
		{"two", func() (out []Entity) {
			ForEach2(w, component.TransformComponent.Kind(), component.TTLComponent.Kind(), func(e Entity, _ *component.Transform, _ *component.TTL) {
				out = append(out, e)
			})
			return
		}, []Entity{both}},
		{"three", func() (out []Entity) {
			ForEach3(w, component.TTLComponent.Kind(), component.TransformComponent.Kind(), component.TracerComponent.Kind(), func(e Entity, _ *component.TTL, _ *component.Transform, _ *component.Tracer) {
				out = append(out, e)
			})
			return
		}, []Entity{both}},
		{"four", func() (out []Entity) {
			ForEach4(w, component.TTLComponent.Kind(), component.TransformComponent.Kind(), component.TracerComponent.Kind(), component.ShockwaveComponent.Kind(),
				func(e Entity, _ *component.TTL, _ *component.Transform, _ *component.Tracer, _ *component.Shockwave) {
					out = append(out, e)
				})
			return
		}, []Entity{both}},
		{"missing_store", func() (out []Entity) {
			ForEach2(w, component.TransformComponent.Kind(), component.PickupComponent.Kind(), func(e Entity, _ *component.Transform, _ *component.Pickup) {
				out = append(out, e)
			})
			return
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.run()
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			seen := make(map[Entity]bool, len(got))
			for _, e := range got {
				seen[e] = true
			}
			for _, e := range tt.want {
				if !seen[e] {
					t.Fatalf("expected %v in %v", e, got)
				}
			}
		})
	}
}

func TestQueriesSkipDestroyed(t *testing.T) {
	w := NewWorld()
	e := spawnAt(t, w, 0, 0)
	_ = Add(w, e, component.TTLComponent.Kind(), &component.TTL{})
	DestroyEntity(w, e)

	calls := 0
	ForEach2(w, component.TransformComponent.Kind(), component.TTLComponent.Kind(), func(Entity, *component.Transform, *component.TTL) { calls++ })
	if calls != 0 {
		t.Fatalf("expected no visits after destroy, got %d", calls)
	}
}

func TestStaleHandleRejected(t *testing.T) {
	w := NewWorld()
	old := spawnAt(t, w, 0, 0)
	DestroyEntity(w, old)

	reused := CreateEntity(w)
	if reused.id() != old.id() {
		t.Fatalf("expected the freed slot to be reused")
	}
	if reused == old {
		t.Fatalf("reused handle should carry a new generation")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle reported alive")
	}
	if _, ok := Get(w, reused, component.TransformComponent.Kind()); ok {
		t.Fatalf("component leaked into the reused slot")
	}
	if err := Add(w, old, component.TransformComponent.Kind(), &component.Transform{}); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("err = %v, want ErrEntityNotAlive", err)
	}
	if DestroyEntity(w, old) {
		t.Fatalf("destroying a stale handle should fail")
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	var zero component.ComponentKind[component.TTL]
	if err := Add(w, e, zero, &component.TTL{}); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("err = %v, want ErrInvalidComponentKind", err)
	}
	err := Add[component.TTL](w, e, component.TTLComponent.Kind(), nil)
	if !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("err = %v, want ErrNilComponent", err)
	}
	if got := component.TTLComponent.Kind().Name(); got != "component.TTL" {
		t.Fatalf("kind name = %q", got)
	}
}

func TestFirstAndCount(t *testing.T) {
	w := NewWorld()
	k := component.PlayerTagComponent.Kind()
	if _, ok := First(w, k); ok {
		t.Fatalf("empty world has no first entity")
	}
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	_ = Add(w, e1, k, &component.PlayerTag{})
	_ = Add(w, e2, k, &component.PlayerTag{})
	if got, ok := First(w, k); !ok || got != e1 {
		t.Fatalf("first = %v, want %v", got, e1)
	}
	DestroyEntity(w, e1)
	if got, ok := First(w, k); !ok || got != e2 {
		t.Fatalf("first = %v, want %v", got, e2)
	}
	if Count(w, k) != 1 {
		t.Fatalf("count = %d, want 1", Count(w, k))
	}
}

func TestForEachAllowsDestroy(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 5; i++ {
		spawnAt(t, w, float64(i), 0)
	}
	seen := 0
	ForEach(w, component.TransformComponent.Kind(), func(e Entity, _ *component.Transform) {
		seen++
		DestroyEntity(w, e)
	})
	if seen != 5 || len(Entities(w)) != 0 {
		t.Fatalf("seen = %d remaining = %d", seen, len(Entities(w)))
	}
}

func TestEntityText(t *testing.T) {
	e := makeEntity(3, 2)
	data, err := json.Marshal(map[string]Entity{"id": e})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"id":"3v2"}` {
		t.Fatalf("json = %s", data)
	}

	var back map[string]Entity
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back["id"] != e {
		t.Fatalf("round trip = %v, want %v", back["id"], e)
	}

	for _, bad := range []string{"", "3", "xv1", "3vx"} {
		var got Entity
		if err := got.UnmarshalText([]byte(bad)); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestSchedulerClock(t *testing.T) {
	w := NewWorld()
	var got []float64
	s := NewScheduler(systemFunc(func(w *World) { got = append(got, w.Delta()) }), nil)
	s.Update(w, 0.25)
	s.Run(w, 0.5, 2)
	if len(got) != 3 || got[0] != 0.25 || got[2] != 0.5 {
		t.Fatalf("deltas = %v", got)
	}
	if w.Elapsed() != 1.25 {
		t.Fatalf("elapsed = %v", w.Elapsed())
	}
	if s.Ticks() != 3 || len(s.Systems()) != 1 {
		t.Fatalf("ticks = %d systems = %d", s.Ticks(), len(s.Systems()))
	}
}

type systemFunc func(w *World)

func (f systemFunc) Update(w *World) { f(w) }
