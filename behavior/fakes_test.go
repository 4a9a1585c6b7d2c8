package behavior

import "github.com/milk9111/shooter/common"

type fakeLocator struct{ pos common.Vec3 }

func (f *fakeLocator) Position() common.Vec3 { return f.pos }

type fakeAnimation struct{ triggers []string }

func (f *fakeAnimation) Trigger(name string) { f.triggers = append(f.triggers, name) }

func (f *fakeAnimation) count(name string) int {
	n := 0
	for _, t := range f.triggers {
		if t == name {
			n++
		}
	}
	return n
}

type fakeSound struct {
	busy   bool
	played []string
}

func (f *fakeSound) PlayIfIdle(clip string) bool {
	if f.busy {
		return false
	}
	f.played = append(f.played, clip)
	return true
}

func (f *fakeSound) Busy() bool { return f.busy }

type fakeMovement struct {
	destinations []common.Vec3
	stopped      bool
}

func (f *fakeMovement) SetDestination(p common.Vec3) { f.destinations = append(f.destinations, p) }
func (f *fakeMovement) Stop()                        { f.stopped = true }

type fakePatrol struct{ on bool }

func (f *fakePatrol) SetPatrolling(on bool) { f.on = on }

// fixedRandom returns values in order, then repeats the last one.
type fixedRandom struct {
	values []int
	calls  int
}

func (f *fixedRandom) Intn(n int) int {
	f.calls++
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[0]
	if len(f.values) > 1 {
		f.values = f.values[1:]
	}
	if v >= n {
		return n - 1
	}
	return v
}

type fakeDamageable struct{ hits []int }

func (f *fakeDamageable) Hit(damage int) { f.hits = append(f.hits, damage) }

func (f *fakeDamageable) total() int {
	sum := 0
	for _, h := range f.hits {
		sum += h
	}
	return sum
}

type fakeGrounded struct{ grounded bool }

func (f *fakeGrounded) Grounded() bool { return f.grounded }

type fakeFacer struct{ faced []common.Vec3 }

func (f *fakeFacer) Face(p common.Vec3) { f.faced = append(f.faced, p) }

type fakeEffect struct{ plays int }

func (f *fakeEffect) Play() { f.plays++ }

type fakeBody struct {
	pos       common.Vec3
	kinematic bool
	collide   bool
	attached  bool
	resets    int
	impulses  []common.Vec3
	lookedAt  []common.Vec3
}

func newFakeBody() *fakeBody {
	return &fakeBody{kinematic: true, collide: true, attached: true}
}

func (f *fakeBody) SetKinematic(k bool)              { f.kinematic = k }
func (f *fakeBody) ApplyImpulse(i common.Vec3)       { f.impulses = append(f.impulses, i) }
func (f *fakeBody) SetCollisionEnabled(enabled bool) { f.collide = enabled }
func (f *fakeBody) CollisionEnabled() bool           { return f.collide }
func (f *fakeBody) DetachFromParent()                { f.attached = false }
func (f *fakeBody) Position() common.Vec3            { return f.pos }
func (f *fakeBody) LookAt(p common.Vec3)             { f.lookedAt = append(f.lookedAt, p) }
func (f *fakeBody) ResetToRest() {
	f.resets++
	f.attached = true
}

type fakeVisual struct{ visible bool }

func (f *fakeVisual) SetVisible(v bool) { f.visible = v }

type fakeRay struct {
	victim Damageable
	casts  int
}

func (f *fakeRay) Raycast(origin, dir common.Vec3) (Damageable, bool) {
	f.casts++
	if f.victim == nil {
		return nil, false
	}
	return f.victim, true
}

func at(x float64) common.Vec3 { return common.Vec3{X: x} }
