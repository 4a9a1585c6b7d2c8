package ecs

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// Scheduler runs its systems in a fixed order. Order matters: behaviour
// systems write intent that movement and physics apply later in the tick.
type Scheduler struct {
	systems []System
	ticks   uint64
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update advances the world clock by dt and runs every system once.
func (s *Scheduler) Update(w *World, dt float64) {
	w.SetDelta(dt)
	for _, system := range s.systems {
		system.Update(w)
	}
	s.ticks++
}

// Run performs n fixed steps of dt.
func (s *Scheduler) Run(w *World, dt float64, n int) {
	for i := 0; i < n; i++ {
		s.Update(w, dt)
	}
}

// Ticks counts completed updates.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}
