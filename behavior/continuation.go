package behavior

// Continuation is a deferred side effect waiting on a delay.
type Continuation struct {
	Name      string
	Remaining float64
	Action    func()
}

// Continuations is the list of pending deferred actions owned by one actor.
// Each entry fires exactly once, on the first Tick where its delay has
// elapsed, in the order it was scheduled.
type Continuations struct {
	pending []Continuation
}

// Schedule queues action to run after delay seconds. A non-positive delay
// fires on the next Tick.
func (c *Continuations) Schedule(delay float64, name string, action func()) {
	if action == nil {
		return
	}
	c.pending = append(c.pending, Continuation{Name: name, Remaining: delay, Action: action})
}

// Tick advances every pending continuation by dt and runs the due ones.
// Actions may schedule further continuations; those wait for the next Tick.
func (c *Continuations) Tick(dt float64) {
	if len(c.pending) == 0 {
		return
	}
	current := c.pending
	var due []func()
	keep := current[:0]
	for _, p := range current {
		p.Remaining -= dt
		if p.Remaining <= 0 {
			due = append(due, p.Action)
			continue
		}
		keep = append(keep, p)
	}
	// anything scheduled by the actions below lands after the survivors
	c.pending = keep

	for _, run := range due {
		run()
	}
}

// Pending reports how many continuations are still waiting.
func (c *Continuations) Pending() int {
	return len(c.pending)
}

// Names lists the pending continuations in firing order.
func (c *Continuations) Names() []string {
	out := make([]string, 0, len(c.pending))
	for _, p := range c.pending {
		out = append(out, p.Name)
	}
	return out
}
