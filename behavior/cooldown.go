package behavior

// Cooldown is a remaining-duration countdown in seconds. It never goes
// below zero and is ready once it reaches zero.
type Cooldown struct {
	Remaining float64
}

func (c *Cooldown) Set(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	c.Remaining = seconds
}

// Tick counts the cooldown down by dt.
func (c *Cooldown) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	c.Remaining -= dt
	if c.Remaining < 0 {
		c.Remaining = 0
	}
}

func (c *Cooldown) Ready() bool {
	return c.Remaining <= 0
}
