package component

// TTL destroys its entity once Remaining seconds have passed.
type TTL struct {
	Remaining float64
	Total     float64
}

// Fraction is how much of the lifetime has passed, from 0 to 1.
func (t TTL) Fraction() float64 {
	if t.Total <= 0 {
		return 1
	}
	f := 1 - t.Remaining/t.Total
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

var TTLComponent = NewComponent[TTL]()
