package behavior

import "math/rand/v2"

type seededRandom struct {
	r *rand.Rand
}

// NewRandom returns a deterministic Random for one actor. It is not safe
// for concurrent use.
func NewRandom(seed uint64) Random {
	return &seededRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}
