package game

// LCG parameters (Numerical Recipes). Both peers in a match derive their
// boards from the same seed, so the recurrence must stay bit-stable.
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgModulus    = 1 << 32
)

// RNG is a deterministic linear congruential generator. Two instances
// constructed with the same seed and given the same call sequence produce
// identical streams.
type RNG struct {
	state uint64
}

// NewRNG creates a generator from an integer seed. Negative seeds are
// reduced into the generator's modulus.
func NewRNG(seed int64) *RNG {
	s := seed % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	return &RNG{state: uint64(s)}
}

// Next returns the next value in [0, 1).
func (r *RNG) Next() float64 {
	r.state = (r.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(r.state) / float64(lcgModulus)
}

// IntN returns an integer in [min, max).
func (r *RNG) IntN(min, max int) int {
	return int(r.Next()*float64(max-min)) + min
}

// Shuffle permutes s in place with Fisher-Yates driven by r.
func Shuffle[T any](r *RNG, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.IntN(0, i+1)
		s[i], s[j] = s[j], s[i]
	}
}
