package simulation

// Rand is a xorshift64 generator. Its whole state is one word, so it is
// carried in snapshots and demo headers.
type Rand struct {
	state uint64
}

// NewRand seeds a generator. A zero seed is replaced by 1.
func NewRand(seed uint64) *Rand {
	r := &Rand{}
	r.SetState(seed)
	return r
}

// Next advances the generator.
func (r *Rand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n), or 0 when n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// State returns the current state.
func (r *Rand) State() uint64 { return r.state }

// SetState restores a state returned by State.
func (r *Rand) SetState(s uint64) {
	if s == 0 {
		s = 1
	}
	r.state = s
}
