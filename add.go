package pipes

// DefaultAddCapacity is the source capacity used by NewAdd's intended
// typical case — a mixer bus summing many contributors into one
// downstream sink.
const DefaultAddCapacity = 64

// Add is the canonical fan-in summer: many sources, at most one sink.
// Process mixes its input buffers into buffer 0 by copying the first
// and accumulating the rest; an empty source list yields silence.
type Add struct {
	Pipe
}

// NewAdd returns an Add pipe accepting up to sourceCapacity sources and
// exactly one sink.
func NewAdd(sourceCapacity int) *Add {
	a := &Add{}
	a.Pipe.init(sourceCapacity, 1, a)
	return a
}

// Process mixes buffers[1:] into buffers[0]. With zero sources, the
// in-place branch has already zeroed slot 0, so the result is silence.
func (a *Add) Process(buffers []*Buffer) {
	sum := buffers[0]
	for _, b := range buffers[1:] {
		sum.Add(b)
	}
}
