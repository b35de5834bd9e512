package pipes

// DefaultModCapacity is the source capacity used by NewMod's typical
// case.
const DefaultModCapacity = 32

// BinaryFn combines an accumulator sample with a contributing sample.
// The default used by NewMod is multiplication.
type BinaryFn func(acc, sample float32) float32

func multiply(acc, sample float32) float32 { return acc * sample }

// Mod is a multiplicative (or custom-binary) accumulator: many
// sources, at most one sink. For each source beyond the first,
// Process combines it into buffer 0 sample-by-sample using fn.
type Mod struct {
	Pipe
	fn BinaryFn
}

// NewMod returns a Mod pipe combining with multiplication.
func NewMod(sourceCapacity int) *Mod {
	return NewModFn(sourceCapacity, multiply)
}

// NewModFn returns a Mod pipe combining with a caller-supplied binary
// function.
func NewModFn(sourceCapacity int, fn BinaryFn) *Mod {
	if fn == nil {
		fn = multiply
	}
	m := &Mod{fn: fn}
	m.Pipe.init(sourceCapacity, 1, m)
	return m
}

// Process folds buffers[1:] into buffers[0] via fn.
func (m *Mod) Process(buffers []*Buffer) {
	acc := buffers[0]
	for _, b := range buffers[1:] {
		acc.Combine(b, m.fn)
	}
}

// WriteOutput always yields buffer 0, the accumulator slot.
func (m *Mod) WriteOutput(inputs []*Buffer, output *Buffer, sinkIndex int) {
	if len(inputs) == 0 {
		output.Clear()
		return
	}
	output.CopyFrom(inputs[0])
}
