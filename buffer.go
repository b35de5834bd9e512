package pipes

// Buffer is a fixed-size block of mono, single-precision samples tagged
// with the sample rate it was produced at. Buffers are allocated once by
// their owning Pipe (or by the AudioClient for I/O boundaries) and never
// grow or shrink afterwards: the realtime discipline here
// forbids allocation on the hot path, so every Buffer that survives
// configuration is reused in place for the lifetime of the graph.
type Buffer struct {
	sampleRate float64
	samples    []float32
}

// NewBuffer allocates a Buffer of the given sample rate and size, zeroed.
// sampleRate must be > 0 and size must be > 0.
func NewBuffer(sampleRate float64, size int) *Buffer {
	return &Buffer{
		sampleRate: sampleRate,
		samples:    make([]float32, size),
	}
}

// SampleRate returns the buffer's immutable sample rate.
func (b *Buffer) SampleRate() float64 {
	return b.sampleRate
}

// Size returns the buffer's immutable length.
func (b *Buffer) Size() int {
	return len(b.samples)
}

// Samples exposes the underlying slice for in-place mutation by AudioOps
// and the I/O boundary copies. Callers must not retain it past the
// buffer's lifetime and must not resize it.
func (b *Buffer) Samples() []float32 {
	return b.samples
}

// Compatible reports whether two buffers share sample rate and size,
// the precondition every Copy/Add/Mix call in this package relies on.
func (b *Buffer) Compatible(other *Buffer) bool {
	if b == nil || other == nil {
		return false
	}
	return b.sampleRate == other.sampleRate && len(b.samples) == len(other.samples)
}

// Clear fills the buffer with zeroes.
func (b *Buffer) Clear() {
	for i := range b.samples {
		b.samples[i] = 0
	}
}

// CopyFrom copies src's samples into b. The caller must ensure
// compatibility; CopyFrom does not check it on the hot path.
func (b *Buffer) CopyFrom(src *Buffer) {
	copy(b.samples, src.samples)
}

// Add accumulates src's samples into b, sample by sample.
func (b *Buffer) Add(src *Buffer) {
	for i, s := range src.samples {
		b.samples[i] += s
	}
}

// Mix is an alias for Add kept for readability at fan-in call sites that
// mean "mix this source in" rather than "accumulate this delta".
func (b *Buffer) Mix(src *Buffer) {
	b.Add(src)
}

// Combine applies fn sample-by-sample, storing fn(b[i], src[i]) into b.
// Used by Mod to generalize beyond addition.
func (b *Buffer) Combine(src *Buffer, fn func(a, s float32) float32) {
	for i, s := range src.samples {
		b.samples[i] = fn(b.samples[i], s)
	}
}
