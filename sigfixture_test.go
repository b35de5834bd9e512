package pipes

import (
	"testing"

	"pipelined.dev/signal"
)

// fixtureBuffer synthesizes a deterministic mono float32 Buffer for
// tests by building it through pipelined.dev/signal's allocator first,
// then down-converting sample by sample. This mirrors how fixture data
// is generated elsewhere in the retrieval pack, even though the core
// Buffer type itself is a bespoke float32 value with no pool-allocator
// or multi-channel interleaving (see DESIGN.md for why).
func fixtureBuffer(sampleRate float64, size int, fn func(i int) float64) *Buffer {
	alloc := signal.Allocator{Channels: 1, Capacity: size, Length: size}.Float64()
	for i := 0; i < size; i++ {
		alloc.SetSample(i, fn(i))
	}
	b := NewBuffer(sampleRate, size)
	for i := 0; i < size; i++ {
		b.samples[i] = float32(alloc.Sample(i))
	}
	return b
}

func TestFixtureBufferMatchesGeneratorFunction(t *testing.T) {
	b := fixtureBuffer(48000, 4, func(i int) float64 { return float64(i) * 0.5 })
	assertEqual(t, "fixture samples", b.Samples(), []float32{0, 0.5, 1, 1.5})
}

func TestFixtureBufferFeedsABufferSource(t *testing.T) {
	fixture := fixtureBuffer(48000, 3, func(i int) float64 { return float64(i + 1) })
	src := NewBufferSource(fixture.Samples(), false)
	term := newClientOutputPipe()
	term.active = true
	assertEqual(t, "wire", term.AddSource(&src.Pipe), nil)

	out := NewBuffer(48000, 3)
	src.Pull(&term.Pipe, out, 1)
	assertEqual(t, "fixture played back", out.Samples(), []float32{1, 2, 3})
}
