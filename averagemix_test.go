package pipes

import "testing"

func TestMixAveragesSources(t *testing.T) {
	mix := NewMix(DefaultMixCapacity)
	s1 := newCountingPipe(0, 1, 2)
	s2 := newCountingPipe(0, 1, 4)
	assertEqual(t, "wire s1", mix.AddSource(&s1.Pipe), nil)
	assertEqual(t, "wire s2", mix.AddSource(&s2.Pipe), nil)

	term := newClientOutputPipe()
	term.active = true
	assertEqual(t, "wire term", term.AddSource(&mix.Pipe), nil)

	out := NewBuffer(48000, 3)
	mix.Pull(&term.Pipe, out, 1)
	assertEqual(t, "averaged, not summed", out.Samples(), []float32{3, 3, 3})
}

func TestMixSingleSourceIsUnchanged(t *testing.T) {
	mix := NewMix(DefaultMixCapacity)
	s1 := newCountingPipe(0, 1, 5)
	assertEqual(t, "wire s1", mix.AddSource(&s1.Pipe), nil)

	term := newClientOutputPipe()
	term.active = true
	assertEqual(t, "wire term", term.AddSource(&mix.Pipe), nil)

	out := NewBuffer(48000, 2)
	mix.Pull(&term.Pipe, out, 1)
	assertEqual(t, "one source averages to itself", out.Samples(), []float32{5, 5})
}

func TestMixWithNoSourcesIsSilent(t *testing.T) {
	mix := NewMix(DefaultMixCapacity)
	term := newClientOutputPipe()
	term.active = true
	assertEqual(t, "wire term", term.AddSource(&mix.Pipe), nil)

	out := NewBuffer(48000, 3)
	copy(out.samples, []float32{7, 7, 7})
	mix.Pull(&term.Pipe, out, 1)
	assertEqual(t, "silence", out.Samples(), []float32{0, 0, 0})
}
