package pipes

import "testing"

func TestAddSumsSources(t *testing.T) {
	add := NewAdd(DefaultAddCapacity)
	s1 := newCountingPipe(0, 1, 1)
	s2 := newCountingPipe(0, 1, 2)
	assertEqual(t, "wire s1", add.AddSource(&s1.Pipe), nil)
	assertEqual(t, "wire s2", add.AddSource(&s2.Pipe), nil)

	term := newClientOutputPipe()
	term.active = true
	assertEqual(t, "wire term", term.AddSource(&add.Pipe), nil)

	out := NewBuffer(48000, 3)
	add.Pull(&term.Pipe, out, 1)
	assertEqual(t, "summed", out.Samples(), []float32{3, 3, 3})
}

func TestAddWithNoSourcesIsSilent(t *testing.T) {
	add := NewAdd(DefaultAddCapacity)
	term := newClientOutputPipe()
	term.active = true
	assertEqual(t, "wire term", term.AddSource(&add.Pipe), nil)

	out := NewBuffer(48000, 3)
	copy(out.samples, []float32{7, 7, 7})
	add.Pull(&term.Pipe, out, 1)
	assertEqual(t, "silence", out.Samples(), []float32{0, 0, 0})
}
