package pipes

import "testing"

func TestDelayEmitsPreviousBlock(t *testing.T) {
	delay := NewDelay()
	source := newCountingPipe(0, 1, 0)
	assertEqual(t, "wire", delay.AddSource(&source.Pipe), nil)

	term := newClientOutputPipe()
	term.active = true
	assertEqual(t, "wire term", term.AddSource(&delay.Pipe), nil)

	out := NewBuffer(48000, 2)

	source.fillValue = 1
	delay.Pull(&term.Pipe, out, 1)
	assertEqual(t, "first block is silence", out.Samples(), []float32{0, 0})

	source.fillValue = 2
	delay.Pull(&term.Pipe, out, 2)
	assertEqual(t, "second block emits first block's content", out.Samples(), []float32{1, 1})

	source.fillValue = 3
	delay.Pull(&term.Pipe, out, 3)
	assertEqual(t, "third block emits second block's content", out.Samples(), []float32{2, 2})
}
