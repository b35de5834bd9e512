package pipes

import "testing"

func TestBufferSourcePlaysThenSilence(t *testing.T) {
	src := NewBufferSource([]float32{1, 2, 3}, false)
	term := newClientOutputPipe()
	term.active = true
	assertEqual(t, "wire", term.AddSource(&src.Pipe), nil)

	buf := NewBuffer(48000, 2)
	src.Pull(&term.Pipe, buf, 1)
	assertEqual(t, "first block", buf.Samples(), []float32{1, 2})

	src.Pull(&term.Pipe, buf, 2)
	assertEqual(t, "tail then silence", buf.Samples(), []float32{3, 0})
}

func TestBufferSourceLoops(t *testing.T) {
	src := NewBufferSource([]float32{1, 2}, true)
	term := newClientOutputPipe()
	term.active = true
	assertEqual(t, "wire", term.AddSource(&src.Pipe), nil)

	buf := NewBuffer(48000, 3)
	src.Pull(&term.Pipe, buf, 1)
	assertEqual(t, "wraps back to start", buf.Samples(), []float32{1, 2, 1})
}

func TestTimelinePlaysClipWithSurroundingSilence(t *testing.T) {
	tl := NewTimeline(1)
	tl.AddClip(2, []float32{5, 6})
	term := newClientOutputPipe()
	term.active = true
	assertEqual(t, "wire", term.AddSource(&tl.Pipe), nil)

	buf := NewBuffer(48000, 6)
	tl.Pull(&term.Pipe, buf, 1)
	assertEqual(t, "silence then clip then silence", buf.Samples(), []float32{0, 0, 5, 6, 0, 0})
}

func TestTimelineOverlapTrimsEarlierClip(t *testing.T) {
	tl := NewTimeline(1)
	tl.AddClip(0, []float32{1, 1, 1, 1})
	tl.AddClip(2, []float32{9, 9}) // overlaps samples 2-3 of the first clip

	term := newClientOutputPipe()
	term.active = true
	assertEqual(t, "wire", term.AddSource(&tl.Pipe), nil)

	buf := NewBuffer(48000, 6)
	tl.Pull(&term.Pipe, buf, 1)
	assertEqual(t, "earlier clip shortened at the overlap", buf.Samples(), []float32{1, 1, 9, 9, 0, 0})
}
