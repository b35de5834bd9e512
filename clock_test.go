package pipes

import "testing"

func TestClockBufferCountMatchesTempo(t *testing.T) {
	// 120 BPM, sixteenth notes (subdivision 4), 48kHz, 128-sample
	// blocks: one sixteenth note is 0.125s, one block is
	// 128/48000=2.667ms, so roughly 47 blocks per tick.
	c := NewClock(120, 4, 16)
	c.Attach(48000, 128)
	if c.BufferCount() < 40 || c.BufferCount() > 55 {
		t.Fatalf("unexpected bufferCount %d", c.BufferCount())
	}
}

func TestClockFiresAndWrapsIndex(t *testing.T) {
	c := NewClock(60, 1, 2) // one tick per second, wraps over 2 indices
	c.Attach(1, 1)          // bufferCount = round((60/60)/(1/1)) = 1
	assertEqual(t, "fires every block", c.BufferCount(), 1)

	var fired []int
	c.Listen(func(index int) { fired = append(fired, index) })

	c.Update(0)
	c.Update(0)
	c.Update(0)
	assertEqual(t, "fired three times", fired, []int{1, 0, 1})
}
