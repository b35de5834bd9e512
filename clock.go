package pipes

import "math"

// ClockListener is notified each time a Clock's position wraps,
// receiving the cycle index the clock just advanced to.
type ClockListener func(index int)

// Clock is a tempo-aligned trigger: given a tempo in beats per minute
// and a subdivision (e.g. 4 for sixteenth notes against a quarter-note
// beat), it fires its listeners once every bufferCount blocks, where
// bufferCount is the number of blocks that most closely covers one
// subdivision at the configured sample rate and block size. The index
// passed to listeners increases by one on every firing and wraps
// modulo maxIndex, supporting a fixed-length step sequence.
type Clock struct {
	bpm         float64
	subdivision float64
	maxIndex    int

	bufferCount int
	counter     int
	index       int

	listeners []ClockListener
}

// NewClock returns a Clock ticking at bpm beats per minute, subdivided
// by subdivision, cycling an index through [0, maxIndex).
func NewClock(bpm, subdivision float64, maxIndex int) *Clock {
	if maxIndex < 1 {
		maxIndex = 1
	}
	return &Clock{bpm: bpm, subdivision: subdivision, maxIndex: maxIndex}
}

// Listen registers fn to be called every time the clock fires.
func (c *Clock) Listen(fn ClockListener) {
	c.listeners = append(c.listeners, fn)
}

// Attach implements Dependent, computing bufferCount for the configured
// sample rate and block size.
func (c *Clock) Attach(sampleRate float64, blockSize int) {
	secondsPerTick := 60.0 / (c.bpm * c.subdivision)
	blockSeconds := float64(blockSize) / sampleRate
	c.bufferCount = int(math.Round(secondsPerTick / blockSeconds))
	if c.bufferCount < 1 {
		c.bufferCount = 1
	}
	c.counter = 0
}

// Detach implements Dependent.
func (c *Clock) Detach() {}

// Update implements Dependent, advancing the block counter and firing
// listeners whenever it wraps past bufferCount.
func (c *Clock) Update(nanos int64) {
	c.counter++
	if c.counter < c.bufferCount {
		return
	}
	c.counter = 0
	c.index = (c.index + 1) % c.maxIndex
	for _, l := range c.listeners {
		l(c.index)
	}
}

// BufferCount returns the number of blocks between firings, computed
// at the last Attach call.
func (c *Clock) BufferCount() int { return c.bufferCount }
