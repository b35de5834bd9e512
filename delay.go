package pipes

// Delay is a one-block buffering pipe: it emits the *previous* block's
// samples and stashes the current block for next time. Because it
// never needs its own current-block input to produce the current
// block's output, it can sit inside a feedback loop without the pull
// recursion running forever. One source, one sink.
type Delay struct {
	Pipe
	prev *Buffer
}

// NewDelay returns a Delay pipe.
func NewDelay() *Delay {
	d := &Delay{}
	d.Pipe.init(1, 1, d)
	return d
}

// Process swaps the held block for the freshly-pulled one, after
// copying the held block out to the caller. buffers holds exactly the
// one cache/in-place slot this 1-source/1-sink pipe ever has.
func (d *Delay) Process(buffers []*Buffer) {
	current := buffers[0]
	if d.prev == nil {
		d.prev = NewBuffer(current.SampleRate(), current.Size())
	}
	if !d.prev.Compatible(current) {
		d.prev = NewBuffer(current.SampleRate(), current.Size())
	}
	for i, s := range current.samples {
		current.samples[i] = d.prev.samples[i]
		d.prev.samples[i] = s
	}
}
