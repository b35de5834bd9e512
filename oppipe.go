package pipes

// skippedInactive marks an OpPipe that has seen a zero-length buffer
// list and should not accumulate skipped-sample counts until it is
// reactivated by a real Process call.
const skippedInactive = -1

// OpPipe adapts an AudioOp to the Pipe protocol. It has
// channels sources and channels sinks — one mono Buffer per channel —
// and drives the op's initialize/reset/process lifecycle around
// whatever the base Pipe scheduling decides needs to happen this
// block.
type OpPipe struct {
	Pipe

	op       AudioOp
	channels int

	initialized    bool
	lastSampleRate float64
	lastBufferSize int
	skipped        int

	scratch [][]float32
}

// NewOpPipe wraps op with channels inputs and channels outputs.
func NewOpPipe(op AudioOp, channels int) *OpPipe {
	return NewOpPipeIO(op, channels, channels)
}

// NewOpPipeIO wraps op with distinct input and output channel counts,
// for ops that do not preserve channel count.
func NewOpPipeIO(op AudioOp, inChannels, outChannels int) *OpPipe {
	p := &OpPipe{
		op:       op,
		channels: outChannels,
		skipped:  skippedInactive,
	}
	p.Pipe.init(inChannels, outChannels, p)
	return p
}

// Process runs the held AudioOp, initializing or resetting it first if
// the buffer shape or a skip is pending.
func (p *OpPipe) Process(buffers []*Buffer) {
	if len(buffers) == 0 {
		p.skipped = skippedInactive
		return
	}

	sampleRate := buffers[0].SampleRate()
	bufferSize := buffers[0].Size()

	switch {
	case !p.initialized || sampleRate != p.lastSampleRate || bufferSize > p.lastBufferSize:
		if err := p.op.Initialize(sampleRate, bufferSize); err != nil {
			// Process has no error return, so the failure is not
			// reported: the buffers are left untouched, the op stays
			// uninitialized, and Initialize is tried again on the
			// next Process call.
			return
		}
		p.initialized = true
		p.lastSampleRate = sampleRate
		p.lastBufferSize = bufferSize
		p.skipped = 0
	case p.skipped > 0:
		p.op.Reset(p.skipped)
		p.skipped = 0
	}

	if cap(p.scratch) < len(buffers) {
		p.scratch = make([][]float32, len(buffers))
	}
	p.scratch = p.scratch[:len(buffers)]
	for i, b := range buffers {
		p.scratch[i] = b.Samples()
	}
	p.op.ProcessReplace(bufferSize, p.scratch, p.scratch)
}

// Skip accumulates the skipped-sample count while inactive skipping is
// not in effect.
func (p *OpPipe) Skip(samples int) {
	if p.skipped != skippedInactive {
		p.skipped += samples
	}
}

// IsOutputRequired consults the AudioOp: does it need live input to
// correctly keep producing output, given whether that output is
// itself required.
func (p *OpPipe) IsOutputRequired(source *Pipe, time int64) bool {
	outputRequired := p.Pipe.isProcessRequired(time)
	return p.op.IsInputRequired(outputRequired)
}
