package pipes

// AudioOp is the external contract for a sample-block transformer. The
// concrete DSP operators (filters, reverbs, oscillators, samplers) are
// out of scope for this module; OpPipe adapts any AudioOp
// into the Pipe protocol.
type AudioOp interface {
	// Initialize (re)configures the op for a given sample rate and
	// maximum buffer size. Called whenever either changes.
	Initialize(sampleRate float64, maxBufferSize int) error

	// Reset is called when processing resumes after skippedSamples
	// samples were not rendered, so stateful ops (delay lines, phase
	// accumulators) can compensate.
	Reset(skippedSamples int)

	// IsInputRequired answers whether the op needs live input samples
	// to correctly produce output, given that outputRequired reports
	// whether its output is itself required. A decaying reverb returns
	// true while outputRequired is true and for its tail duration; a
	// pure generator only needs outputRequired.
	IsInputRequired(outputRequired bool) bool

	// ProcessReplace transforms inputs into outputs in place; outputs
	// and inputs may alias the same backing arrays. Must not allocate.
	ProcessReplace(bufferSize int, outputs, inputs [][]float32)

	// ProcessAdd accumulates contributions into outputs rather than
	// replacing them.
	ProcessAdd(bufferSize int, outputs, inputs [][]float32)
}
