package pipes

// Recorder is a terminal pipe that accumulates every block pulled from
// its single source into a growable in-memory buffer, the pull-graph
// analogue of a sink that captures processed audio for later
// inspection or export rather than routing it onward. It has no sinks
// of its own: nothing can be downstream of a Recorder, and nothing
// pulls it automatically — a caller drives it block by block via
// Capture, the same way AudioClient drives a boundary output pipe.
type Recorder struct {
	Pipe
	scratch  *Buffer
	recorded []float32
	active   bool
}

// NewRecorder returns a Recorder pulling blocks of the given sample
// rate and size from its source.
func NewRecorder(sampleRate float64, blockSize int) *Recorder {
	r := &Recorder{scratch: NewBuffer(sampleRate, blockSize), active: true}
	r.Pipe.init(1, 0, r)
	return r
}

// Process is a no-op: Recorder never transforms samples on the
// dispatch path, only appends them in Capture.
func (r *Recorder) Process(buffers []*Buffer) {}

// IsOutputRequired reports whether this Recorder is currently
// capturing. A paused Recorder still exists in the graph but stops
// asking its source for work, the same suppression clientOutputPipe
// uses for an inactive device channel.
func (r *Recorder) IsOutputRequired(source *Pipe, time int64) bool {
	return r.active
}

// Pause stops Capture from pulling further blocks until Resume is
// called.
func (r *Recorder) Pause() { r.active = false }

// Resume re-enables pulling after Pause.
func (r *Recorder) Resume() { r.active = true }

// Capture pulls one block from the connected source at time and
// appends it to the recording. It is a no-op while the Recorder is
// paused, and returns ErrIndexOutOfRange if no source is connected.
func (r *Recorder) Capture(time int64) error {
	if !r.active {
		return nil
	}
	src, err := r.SourceAt(0)
	if err != nil {
		return err
	}
	src.Pull(&r.Pipe, r.scratch, time)
	r.recorded = append(r.recorded, r.scratch.samples...)
	return nil
}

// Recorded returns a copy of the samples captured so far.
func (r *Recorder) Recorded() []float32 {
	out := make([]float32, len(r.recorded))
	copy(out, r.recorded)
	return out
}

// Reset discards everything captured so far without disconnecting the
// source.
func (r *Recorder) Reset() {
	r.recorded = r.recorded[:0]
}
