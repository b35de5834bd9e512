package pipes

// DefaultTeeCapacity is the sink capacity used by NewTee's typical
// case — a splitter feeding many consumers from one upstream source.
const DefaultTeeCapacity = 64

// Tee is the canonical fan-out splitter: exactly one source, many
// sinks. Process is a no-op — the single input buffer already holds
// everything each sink needs — and WriteOutput always delivers cache
// slot 0 regardless of which sink asked, so every connected sink
// receives a sample-identical copy of the source's block.
type Tee struct {
	Pipe
}

// NewTee returns a Tee pipe with exactly one source slot and up to
// sinkCapacity sink slots.
func NewTee(sinkCapacity int) *Tee {
	t := &Tee{}
	t.Pipe.init(1, sinkCapacity, t)
	return t
}

// Process is a no-op: Tee never transforms samples, only redistributes
// them.
func (t *Tee) Process(buffers []*Buffer) {}

// WriteOutput ignores sinkIndex and always copies cache slot 0, so a
// sink whose index would otherwise fall outside the cache (more sinks
// than sources ever populate) still gets the shared upstream block.
func (t *Tee) WriteOutput(inputs []*Buffer, output *Buffer, sinkIndex int) {
	if len(inputs) == 0 {
		output.Clear()
		return
	}
	output.CopyFrom(inputs[0])
}
