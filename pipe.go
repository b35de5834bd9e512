package pipes

// pipeOps is the virtual dispatch surface of a Pipe. Concrete pipe kinds embed Pipe by value and implement
// Process (mandatory — there is no sensible default); Skip, WriteOutput
// and IsOutputRequired have defaults on Pipe itself and are overridden
// by redefining the method on the embedding type, which Go's method
// promotion rules shadow automatically. Pipe.self is the back-reference
// that lets base-class code (pull, isProcessRequired, processInPlace,
// processCached) call back into whichever concrete behavior actually
// applies, without the cost of an interface-typed field per behavior.
type pipeOps interface {
	Process(buffers []*Buffer)
	Skip(samples int)
	WriteOutput(inputs []*Buffer, output *Buffer, sinkIndex int)
	IsOutputRequired(source *Pipe, time int64) bool
}

// Pipe is the abstract unit-generator node: source/sink connection
// lists bounded by fixed capacities, a per-block buffer cache, and the
// pull-based scheduling core shared by every concrete pipe.
//
// All Pipe state mutation and Process invocation happens on the single
// audio-callback thread; there are no locks here by
// design.
type Pipe struct {
	self pipeOps

	sourceCapacity int
	sinkCapacity   int

	sources []*Pipe
	sinks   []*Pipe

	cache []*Buffer

	hasLastTime bool
	lastTime    int64

	processReqValid bool
	processReqTime  int64
	processReqValue bool

	scanValid bool
	scanTime  int64
	scanIndex int

	// onDispose, if set, is called whenever a cache buffer is retired
	// instead of reused (e.g. a plugged-in pool's Put). Unset by
	// default: steady-state operation never retires a buffer once the
	// sample rate and block size stop changing, so plain garbage
	// collection is sufficient for the reference implementation.
	onDispose func(*Buffer)
}

// init wires the embedding concrete type as the dispatch target. Must
// be called exactly once, by the concrete type's constructor, before
// the Pipe is connected to anything.
func (p *Pipe) init(sourceCapacity, sinkCapacity int, self pipeOps) {
	p.sourceCapacity = sourceCapacity
	p.sinkCapacity = sinkCapacity
	p.self = self
}

// SourceCapacity returns the maximum number of sources this Pipe will
// accept.
func (p *Pipe) SourceCapacity() int { return p.sourceCapacity }

// SinkCapacity returns the maximum number of sinks this Pipe will
// accept.
func (p *Pipe) SinkCapacity() int { return p.sinkCapacity }

// SourceCount returns the number of currently connected sources.
func (p *Pipe) SourceCount() int { return len(p.sources) }

// SinkCount returns the number of currently connected sinks.
func (p *Pipe) SinkCount() int { return len(p.sinks) }

// SourceAt returns the source Pipe connected at index i.
func (p *Pipe) SourceAt(i int) (*Pipe, error) {
	if i < 0 || i >= len(p.sources) {
		return nil, ErrIndexOutOfRange
	}
	return p.sources[i], nil
}

// SinkAt returns the sink Pipe connected at index i.
func (p *Pipe) SinkAt(i int) (*Pipe, error) {
	if i < 0 || i >= len(p.sinks) {
		return nil, ErrIndexOutOfRange
	}
	return p.sinks[i], nil
}

// AddSource connects src as a source of p, cross-registering p as a
// sink of src. The registration is atomic from the caller's
// perspective: if the second half of the cross-registration fails, the
// first half is undone and p is left exactly as it was.
func (p *Pipe) AddSource(src *Pipe) error {
	if src == nil {
		return ErrNullArg
	}
	if containsPipe(p.sources, src) || containsPipe(src.sinks, p) {
		return ErrDuplicate
	}
	if len(src.sinks) >= src.sinkCapacity {
		return ErrSinkFull
	}
	src.sinks = append(src.sinks, p)

	if len(p.sources) >= p.sourceCapacity {
		src.sinks = removePipe(src.sinks, p)
		return ErrSourceFull
	}
	p.sources = append(p.sources, src)
	return nil
}

// RemoveSource disconnects src from p, symmetrically. Removing a
// source that is not connected is a tolerated no-op on whichever side
// has no record of the connection.
func (p *Pipe) RemoveSource(src *Pipe) {
	if src == nil {
		return
	}
	p.sources = removePipe(p.sources, src)
	src.sinks = removePipe(src.sinks, p)
}

// Pull is the externally visible pull operation. sink
// identifies the caller so per-sink bookkeeping (writeOutput routing,
// fan-out memoization) can key off it; output is the buffer the caller
// wants filled; time is the current block's sample-clock stamp.
func (p *Pipe) Pull(sink *Pipe, output *Buffer, time int64) {
	sinkIndex := indexOfPipe(p.sinks, sink)
	if sinkIndex < 0 {
		// An unknown sink is a silent no-op rather than a panic or
		// error return: a caller that disconnected mid-flight should
		// not be able to crash the graph it just left.
		return
	}

	inPlace := len(p.sinks) == 1 && len(p.sources) < 2

	if !p.hasLastTime || p.lastTime != time {
		processRequired := p.isProcessRequired(time)
		p.lastTime = time
		p.hasLastTime = true
		if inPlace {
			p.processInPlace(output, processRequired)
		} else {
			p.processCached(output, processRequired)
		}
	}

	if !inPlace {
		if sink.self.IsOutputRequired(p, time) {
			p.self.WriteOutput(p.cache, output, sinkIndex)
		}
	}
}

// processInPlace is the 1-source/1-sink fast path: the downstream
// output buffer is reused as this Pipe's own working buffer, so no
// allocation or copy occurs in the common linear-chain case.
func (p *Pipe) processInPlace(output *Buffer, processRequired bool) {
	p.releaseCache()

	if len(p.sources) == 0 {
		output.Clear()
	} else {
		p.sources[0].Pull(p, output, p.lastTime)
	}

	if processRequired {
		p.cache = append(p.cache, output)
		p.self.Process(p.cache)
		p.cache = p.cache[:0]
	} else {
		p.self.Skip(output.Size())
	}
}

// processCached is the fan-in/fan-out path: each source (if any) is
// pulled into its own cache slot, extra slots beyond len(sources) are
// zeroed, and Process transforms the cache in place.
func (p *Pipe) processCached(output *Buffer, processRequired bool) {
	n := max(len(p.sources), len(p.sinks))

	if len(p.cache) > n {
		for _, b := range p.cache[n:] {
			p.disposeBuffer(b)
		}
		p.cache = p.cache[:n]
	}

	for i := 0; i < n; i++ {
		switch {
		case i >= len(p.cache):
			p.cache = append(p.cache, NewBuffer(output.SampleRate(), output.Size()))
		case !p.cache[i].Compatible(output):
			p.disposeBuffer(p.cache[i])
			p.cache[i] = NewBuffer(output.SampleRate(), output.Size())
		}
		if i < len(p.sources) {
			p.sources[i].Pull(p, p.cache[i], p.lastTime)
		} else {
			p.cache[i].Clear()
		}
	}

	if processRequired {
		p.self.Process(p.cache)
	} else {
		p.self.Skip(output.Size())
	}
}

// releaseCache disposes every buffer currently held in the cache and
// empties it, run at the start of each new block's in-place branch.
func (p *Pipe) releaseCache() {
	for _, b := range p.cache {
		p.disposeBuffer(b)
	}
	p.cache = p.cache[:0]
}

func (p *Pipe) disposeBuffer(b *Buffer) {
	if p.onDispose != nil {
		p.onDispose(b)
	}
}

// isProcessRequired asks "does any sink need my output this block?",
// memoizing the answer per time value so a fan-out Pipe with N sinks
// doesn't re-derive it N times.
func (p *Pipe) isProcessRequired(time int64) bool {
	switch len(p.sinks) {
	case 0:
		return false
	case 1:
		if p.processReqValid && p.processReqTime == time {
			return p.processReqValue
		}
		val := p.sinks[0].self.IsOutputRequired(p, time)
		p.processReqValid = true
		p.processReqTime = time
		p.processReqValue = val
		return val
	default:
		if !p.scanValid || p.scanTime != time {
			p.scanIndex = 0
			p.scanTime = time
			p.scanValid = true
		}
		for ; p.scanIndex < len(p.sinks); p.scanIndex++ {
			if p.sinks[p.scanIndex].self.IsOutputRequired(p, time) {
				// A positive answer invalidates the scan so a
				// subsequent call within the same block (re-entered
				// via mutual recursion) starts the scan over.
				p.scanValid = false
				return true
			}
		}
		return false
	}
}

// Skip is the default no-op hook for stateless pipes. Stateful pipes
// (OpPipe) override it to accumulate skipped-sample counts.
func (p *Pipe) Skip(samples int) {}

// WriteOutput is the default delivery of this Pipe's cached result to
// a sink: copy the cache slot matching sinkIndex, or zero the output
// if there is no such slot.
func (p *Pipe) WriteOutput(inputs []*Buffer, output *Buffer, sinkIndex int) {
	if sinkIndex < 0 || sinkIndex >= len(inputs) {
		output.Clear()
		return
	}
	output.CopyFrom(inputs[sinkIndex])
}

// IsOutputRequired is the default pruning hook: "do I need to produce
// output for source at time", answered purely in terms of whether my
// own sinks need my output. Subclasses (OpPipe) refine this using
// domain knowledge.
func (p *Pipe) IsOutputRequired(source *Pipe, time int64) bool {
	return p.isProcessRequired(time)
}

func containsPipe(list []*Pipe, p *Pipe) bool {
	return indexOfPipe(list, p) >= 0
}

func indexOfPipe(list []*Pipe, p *Pipe) int {
	for i, v := range list {
		if v == p {
			return i
		}
	}
	return -1
}

func removePipe(list []*Pipe, p *Pipe) []*Pipe {
	for i, v := range list {
		if v == p {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
