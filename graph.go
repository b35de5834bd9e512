package pipes

import "github.com/jaudiolibs/pipes/scheduler"

// Dependent is anything that needs to advance in lock-step with the
// graph's sample clock: a Property's Animator, a Clock, or any other
// per-block bookkeeping that is not itself a Pipe. Dependents are
// updated in registration order after the sample position advances
// and before the graph-user hook runs.
type Dependent interface {
	// Attach is called once, when the dependent is registered, with
	// the sample rate and block size currently in effect.
	Attach(sampleRate float64, blockSize int)
	// Update is called once per block with the graph's sample
	// position in nanoseconds.
	Update(nanos int64)
	// Detach is called once, when the dependent is unregistered.
	Detach()
}

// Graph owns the input fan-out and output fan-in boundary of a patch,
// its own monotonic sample-position clock (independent of whatever
// wall-clock value the driving Client happens to pass into Pull),
// and the list of non-Pipe dependents that need per-block updates.
//
// Graph implements Listener so a Client can drive it directly:
// Configure wires sample rate and block size into every dependent,
// and Process advances the sample position and fires dependents, then
// the optional user hook.
type Graph struct {
	inputs  []*Tee
	outputs []*Add

	dependents []Dependent
	scheduler  *scheduler.Scheduler

	sampleRate float64
	blockSize  int

	samplePosition int64

	onInit   func(sampleRate float64, blockSize int)
	onUpdate func(nanos int64)
}

// NewGraph returns a Graph with inputCount input fan-out points and
// outputCount output fan-in points. The sample-locked scheduler is
// created and registered as the first dependent, so deferred and
// periodic work submitted to it ticks in lock-step with every other
// dependent.
func NewGraph(inputCount, outputCount int) *Graph {
	g := &Graph{
		inputs:  make([]*Tee, inputCount),
		outputs: make([]*Add, outputCount),
	}
	for i := range g.inputs {
		g.inputs[i] = NewTee(DefaultTeeCapacity)
	}
	for i := range g.outputs {
		g.outputs[i] = NewAdd(DefaultAddCapacity)
	}
	g.scheduler = scheduler.New()
	g.AddDependent(g.scheduler)
	return g
}

// Scheduler returns the graph's sample-locked scheduler, for submitting
// deferred or periodic work via Schedule / ScheduleAtFixedRate /
// ScheduleWithFixedDelay.
func (g *Graph) Scheduler() *scheduler.Scheduler { return g.scheduler }

// Input returns the Tee fanning out input channel i to whatever
// processing pipes are patched downstream.
func (g *Graph) Input(i int) *Tee { return g.inputs[i] }

// Output returns the Add summing whatever processing pipes are patched
// upstream of output channel i.
func (g *Graph) Output(i int) *Add { return g.outputs[i] }

// InputCount returns the number of input fan-out points.
func (g *Graph) InputCount() int { return len(g.inputs) }

// OutputCount returns the number of output fan-in points.
func (g *Graph) OutputCount() int { return len(g.outputs) }

// SamplePosition returns the graph's own block-advance clock in raw
// samples. This is independent of the time value a Client passes into
// Pull: that value is only ever a per-block memoization key, while this
// clock is what Property animators and Clock dependents key their
// scheduling off.
func (g *Graph) SamplePosition() int64 { return g.samplePosition }

// Milliseconds returns the graph's sample position converted to
// milliseconds at the configured sample rate.
func (g *Graph) Milliseconds() float64 {
	if g.sampleRate <= 0 {
		return 0
	}
	return float64(g.samplePosition) / g.sampleRate * 1e3
}

// Nanoseconds returns the graph's sample position converted to
// nanoseconds at the configured sample rate. This is the value every
// Dependent's Update is called with.
func (g *Graph) Nanoseconds() int64 {
	if g.sampleRate <= 0 {
		return 0
	}
	return int64(float64(g.samplePosition) / g.sampleRate * 1e9)
}

// OnInit installs a hook called once per Configure, after every
// dependent has been attached.
func (g *Graph) OnInit(fn func(sampleRate float64, blockSize int)) {
	g.onInit = fn
}

// OnUpdate installs a hook called once per block, after every
// dependent has been updated.
func (g *Graph) OnUpdate(fn func(nanos int64)) {
	g.onUpdate = fn
}

// AddDependent registers d to receive per-block Update calls, in
// registration order, attaching it immediately if the graph is already
// configured.
func (g *Graph) AddDependent(d Dependent) {
	g.dependents = append(g.dependents, d)
	if g.blockSize > 0 {
		d.Attach(g.sampleRate, g.blockSize)
	}
}

// RemoveDependent unregisters d, detaching it if it was registered.
func (g *Graph) RemoveDependent(d Dependent) {
	for i, v := range g.dependents {
		if v == d {
			g.dependents = append(g.dependents[:i], g.dependents[i+1:]...)
			d.Detach()
			return
		}
	}
}

// Configure implements Listener: it records the sample rate and
// internal block size and attaches every registered dependent.
func (g *Graph) Configure(cfg Config) error {
	internal := cfg.BufferSize
	g.handleInit(cfg.SampleRate, internal)
	return nil
}

func (g *Graph) handleInit(sampleRate float64, blockSize int) {
	g.sampleRate = sampleRate
	g.blockSize = blockSize
	// Start one block behind zero, so the first handleUpdate's += blockSize
	// lands exactly on zero rather than overshooting to one block in.
	g.samplePosition = -int64(blockSize)
	for _, d := range g.dependents {
		d.Attach(sampleRate, blockSize)
	}
	if g.onInit != nil {
		g.onInit(sampleRate, blockSize)
	}
}

// Process implements Listener: it advances the graph's own sample
// position by one block, updates every dependent, and finally invokes
// the user hook if one is installed. The timeNanos argument from the
// driving Client is intentionally ignored here — it is the pull
// memoization key, not this graph's own clock.
func (g *Graph) Process(timeNanos int64) error {
	g.handleUpdate()
	return nil
}

func (g *Graph) handleUpdate() {
	g.samplePosition += int64(g.blockSize)
	if g.samplePosition < 0 {
		// Guards the first transition out of handleInit's -blockSize
		// starting point: it must land on exactly zero, never still
		// negative.
		g.samplePosition = 0
	}
	nanos := g.Nanoseconds()
	for _, d := range g.dependents {
		d.Update(nanos)
	}
	if g.onUpdate != nil {
		g.onUpdate(nanos)
	}
}

// Shutdown implements Listener. Dependents have no shutdown hook of
// their own; the graph itself holds no resources that need releasing.
func (g *Graph) Shutdown() {}
