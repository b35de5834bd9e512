package pipes

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config describes the external audio device's fixed operating point.
type Config struct {
	SampleRate      float64
	BufferSize      int // external, fixed, callback block size
	InputChannels   int
	OutputChannels  int
	FixedBufferSize bool
	Extensions      map[string]any
}

// AudioClient is the external, bidirectional contract with the audio
// device.
type AudioClient interface {
	Configure(cfg Config) error
	Process(timeNanos int64, inputs, outputs [][]float32, nframes int) bool
	Shutdown()
}

// Listener receives the client's per-block lifecycle notifications.
// Graph implements Listener; its Process hook is where dependents are
// updated and the user-level update runs. Configure receives the
// device Config with BufferSize set to the client's internal block
// size, the size of each block that Process is then called for.
type Listener interface {
	Configure(cfg Config) error
	Process(timeNanos int64) error
	Shutdown()
}

// clientInputPipe is a zero-source, one-sink boundary Pipe that emits
// whatever the client most recently copied from the device.
type clientInputPipe struct {
	Pipe
	data []float32
}

func newClientInputPipe() *clientInputPipe {
	p := &clientInputPipe{}
	p.Pipe.init(0, 1, p)
	return p
}

func (p *clientInputPipe) Process(buffers []*Buffer) {
	n := copy(buffers[0].samples, p.data)
	for i := n; i < len(buffers[0].samples); i++ {
		buffers[0].samples[i] = 0
	}
}

// clientOutputPipe is a one-source, zero-sink boundary Pipe that the
// client uses purely as a sink identity token when pulling the graph;
// "active" implements the min(deviceOutputs, outputChannels) pruning
// a configured client applies to its outputs.
type clientOutputPipe struct {
	Pipe
	active bool
}

func newClientOutputPipe() *clientOutputPipe {
	p := &clientOutputPipe{}
	p.Pipe.init(1, 0, p)
	return p
}

func (p *clientOutputPipe) Process(buffers []*Buffer) {}

func (p *clientOutputPipe) IsOutputRequired(source *Pipe, time int64) bool {
	return p.active
}

// Client is the audio-callback adapter: it bridges an external,
// block-oriented audio device into the Pipe graph, sub-blocking the
// external buffer into internalBlockSize-sized chunks.
type Client struct {
	id                uuid.UUID
	internalBlockSize int
	inputChannels     int
	outputChannels    int

	inputPipes  []*clientInputPipe
	outputPipes []*clientOutputPipe
	outputBufs  []*Buffer

	listeners []Listener

	externalBufferSize int
	nanosPerBlock       int64
	sampleRate          float64
	previousTime        int64
	hasPreviousTime     bool

	logger  *zap.Logger
	metrics *Metrics
}

// NewClient constructs a Client with internalBlockSize internal
// processing quantum and the given channel counts. outputChannels must
// be >= 1.
func NewClient(internalBlockSize, inputChannels, outputChannels int) *Client {
	if outputChannels < 1 {
		panic("pipes: Client requires at least one output channel")
	}
	c := &Client{
		id:                uuid.New(),
		internalBlockSize: internalBlockSize,
		inputChannels:     inputChannels,
		outputChannels:    outputChannels,
		logger:            zap.NewNop(),
	}
	c.inputPipes = make([]*clientInputPipe, inputChannels)
	for i := range c.inputPipes {
		c.inputPipes[i] = newClientInputPipe()
	}
	c.outputPipes = make([]*clientOutputPipe, outputChannels)
	for i := range c.outputPipes {
		c.outputPipes[i] = newClientOutputPipe()
	}
	return c
}

// SetLogger installs a structured logger used for conditions that are
// logged rather than propagated (clock regressions, listener failures
// during shutdown).
func (c *Client) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}

// SetMetrics installs the prometheus instrumentation recorded for
// every callback. Passing nil disables instrumentation.
func (c *Client) SetMetrics(m *Metrics) {
	c.metrics = m
}

// ID returns the Client's unique identifier, attached to the Client's
// log lines so that multiple Clients running in the same process can
// be told apart. Metrics carry no identifier.
func (c *Client) ID() uuid.UUID { return c.id }

// InputPipe returns the boundary Pipe for input channel i, for wiring
// into a Graph's input Tee.
func (c *Client) InputPipe(i int) *Pipe { return &c.inputPipes[i].Pipe }

// OutputPipe returns the boundary Pipe for output channel i, for
// wiring a Graph's output Add into it.
func (c *Client) OutputPipe(i int) *Pipe { return &c.outputPipes[i].Pipe }

// RegisterListener adds l to the list notified every block, in
// insertion order.
func (c *Client) RegisterListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// Configure implements AudioClient.
func (c *Client) Configure(cfg Config) error {
	if !cfg.FixedBufferSize {
		return fmt.Errorf("%w: device does not use a fixed buffer size", ErrConfigError)
	}
	internal := c.internalBlockSize
	if internal == 0 {
		internal = cfg.BufferSize
	}
	if internal <= 0 || cfg.BufferSize%internal != 0 {
		return fmt.Errorf("%w: external buffer size %d is not a multiple of internal block size %d", ErrConfigError, cfg.BufferSize, internal)
	}
	c.internalBlockSize = internal
	c.externalBufferSize = cfg.BufferSize
	c.sampleRate = cfg.SampleRate
	c.nanosPerBlock = int64(float64(internal) / cfg.SampleRate * float64(time.Second))

	for _, ip := range c.inputPipes {
		ip.data = make([]float32, internal)
	}
	c.outputBufs = make([]*Buffer, c.outputChannels)
	for i := range c.outputBufs {
		c.outputBufs[i] = NewBuffer(cfg.SampleRate, internal)
	}

	active := min(cfg.OutputChannels, c.outputChannels)
	for i, op := range c.outputPipes {
		op.active = i < active
	}

	listenerCfg := cfg
	listenerCfg.BufferSize = internal
	for _, l := range c.listeners {
		if err := l.Configure(listenerCfg); err != nil {
			return fmt.Errorf("%w: %v", ErrOpInitFailure, err)
		}
	}
	return nil
}

// Process implements AudioClient, sub-blocking nframes into
// internalBlockSize chunks and driving the graph once per chunk.
func (c *Client) Process(timeNanos int64, inputs, outputs [][]float32, nframes int) bool {
	start := time.Now()
	defer func() { c.metrics.observeCallback(time.Since(start).Seconds()) }()

	if nframes != c.externalBufferSize {
		c.metrics.recordDropped()
		return false
	}
	if c.hasPreviousTime && timeNanos < c.previousTime {
		c.logger.Warn("audio callback clock regression",
			zap.String("client_id", c.id.String()),
			zap.Int64("previous_ns", c.previousTime),
			zap.Int64("current_ns", timeNanos))
	}
	c.previousTime = timeNanos
	c.hasPreviousTime = true

	subBlocks := nframes / c.internalBlockSize
	blockTime := timeNanos - int64(subBlocks-1)*c.nanosPerBlock

	for sb := 0; sb < subBlocks; sb++ {
		start := sb * c.internalBlockSize
		end := start + c.internalBlockSize

		for ch, ip := range c.inputPipes {
			if ch < len(inputs) {
				copy(ip.data, inputs[ch][start:end])
			}
		}

		for _, l := range c.listeners {
			if err := l.Process(blockTime); err != nil {
				c.logger.Error("listener process failed",
					zap.String("client_id", c.id.String()),
					zap.Error(err))
			}
		}
		c.metrics.recordProcessed()

		for ch, op := range c.outputPipes {
			if op.SourceCount() == 0 {
				continue
			}
			src, _ := op.SourceAt(0)
			src.Pull(&op.Pipe, c.outputBufs[ch], blockTime)
			if ch < len(outputs) {
				copy(outputs[ch][start:end], c.outputBufs[ch].Samples())
			}
		}

		blockTime += c.nanosPerBlock
	}
	return true
}

// Shutdown implements AudioClient: marks all outputs inactive and
// notifies listeners in order, logging rather than propagating any
// failure.
func (c *Client) Shutdown() {
	for _, op := range c.outputPipes {
		op.active = false
	}
	for _, l := range c.listeners {
		c.safeShutdown(l)
	}
}

func (c *Client) safeShutdown(l Listener) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("listener shutdown panicked",
				zap.String("client_id", c.id.String()),
				zap.Any("recover", r))
		}
	}()
	l.Shutdown()
}
