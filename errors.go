package pipes

import "errors"

// Connection-discipline errors, raised at the addSource/addSink call
// site.
var (
	// ErrNullArg is returned when a required Pipe argument was nil.
	ErrNullArg = errors.New("pipes: nil pipe argument")
	// ErrDuplicate is returned when a Pipe is already connected as a
	// source or sink.
	ErrDuplicate = errors.New("pipes: pipe already connected")
	// ErrSinkFull is returned when the sink capacity of the receiving
	// Pipe is exhausted.
	ErrSinkFull = errors.New("pipes: sink capacity exceeded")
	// ErrSourceFull is returned when the source capacity of the
	// receiving Pipe is exhausted.
	ErrSourceFull = errors.New("pipes: source capacity exceeded")
	// ErrIndexOutOfRange is returned by indexed source/sink access and
	// by boundary sink pipes asked for a downstream sink.
	ErrIndexOutOfRange = errors.New("pipes: index out of range")
)

// Audio-client and scheduler errors.
var (
	// ErrConfigError is returned when an AudioClient is configured
	// with a non-fixed or mismatched buffer size. Channel counts are
	// not checked by Configure.
	ErrConfigError = errors.New("pipes: invalid audio configuration")
	// ErrNotSupported names an unsupported operation. The Scheduler's
	// Shutdown reports this condition through its own
	// scheduler.ErrNotSupported, a distinct value.
	ErrNotSupported = errors.New("pipes: operation not supported")
	// ErrBadFrameCount names a callback block whose size does not
	// match the configured external buffer size. Client.Process
	// reports that case by returning false and counting a dropped
	// callback; it does not return this value.
	ErrBadFrameCount = errors.New("pipes: unexpected frame count")
	// ErrOpInitFailure wraps a failure from a listener's Configure,
	// aborting device configuration. An AudioOp's Initialize failure
	// inside OpPipe.Process is not reported through it.
	ErrOpInitFailure = errors.New("pipes: op or listener initialization failed")
)
