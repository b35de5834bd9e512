package pipes

import "math"

// Easing reshapes a normalized progress value t in [0,1] into an
// eased progress value, also expected to lie in (or near) [0,1].
type Easing func(t float64) float64

// LinearEasing applies no reshaping.
func LinearEasing(t float64) float64 { return t }

// EaseInEasing starts slow and accelerates, using a quadratic curve.
func EaseInEasing(t float64) float64 { return t * t }

// EaseOutEasing starts fast and decelerates, using a quadratic curve.
func EaseOutEasing(t float64) float64 { return t * (2 - t) }

// EaseInOutEasing accelerates through the first half and decelerates
// through the second, using a cosine curve.
func EaseInOutEasing(t float64) float64 {
	return 0.5 * (1 - math.Cos(math.Pi*t))
}

// PropertyListener is a callback registered via Property.Link, invoked
// with the property's current value every time it changes (by Set or
// by an Animator) and once immediately upon registration.
type PropertyListener func(value float64)

// Property is a single scalar value that can either be set directly or
// driven by an Animator across many blocks. Reads are always a plain
// field access — no locking, no allocation — because Property is only
// ever touched from the single audio-processing thread.
type Property struct {
	value     float64
	animator  *Animator
	listeners []PropertyListener
}

// NewProperty returns a Property initialized to value.
func NewProperty(value float64) *Property {
	return &Property{value: value}
}

// Value returns the current value.
func (p *Property) Value() float64 { return p.value }

// Link registers consumer to be called with the property's value on
// every future change, and immediately with the current value.
func (p *Property) Link(consumer PropertyListener) {
	p.listeners = append(p.listeners, consumer)
	consumer(p.value)
}

// Set assigns value directly, discarding any in-progress animation, and
// pushes the new value to every linked listener.
func (p *Property) Set(value float64) {
	p.value = value
	if a := p.animator; a != nil {
		// Clear the old Animator so that, if it is still registered
		// with a Graph, its Update no longer writes to this Property.
		a.keyframes, a.index, a.elapsed = nil, 0, 0
	}
	p.animator = nil
	p.notify()
}

func (p *Property) notify() {
	for _, l := range p.listeners {
		l(p.value)
	}
}

// Animator returns the Animator driving this Property, creating one if
// none exists yet. The returned Animator must be registered with a
// Graph (via AddDependent) to actually advance.
func (p *Property) Animator() *Animator {
	if p.animator == nil {
		p.animator = &Animator{property: p}
	}
	return p.animator
}

// keyframe is one segment of an Animator's cycle: move linearly from
// the previous target to "to" over "in" nanoseconds, reshaped by
// "easing".
type keyframe struct {
	to     float64
	in     int64
	easing Easing
}

// Animator drives a Property through a repeating cycle of keyframes.
// Each keyframe specifies a target value and a duration; Animator
// interpolates from the value at the start of the keyframe to its
// target, reshaping elapsed-time fraction through the keyframe's
// easing function. When a keyframe finishes, any nanoseconds beyond
// its duration carry over into the next one (overrun-carrying) so a
// block-quantized clock does not accumulate long-run drift relative to
// the intended tempo.
type Animator struct {
	property *Property

	keyframes []keyframe
	index     int

	segmentStart float64
	elapsed      int64

	sampleRate float64
	blockSize  int

	lastNanos int64
	hasLast   bool

	onDone []func(overrun int64)
}

// To appends a keyframe: move to target over duration nanoseconds using
// easing. If easing is nil, LinearEasing is used.
func (a *Animator) To(target float64, duration int64, easing Easing) *Animator {
	if easing == nil {
		easing = LinearEasing
	}
	a.keyframes = append(a.keyframes, keyframe{to: target, in: duration, easing: easing})
	return a
}

// OnDone registers fn to be called every time a keyframe segment
// completes, passed the nanoseconds of overrun — the elapsed time past
// the segment's own duration — carried into the next segment.
func (a *Animator) OnDone(fn func(overrun int64)) *Animator {
	a.onDone = append(a.onDone, fn)
	return a
}

// Attach implements Dependent.
func (a *Animator) Attach(sampleRate float64, blockSize int) {
	a.sampleRate = sampleRate
	a.blockSize = blockSize
	a.hasLast = false
	if a.property != nil && len(a.keyframes) > 0 {
		a.segmentStart = a.property.value
	}
}

// Detach implements Dependent.
func (a *Animator) Detach() {}

// Update implements Dependent, advancing the animation by the elapsed
// time since the previous call and writing the interpolated value into
// the bound Property.
func (a *Animator) Update(nanos int64) {
	if len(a.keyframes) == 0 {
		return
	}
	var delta int64
	if a.hasLast {
		delta = nanos - a.lastNanos
	} else {
		delta = int64(float64(a.blockSize) / a.sampleRate * 1e9)
	}
	a.lastNanos = nanos
	a.hasLast = true

	a.elapsed += delta
	for {
		kf := a.keyframes[a.index]
		if kf.in <= 0 || a.elapsed < kf.in {
			break
		}
		a.elapsed -= kf.in
		a.segmentStart = kf.to
		a.index = (a.index + 1) % len(a.keyframes)
		for _, fn := range a.onDone {
			fn(a.elapsed)
		}
	}

	kf := a.keyframes[a.index]
	if kf.in <= 0 {
		a.property.value = kf.to
		a.property.notify()
		return
	}
	t := float64(a.elapsed) / float64(kf.in)
	if t > 1 {
		t = 1
	}
	a.property.value = a.segmentStart + (kf.to-a.segmentStart)*kf.easing(t)
	a.property.notify()
}
