package pipes

import "testing"

func TestPropertySetDiscardsAnimator(t *testing.T) {
	p := NewProperty(1)
	anim := p.Animator()
	anim.To(10, int64(1e9), nil)
	p.Set(5)
	assertEqual(t, "value set directly", p.Value(), 5.0)
	assertEqual(t, "animator detached", p.animator, (*Animator)(nil))
}

func TestAnimatorLinearInterpolation(t *testing.T) {
	p := NewProperty(0)
	anim := p.Animator()
	anim.To(10, int64(1e9), LinearEasing) // ramp to 10 over 1 second

	anim.Attach(48000, 480) // 10ms blocks

	anim.Update(int64(100 * 1e6)) // first call: elapsed grows by one assumed 10ms block, not by 100ms
	// First call establishes baseline using blockSize/sampleRate as the
	// assumed delta, so elapsed only reflects this call's own block.
	if p.Value() <= 0 || p.Value() >= 10 {
		t.Fatalf("expected partial progress, got %v", p.Value())
	}

	anim.Update(int64(5000 * 1e6)) // jump forward far beyond the keyframe
	assertEqual(t, "clamped at target", p.Value(), 10.0)
}

func TestPropertyLinkInvokesImmediatelyAndOnEveryChange(t *testing.T) {
	p := NewProperty(3)
	var seen []float64
	p.Link(func(v float64) { seen = append(seen, v) })
	assertEqual(t, "invoked immediately with current value", len(seen), 1)
	assertEqual(t, "immediate value", seen[0], 3.0)

	p.Set(7)
	assertEqual(t, "invoked again on Set", len(seen), 2)
	assertEqual(t, "value pushed on Set", seen[1], 7.0)

	anim := p.Animator()
	anim.To(9, 0, nil)
	anim.Attach(1, 0)
	anim.Update(0)
	assertEqual(t, "invoked again on animator Update", len(seen), 3)
	assertEqual(t, "value pushed on animator Update", seen[2], 9.0)
}

func TestPropertyLinkSecondConsumerAlsoGetsImmediateValue(t *testing.T) {
	p := NewProperty(2)
	var a, b float64
	p.Link(func(v float64) { a = v })
	p.Link(func(v float64) { b = v })
	assertEqual(t, "first listener sees initial value", a, 2.0)
	assertEqual(t, "second listener also sees initial value", b, 2.0)

	p.Set(4)
	assertEqual(t, "first listener sees update", a, 4.0)
	assertEqual(t, "second listener sees update", b, 4.0)
}

func TestAnimatorOnDoneReceivesOverrun(t *testing.T) {
	p := NewProperty(0)
	anim := p.Animator()
	anim.To(1, 100, nil)
	anim.To(0, 100, nil)

	var overruns []int64
	anim.OnDone(func(overrun int64) { overruns = append(overruns, overrun) })

	anim.Attach(1, 0)
	anim.Update(0)
	anim.Update(150) // overruns the first keyframe (100) by 50

	if len(overruns) != 1 {
		t.Fatalf("expected exactly one completion callback, got %v", overruns)
	}
	assertEqual(t, "overrun carried past the keyframe", overruns[0], int64(50))
}

func TestAnimatorCyclesAndCarriesOverrun(t *testing.T) {
	p := NewProperty(0)
	anim := p.Animator()
	anim.To(1, 100, nil)
	anim.To(0, 100, nil)
	// A zero-length assumed block makes the very first Update a pure
	// baseline call contributing no elapsed time, so every later call
	// advances by exactly the nanos difference from the call before.
	anim.Attach(1, 0)
	anim.Update(0)

	anim.Update(50) // elapsed=50, halfway into keyframe 0
	assertEqual(t, "halfway", p.Value(), 0.5)

	anim.Update(150) // elapsed=150, overruns keyframe 0 (100) by 50
	// After wrapping into keyframe 1 (target 0, from segmentStart 1),
	// the carried-over 50ns of the 100ns keyframe puts us at the
	// keyframe's halfway point again, now descending.
	assertEqual(t, "halfway back down", p.Value(), 0.5)
}
