package pipes

import "testing"

func TestRecorderAccumulatesAcrossBlocks(t *testing.T) {
	rec := NewRecorder(48000, 2)
	src := newCountingPipe(0, 1, 3)
	assertEqual(t, "wire source", rec.AddSource(&src.Pipe), nil)

	assertEqual(t, "capture one", rec.Capture(1), nil)
	assertEqual(t, "capture two", rec.Capture(2), nil)
	assertEqual(t, "accumulated", rec.Recorded(), []float32{3, 3, 3, 3})
	assertEqual(t, "source ran twice", src.processes, 2)
}

func TestRecorderPauseStopsCapture(t *testing.T) {
	rec := NewRecorder(48000, 2)
	src := newCountingPipe(0, 1, 9)
	assertEqual(t, "wire source", rec.AddSource(&src.Pipe), nil)

	assertEqual(t, "capture one", rec.Capture(1), nil)
	rec.Pause()
	assertEqual(t, "capture while paused", rec.Capture(2), nil)
	assertEqual(t, "nothing added while paused", rec.Recorded(), []float32{9, 9})

	rec.Resume()
	assertEqual(t, "capture after resume", rec.Capture(3), nil)
	assertEqual(t, "resumed capture appended", rec.Recorded(), []float32{9, 9, 9, 9})
}

func TestRecorderResetClearsWithoutDisconnecting(t *testing.T) {
	rec := NewRecorder(48000, 1)
	src := newCountingPipe(0, 1, 1)
	assertEqual(t, "wire source", rec.AddSource(&src.Pipe), nil)
	assertEqual(t, "capture", rec.Capture(1), nil)

	rec.Reset()
	assertEqual(t, "cleared", len(rec.Recorded()), 0)

	assertEqual(t, "still connected, capture works", rec.Capture(2), nil)
	assertEqual(t, "captured after reset", rec.Recorded(), []float32{1})
}

func TestRecorderCaptureWithoutSourceErrors(t *testing.T) {
	rec := NewRecorder(48000, 1)
	if err := rec.Capture(1); err != ErrIndexOutOfRange {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}
