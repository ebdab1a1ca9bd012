package meshy

import "testing"

func TestInjectClickQueuesTwoFrames(t *testing.T) {
	s := newTestSurface(t)
	var opened bool
	s.Editor().OnActivate(func(ev ActivateEvent) { opened = ev.Open })

	s.InjectClick(224, 214)
	if s.Pending() != 2 {
		t.Fatalf("expected 2 queued events, got %d", s.Pending())
	}

	// Frame 1: press
	if !s.processInjectedInput() {
		t.Fatal("no event consumed on frame 1")
	}
	if opened {
		t.Error("activation should not fire on press frame")
	}

	// Frame 2: release
	s.processInjectedInput()
	if s.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", s.Pending())
	}
	if !opened {
		t.Error("activation should fire on release frame")
	}

	if s.processInjectedInput() {
		t.Error("event consumed from an empty queue")
	}
}

func TestInjectDragFrames(t *testing.T) {
	s := newTestSurface(t)
	s.InjectDrag(0, 0, 90, 30, 5)
	if s.Pending() != 5 {
		t.Fatalf("expected 5 queued events, got %d", s.Pending())
	}
	want := []syntheticPointerEvent{
		{x: 0, y: 0, pressed: true},
		{x: 30, y: 10, pressed: true},
		{x: 60, y: 20, pressed: true},
		{x: 90, y: 30, pressed: true},
		{x: 90, y: 30, pressed: false},
	}
	for i, w := range want {
		got := s.injectQueue[i]
		if got.pressed != w.pressed {
			t.Errorf("event %d pressed = %v, want %v", i, got.pressed, w.pressed)
		}
		assertNear(t, "x", got.x, w.x)
		assertNear(t, "y", got.y, w.y)
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	s := newTestSurface(t)
	s.InjectDrag(0, 0, 10, 10, 1)
	if s.Pending() != 3 {
		t.Fatalf("expected 3 queued events, got %d", s.Pending())
	}
	// The single move lands on the target.
	if e := s.injectQueue[1]; e.x != 10 || e.y != 10 || !e.pressed {
		t.Errorf("move event = %+v", e)
	}
}
