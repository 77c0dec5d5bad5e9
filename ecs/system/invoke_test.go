package system

import (
	"testing"

	"github.com/milk9111/patrol/ecs"
)

func TestInvokeSystem(t *testing.T) {
	tests := []struct {
		name        string
		delay       float64
		frames      int
		wantCalls   int
		wantStill   bool
		cancelFirst bool
	}{
		{name: "not_before_delay", delay: 1, frames: 3, wantCalls: 0, wantStill: true},
		{name: "fires_when_elapsed_reaches_delay", delay: 1, frames: 4, wantCalls: 1},
		{name: "fires_once", delay: 0.5, frames: 8, wantCalls: 1},
		{name: "zero_delay_next_update", delay: 0, frames: 1, wantCalls: 1},
		{name: "cancelled", delay: 0.5, frames: 4, wantCalls: 0, cancelFirst: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)

			calls := 0
			inv := NewInvokeSystem()
			inv.Register("ping", func(w *ecs.World, got ecs.Entity) {
				if got != e {
					t.Fatalf("handler got %v, want %v", got, e)
				}
				calls++
			})

			if err := Invoke(w, e, "ping", tc.delay); err != nil {
				t.Fatalf("invoke: %v", err)
			}
			if tc.cancelFirst {
				CancelInvoke(w, e, "ping")
			}

			step(w, ecs.NewScheduler(inv), tc.frames)

			if calls != tc.wantCalls {
				t.Fatalf("expected %d calls, got %d", tc.wantCalls, calls)
			}
			if IsInvoking(w, e, "ping") != tc.wantStill {
				t.Fatalf("expected pending=%v", tc.wantStill)
			}
		})
	}
}

func TestInvokeHandlerMayReschedule(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)

	calls := 0
	inv := NewInvokeSystem()
	inv.Register("tick", func(w *ecs.World, e ecs.Entity) {
		calls++
		_ = Invoke(w, e, "tick", testDelta)
	})
	_ = Invoke(w, e, "tick", testDelta)

	step(w, ecs.NewScheduler(inv), 3)

	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if !IsInvoking(w, e, "tick") {
		t.Fatalf("expected rescheduled call to be pending")
	}
}

func TestInvokeUnknownMethodIsDropped(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = Invoke(w, e, "missing", 0)

	step(w, ecs.NewScheduler(NewInvokeSystem()), 1)

	if IsInvoking(w, e, "missing") {
		t.Fatalf("expected unknown method to be dropped after firing")
	}
}

func TestInvokeOnDeadEntity(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	ecs.DestroyEntity(w, e)
	if err := Invoke(w, e, "ping", 1); err == nil {
		t.Fatalf("expected error scheduling on a destroyed entity")
	}
}
