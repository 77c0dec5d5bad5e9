package system

import (
	"fmt"

	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
	"go.uber.org/zap"
)

// InvokeHandler runs a deferred call on the entity that scheduled it.
type InvokeHandler func(w *ecs.World, e ecs.Entity)

// InvokeSystem advances every pending deferred call by the frame delta and
// runs the named handler once its delay has elapsed.
type InvokeSystem struct {
	handlers map[string]InvokeHandler
}

func NewInvokeSystem() *InvokeSystem {
	return &InvokeSystem{handlers: map[string]InvokeHandler{}}
}

// Register binds a method name to a handler.
func (s *InvokeSystem) Register(method string, handler InvokeHandler) {
	if s.handlers == nil {
		s.handlers = map[string]InvokeHandler{}
	}
	s.handlers[method] = handler
}

func (s *InvokeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Time().Delta
	type due struct {
		entity ecs.Entity
		method string
	}
	var fired []due

	ecs.ForEach(w, component.InvokerComponent.Kind(), func(e ecs.Entity, inv *component.Invoker) {
		if len(inv.Pending) == 0 {
			return
		}
		kept := inv.Pending[:0]
		for _, p := range inv.Pending {
			p.Elapsed += dt
			if p.Elapsed >= p.Delay {
				fired = append(fired, due{entity: e, method: p.Method})
				continue
			}
			kept = append(kept, p)
		}
		inv.Pending = kept
	})

	for _, f := range fired {
		if !w.IsAlive(f.entity) {
			continue
		}
		handler, ok := s.handlers[f.method]
		if !ok {
			zap.L().Warn("invoke: no handler registered", zap.String("method", f.method), zap.Stringer("entity", f.entity))
			continue
		}
		handler(w, f.entity)
	}
}

// Invoke schedules method to run on e after delay seconds of frame time.
func Invoke(w *ecs.World, e ecs.Entity, method string, delay float64) error {
	inv, ok := ecs.Get(w, e, component.InvokerComponent.Kind())
	if !ok {
		inv = &component.Invoker{}
		if err := ecs.Add(w, e, component.InvokerComponent.Kind(), inv); err != nil {
			return fmt.Errorf("invoke %s: %w", method, err)
		}
	}
	if delay < 0 {
		delay = 0
	}
	inv.Pending = append(inv.Pending, component.PendingInvoke{Method: method, Delay: delay})
	return nil
}

// CancelInvoke drops every pending call of method on e.
func CancelInvoke(w *ecs.World, e ecs.Entity, method string) {
	inv, ok := ecs.Get(w, e, component.InvokerComponent.Kind())
	if !ok {
		return
	}
	kept := inv.Pending[:0]
	for _, p := range inv.Pending {
		if p.Method != method {
			kept = append(kept, p)
		}
	}
	inv.Pending = kept
}

// IsInvoking reports whether method is pending on e.
func IsInvoking(w *ecs.World, e ecs.Entity, method string) bool {
	inv, ok := ecs.Get(w, e, component.InvokerComponent.Kind())
	if !ok {
		return false
	}
	for _, p := range inv.Pending {
		if p.Method == method {
			return true
		}
	}
	return false
}
