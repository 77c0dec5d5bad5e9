package system

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/patrol/common"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
	"go.uber.org/zap"
)

// PatrolPointPrefix starts the name of every waypoint marker. The index
// follows it and runs up to the first ')'.
const PatrolPointPrefix = "Patrol Point ("

// patrolTurnFactor is the per-frame slerp factor toward the next waypoint.
const patrolTurnFactor = 0.68

var (
	ErrMalformedPatrolPoint = errors.New("malformed patrol point name")
	ErrPatrolPointGap       = errors.New("patrol point index missing")
	ErrDuplicatePatrolPoint = errors.New("duplicate patrol point index")
)

// PatrolSystem walks patrollers around their waypoint loop. Waypoints are
// collected the first frame a patroller is seen.
type PatrolSystem struct {
	err error
}

func NewPatrolSystem() *PatrolSystem {
	return &PatrolSystem{}
}

// Err returns the first waypoint configuration error encountered.
func (s *PatrolSystem) Err() error {
	return s.err
}

func (s *PatrolSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Time().Delta
	ecs.ForEach2(w, component.PatrolComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, patrol *component.Patrol, t *component.Transform) {
		if !patrol.Initialized {
			if err := initPatrol(w, e, patrol); err != nil {
				if s.err == nil {
					s.err = fmt.Errorf("patrol: entity %v: %w", e, err)
				}
				return
			}
		}

		target, ok := patrol.Target()
		if !ok {
			return
		}

		t.Position = common.MoveTowards(t.Position, target, patrol.MoveSpeed*dt)
		if t.Position == target {
			patrol.Current = (patrol.Current + 1) % len(patrol.Points)
			return
		}

		if model, ok := ecs.Get(w, e, component.ModelComponent.Kind()); ok {
			look := common.LookRotation(target.Sub(t.Position), common.Up)
			model.Rotation = common.Slerp(t.Orientation(), look, patrolTurnFactor)
		}
	})
}

// ParsePatrolPointIndex extracts n from a "Patrol Point (n)" name. ok is false
// when name is not a marker at all.
func ParsePatrolPointIndex(name string) (index int, ok bool, err error) {
	if !strings.HasPrefix(name, PatrolPointPrefix) {
		return 0, false, nil
	}
	end := strings.IndexByte(name, ')')
	if end < len(PatrolPointPrefix) {
		return 0, true, fmt.Errorf("%w: %q", ErrMalformedPatrolPoint, name)
	}
	n, err := strconv.Atoi(name[len(PatrolPointPrefix):end])
	if err != nil || n < 0 {
		return 0, true, fmt.Errorf("%w: %q", ErrMalformedPatrolPoint, name)
	}
	return n, true, nil
}

// initPatrol collects the waypoint markers below e, detaches them so they stay
// put while the patroller moves, and hides them from the hierarchy.
func initPatrol(w *ecs.World, e ecs.Entity, patrol *component.Patrol) error {
	ecs.UpdateWorldTransforms(w)

	markers := map[int]ecs.Entity{}
	maxIndex := -1
	for _, d := range ecs.Descendants(w, e) {
		node, ok := ecs.Get(w, d, component.NodeComponent.Kind())
		if !ok {
			continue
		}
		idx, isMarker, err := ParsePatrolPointIndex(node.Name)
		if err != nil {
			return err
		}
		if !isMarker {
			continue
		}
		if prev, dup := markers[idx]; dup {
			return fmt.Errorf("%w: %d on %v and %v", ErrDuplicatePatrolPoint, idx, prev, d)
		}
		markers[idx] = d
		if idx > maxIndex {
			maxIndex = idx
		}
	}

	points := make([]mgl64.Vec3, maxIndex+1)
	for i := range points {
		marker, ok := markers[i]
		if !ok {
			return fmt.Errorf("%w: %d of %d", ErrPatrolPointGap, i, maxIndex)
		}
		if t, ok := ecs.Get(w, marker, component.TransformComponent.Kind()); ok {
			points[i] = t.Position
		}
	}

	for i := range points {
		marker := markers[i]
		if marker != e {
			if err := ecs.SetParent(w, marker, 0); err != nil {
				return fmt.Errorf("detach patrol point %d: %w", i, err)
			}
		}
		if node, ok := ecs.Get(w, marker, component.NodeComponent.Kind()); ok {
			node.HideInHierarchy = true
		}
	}

	patrol.Points = points
	patrol.Current = 0
	patrol.Initialized = true

	if len(points) == 0 {
		zap.L().Info("patroller idle: no patrol points", zap.Stringer("entity", e))
	} else {
		zap.L().Info("patrol initialized", zap.Stringer("entity", e), zap.Int("points", len(points)))
	}
	return nil
}
