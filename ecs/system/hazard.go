package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/patrol/common"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
)

const defaultPlayerRadius = 0.5

// HazardSystem reports living players that overlap a lethal hazard by pushing
// a HazardContact event. PlayerLifeSystem turns contacts into deaths.
type HazardSystem struct {
	scripts map[string]*hazardScript
}

func NewHazardSystem() *HazardSystem {
	return &HazardSystem{scripts: map[string]*hazardScript{}}
}

// ReloadScripts drops every compiled predicate so they are loaded again on
// next use.
func (s *HazardSystem) ReloadScripts() {
	s.scripts = map[string]*hazardScript{}
}

func (s *HazardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	type hazardShape struct {
		entity ecs.Entity
		center mgl64.Vec3
		hazard *component.Hazard
	}
	var hazards []hazardShape
	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, h *component.Hazard, t *component.Transform) {
		hazards = append(hazards, hazardShape{entity: e, center: t.Position, hazard: h})
	})
	if len(hazards) == 0 {
		return
	}

	for _, p := range w.Query(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), component.LifeComponent.Kind()) {
		life, _ := ecs.Get(w, p, component.LifeComponent.Kind())
		if life.Dead {
			continue
		}
		t, _ := ecs.Get(w, p, component.TransformComponent.Kind())

		radius := defaultPlayerRadius
		if c, ok := ecs.Get(w, p, component.CharacterColliderComponent.Kind()); ok {
			if !c.Enabled {
				continue
			}
			if c.Radius > 0 {
				radius = c.Radius
			}
		}
		speed := 0.0
		if m, ok := ecs.Get(w, p, component.PlayerMotionComponent.Kind()); ok {
			speed = m.Velocity.Len()
		}

		for _, h := range hazards {
			if h.entity == p || !overlapsHazard(t.Position, radius, h.center, h.hazard) {
				continue
			}
			if !s.lethal(h.hazard, speed, t.Position) {
				continue
			}
			w.Events().Push(ecs.Event{
				Type: ecs.EventHazardContact,
				Data: ecs.HazardContact{Player: p, Hazard: h.entity},
			})
			break
		}
	}
}

func (s *HazardSystem) lethal(h *component.Hazard, speed float64, pos mgl64.Vec3) bool {
	if h.Script == "" {
		return true
	}
	if s.scripts == nil {
		s.scripts = map[string]*hazardScript{}
	}
	hs, ok := s.scripts[h.Script]
	if !ok {
		hs = loadHazardScript(h.Script)
		s.scripts[h.Script] = hs
	}
	return hs.lethal(speed, pos.X(), pos.Z())
}

// overlapsHazard tests a circle of radius r at p against the hazard bounds on
// the X/Z plane.
func overlapsHazard(p mgl64.Vec3, r float64, center mgl64.Vec3, h *component.Hazard) bool {
	dx := p.X() - center.X()
	dz := p.Z() - center.Z()
	if h.Radius > 0 {
		reach := r + h.Radius
		return dx*dx+dz*dz <= reach*reach
	}
	if h.HalfX <= 0 || h.HalfZ <= 0 {
		return false
	}
	cx := common.Clamp(dx, -h.HalfX, h.HalfX)
	cz := common.Clamp(dz, -h.HalfZ, h.HalfZ)
	ex := dx - cx
	ez := dz - cz
	return ex*ex+ez*ez <= r*r
}
