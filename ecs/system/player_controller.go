package system

import (
	"math"

	"github.com/milk9111/patrol/common"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
)

// playerTurnFactor is the per-frame slerp factor toward the travel direction.
const playerTurnFactor = 0.18

// PlayerControllerSystem integrates ground-plane velocity from input and moves
// living players through their character collider.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Time().Delta
	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.PlayerMotionComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	for _, e := range entities {
		captureSpawn(w, e)
		if life, ok := ecs.Get(w, e, component.LifeComponent.Kind()); ok && (life.Dead || !life.ControllerEnabled) {
			continue
		}

		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		motion, _ := ecs.Get(w, e, component.PlayerMotionComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		gain := player.VelocityGainPerSecond()
		loss := player.VelocityLossPerSecond()
		rev := player.ReverseMomentumMultiplier

		v := motion.Velocity
		v[0] = integrateAxis(v.X(), input.MoveX, player.MoveSpeed, gain, loss, rev, dt)
		v[2] = integrateAxis(v.Z(), input.MoveZ, player.MoveSpeed, gain, loss, rev, dt)
		v[1] = 0
		motion.Velocity = v

		if v.X() == 0 && v.Z() == 0 {
			continue
		}

		delta := v.Mul(dt)
		collider, hasCollider := ecs.Get(w, e, component.CharacterColliderComponent.Kind())
		if pw := w.PhysicsWorld(); hasCollider && pw != nil && collider.Body != nil {
			transform.Position = pw.MoveCharacter(collider, transform.Position, delta)
		} else {
			transform.Position = transform.Position.Add(delta)
		}

		if model, ok := ecs.Get(w, e, component.ModelComponent.Kind()); ok {
			model.Rotation = common.Slerp(model.Orientation(), common.LookRotation(v, common.Up), playerTurnFactor)
		}
	}
}

// integrateAxis applies one frame of acceleration on a single axis. input is
// the raw axis value; only its sign matters. gain and loss may be +Inf.
func integrateAxis(v, input, maxSpeed, gain, loss, reverse, dt float64) float64 {
	switch {
	case input > 0:
		if v >= 0 {
			return math.Min(maxSpeed, v+velocityChange(gain, 1, dt))
		}
		return math.Min(0, v+velocityChange(gain, reverse, dt))
	case input < 0:
		if v > 0 {
			return math.Max(0, v-velocityChange(gain, reverse, dt))
		}
		return math.Max(-maxSpeed, v-velocityChange(gain, 1, dt))
	default:
		if v > 0 {
			return math.Max(0, v-velocityChange(loss, 1, dt))
		}
		return math.Min(0, v+velocityChange(loss, 1, dt))
	}
}

// velocityChange is rate*scale*dt with a zero factor winning over an
// infinite rate.
func velocityChange(rate, scale, dt float64) float64 {
	if rate == 0 || scale == 0 || dt <= 0 {
		return 0
	}
	return rate * scale * dt
}
