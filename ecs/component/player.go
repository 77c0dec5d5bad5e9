package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Player holds movement tuning and respawn timing.
type Player struct {
	// MoveSpeed is units moved per second at maximum speed.
	MoveSpeed float64
	// TimeToMaxSpeed is seconds to reach MoveSpeed from rest.
	TimeToMaxSpeed float64
	// TimeToLoseMaxSpeed is seconds to go from MoveSpeed to rest.
	TimeToLoseMaxSpeed float64
	// ReverseMomentumMultiplier scales deceleration while pushing against
	// the current travel direction.
	ReverseMomentumMultiplier float64
	// RespawnWaitTime is seconds between death and respawn.
	RespawnWaitTime float64
}

// VelocityGainPerSecond is MoveSpeed / TimeToMaxSpeed. A zero time means the
// change is instant and the rate is +Inf.
func (p Player) VelocityGainPerSecond() float64 {
	return ratePerSecond(p.MoveSpeed, p.TimeToMaxSpeed)
}

// VelocityLossPerSecond is MoveSpeed / TimeToLoseMaxSpeed, +Inf for a zero
// time.
func (p Player) VelocityLossPerSecond() float64 {
	return ratePerSecond(p.MoveSpeed, p.TimeToLoseMaxSpeed)
}

func ratePerSecond(speed, seconds float64) float64 {
	if speed == 0 {
		return 0
	}
	if seconds <= 0 {
		return math.Inf(1)
	}
	return speed / seconds
}

var PlayerComponent = NewComponent[Player]()

// PlayerOverrides keeps per-level tuning values keyed by prop name so they
// survive a prefab reload.
type PlayerOverrides struct {
	Values map[string]float64
}

var PlayerOverridesComponent = NewComponent[PlayerOverrides]()

// PlayerMotion is the current ground-plane velocity. Only X and Z are used.
type PlayerMotion struct {
	Velocity mgl64.Vec3
}

var PlayerMotionComponent = NewComponent[PlayerMotion]()

// Life is the alive/dead state of a player. ControllerEnabled gates the
// movement integrator.
type Life struct {
	Dead              bool
	ControllerEnabled bool
	Deaths            int
}

var LifeComponent = NewComponent[Life]()
