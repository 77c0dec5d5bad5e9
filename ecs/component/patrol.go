package component

import "github.com/go-gl/mathgl/mgl64"

// Patrol drives an entity around a closed loop of waypoints. Points is filled
// once from the entity's "Patrol Point (n)" children.
type Patrol struct {
	MoveSpeed   float64
	Points      []mgl64.Vec3
	Current     int
	Initialized bool
}

// Idle reports whether the patroller has nowhere to go.
func (p *Patrol) Idle() bool {
	return p == nil || len(p.Points) == 0
}

// Target returns the current waypoint.
func (p *Patrol) Target() (mgl64.Vec3, bool) {
	if p.Idle() || p.Current < 0 || p.Current >= len(p.Points) {
		return mgl64.Vec3{}, false
	}
	return p.Points[p.Current], true
}

var PatrolComponent = NewComponent[Patrol]()
