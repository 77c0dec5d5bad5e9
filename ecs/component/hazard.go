package component

// Hazard kills a player that overlaps it. Bounds are a circle when Radius is
// set, otherwise a box of HalfX/HalfZ around the transform.
type Hazard struct {
	Radius float64
	HalfX  float64
	HalfZ  float64
	// Script optionally names a tengo script under prefabs/scripts that sets
	// the global `lethal` from `speed`, `x` and `z`.
	Script string
}

var HazardComponent = NewComponent[Hazard]()
