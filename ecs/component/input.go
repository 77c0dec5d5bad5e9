package component

// Input stores per-frame input state for an entity. MoveX and MoveZ are -1, 0
// or 1.
type Input struct {
	MoveX      float64
	MoveZ      float64
	DiePressed bool
}

var InputComponent = NewComponent[Input]()
