package component

// RenderLayer is used to sort draw order deterministically. Lower layers are
// drawn first.
type RenderLayer struct {
	Index int
}

const (
	LayerFloor   = 0
	LayerHazards = 5
	LayerActors  = 10
	LayerDebug   = 20
)

var RenderLayerComponent = NewComponent[RenderLayer]()
