package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type PatrollerTag struct{}

var PatrollerTagComponent = NewComponent[PatrollerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
