package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
)

const stickDeadzone = 0.2

// InputSystem copies the raw key state into every Input component. Axes are
// raw: -1, 0 or 1.
type InputSystem struct {
	read func() component.Input
}

func NewInputSystem() *InputSystem {
	return &InputSystem{read: readEbitenInput}
}

// NewInputSystemFrom reads input from read instead of the keyboard, for
// replays and headless runs.
func NewInputSystemFrom(read func() component.Input) *InputSystem {
	return &InputSystem{read: read}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.read == nil {
		return
	}

	state := i.read()
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = state
	})
}

func readEbitenInput() component.Input {
	forward := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	back := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	die := inpututil.IsKeyJustPressed(ebiten.KeyT)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		right = right || lx > stickDeadzone
		left = left || lx < -stickDeadzone
		// stick up is negative
		forward = forward || ly < -stickDeadzone
		back = back || ly > stickDeadzone
		die = die || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterLeft)
	}

	return component.Input{
		MoveX:      rawAxis(right, left),
		MoveZ:      rawAxis(forward, back),
		DiePressed: die,
	}
}

// rawAxis resolves a pair of opposing buttons. Positive wins when both are
// held.
func rawAxis(positive, negative bool) float64 {
	switch {
	case positive:
		return 1
	case negative:
		return -1
	default:
		return 0
	}
}
