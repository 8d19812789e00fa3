package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/boxing/ecs/component"
)

type binding struct {
	key         ebiten.Key
	participant component.Participant
	logical     component.Key
}

// Player one boxes with Shift and WASD, player two with Space and the arrows.
var defaultBindings = []binding{
	{ebiten.KeyShiftLeft, component.Participant1, component.KeyGuard},
	{ebiten.KeyW, component.Participant1, component.KeyUp},
	{ebiten.KeyS, component.Participant1, component.KeyDown},
	{ebiten.KeyA, component.Participant1, component.KeyLeft},
	{ebiten.KeyD, component.Participant1, component.KeyRight},

	{ebiten.KeySpace, component.Participant2, component.KeyGuard},
	{ebiten.KeyArrowUp, component.Participant2, component.KeyUp},
	{ebiten.KeyArrowDown, component.Participant2, component.KeyDown},
	{ebiten.KeyArrowLeft, component.Participant2, component.KeyLeft},
	{ebiten.KeyArrowRight, component.Participant2, component.KeyRight},
}

// pollBindings returns this frame's key edges for every bound key.
func pollBindings(bindings []binding) []component.InputEvent {
	var out []component.InputEvent
	for _, b := range bindings {
		switch {
		case inpututil.IsKeyJustPressed(b.key):
			out = append(out, component.InputEvent{Participant: b.participant, Key: b.logical, Edge: component.EdgeDown})
		case inpututil.IsKeyJustReleased(b.key):
			out = append(out, component.InputEvent{Participant: b.participant, Key: b.logical, Edge: component.EdgeUp})
		}
	}
	return out
}

func ctrlShift() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) && ebiten.IsKeyPressed(ebiten.KeyShift)
}
