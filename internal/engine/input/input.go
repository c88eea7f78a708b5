// Package input reduces SDL2 events to one Frame per tick.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Frame is everything the tick loop needs from one round of event polling.
type Frame struct {
	Quit bool // Window closed or Escape pressed

	// Pointer state sampled after the event queue is drained.
	DragHeld bool
	PointerX int
	PointerY int

	// DragReleased is set when the drag button came up during this tick.
	DragReleased bool

	// Wheel is the signed notch count; positive means zoom in.
	Wheel int

	Resized bool
	Width   int
	Height  int

	PrintStats bool // L
	Snapshot   bool // F12
}

// Input polls SDL for events.
type Input struct {
	frame Frame
}

// New creates a new input handler.
func New() *Input {
	return &Input{}
}

// Poll drains the SDL event queue and samples the mouse.
func (i *Input) Poll() Frame {
	i.frame = Frame{}

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.handle(event)
	}

	x, y, state := sdl.GetMouseState()
	i.frame.PointerX = int(x)
	i.frame.PointerY = int(y)
	i.frame.DragHeld = state&sdl.ButtonLMask() != 0

	return i.frame
}

func (i *Input) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.frame.Quit = true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.frame.Resized = true
			i.frame.Width = int(e.Data1)
			i.frame.Height = int(e.Data2)
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return
		}
		switch e.Keysym.Scancode {
		case sdl.SCANCODE_ESCAPE:
			i.frame.Quit = true
		case sdl.SCANCODE_L:
			i.frame.PrintStats = true
		case sdl.SCANCODE_F12:
			i.frame.Snapshot = true
		}

	case *sdl.MouseButtonEvent:
		if e.Type == sdl.MOUSEBUTTONUP && e.Button == sdl.BUTTON_LEFT {
			i.frame.DragReleased = true
		}

	case *sdl.MouseWheelEvent:
		y := e.Y
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		// One notch per event, however far the device reports.
		switch {
		case y > 0:
			i.frame.Wheel++
		case y < 0:
			i.frame.Wheel--
		}
	}
}
