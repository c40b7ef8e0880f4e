package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/toon-sphere/internal/engine/camera"
	"github.com/Faultbox/toon-sphere/internal/engine/input"
	"github.com/Faultbox/toon-sphere/internal/scene"
)

// Action is something a key binding asks the viewer to do.
type Action int

const (
	ActionNone Action = iota
	ActionToggleTexture
	ActionToggleRotation
	ActionCycleFilter
	ActionToggleEdge
	ActionGradientUp
	ActionGradientDown
	ActionInflateUp
	ActionInflateDown
	ActionTogglePause
	ActionResetCamera
	ActionScreenshot
	ActionSaveSettings
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:           "none",
	ActionToggleTexture:  "toggle texture",
	ActionToggleRotation: "toggle rotation",
	ActionCycleFilter:    "cycle filter",
	ActionToggleEdge:     "toggle edge",
	ActionGradientUp:     "gradient up",
	ActionGradientDown:   "gradient down",
	ActionInflateUp:      "inflate up",
	ActionInflateDown:    "inflate down",
	ActionTogglePause:    "toggle pause",
	ActionResetCamera:    "reset camera",
	ActionScreenshot:     "screenshot",
	ActionSaveSettings:   "save settings",
	ActionQuit:           "quit",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// KeyBindings maps keys to actions.
var KeyBindings = map[sdl.Scancode]Action{
	sdl.SCANCODE_T:      ActionToggleTexture,
	sdl.SCANCODE_R:      ActionToggleRotation,
	sdl.SCANCODE_F:      ActionCycleFilter,
	sdl.SCANCODE_E:      ActionToggleEdge,
	sdl.SCANCODE_UP:     ActionGradientUp,
	sdl.SCANCODE_DOWN:   ActionGradientDown,
	sdl.SCANCODE_RIGHT:  ActionInflateUp,
	sdl.SCANCODE_LEFT:   ActionInflateDown,
	sdl.SCANCODE_SPACE:  ActionTogglePause,
	sdl.SCANCODE_HOME:   ActionResetCamera,
	sdl.SCANCODE_F12:    ActionScreenshot,
	sdl.SCANCODE_S:      ActionSaveSettings,
	sdl.SCANCODE_ESCAPE: ActionQuit,
}

// repeatable actions keep firing while the key is held.
func (a Action) repeatable() bool {
	switch a {
	case ActionGradientUp, ActionGradientDown, ActionInflateUp, ActionInflateDown:
		return true
	}
	return false
}

// Pauser is the renderer lifecycle the controls can toggle.
type Pauser interface {
	Start()
	Stop()
	Running() bool
}

// Controls turns input events into parameter, camera and lifecycle changes.
// It runs on the render thread between frames.
type Controls struct {
	Params   *scene.Params
	Camera   *camera.OrbitCamera
	Renderer Pauser

	dragging bool
}

// Handle processes one event. Parameter, camera and pause actions are
// applied directly; the returned action lets the host react to the rest.
func (c *Controls) Handle(e input.Event) Action {
	switch e.Type {
	case input.EventKeyDown:
		a := KeyBindings[e.Key]
		if e.Repeat && !a.repeatable() {
			return ActionNone
		}
		c.Apply(a)
		return a

	case input.EventMouseDown:
		if e.Button == sdl.BUTTON_LEFT {
			c.dragging = true
		}
	case input.EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT {
			c.dragging = false
		}
	case input.EventMouseMove:
		if c.dragging {
			c.Camera.OnDragDelta(float32(e.DeltaX), float32(e.DeltaY))
		}
	case input.EventMouseWheel:
		// Scrolling away from the user zooms in.
		c.Camera.OnWheelDelta(-e.Wheel)
	}
	return ActionNone
}

// Apply performs a parameter, camera or pause action. Host actions are
// ignored here.
func (c *Controls) Apply(a Action) {
	p := c.Params
	switch a {
	case ActionToggleTexture:
		p.SetTextureEnabled(!p.TextureEnabled())
	case ActionToggleRotation:
		p.SetRotationEnabled(!p.RotationEnabled())
	case ActionCycleFilter:
		p.SetFilterMode(p.FilterMode().Next())
	case ActionToggleEdge:
		p.SetEdgeEnabled(!p.EdgeEnabled())
	case ActionGradientUp:
		p.SetGradientSteps(p.GradientSteps() + 1)
	case ActionGradientDown:
		p.SetGradientSteps(p.GradientSteps() - 1)
	case ActionInflateUp:
		p.SetInflateAmount(p.InflateAmount() + scene.InflateStep)
	case ActionInflateDown:
		p.SetInflateAmount(p.InflateAmount() - scene.InflateStep)
	case ActionTogglePause:
		if c.Renderer.Running() {
			c.Renderer.Stop()
		} else {
			c.Renderer.Start()
		}
	case ActionResetCamera:
		c.Camera.Reset()
	}
}

// Dragging reports whether a left-button orbit drag is in progress.
func (c *Controls) Dragging() bool { return c.dragging }
