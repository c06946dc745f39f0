// Package input turns window events into camera and scene commands.
// It has no SDL dependency; the window package translates SDL events into
// Events.
package input

import (
	"go.uber.org/zap"

	"github.com/Faultbox/hslcloud/internal/engine/camera"
	"github.com/Faultbox/hslcloud/internal/logger"
)

// EventType identifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Key is a keyboard key the viewer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	Key1
	Key2
	Key3
	Key4
	KeyS
	KeyR
	KeyEscape
)

// Mouse buttons.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	WheelY float32 // positive away from the user
}

// Target receives commands.
type Target interface {
	HandleDrag(dx, dy float32)
	HandleWheel(notches float32)
	ApplyPreset(name string) error
	Resize(width, height int)
}

// Result reports the commands that the caller carries out itself.
type Result struct {
	Quit       bool
	Screenshot bool
	Reset      bool
}

// Controller maps events to commands: left-drag rotates, the wheel zooms,
// keys 1-4 select presets, S requests a screenshot, R resets the camera
// and Escape quits.
type Controller struct {
	dragging     bool
	lastX, lastY int
}

// NewController creates a controller.
func NewController() *Controller {
	return &Controller{}
}

// Dragging reports whether a left-button drag is in progress.
func (c *Controller) Dragging() bool {
	return c.dragging
}

// Apply feeds events to t in order.
func (c *Controller) Apply(t Target, events []Event) Result {
	var res Result
	for _, e := range events {
		switch e.Type {
		case EventQuit:
			res.Quit = true

		case EventWindowResize:
			if e.Width > 0 && e.Height > 0 {
				t.Resize(e.Width, e.Height)
			}

		case EventMouseDown:
			if e.Button == ButtonLeft {
				c.dragging = true
				c.lastX, c.lastY = e.MouseX, e.MouseY
			}

		case EventMouseUp:
			if e.Button == ButtonLeft {
				c.dragging = false
			}

		case EventMouseMove:
			if !c.dragging {
				continue
			}
			dx, dy := e.MouseX-c.lastX, e.MouseY-c.lastY
			c.lastX, c.lastY = e.MouseX, e.MouseY
			if dx != 0 || dy != 0 {
				t.HandleDrag(float32(dx), float32(dy))
			}

		case EventMouseWheel:
			if e.WheelY != 0 {
				t.HandleWheel(e.WheelY)
			}

		case EventKeyDown:
			c.key(t, e.Key, &res)
		}
	}
	return res
}

func (c *Controller) key(t Target, k Key, res *Result) {
	switch k {
	case Key1, Key2, Key3, Key4:
		p := camera.Presets[int(k-Key1)]
		if err := t.ApplyPreset(p.Name); err != nil {
			logger.Warn("preset failed", zap.String("preset", p.Name), zap.Error(err))
		}
	case KeyS:
		res.Screenshot = true
	case KeyR:
		res.Reset = true
	case KeyEscape:
		res.Quit = true
	}
}
