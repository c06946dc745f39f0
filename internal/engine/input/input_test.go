package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type call struct {
	name   string
	a, b   float32
	preset string
}

type recorder struct {
	calls     []call
	presetErr error
}

func (r *recorder) HandleDrag(dx, dy float32) {
	r.calls = append(r.calls, call{name: "drag", a: dx, b: dy})
}

func (r *recorder) HandleWheel(n float32) {
	r.calls = append(r.calls, call{name: "wheel", a: n})
}

func (r *recorder) ApplyPreset(name string) error {
	r.calls = append(r.calls, call{name: "preset", preset: name})
	return r.presetErr
}

func (r *recorder) Resize(w, h int) {
	r.calls = append(r.calls, call{name: "resize", a: float32(w), b: float32(h)})
}

func TestDragRotatesOnlyWithLeftButton(t *testing.T) {
	c := NewController()
	r := &recorder{}

	c.Apply(r, []Event{
		{Type: EventMouseMove, MouseX: 10, MouseY: 10},
		{Type: EventMouseDown, Button: ButtonRight, MouseX: 10, MouseY: 10},
		{Type: EventMouseMove, MouseX: 20, MouseY: 10},
	})
	assert.Empty(t, r.calls, "moves without a left drag are ignored")

	c.Apply(r, []Event{
		{Type: EventMouseDown, Button: ButtonLeft, MouseX: 100, MouseY: 50},
		{Type: EventMouseMove, MouseX: 104, MouseY: 47},
		{Type: EventMouseMove, MouseX: 104, MouseY: 47},
		{Type: EventMouseMove, MouseX: 110, MouseY: 50},
	})
	assert.True(t, c.Dragging())
	assert.Equal(t, []call{
		{name: "drag", a: 4, b: -3},
		{name: "drag", a: 6, b: 3},
	}, r.calls)

	r.calls = nil
	c.Apply(r, []Event{
		{Type: EventMouseUp, Button: ButtonLeft},
		{Type: EventMouseMove, MouseX: 200, MouseY: 200},
	})
	assert.False(t, c.Dragging())
	assert.Empty(t, r.calls)
}

func TestWheelZooms(t *testing.T) {
	r := &recorder{}
	NewController().Apply(r, []Event{
		{Type: EventMouseWheel, WheelY: 1},
		{Type: EventMouseWheel, WheelY: 0},
		{Type: EventMouseWheel, WheelY: -2},
	})
	assert.Equal(t, []call{{name: "wheel", a: 1}, {name: "wheel", a: -2}}, r.calls)
}

func TestPresetKeys(t *testing.T) {
	r := &recorder{}
	res := NewController().Apply(r, []Event{
		{Type: EventKeyDown, Key: Key1},
		{Type: EventKeyDown, Key: Key2},
		{Type: EventKeyUp, Key: Key3},
		{Type: EventKeyDown, Key: Key3},
		{Type: EventKeyDown, Key: Key4},
	})
	assert.Equal(t, []call{
		{name: "preset", preset: "front"},
		{name: "preset", preset: "side"},
		{name: "preset", preset: "top"},
		{name: "preset", preset: "angle"},
	}, r.calls)
	assert.Equal(t, Result{}, res)
}

func TestPresetErrorDoesNotStopProcessing(t *testing.T) {
	r := &recorder{presetErr: errors.New("boom")}
	res := NewController().Apply(r, []Event{
		{Type: EventKeyDown, Key: Key1},
		{Type: EventMouseWheel, WheelY: 1},
	})
	assert.Len(t, r.calls, 2)
	assert.False(t, res.Quit)
}

func TestCommandKeys(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   Result
	}{
		{"screenshot", []Event{{Type: EventKeyDown, Key: KeyS}}, Result{Screenshot: true}},
		{"reset", []Event{{Type: EventKeyDown, Key: KeyR}}, Result{Reset: true}},
		{"escape", []Event{{Type: EventKeyDown, Key: KeyEscape}}, Result{Quit: true}},
		{"window close", []Event{{Type: EventQuit}}, Result{Quit: true}},
		{"unknown key", []Event{{Type: EventKeyDown, Key: KeyUnknown}}, Result{}},
		{"key up", []Event{{Type: EventKeyUp, Key: KeyEscape}}, Result{}},
		{"combined", []Event{
			{Type: EventKeyDown, Key: KeyS},
			{Type: EventKeyDown, Key: KeyEscape},
		}, Result{Quit: true, Screenshot: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			assert.Equal(t, tt.want, NewController().Apply(r, tt.events))
			assert.Empty(t, r.calls)
		})
	}
}

func TestResize(t *testing.T) {
	r := &recorder{}
	NewController().Apply(r, []Event{
		{Type: EventWindowResize, Width: 640, Height: 480},
		{Type: EventWindowResize, Width: 0, Height: 480},
	})
	assert.Equal(t, []call{{name: "resize", a: 640, b: 480}}, r.calls)
}
