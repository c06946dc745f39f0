// Package window shows rendered frames in an SDL2 window and pumps its
// events.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hslcloud/internal/engine/input"
	"github.com/Faultbox/hslcloud/internal/logger"
)

func init() {
	// SDL video calls must be made from the main thread.
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// Window owns an SDL window, its renderer and a streaming texture that
// receives each frame.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	renderer  *sdl.Renderer
	texture   *sdl.Texture

	texWidth, texHeight int
}

// New creates a resizable window.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		uint32(sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE),
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	flags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		flags |= uint32(sdl.RENDERER_PRESENTVSYNC)
	}
	w.renderer, err = sdl.CreateRenderer(w.sdlWindow, -1, flags)
	if err != nil {
		logger.Warn("accelerated renderer unavailable, using software", zap.Error(err))
		w.renderer, err = sdl.CreateRenderer(w.sdlWindow, -1, uint32(sdl.RENDERER_SOFTWARE))
	}
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Present uploads an RGBA frame (4 bytes per pixel, rows packed) and shows
// it scaled to the window.
func (w *Window) Present(rgba []byte, width, height int) error {
	if len(rgba) < width*height*4 {
		return fmt.Errorf("frame has %d bytes, need %d", len(rgba), width*height*4)
	}
	if err := w.ensureTexture(width, height); err != nil {
		return err
	}

	pixels, pitch, err := w.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("locking texture: %w", err)
	}
	row := width * 4
	for y := 0; y < height; y++ {
		copy(pixels[y*pitch:y*pitch+row], rgba[y*row:(y+1)*row])
	}
	w.texture.Unlock()

	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return fmt.Errorf("copying texture: %w", err)
	}
	w.renderer.Present()
	return nil
}

// ensureTexture (re)creates the streaming texture for a frame size.
func (w *Window) ensureTexture(width, height int) error {
	if w.texture != nil && w.texWidth == width && w.texHeight == height {
		return nil
	}
	if w.texture != nil {
		w.texture.Destroy()
		w.texture = nil
	}

	// RGBA32 is R,G,B,A byte order in memory on every host.
	tex, err := w.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_RGBA32), sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		return fmt.Errorf("creating texture: %w", err)
	}
	w.texture = tex
	w.texWidth, w.texHeight = width, height
	logger.Debug("frame texture created", zap.Int("width", width), zap.Int("height", height))
	return nil
}

// PollEvents drains the SDL queue and appends the events the viewer
// handles to dst.
func (w *Window) PollEvents(dst []input.Event) []input.Event {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			dst = append(dst, input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				dst = append(dst, input.Event{
					Type:   input.EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				dst = append(dst, input.Event{Type: input.EventKeyDown, Key: translateKey(e.Keysym.Scancode)})
			} else if e.Type == sdl.KEYUP {
				dst = append(dst, input.Event{Type: input.EventKeyUp, Key: translateKey(e.Keysym.Scancode)})
			}

		case *sdl.MouseMotionEvent:
			dst = append(dst, input.Event{
				Type:   input.EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})

		case *sdl.MouseButtonEvent:
			typ := input.EventMouseUp
			if e.Type == sdl.MOUSEBUTTONDOWN {
				typ = input.EventMouseDown
			}
			dst = append(dst, input.Event{
				Type:   typ,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})

		case *sdl.MouseWheelEvent:
			y := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				y = -y
			}
			dst = append(dst, input.Event{Type: input.EventMouseWheel, WheelY: y})
		}
	}
	return dst
}

func translateKey(sc sdl.Scancode) input.Key {
	switch sc {
	case sdl.SCANCODE_1:
		return input.Key1
	case sdl.SCANCODE_2:
		return input.Key2
	case sdl.SCANCODE_3:
		return input.Key3
	case sdl.SCANCODE_4:
		return input.Key4
	case sdl.SCANCODE_S:
		return input.KeyS
	case sdl.SCANCODE_R:
		return input.KeyR
	case sdl.SCANCODE_ESCAPE:
		return input.KeyEscape
	}
	return input.KeyUnknown
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.texture != nil {
		w.texture.Destroy()
	}
	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// Delay sleeps for ms milliseconds.
func (w *Window) Delay(ms uint32) {
	sdl.Delay(ms)
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
