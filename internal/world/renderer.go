package world

import (
	"fmt"

	"tiltbox/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window describes the raylib window opened by OpenWindow.
type Window struct {
	Width     int32
	Height    int32
	Title     string
	TargetFPS int32
}

// OpenWindow creates the presentation surface. It must be called on the goroutine that will
// draw, before any GPU resource is created.
func OpenWindow(win Window) error {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(win.Width, win.Height, win.Title)
	if !rl.IsWindowReady() {
		return fmt.Errorf("open window %dx%d: raylib could not create a GL context", win.Width, win.Height)
	}
	rl.SetExitKey(0)
	rl.SetTargetFPS(win.TargetFPS)
	return nil
}

func CloseWindow() {
	rl.CloseWindow()
}

// Renderer presents a scene through a camera. Overlay, if set, is drawn in screen space
// after the 3D pass.
type Renderer struct {
	Scene      *engine.Scene
	Camera     func() rl.Camera3D
	Background rl.Color
	Overlay    func()
}

func NewRenderer(scene *engine.Scene, camera func() rl.Camera3D) *Renderer {
	return &Renderer{
		Scene:      scene,
		Camera:     camera,
		Background: rl.NewColor(30, 30, 36, 255),
	}
}

// Present draws one frame.
func (r *Renderer) Present() {
	rl.BeginDrawing()
	rl.ClearBackground(r.Background)

	rl.BeginMode3D(r.Camera())
	r.Scene.Draw()
	rl.EndMode3D()

	if r.Overlay != nil {
		r.Overlay()
	}
	rl.EndDrawing()
}

// ShouldClose reports whether the user closed the window.
func (r *Renderer) ShouldClose() bool {
	return rl.WindowShouldClose()
}
