package game

import (
	"context"
	"fmt"
	"log"

	"tiltbox/internal/assets"
	"tiltbox/internal/components"
	"tiltbox/internal/config"
	"tiltbox/internal/engine"
	"tiltbox/internal/loop"
	"tiltbox/internal/orientation"
	"tiltbox/internal/sim"
	"tiltbox/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Options configures a desktop Game.
type Options struct {
	Config config.Config
	// Gate asks the phone for sensor access. Nil means no consent step.
	Gate orientation.Gate
	// Model is the pending detailed ball model; nil runs with the fallback sphere only.
	Model *assets.Handle[assets.ModelFile]
	// Keyboard enables arrow-key tilt.
	Keyboard bool
}

// Game hosts the toy in a raylib window.
type Game struct {
	Config    config.Config
	Sim       *sim.Simulation
	World     *world.World
	Filter    *orientation.Filter
	Loop      *loop.Loop
	DebugMode bool

	keyboard       KeyboardTilt
	useKeyboard    bool
	renderer       *world.Renderer
	ctx            context.Context
	startRequested bool
}

func New(opts Options) (*Game, error) {
	s, err := sim.New(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	g := &Game{
		Config:      opts.Config,
		Sim:         s,
		World:       world.New(s, opts.Model),
		useKeyboard: opts.Keyboard,
		ctx:         context.Background(),
	}
	g.Loop = loop.New(s, g.World, g, loop.DefaultQueueSize)
	g.Loop.Input = g.handleInput

	throttle := orientation.NewThrottle(opts.Config.ThrottleInterval, orientation.SystemClock{})
	dispatch := func(fn func()) { g.Loop.Post(fn) }
	g.Filter = orientation.NewFilter(s, opts.Gate, dispatch, throttle, orientation.AxisOrder(opts.Config.AxisOrder))
	return g, nil
}

// HandleSample queues a sensor sample for the next tick. Safe to call from any goroutine;
// samples that find the queue full are dropped, as the throttle would drop them anyway.
func (g *Game) HandleSample(raw orientation.RawSample) {
	g.Loop.TryPost(func() { g.Filter.OnSample(raw) })
}

// Run opens the window and drives the loop until the window closes or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	g.ctx = ctx

	err := world.OpenWindow(world.Window{
		Width:     int32(g.Config.ViewportWidth),
		Height:    int32(g.Config.ViewportHeight),
		Title:     "tiltbox",
		TargetFPS: int32(g.Config.TargetFPS),
	})
	if err != nil {
		return err
	}
	defer world.CloseWindow()
	defer g.World.Unload()

	initRayguiStyle()
	g.renderer = world.NewRenderer(g.World.Scene, g.World.Camera.GetRaylibCamera)
	g.renderer.Overlay = g.drawUI

	log.Printf("Game: running, press S or click Start to enable tilt")
	return g.Loop.Run(ctx)
}

// Present implements loop.Presenter.
func (g *Game) Present() {
	g.renderer.Present()
}

// ShouldClose implements loop.Presenter.
func (g *Game) ShouldClose() bool {
	return g.renderer.ShouldClose()
}

// Start requests sensor access. Later calls are no-ops.
func (g *Game) Start() {
	if g.Filter.Permission() != orientation.PermissionUnknown {
		return
	}
	g.Filter.RequestMotionAccess(g.ctx)
}

func (g *Game) handleInput() {
	if g.startRequested || rl.IsKeyPressed(rl.KeyS) {
		g.startRequested = false
		g.Start()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Sim.ResetBall()
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyO) {
		g.World.Camera.Orbit = !g.World.Camera.Orbit
	}

	if g.useKeyboard {
		keys := TiltKeys{
			Up:        rl.IsKeyDown(rl.KeyUp),
			Down:      rl.IsKeyDown(rl.KeyDown),
			Left:      rl.IsKeyDown(rl.KeyLeft),
			Right:     rl.IsKeyDown(rl.KeyRight),
			SpinLeft:  rl.IsKeyDown(rl.KeyQ),
			SpinRight: rl.IsKeyDown(rl.KeyE),
			Level:     rl.IsKeyPressed(rl.KeySpace),
		}
		if raw, changed := g.keyboard.Step(float64(rl.GetFrameTime()), keys); changed {
			g.Filter.OnSample(raw)
		}
	}
}

func (g *Game) drawUI() {
	permission := g.Filter.Permission()
	if permission == orientation.PermissionUnknown && startButton() {
		g.startRequested = true
	}

	switch permission {
	case orientation.PermissionPending:
		rl.DrawText("Waiting for the phone to allow motion access...", 10, 10, 20, colorTextSecondary)
	case orientation.PermissionDenied:
		rl.DrawText("Motion access denied, the box stays level", 10, 10, 20, colorTextMuted)
	case orientation.PermissionGranted, orientation.PermissionNotRequired:
		help := "Tilt your phone to roll the ball"
		if g.useKeyboard {
			help = "Arrows tilt, Q/E turn, Space levels, R resets"
		}
		rl.DrawText(help, 10, 10, 20, colorTextSecondary)
	}
	rl.DrawText("F1 to toggle debug view, O to orbit the camera", 10, 35, 16, colorTextMuted)

	if g.DebugMode {
		state := g.Filter.State()
		rl.DrawFPS(10, 60)
		rl.DrawText(fmt.Sprintf("Ticks: %d  Steps: %d", g.Loop.Ticks(), g.Sim.World.StepCount()), 10, 85, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Permission: %s", permission), 10, 105, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Samples: %d applied, %d throttled, %d dropped", state.Applied, g.Filter.Dropped(), g.Loop.Dropped()), 10, 125, 16, rl.Green)
		pos := g.Sim.Ball.Position
		rl.DrawText(fmt.Sprintf("Ball: (%.1f, %.1f, %.1f) speed %.1f", pos.X(), pos.Y(), pos.Z(), g.Sim.Ball.Speed()), 10, 145, 16, rl.Lime)
		rl.DrawText(fmt.Sprintf("Bounces: %d", g.Sim.Bounces()), 10, 165, 16, rl.Lime)
		rl.DrawText(fmt.Sprintf("Model: %s", g.modelStatus()), 10, 185, 16, rl.Lime)
	}
}

func (g *Game) modelStatus() string {
	node := g.World.Scene.FindByName(world.NodeDetailed)
	if node == nil {
		return "fallback sphere"
	}
	if r := engine.GetComponent[*components.ModelRenderer](node); r != nil && r.Loaded() {
		return "detailed, uploaded"
	}
	return "detailed, waiting for upload"
}
