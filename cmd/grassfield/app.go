package main

import (
	"log"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"grassfield/internal/config"
	"grassfield/internal/input"
	"grassfield/internal/profiling"
	"grassfield/internal/render"
	"grassfield/internal/viewer"
	"grassfield/internal/world"
)

var spawn = mgl32.Vec3{0, 100, 150}

const groundClearance = 2

type app struct {
	window   *glfw.Window
	input    *input.Manager
	camera   *viewer.Camera
	scene    *world.Scene
	renderer *render.Renderer
	limiter  *fpsLimiter

	start    time.Time
	lastTime time.Time
	captured bool

	frames  int
	lastFPS time.Time
}

func newApp(window *glfw.Window, wc config.WindowConfig, scene *world.Scene, r *render.Renderer) *app {
	width, height := window.GetFramebufferSize()
	cam := viewer.NewCamera(spawn, width, height)
	cam.FOV = wc.FOV
	cam.Near = wc.Near
	cam.Far = wc.Far
	cam.MoveSpeed = wc.MoveSpeed
	cam.TurnSpeed = wc.TurnSpeed
	r.SetViewport(width, height)

	now := time.Now()
	a := &app{
		window:   window,
		input:    input.NewManager(),
		camera:   cam,
		scene:    scene,
		renderer: r,
		limiter:  newFPSLimiter(wc.FPSLimit),
		start:    now,
		lastTime: now,
		lastFPS:  now,
		captured: true,
	}
	a.input.Attach(window)
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if a.captured {
			a.camera.Look(x, y)
		}
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		a.camera.SetViewport(w, h)
		a.renderer.SetViewport(w, h)
	})
	return a
}

func (a *app) run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

// tick runs one frame: chunk reconciliation and wind, then the camera, then
// the GPU sync and draw.
func (a *app) tick() {
	profiling.ResetFrame()
	startTick := time.Now()
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	glfw.PollEvents()
	a.handleActions()

	frame := a.scene.Tick(a.camera.Position, startTick.Sub(a.start))

	func() {
		defer profiling.Track("viewer.Update")()
		a.camera.Update(a.input.Controls(), dt)
		pos := a.camera.Position
		if h, ok := a.scene.Chunks().HeightAt(float64(pos.X()), float64(pos.Z())); ok {
			a.camera.KeepAbove(float32(h), groundClearance)
		}
	}()

	a.renderer.Sync(a.scene.Chunks().Store())
	a.renderer.Render(a.camera.View(), a.camera.Projection(), frame.Uniforms)
	a.window.SwapBuffers()

	if d := time.Since(startTick); d > 16*time.Millisecond {
		log.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}
	a.countFrame()
	a.input.EndFrame()
	a.limiter.Wait()
}

func (a *app) handleActions() {
	if a.input.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if a.input.JustPressed(input.ActionReleaseCursor) {
		a.captured = !a.captured
		mode := glfw.CursorDisabled
		if !a.captured {
			mode = glfw.CursorNormal
		}
		a.window.SetInputMode(glfw.CursorMode, mode)
	}
}

func (a *app) countFrame() {
	a.frames++
	elapsed := time.Since(a.lastFPS)
	if elapsed < time.Second {
		return
	}
	u := a.scene.Uniforms()
	chunks := a.scene.Chunks()
	log.Printf("FPS: %d, chunks %d, grass %.1f MB, world %s, wind %.2f",
		int(float64(a.frames)/elapsed.Seconds()+0.5), len(chunks.Resident()),
		float64(chunks.GrassBytes())/(1<<20),
		profiling.FormatMs(profiling.SumWithPrefix("world.")), u.Strength)
	a.frames = 0
	a.lastFPS = time.Now()
}
