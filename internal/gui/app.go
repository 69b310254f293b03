//go:build gui

package gui

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/territory/internal/engine"
)

const hudHeight = 64

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

type App struct {
	Eng     *engine.Engine
	Opts    Options
	Running bool
	PerTick int

	Texture rl.Texture2D
	Pixels  []color.RGBA

	// Active holds the active cell count per generation for the HUD graph.
	Active    []float64
	MaxActive int
}

// Run opens a window and advances eng until the window closes.
func Run(eng *engine.Engine, opts Options) error {
	opts = opts.withDefaults()
	w := int32(eng.Width() * opts.Scale)
	h := int32(eng.Height()*opts.Scale + hudHeight)

	rl.InitWindow(max(w, 480), h, opts.Name)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)

	app := newApp(eng, opts)
	defer rl.UnloadTexture(app.Texture)
	app.RunLoop()
	return nil
}

func newApp(eng *engine.Engine, opts Options) *App {
	img := rl.GenImageColor(eng.Width(), eng.Height(), rl.Black)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterPoint)

	return &App{
		Eng:       eng,
		Opts:      opts,
		Running:   true,
		PerTick:   opts.PerTick,
		Texture:   tex,
		Pixels:    make([]color.RGBA, eng.Width()*eng.Height()),
		Active:    make([]float64, 0, 400),
		MaxActive: 400,
	}
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyN):
		a.Running = false
		a.step()
	case rl.IsKeyPressed(rl.KeyR):
		a.Eng.Reset(a.Eng.Config().Seed + 1)
		a.Active = a.Active[:0]
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		a.PerTick = min(a.PerTick*2, 256)
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		a.PerTick = max(a.PerTick/2, 1)
	}

	if a.Running {
		for i := 0; i < a.PerTick && !a.Eng.IsComplete(); i++ {
			a.step()
		}
	}
	fillPixels(a.Eng, a.Pixels)
	rl.UpdateTexture(a.Texture, a.Pixels)
}

func (a *App) step() {
	if a.Eng.IsComplete() {
		return
	}
	r := a.Eng.Advance()
	a.Active = append(a.Active, float64(r.Active))
	if len(a.Active) > a.MaxActive {
		a.Active = a.Active[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.DrawTextureEx(a.Texture, rl.NewVector2(0, 0), 0, float32(a.Opts.Scale), rl.White)
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	top := int32(a.Eng.Height() * a.Opts.Scale)
	amb := a.Eng.Ambient()

	rl.DrawText(a.Opts.Name, 10, top+8, 20, ColSelect)
	rl.DrawText(fmt.Sprintf("gen %d  active %d  x%d", a.Eng.Generation(), a.Eng.ActiveCount(), a.PerTick), 10, top+34, 14, ColText)
	rl.DrawRectangle(200, top+8, 20, 20, amb.RGBA())

	status, col := "RUNNING", ColSelect
	switch {
	case a.Eng.IsComplete():
		status, col = "COMPLETE", ColAccent
	case !a.Running:
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, 240, top+8, 16, col)
	rl.DrawText("[SPACE] PAUSE  [N] STEP  [R] RESET  [+/-] SPEED  [Q] QUIT", 240, top+34, 12, ColTextDim)

	a.DrawTelemetry(top)
}

func (a *App) DrawTelemetry(top int32) {
	if len(a.Active) < 2 {
		return
	}
	width := float32(rl.GetScreenWidth()) - 20
	height := float32(hudHeight - 16)
	base := float32(top) + 8

	maxVal := a.Active[0]
	for _, v := range a.Active {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	points := make([]rl.Vector2, len(a.Active))
	for i, v := range a.Active {
		px := 10 + float32(i)/float32(a.MaxActive)*width
		py := base + height - float32(v/maxVal)*height
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, rl.Fade(ColAccent, 0.4))
}
