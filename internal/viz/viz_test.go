package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/territory/internal/colorspace"
	"github.com/san-kum/territory/internal/config"
	"github.com/san-kum/territory/internal/engine"
)

type stripes struct{ w, h int }

func (s stripes) Width() int  { return s.w }
func (s stripes) Height() int { return s.h }
func (s stripes) ColorAt(x, y int) colorspace.Display {
	if y%2 == 0 {
		return colorspace.Display{R: 255}
	}
	return colorspace.Display{B: 255}
}

func TestRenderGridShape(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		cols, rows int
		wantCols   int
		wantRows   int
	}{
		{"fits", 10, 8, 80, 24, 10, 4},
		{"odd height", 6, 5, 80, 24, 6, 3},
		{"sampled", 200, 200, 40, 10, 40, 10},
		{"degenerate", 4, 4, 0, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderGrid(stripes{tt.w, tt.h}, tt.cols, tt.rows)
			lines := strings.Split(out, "\n")
			if len(lines) != tt.wantRows {
				t.Fatalf("rows = %d, want %d", len(lines), tt.wantRows)
			}
			for i, l := range lines {
				if n := strings.Count(l, "▀"); n != tt.wantCols {
					t.Errorf("line %d has %d blocks, want %d", i, n, tt.wantCols)
				}
			}
		})
	}
}

func TestProgressBarBounds(t *testing.T) {
	for _, p := range []float64{-1, 0, 0.5, 1, 2} {
		bar := ProgressBar(p, 10)
		if n := strings.Count(bar, "█") + strings.Count(bar, "░"); n != 10 {
			t.Errorf("ProgressBar(%v) has %d cells", p, n)
		}
	}
}

func TestNextThemeCycles(t *testing.T) {
	start := CurrentTheme.Name
	for range ThemeNames() {
		NextTheme()
	}
	if CurrentTheme.Name != start {
		t.Errorf("theme after full cycle = %s, want %s", CurrentTheme.Name, start)
	}
}

func TestSetTheme(t *testing.T) {
	defer func() { CurrentTheme = ThemeBorder }()
	if err := SetTheme("EMBER"); err != nil {
		t.Fatal(err)
	}
	if CurrentTheme.Name != "ember" {
		t.Fatalf("current = %s", CurrentTheme.Name)
	}
	if err := SetTheme("neon"); err == nil {
		t.Fatal("unknown theme accepted")
	}
	if CurrentTheme.Name != "ember" {
		t.Fatalf("failed SetTheme changed the theme to %s", CurrentTheme.Name)
	}
}

func TestThemeAccentOpposesPrimary(t *testing.T) {
	for _, th := range Themes {
		if th.Name == "mono" {
			continue
		}
		if th.Primary == th.Accent {
			t.Errorf("%s: primary and accent are both %s", th.Name, th.Primary)
		}
		if !strings.HasPrefix(string(th.Text), "#") || len(th.Text) != 7 {
			t.Errorf("%s: text colour %q is not #rrggbb", th.Name, th.Text)
		}
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Width, cfg.Height = 16, 16
	cfg.NumSpecies = 3
	cfg.MaxIterations = 50
	eng, err := engine.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(eng, "test", Options{OutDir: t.TempDir()})
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	if key == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(m, " ")
	if m.running {
		t.Fatal("space should pause")
	}

	m = press(m, "n")
	if m.eng.Generation() != 1 {
		t.Errorf("generation after step = %d, want 1", m.eng.Generation())
	}
	if len(m.activeHistory) != 1 {
		t.Errorf("history length = %d, want 1", len(m.activeHistory))
	}

	m = press(m, "+")
	m = press(m, "+")
	if m.perTick != 4 {
		t.Errorf("perTick = %d, want 4", m.perTick)
	}
	for range 5 {
		m = press(m, "-")
	}
	if m.perTick != 1 {
		t.Errorf("perTick = %d, want 1", m.perTick)
	}

	seed := m.eng.Config().Seed
	m = press(m, "r")
	if m.eng.Generation() != 0 || m.eng.Config().Seed != seed+1 {
		t.Errorf("reset: generation %d seed %d", m.eng.Generation(), m.eng.Config().Seed)
	}
	if len(m.activeHistory) != 0 {
		t.Error("reset should clear history")
	}
}

func TestModelTickRespectsPause(t *testing.T) {
	m := newTestModel(t)
	m.running = false
	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	if m.eng.Generation() != 0 {
		t.Errorf("paused tick advanced to %d", m.eng.Generation())
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	m.running = true
	m.perTick = 3
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	if g := m.eng.Generation(); g != 3 && !m.eng.IsComplete() {
		t.Errorf("generation after tick = %d, want 3", g)
	}
}

func TestModelSnapshotAndView(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "s")
	if !strings.HasPrefix(m.status, "saved ") {
		t.Fatalf("status = %q", m.status)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	if m.cols != 100-statsWidth-4 || m.rows != 29 {
		t.Errorf("size = %dx%d", m.cols, m.rows)
	}
	if v := m.View(); !strings.Contains(v, "TEST") || !strings.Contains(v, "Generation") {
		t.Error("view is missing the header or stats")
	}
}

func TestMenuStartsLiveView(t *testing.T) {
	base := config.DefaultConfig()
	base.Width, base.Height = 12, 12
	var m tea.Model = NewMenu(base, Options{OutDir: t.TempDir()})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	mm := m.(menu)
	if mm.err != nil {
		t.Fatal(mm.err)
	}
	if mm.live == nil || cmd == nil {
		t.Fatal("enter should start the live view")
	}
	if mm.live.name != mm.presets[1] {
		t.Errorf("started %s, want %s", mm.live.name, mm.presets[1])
	}
	if mm.live.eng.Width() != 12 {
		t.Errorf("width = %d, want base width", mm.live.eng.Width())
	}
}
