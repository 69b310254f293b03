package viz

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"golang.org/x/image/draw"

	"github.com/san-kum/territory/internal/engine"
	"github.com/san-kum/territory/internal/export"
	"github.com/san-kum/territory/internal/telemetry"
)

const (
	statsWidth      = 42
	historyCapacity = 600
	maxPerTick      = 256
)

type TickMsg time.Time

// Options tunes the live view.
type Options struct {
	// OutDir receives snapshots and recordings.
	OutDir string
	// Scale is the pixel size of a cell in snapshots.
	Scale int
	// PerTick is the number of generations advanced per frame.
	PerTick int
	FPS     int
}

func (o Options) withDefaults() Options {
	if o.OutDir == "" {
		o.OutDir = "."
	}
	o.Scale = max(o.Scale, 1)
	o.PerTick = max(o.PerTick, 1)
	if o.FPS <= 0 {
		o.FPS = 30
	}
	return o
}

// Model is the live view of one engine.
type Model struct {
	eng       *engine.Engine
	name      string
	opts      Options
	collector *telemetry.Collector

	cols, rows int
	running    bool
	perTick    int

	activeHistory  []float64
	changedHistory []float64

	status    string
	recording bool
	frames    []*image.Paletted
	showHelp  bool
}

func NewModel(eng *engine.Engine, name string, opts Options) Model {
	opts = opts.withDefaults()
	return Model{
		eng:            eng,
		name:           name,
		opts:           opts,
		collector:      telemetry.NewCollector(10),
		cols:           80,
		rows:           24,
		running:        true,
		perTick:        opts.PerTick,
		activeHistory:  make([]float64, 0, historyCapacity),
		changedHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the engine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			m.running = false
			m.step()
		case "r":
			m.reset()
		case "+", "=":
			m.perTick = min(m.perTick*2, maxPerTick)
		case "-", "_":
			m.perTick = max(m.perTick/2, 1)
		case "s":
			m.saveSnapshot()
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
				m.status = "recording"
			}
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-statsWidth-4, 8)
		m.rows = max(msg.Height-1, 4)
	case TickMsg:
		if m.running {
			for i := 0; i < m.perTick && !m.eng.IsComplete(); i++ {
				m.step()
			}
		}
		if m.recording && !m.eng.IsComplete() {
			m.captureFrame()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances one generation and records its figures.
func (m *Model) step() {
	if m.eng.IsComplete() {
		return
	}
	r := m.eng.Advance()
	m.collector.OnGeneration(m.eng, r)

	m.activeHistory = appendCapped(m.activeHistory, float64(r.Active))
	m.changedHistory = appendCapped(m.changedHistory, float64(r.Changed))
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

// reset restarts the engine with the next seed.
func (m *Model) reset() {
	m.eng.Reset(m.eng.Config().Seed + 1)
	m.collector.Reset()
	m.activeHistory = m.activeHistory[:0]
	m.changedHistory = m.changedHistory[:0]
	m.status = fmt.Sprintf("seed %d", m.eng.Config().Seed)
}

func (m *Model) saveSnapshot() {
	path := filepath.Join(m.opts.OutDir, fmt.Sprintf("%s_gen%05d.png", m.name, m.eng.Generation()))
	if err := export.Save(path, m.eng, m.opts.Scale); err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

func (m *Model) captureFrame() {
	src := export.Image(m.eng, m.opts.Scale)
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, image.Point{})
	m.frames = append(m.frames, dst)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 100/m.opts.FPS)
	}
	path := filepath.Join(m.opts.OutDir, m.name+".gif")
	f, err := os.Create(path)
	if err != nil {
		m.status = "gif failed: " + err.Error()
		return
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		m.status = "gif failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

func (m Model) state() string {
	switch {
	case m.eng.IsComplete():
		return "COMPLETE"
	case !m.running:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	gridView := RenderGrid(m.eng, m.cols, m.rows)

	cfg := m.eng.Config()
	cells := m.eng.Width() * m.eng.Height()
	label, value := labelStyle(), valueStyle()
	row := func(k, v string) string { return label.Render(k) + value.Render(v) + "\n" }

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.name)) + "\n")
	st := m.state()
	s.WriteString(statusStyle(st).Render(st) + "\n\n")

	s.WriteString(row("Generation", fmt.Sprintf("%d", m.eng.Generation())))
	s.WriteString(row("Active", fmt.Sprintf("%d / %d", m.eng.ActiveCount(), cells)))
	s.WriteString(row("Speed", fmt.Sprintf("%d gen/frame", m.perTick)))
	s.WriteString(row("Strategy", cfg.Strategy.String()))
	s.WriteString(row("Space", cfg.ColorSpace.String()))
	s.WriteString(row("Seed", fmt.Sprintf("%d", cfg.Seed)))
	if last, ok := m.collector.Latest(); ok {
		s.WriteString(row("Species", fmt.Sprintf("%d of %d", last.Surviving, m.eng.NumSpecies())))
		s.WriteString(row("Diversity", fmt.Sprintf("%.3f", last.Diversity)))
	}
	s.WriteString(label.Render("Ambient") + Swatch(m.eng.Ambient().Hex()) + "\n")

	asleep := 1 - float64(m.eng.ActiveCount())/float64(cells)
	s.WriteString("\n" + label.Render("Converged") + ProgressBar(asleep, 20) + "\n")

	if len(m.activeHistory) > 1 {
		chart := asciigraph.Plot(m.activeHistory, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("Active cells"))
		s.WriteString(graphStyle().Render(chart) + "\n")
	}
	s.WriteString(label.Render("Changes") + SparklineChart(m.changedHistory, 24) + "\n")

	if m.status != "" {
		s.WriteString("\n" + value.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle().Render("SP:Pause N:Step R:Restart Q:Quit\n+/-:Speed S:Snap G:Gif ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, gridView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  N        - Advance one generation   ║
║  R        - Restart with next seed   ║
║  + / -    - Faster / slower          ║
║  S        - Save PNG snapshot        ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run opens the live view full screen until the user quits.
func Run(eng *engine.Engine, name string, opts Options) error {
	_, err := tea.NewProgram(NewModel(eng, name, opts), tea.WithAltScreen()).Run()
	return err
}
