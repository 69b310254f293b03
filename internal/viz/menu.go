package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/territory/internal/config"
	"github.com/san-kum/territory/internal/experiment"
)

var presetInfo = map[string]string{
	"voronoi":      "many species, slow colour drift",
	"spiral":       "arc midpoints, loose spirals",
	"tight-spiral": "three species, tight spirals",
	"preservation": "closest-colour inheritance",
	"mirror":       "point-symmetric colouring",
	"rainbow":      "hue rotates on every conversion",
	"uniform":      "one drifting colour for all",
	"cmyk":         "subtractive colour space",
}

// menu picks a preset and then hands over to a live Model.
type menu struct {
	base    *config.Config
	opts    Options
	presets []string
	cursor  int
	err     error

	live   *Model
	width  int
	height int
}

// NewMenu lists the presets. base supplies grid size and output settings.
func NewMenu(base *config.Config, opts Options) tea.Model {
	return menu{base: base, opts: opts, presets: config.ListPresets()}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.live != nil {
		next, cmd := m.live.Update(msg)
		live := next.(Model)
		m.live = &live
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case "enter":
			return m.start()
		}
	}
	return m, nil
}

func (m menu) start() (tea.Model, tea.Cmd) {
	name := m.presets[m.cursor]
	cfg := config.GetPreset(name)
	cfg.Width, cfg.Height = m.base.Width, m.base.Height
	cfg.Seed, cfg.Workers = m.base.Seed, m.base.Workers

	exp := experiment.New(name, cfg)
	if err := exp.Setup(); err != nil {
		m.err = err
		return m, nil
	}
	live := NewModel(exp.Engine(), name, m.opts)
	if m.width > 0 {
		next, _ := live.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		live = next.(Model)
	}
	m.live = &live
	return m, live.Init()
}

func (m menu) View() string {
	if m.live != nil {
		return m.live.View()
	}

	title := headerStyle().Render("TERRITORY")
	muted := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	selected := lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true)

	var s strings.Builder
	s.WriteString(title + "\n")
	for i, name := range m.presets {
		line := fmt.Sprintf("%-14s %s", name, presetInfo[name])
		if i == m.cursor {
			s.WriteString(selected.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + muted.Render(line) + "\n")
		}
	}
	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Warning).Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle().Render("↑↓:Select Enter:Run Q:Quit"))
	return s.String()
}

// RunMenu opens the preset picker full screen.
func RunMenu(base *config.Config, opts Options) error {
	_, err := tea.NewProgram(NewMenu(base, opts), tea.WithAltScreen()).Run()
	return err
}
