package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/territory/internal/colorspace"
	"github.com/san-kum/territory/internal/export"
)

// RenderGrid draws f into at most cols x rows terminal cells. Each cell is
// an upper half block whose foreground is one grid row and background the
// next, so a terminal row shows two grid rows. Larger grids are sampled.
func RenderGrid(f export.Frame, cols, rows int) string {
	cols = max(1, min(cols, f.Width()))
	rows = max(1, min(rows, (f.Height()+1)/2))

	type pair struct{ top, bot colorspace.Display }
	styles := make(map[pair]lipgloss.Style)

	var sb strings.Builder
	sub := rows * 2
	for ty := 0; ty < rows; ty++ {
		yTop := (2 * ty) * f.Height() / sub
		yBot := (2*ty + 1) * f.Height() / sub
		for tx := 0; tx < cols; tx++ {
			x := tx * f.Width() / cols
			p := pair{f.ColorAt(x, yTop), f.ColorAt(x, yBot)}
			st, ok := styles[p]
			if !ok {
				st = lipgloss.NewStyle().
					Foreground(lipgloss.Color(p.top.Hex())).
					Background(lipgloss.Color(p.bot.Hex()))
				styles[p] = st
			}
			sb.WriteString(st.Render("▀"))
		}
		if ty < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
