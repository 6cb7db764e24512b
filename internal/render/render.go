// Package render paints scanned class ranges onto text for terminal output.
package render

import (
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/rainbow/internal/scanner"
	"github.com/alexisbeaulieu97/rainbow/internal/theme"
)

// Painter renders range maps with a lipgloss renderer bound to one output.
type Painter struct {
	renderer *lipgloss.Renderer
}

// NewPainter returns a painter that detects the color profile of w.
func NewPainter(w io.Writer) *Painter {
	return &Painter{renderer: lipgloss.NewRenderer(w)}
}

// NewPainterWithProfile returns a painter with a fixed color profile.
// termenv.Ascii disables styling entirely.
func NewPainterWithProfile(profile termenv.Profile) *Painter {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	return &Painter{renderer: r}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Style returns the lipgloss style for a theme entry.
func (p *Painter) Style(cfg theme.StyleConfig) lipgloss.Style {
	style := p.renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
	if c := TerminalColor(cfg.Color); c != "" {
		style = style.Foreground(lipgloss.Color(c))
	}
	if IsBold(cfg.FontWeight) {
		style = style.Bold(true)
	}
	return style
}

// IsBold reports whether a CSS font weight should render bold.
func IsBold(weight string) bool {
	switch weight {
	case "bold", "bolder", "semibold", "extrabold", "black":
		return true
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= 600
}

// Paint returns text with every range styled by its group's config. Where
// ranges nest, the one that starts last wins.
func (p *Painter) Paint(text string, m *scanner.RangeMap) string {
	segs := segments(text, m)
	if len(segs) == 0 {
		return text
	}

	styles := make(map[string]lipgloss.Style)
	var b strings.Builder
	cursor := 0
	for _, seg := range segs {
		b.WriteString(text[cursor:seg.start])
		style, ok := styles[seg.group.Key]
		if !ok {
			style = p.Style(seg.group.Config)
			styles[seg.group.Key] = style
		}
		writeStyled(&b, style, text[seg.start:seg.end])
		cursor = seg.end
	}
	b.WriteString(text[cursor:])
	return b.String()
}

// writeStyled renders s line by line so lipgloss never pads lines to a
// common width.
func writeStyled(b *strings.Builder, style lipgloss.Style, s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line != "" {
			b.WriteString(style.Render(line))
		}
	}
}

// Legend renders one swatch per key of m.
func (p *Painter) Legend(m *scanner.RangeMap) string {
	groups := m.Groups()
	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		line := p.Style(g.Config).Render(g.Key) + " " + strconv.Itoa(len(g.Ranges))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

type segment struct {
	start, end int
	group      *scanner.Group
}

type span struct {
	start, end int
	order      int
	group      *scanner.Group
}

// segments splits text at every range boundary and assigns each styled
// piece to the covering range that starts last. Ties go to the group seen
// later.
func segments(text string, m *scanner.RangeMap) []segment {
	if m == nil || m.Len() == 0 {
		return nil
	}

	groups := m.Groups()
	var spans []span
	bounds := make(map[int]struct{})
	for i := range groups {
		g := &groups[i]
		for _, r := range g.Ranges {
			if r.StartOffset < 0 || r.EndOffset > len(text) || r.EndOffset <= r.StartOffset {
				continue
			}
			spans = append(spans, span{start: r.StartOffset, end: r.EndOffset, order: i, group: g})
			bounds[r.StartOffset] = struct{}{}
			bounds[r.EndOffset] = struct{}{}
		}
	}
	if len(spans) == 0 {
		return nil
	}

	points := make([]int, 0, len(bounds))
	for b := range bounds {
		points = append(points, b)
	}
	sort.Ints(points)

	var out []segment
	for i := 0; i+1 < len(points); i++ {
		lo, hi := points[i], points[i+1]
		var best *span
		for j := range spans {
			s := &spans[j]
			if s.start > lo || s.end < hi {
				continue
			}
			if best == nil || s.start > best.start || (s.start == best.start && s.order > best.order) {
				best = s
			}
		}
		if best == nil {
			continue
		}
		if n := len(out); n > 0 && out[n-1].end == lo && out[n-1].group == best.group {
			out[n-1].end = hi
			continue
		}
		out = append(out, segment{start: lo, end: hi, group: best.group})
	}
	return out
}
