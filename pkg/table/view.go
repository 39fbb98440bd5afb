package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minColWidth = 4
	maxColWidth = 28
)

// Styles groups the lipgloss styles of one table.
type Styles struct {
	Header      lipgloss.Style
	Row         lipgloss.Style
	Selected    lipgloss.Style
	Placeholder lipgloss.Style
	Footer      lipgloss.Style
	Spinner     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true),
		Row:         lipgloss.NewStyle(),
		Selected:    lipgloss.NewStyle().Reverse(true),
		Placeholder: lipgloss.NewStyle().Faint(true),
		Footer:      lipgloss.NewStyle().Faint(true),
		Spinner:     lipgloss.NewStyle().Faint(true),
	}
}

// View renders the table. While loading the whole body is replaced by the
// spinner: no stale rows, no search input, no pager.
func (m Model[T]) View() string {
	if m.loading {
		return m.spin.View() + m.styles.Spinner.Render(" Carregando...")
	}

	var b strings.Builder

	if m.searchable {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	visible := m.VisibleRows()
	widths := m.widths(visible)

	header := make([]string, len(m.columns))
	for i, col := range m.columns {
		header[i] = pad(col.Header, widths[i])
	}
	b.WriteString(m.styles.Header.Render(strings.Join(header, "  ")))
	b.WriteString("\n")

	if len(visible) == 0 {
		b.WriteString(m.styles.Placeholder.Render("Nenhum resultado encontrado."))
		b.WriteString("\n")
	}

	for i, row := range visible {
		cells := make([]string, len(m.columns))
		for j, col := range m.columns {
			cells[j] = pad(m.cell(row, col), widths[j])
		}
		line := strings.Join(cells, "  ")
		if i == m.cursor {
			line = m.styles.Selected.Render(line)
		} else {
			line = m.styles.Row.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.paginated {
		b.WriteString("\n")
		b.WriteString(m.styles.Footer.Render(fmt.Sprintf(
			"Página %d de %d — %d registros", m.page, m.TotalPages(), m.MatchCount())))
		if hints := m.hints(); hints != "" {
			b.WriteString("\n")
			b.WriteString(m.styles.Footer.Render(hints))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model[T]) hints() string {
	parts := make([]string, 0, len(m.actions)+1)
	if m.searchable {
		parts = append(parts, "[/] buscar")
	}
	for _, a := range m.actions {
		parts = append(parts, fmt.Sprintf("[%s] %s", a.Key, a.Label))
	}
	return strings.Join(parts, "  ")
}

func (m Model[T]) widths(visible []T) []int {
	widths := make([]int, len(m.columns))
	for i, col := range m.columns {
		widths[i] = len([]rune(col.Header))
		for _, row := range visible {
			if n := len([]rune(m.cell(row, col))); n > widths[i] {
				widths[i] = n
			}
		}
		if widths[i] < minColWidth {
			widths[i] = minColWidth
		}
		if widths[i] > maxColWidth {
			widths[i] = maxColWidth
		}
	}
	return widths
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
