package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/idphoto/pkg/catalog"
	"github.com/matzehuels/idphoto/pkg/layout"
	"github.com/matzehuels/idphoto/pkg/render"
)

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = -1

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// SpecListModel - Interactive photo/paper selection
// =============================================================================

// SpecListModel is the bubbletea model for picking one catalog entry.
type SpecListModel struct {
	Title    string
	Specs    []catalog.Spec
	Cursor   int
	Selected *catalog.Spec
	Height   int
	Offset   int

	// Describe returns the extra column shown for each spec.
	Describe func(catalog.Spec) string
	Column   string
}

// NewSpecListModel creates a list positioned on the entry with id current.
func NewSpecListModel(title string, specs []catalog.Spec, current string) SpecListModel {
	m := SpecListModel{Title: title, Specs: specs, Height: 15}
	for i, s := range specs {
		if s.ID == current {
			m.Cursor = i
			break
		}
	}
	m.Offset = max(0, m.Cursor-m.Height+1)
	return m
}

func (m SpecListModel) Init() tea.Cmd {
	return nil
}

func (m SpecListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Specs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = len(m.Specs) - 1
			m.Offset = max(0, m.Cursor-m.Height+1)
		case "enter":
			if len(m.Specs) == 0 {
				return m, nil
			}
			spec := m.Specs[m.Cursor]
			m.Selected = &spec
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m SpecListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Specs))

	headers := []string{"", "ID", "Name", "Size"}
	if m.Describe != nil {
		headers = append(headers, m.Column)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Specs[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		row := []string{cursor, s.ID, s.Label, s.Size.String()}
		if m.Describe != nil {
			row = append(row, m.Describe(s))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Specs))))

	return b.String()
}

// =============================================================================
// Catalog Tables
// =============================================================================

// specTable renders specs as a static table for the catalog command.
// extra, if non-nil, adds a column headed column.
func specTable(specs []catalog.Spec, column string, extra func(catalog.Spec) string) string {
	headers := []string{"ID", "Name", "Size", "Pixels @300dpi"}
	if extra != nil {
		headers = append(headers, column)
	}

	rows := make([][]string, 0, len(specs))
	for _, s := range specs {
		w, h := layout.CmToPixels(s.Size.Width), layout.CmToPixels(s.Size.Height)
		row := []string{s.ID, s.Label, s.Size.String(), fmt.Sprintf("%d×%d", w, h)}
		if extra != nil {
			row = append(row, extra(s))
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col >= 2:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return StyleValue
		}).
		Render()
}

// backgroundTable renders background presets with a colour swatch. The
// configured default, if it names a preset, is marked.
func backgroundTable(presets []string, current string) string {
	rows := make([][]string, 0, len(presets))
	for _, name := range presets {
		hex := render.ResolveColor(name)
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("      ")
		mark := ""
		if strings.EqualFold(name, current) || (current == "" && name == render.DefaultBackground) {
			mark = "default"
		}
		rows = append(rows, []string{name, hex, swatch, mark})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Hex", "", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 3:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}
