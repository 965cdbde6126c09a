package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/souper/pkg/soup"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ReportModel - Interactive report browser
// =============================================================================

// ReportModel is the bubbletea model for browsing a report. It starts on the
// manifest list; enter opens the dependencies of the selected manifest.
type ReportModel struct {
	Snapshot soup.Snapshot
	Paths    []string
	Cursor   int
	Height   int
	Offset   int

	// Open is the manifest whose dependencies are shown, or "" on the list.
	Open      string
	DepCursor int
}

// NewReportModel creates a browser over snap.
func NewReportModel(snap soup.Snapshot) ReportModel {
	return ReportModel{
		Snapshot: snap,
		Paths:    snap.Paths(),
		Height:   15,
	}
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace", "left", "h":
			if m.Open == "" {
				if msg.String() == "esc" {
					return m, tea.Quit
				}
				return m, nil
			}
			m.Open = ""
			m.DepCursor = 0
		case "up", "k":
			if m.Open != "" {
				if m.DepCursor > 0 {
					m.DepCursor--
				}
				return m, nil
			}
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Open != "" {
				if m.DepCursor < m.Snapshot[m.Open].Len()-1 {
					m.DepCursor++
				}
				return m, nil
			}
			if m.Cursor < len(m.Paths)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", "right", "l":
			if m.Open == "" && len(m.Paths) > 0 {
				m.Open = m.Paths[m.Cursor]
				m.DepCursor = 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ReportModel) View() string {
	if m.Open != "" {
		return m.depsView()
	}
	return m.listView()
}

func (m ReportModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("SOUP Report"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Paths))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		path := m.Paths[i]
		deps := m.Snapshot[path]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		filled, total := 0, 0
		for _, d := range deps.Items() {
			filled += d.Meta.Filled()
			total += len(d.Meta)
		}
		meta := "—"
		if total > 0 {
			meta = fmt.Sprintf("%d/%d", filled, total)
		}
		rows = append(rows, []string{cursor, path, fmt.Sprint(deps.Len()), meta})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Manifest", "Deps", "Meta").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col >= 2 {
				base = base.Foreground(colorDim)
			}
			if m.Offset+row == m.Cursor {
				if col < 2 {
					return base.Foreground(colorCyan).Bold(true)
				}
				return base.Foreground(colorGray).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Paths))))

	return b.String()
}

func (m ReportModel) depsView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Open))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ← back  q quit"))
	b.WriteString("\n\n")

	items := m.Snapshot[m.Open].Items()
	for i, d := range items {
		cursor := "  "
		if i == m.DepCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-30s %s", cursor, d.Name, d.Version)
		if i == m.DepCursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("  " + listDimStyle.Render(metaSummary(d.Meta)))
		b.WriteString("\n")
	}

	if m.DepCursor < len(items) {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
		b.WriteString("\n")
		b.WriteString(formatMeta(items[m.DepCursor].Meta))
	}

	return b.String()
}

// formatMeta lists metadata keys with their values, empty values dimmed.
func formatMeta(meta soup.Metadata) string {
	if len(meta) == 0 {
		return listDimStyle.Render("  no metadata") + "\n"
	}
	var b strings.Builder
	for _, k := range meta.Keys() {
		v := meta[k]
		value := fmt.Sprint(v)
		if v == nil || value == "" {
			value = StyleWarning.Render("(empty)")
		} else {
			value = StyleValue.Render(value)
		}
		fmt.Fprintf(&b, "  %s %s\n", listDimStyle.Render(k+":"), value)
	}
	return b.String()
}
