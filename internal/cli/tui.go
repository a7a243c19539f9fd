package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/smartview/pkg/view"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeListModel - Interactive view node browser
// =============================================================================

// NodeListModel is the bubbletea model for browsing the nodes of a view.
// Enter toggles a detail pane for the node under the cursor.
type NodeListModel struct {
	Diagram  view.View
	Cursor   int
	Height   int
	Offset   int
	Detailed bool

	depth map[string]int
}

// NewNodeListModel creates a node list over v.
func NewNodeListModel(v view.View) NodeListModel {
	return NodeListModel{
		Diagram: v,
		Height:  15,
		depth:   nodeDepths(v.ViewNodes),
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Diagram.ViewNodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Detailed = !m.Detailed
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("View %s", m.Diagram.Name)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	nodes := m.Diagram.ViewNodes
	if len(nodes) == 0 {
		b.WriteString(listDimStyle.Render("  no nodes"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(nodes))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		name := strings.Repeat("  ", m.depth[n.ViewNodeID]) + n.Name
		kind := n.Type
		if kind == "" {
			kind = "—"
		}
		rows = append(rows, []string{
			cursor,
			name,
			kind,
			fmt.Sprintf("%g,%g", n.X, n.Y),
			fmt.Sprintf("%gx%g", n.Width, n.Height),
			fmt.Sprintf("%d", len(m.Diagram.Similar(n.ModelNodeID))),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Type", "Position", "Size", "Copies").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(nodes) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col >= 3 {
				base = base.Foreground(colorGray)
			}
			if idx == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			if nodes[idx].IsContainer() {
				return base.Foreground(colorCyan)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(nodes))))

	if m.Detailed {
		b.WriteString("\n\n")
		b.WriteString(m.detail(nodes[m.Cursor]))
	}

	return b.String()
}

func (m NodeListModel) detail(n view.Node) string {
	var b strings.Builder
	line := func(key, value string) {
		keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
		b.WriteString(keyStyle.Render(key) + " " + listNormalStyle.Render(value) + "\n")
	}
	line("View id", n.ViewNodeID)
	line("Model id", n.ModelNodeID)
	if n.ParentID != "" {
		if p, ok := m.Diagram.Node(n.ParentID); ok {
			line("Parent", p.Name)
		}
	}
	line("Children", fmt.Sprintf("%d", len(n.Children)))
	line("Nested", fmt.Sprintf("%d", n.NestedCount))
	line("Coverage", fmt.Sprintf("%d", n.VerticalCoverage))
	var others []string
	for _, s := range m.Diagram.Similar(n.ModelNodeID) {
		if s.ViewNodeID == n.ViewNodeID {
			continue
		}
		parent := "top level"
		if p, ok := m.Diagram.Node(s.ParentID); ok {
			parent = p.Name
		}
		others = append(others, parent)
	}
	if len(others) > 0 {
		line("Also under", listSelectedStyle.Render(strings.Join(others, ", ")))
	}
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// nodeDepths returns the nesting depth of every view node, top level 0.
func nodeDepths(nodes []view.Node) map[string]int {
	parent := make(map[string]string, len(nodes))
	for _, n := range nodes {
		parent[n.ViewNodeID] = n.ParentID
	}
	depth := make(map[string]int, len(nodes))
	for _, n := range nodes {
		d := 0
		for p := parent[n.ViewNodeID]; p != "" && d <= len(nodes); p = parent[p] {
			d++
		}
		depth[n.ViewNodeID] = d
	}
	return depth
}
