package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodetraversal/pkg/graph"
	"github.com/matzehuels/nodetraversal/pkg/pipeline"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// maxEdgesShown caps the outgoing edges listed per row.
const maxEdgesShown = 4

// =============================================================================
// NodeListModel - Interactive start node selection
// =============================================================================

// nodeRow summarizes one node for the picker.
type nodeRow struct {
	ID    graph.NodeID
	Out   int
	In    int
	Edges string
}

// NodeListModel is the bubbletea model for interactive start node selection.
type NodeListModel struct {
	Rows     []nodeRow
	Cursor   int
	Selected *graph.NodeID
	Height   int
	Offset   int
}

// NewNodeListModel lists the nodes of g in graph order with the cursor on
// current when it is a node of g.
func NewNodeListModel(g *graph.Graph, current graph.NodeID) NodeListModel {
	in := make(map[graph.NodeID]int)
	for _, e := range g.Edges() {
		in[e.To]++
	}

	m := NodeListModel{Height: 15}
	for i, n := range g.Nodes() {
		out := g.Neighbors(n)
		parts := make([]string, 0, maxEdgesShown+1)
		for j, e := range out {
			if j == maxEdgesShown {
				parts = append(parts, "…")
				break
			}
			parts = append(parts, fmt.Sprintf("%d (%d)", e.To, e.Weight))
		}
		edges := strings.Join(parts, ", ")
		if edges == "" {
			edges = "—"
		}
		m.Rows = append(m.Rows, nodeRow{ID: n, Out: len(out), In: in[n], Edges: edges})
		if n == current {
			m.Cursor = i
		}
	}
	m.scrollToCursor()
	return m
}

func (m *NodeListModel) scrollToCursor() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
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
				m.scrollToCursor()
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				m.scrollToCursor()
			}
		case "home", "g":
			m.Cursor = 0
			m.scrollToCursor()
		case "end", "G":
			if len(m.Rows) > 0 {
				m.Cursor = len(m.Rows) - 1
				m.scrollToCursor()
			}
		case "enter":
			if len(m.Rows) == 0 {
				return m, tea.Quit
			}
			id := m.Rows[m.Cursor].ID
			m.Selected = &id
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
		m.scrollToCursor()
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Start Node"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, r.ID.String(), strconv.Itoa(r.Out), strconv.Itoa(r.In), r.Edges})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Out", "In", "Edges").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			// Nodes without outgoing edges reach nothing but themselves.
			if m.Rows[idx].Out == 0 {
				base = base.Foreground(colorDim)
			} else if col == 1 {
				base = base.Foreground(colorGreen)
			}
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// =============================================================================
// Start Picker
// =============================================================================

// pickStart loads opts.Input and lets the user choose opts.Start. It reports
// false when the user quit without choosing.
func pickStart(cmd *cobra.Command, runner *pipeline.Runner, opts *pipeline.Options) (bool, error) {
	ctx := cmd.Context()
	g, err := runner.Load(ctx, *opts)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(NewNodeListModel(g, opts.Start),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.ErrOrStderr()))
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	fm, ok := finalModel.(NodeListModel)
	if !ok || fm.Selected == nil {
		printDetail(cmd.ErrOrStderr(), "No selection made")
		return false, nil
	}
	opts.Start = *fm.Selected
	return true, nil
}
