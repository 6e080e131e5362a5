package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/snarl/pkg/snarl"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the "tui" command for interactive board inspection.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [file]",
		Short: "Inspect a board interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := boardArg(args)
			g, err := loadBoard(path)
			if err != nil {
				return err
			}

			model := newBoardModel(path, g)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return fmt.Errorf("run tui: %w", err)
			}

			if m, ok := final.(boardModel); ok && m.dirty {
				if err := saveBoard(path, m.board); err != nil {
					return err
				}
				printSuccess("Saved %s", path)
			}
			return nil
		},
	}
}

// =============================================================================
// boardModel - Interactive board inspection
// =============================================================================

// boardModel is the bubbletea model for browsing a board's nodes.
type boardModel struct {
	path   string
	board  *board
	ids    []snarl.NodeID
	cursor int
	height int
	offset int
	dirty  bool
}

func newBoardModel(path string, g *board) boardModel {
	return boardModel{
		path:   path,
		board:  g,
		ids:    g.NodeIDs(),
		height: 15,
	}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.ids)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", " ":
			m.toggleOpen()
		case "d":
			m.removeSelected()
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m *boardModel) toggleOpen() {
	if m.cursor >= len(m.ids) {
		return
	}
	id := m.ids[m.cursor]
	if info, ok := m.board.Info(id); ok {
		_ = m.board.SetOpen(id, !info.Open)
		m.dirty = true
	}
}

func (m *boardModel) removeSelected() {
	if m.cursor >= len(m.ids) {
		return
	}
	id := m.ids[m.cursor]
	if _, err := m.board.RemoveNode(id); err != nil {
		return
	}
	m.ids = m.board.NodeIDs()
	if m.cursor >= len(m.ids) && m.cursor > 0 {
		m.cursor--
	}
	m.dirty = true
}

func (m boardModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Board %s", m.path)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ toggle open  d delete  q quit"))
	b.WriteString("\n\n")

	if len(m.ids) == 0 {
		b.WriteString(listDimStyle.Render("  (no nodes)"))
		b.WriteString("\n")
	}

	end := m.offset + m.height
	if end > len(m.ids) {
		end = len(m.ids)
	}
	for i := m.offset; i < end; i++ {
		id := m.ids[i]
		info, _ := m.board.Info(id)
		payload, _ := m.board.Payload(id)

		state := "open"
		if !info.Open {
			state = "closed"
		}
		line := fmt.Sprintf("node %-4d (%g, %g) %-6s %s",
			id, info.Pos.X, info.Pos.Y, state, compactJSON(payload))

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("> " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d nodes · %d wires",
		m.board.NodeCount(), m.board.WireCount())))
	b.WriteString("\n")
	return b.String()
}
