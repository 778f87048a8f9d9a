package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/errors"
	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for interactive editing.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <graph.json>",
		Short: "Browse and edit a graph file interactively",
		Long: `Browse and edit a graph file interactively.

Opens a terminal UI listing the graph's nodes with their connections.
Nodes can be deleted (connections cascade), edits can be undone and
redone, and the result saved back to the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0])
		},
	}

	return cmd
}

func (c *CLI) runInspect(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeFileNotFound, "no such file: %s", path)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	opts := c.Config.EngineOptions()
	opts.Clipboard = &canvas.MemoryClipboard{}
	engine := canvas.New(opts)
	if !engine.ImportJSON(data) {
		return errors.New(errors.ErrCodeDecodeFailed, "load graph %s: invalid interchange payload", path)
	}

	model := newInspectModel(engine, path)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}

	if m, ok := final.(inspectModel); ok && m.saved {
		printSuccess("saved %s", path)
	}
	return nil
}

// =============================================================================
// inspectModel - Interactive node list
// =============================================================================

// inspectModel is the bubbletea model for graph inspection.
type inspectModel struct {
	engine *canvas.Engine
	path   string

	cursor int
	offset int
	height int

	status string
	saved  bool
	dirty  bool
}

func newInspectModel(engine *canvas.Engine, path string) inspectModel {
	return inspectModel{
		engine: engine,
		path:   path,
		height: 15,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.cursor < len(m.engine.Nodes())-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "d", "delete":
			nodes := m.engine.Nodes()
			if m.cursor < len(nodes) {
				m.engine.SelectNode(nodes[m.cursor].ID)
				m.engine.RemoveSelected()
				m.dirty = true
				m.status = "deleted node"
				m.clampCursor()
			}
		case "u":
			if m.engine.CanUndo() {
				m.engine.Undo()
				m.dirty = true
				m.status = "undo"
				m.clampCursor()
			} else {
				m.status = "nothing to undo"
			}
		case "r":
			if m.engine.CanRedo() {
				m.engine.Redo()
				m.dirty = true
				m.status = "redo"
				m.clampCursor()
			} else {
				m.status = "nothing to redo"
			}
		case "s":
			if err := m.save(); err != nil {
				m.status = "save failed: " + err.Error()
			} else {
				m.saved = true
				m.dirty = false
				m.status = "saved"
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m *inspectModel) clampCursor() {
	if n := len(m.engine.Nodes()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

func (m inspectModel) save() error {
	data, err := m.engine.ExportJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

func (m inspectModel) View() string {
	var b strings.Builder

	title := m.path
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  d delete  u undo  r redo  s save  q quit"))
	b.WriteString("\n\n")

	nodes := m.engine.Nodes()
	if len(nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (empty graph)"))
		b.WriteString("\n")
	}

	end := m.offset + m.height
	if end > len(nodes) {
		end = len(nodes)
	}

	for i := m.offset; i < end; i++ {
		n := nodes[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-24s %-10s (%.0f, %.0f)  %s",
			cursor, truncate(n.Title, 24), n.Type, n.Position.X, n.Position.Y,
			listDimStyle.Render(m.connectionSummary(n)))

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d nodes · %d connections",
		len(nodes), len(m.engine.Connections()))))
	if m.status != "" {
		b.WriteString(listDimStyle.Render("  · " + m.status))
	}
	b.WriteString("\n")

	return b.String()
}

// connectionSummary describes a node's wiring as "in:N out:M".
func (m inspectModel) connectionSummary(n graph.Node) string {
	var in, out int
	for _, c := range m.engine.Connections() {
		if c.TargetNodeID == n.ID {
			in++
		}
		if c.SourceNodeID == n.ID {
			out++
		}
	}
	if in == 0 && out == 0 {
		return "unconnected"
	}
	return fmt.Sprintf("in:%d out:%d", in, out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
