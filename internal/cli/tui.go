package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/permgroup/pkg/group"
	"github.com/matzehuels/permgroup/pkg/perm"
)

var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	tabStyle     = lipgloss.NewStyle().Padding(0, 1).Foreground(colorGray)
	tabOnStyle   = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorCyan)
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var gf groupFlags

	cmd := &cobra.Command{
		Use:   "explore [definition]",
		Short: "Browse the stabilizer chain interactively",
		Args:  groupArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := gf.definition(args)
			if err != nil {
				return err
			}
			sys, err := c.build(cmd.Context(), def)
			if err != nil {
				return err
			}
			m := newChainModel(def.DisplayName(), sys)
			sys.Release()

			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	gf.register(cmd)
	return cmd
}

// =============================================================================
// ChainModel - Interactive chain browser
// =============================================================================

// levelPage is the prerendered content of one chain level.
type levelPage struct {
	fixed int
	orbit int
	body  string
}

// ChainModel is the bubbletea model for browsing chain levels. It holds
// rendered text only, so the system can be released once it is built.
type ChainModel struct {
	Title string
	Order string
	Level int

	pages    []levelPage
	viewport viewport.Model
}

func newChainModel(title string, sys *group.System) ChainModel {
	m := ChainModel{
		Title:    title,
		Order:    sys.Order().String(),
		viewport: viewport.New(80, 20),
	}
	for _, l := range sys.Levels() {
		m.pages = append(m.pages, renderLevel(l))
	}
	m.setContent()
	return m
}

// renderLevel lists the Schreier tree of a level: for every orbit point the
// point it was reached from, the generator used and the transversal element.
func renderLevel(l *group.Chain) levelPage {
	t := l.Stabilizer().Transversal()
	var rows [][]string
	for _, u := range t.Orbit().Points() {
		from, via := "-", "-"
		if u != t.Root() {
			from = fmt.Sprint(t.Predecessor(u))
			via = fmt.Sprintf("g%d", t.Via(u))
		}
		rows = append(rows, []string{fmt.Sprint(u), from, via, perm.FormatCycles(t.Element(u))})
	}
	tree := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Point", "From", "Via", "Transversal element").
		Rows(rows...)

	var gens []string
	for i, g := range l.Generators() {
		gens = append(gens, fmt.Sprintf("  g%d = %s", i, perm.FormatCycles(g)))
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Schreier tree"))
	b.WriteString("\n")
	b.WriteString(tree.Render())
	b.WriteString("\n\n")
	b.WriteString(StyleTitle.Render("Stabilizer generators"))
	b.WriteString("\n")
	b.WriteString(strings.Join(gens, "\n"))
	return levelPage{fixed: l.Fixed(), orbit: t.Len(), body: b.String()}
}

func (m *ChainModel) setContent() {
	if len(m.pages) == 0 {
		m.viewport.SetContent(listDimStyle.Render("The group is trivial; the chain has no levels."))
		return
	}
	m.viewport.SetContent(m.pages[m.Level].body)
	m.viewport.GotoTop()
}

func (m ChainModel) Init() tea.Cmd {
	return nil
}

func (m ChainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Level > 0 {
				m.Level--
				m.setContent()
			}
			return m, nil
		case "right", "l", "tab":
			if m.Level < len(m.pages)-1 {
				m.Level++
				m.setContent()
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 5)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ChainModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(listDimStyle.Render("  order " + m.Order))
	b.WriteString("\n")

	var tabs []string
	for i, p := range m.pages {
		label := fmt.Sprintf("fix %d · %d", p.fixed, p.orbit)
		if i == m.Level {
			tabs = append(tabs, tabOnStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ level  ↑/↓ scroll  q quit"))

	return b.String()
}
