package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newExploreCmd creates the explore command, an interactive district browser.
func newExploreCmd() *cobra.Command {
	var opts scanOpts

	cmd := &cobra.Command{
		Use:   "explore [dir]",
		Short: "Browse a city's districts and buildings interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, argDir(args), &opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.exclude, "exclude", "e", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().BoolVar(&opts.includeHidden, "hidden", false, "include dotfiles and dot-directories")

	return cmd
}

func runExplore(cmd *cobra.Command, dir string, opts *scanOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		Root:          dir,
		Exclude:       mergeExcludes(cfg, opts.exclude),
		IncludeHidden: opts.includeHidden || cfg.Scan.IncludeHidden,
		Logger:        logger,
	}

	runner := pipeline.NewRunner(nil, nil, logger)
	defer runner.Close()

	t, warnings, err := runner.Scan(ctx, pipeOpts)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		printWarning("%s", w)
	}

	c, err := runner.BuildCity(ctx, t, pipeOpts)
	if err != nil {
		return err
	}

	model := newExploreModel(c)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// exploreModel - Interactive district browsing
// =============================================================================

// exploreEntry is one row of the browser: a child district or a building.
type exploreEntry struct {
	node       *city.Node
	isDistrict bool
}

// exploreModel is the bubbletea model for city navigation.
type exploreModel struct {
	stack   []*city.Node // navigation path; last element is the open district
	entries []exploreEntry
	cursor  int
	height  int
	offset  int
}

func newExploreModel(root *city.Node) exploreModel {
	m := exploreModel{
		stack:  []*city.Node{root},
		height: 15,
	}
	m.entries = listEntries(root)
	return m
}

// listEntries flattens a district's contents: subdistricts first, then
// buildings, both in layout order.
func listEntries(d *city.Node) []exploreEntry {
	entries := make([]exploreEntry, 0, len(d.Children)+len(d.Buildings))
	for _, child := range d.Children {
		entries = append(entries, exploreEntry{node: child, isDistrict: true})
	}
	for _, b := range d.Buildings {
		entries = append(entries, exploreEntry{node: b})
	}
	return entries
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", "right", "l":
			if m.cursor < len(m.entries) && m.entries[m.cursor].isDistrict {
				m.stack = append(m.stack, m.entries[m.cursor].node)
				m.entries = listEntries(m.entries[m.cursor].node)
				m.cursor, m.offset = 0, 0
			}
		case "backspace", "left", "h":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
				m.entries = listEntries(m.stack[len(m.stack)-1])
				m.cursor, m.offset = 0, 0
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	current := m.stack[len(m.stack)-1]

	var b strings.Builder
	b.WriteString(StyleTitle.Render("District " + displayPath(current)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open district  ⌫ up  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.entries) {
		end = len(m.entries)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderEntry(i))
		b.WriteString("\n")
	}

	if len(m.entries) == 0 {
		b.WriteString(listDimStyle.Render("  (empty district)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d districts · %d buildings",
		len(current.Children), len(current.Buildings))))
	return b.String()
}

func (m exploreModel) renderEntry(i int) string {
	entry := m.entries[i]

	cursor := "  "
	style := listNormalStyle
	if i == m.cursor {
		cursor = iconArrow + " "
		style = listSelectedStyle
	}

	if entry.isDistrict {
		info := fmt.Sprintf("%d buildings, %d districts",
			len(entry.node.Buildings), len(entry.node.Children))
		return cursor + style.Render(entry.node.Name+"/") + "  " + listDimStyle.Render(info)
	}
	info := fmt.Sprintf("%d bytes · h %.1f", entry.node.Size, entry.node.Height)
	return cursor + style.Render(entry.node.Name) + "  " + listDimStyle.Render(info)
}

func displayPath(d *city.Node) string {
	if d.Path == "." || d.Path == "" {
		return d.Name
	}
	return d.Path
}
