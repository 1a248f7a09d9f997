package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depsolve/pkg/config"
	"github.com/matzehuels/depsolve/pkg/resolve"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

type exploreOpts struct {
	path    string
	depFile string
}

// newExploreCmd builds `depsolve explore`: resolves the graph once, then
// opens a read-only list over the resulting order. It never re-resolves
// or polls. Moving the cursor only changes which row is highlighted; no
// per-node dep atoms or metadata are shown.
func newExploreCmd() *cobra.Command {
	var opts exploreOpts

	cmd := &cobra.Command{
		Use:   "explore <dep-strings...>",
		Short: "Interactively browse a resolved build order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := cfgFile
			if cfgPath == "" {
				cfgPath = config.DefaultFile
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			path := config.StringSetting(opts.path, "RESOLVE_DEPS_PATH", cfg.Defaults.Path, "./")
			depFile := config.StringSetting(opts.depFile, "", cfg.Defaults.DepFile, "")

			result, err := resolve.LoadAndResolve(cmd.Context(), path, depFile, parseRequired(args))
			if err != nil {
				return err
			}

			model := newOrderListModel(result.Order)
			p := tea.NewProgram(model)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "colon-separated list of source paths")
	cmd.Flags().StringVar(&opts.depFile, "dep-file", "", "per-node dep filename for directory sources")

	return cmd
}

// orderListModel is the bubbletea model backing `depsolve explore`.
type orderListModel struct {
	order  []string
	cursor int
	height int
	offset int
	quit   bool
}

func newOrderListModel(order []string) orderListModel {
	return orderListModel{order: order, height: 15}
}

func (m orderListModel) Init() tea.Cmd {
	return nil
}

func (m orderListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.order)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
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

func (m orderListModel) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Resolution order (%d nodes)", len(m.order))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.order) {
		end = len(m.order)
	}

	for i := m.offset; i < end; i++ {
		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(fmt.Sprintf("%s%2d  %s\n", cursor, i+1, style.Render(m.order[i])))
	}

	return b.String()
}
