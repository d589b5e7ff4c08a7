package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gjalla/gjalla/pkg/application"
)

var browseCmd = &cobra.Command{
	Use:   "browse [dir]",
	Short: "Browse the tracked requirements in a TUI table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("GJALLA_SKIP_BROWSE_RUN") == "true" {
			return nil
		}

		services, err := loadServices(args)
		if err != nil {
			return err
		}

		p := tea.NewProgram(newBrowseModel(services))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("browse run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(browseCmd)
}

var browseBaseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

type browseModel struct {
	table table.Model
	total int
	err   error
}

func newBrowseModel(services *Services) browseModel {
	summary, err := application.NewRequirementsService(services.Repo, services.Audit).List()
	if err != nil {
		return browseModel{err: err}
	}

	columns := []table.Column{
		{Title: "ID", Width: 14},
		{Title: "Requirement", Width: 50},
		{Title: "Source", Width: 24},
	}

	rows := []table.Row{}
	for _, entry := range summary.Entries {
		id := entry.ID
		text := entry.Title
		if id == "" {
			id = "-"
			text = entry.Text
		}
		rows = append(rows, table.Row{id, text, entry.Source})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))
	t.SetStyles(s)

	return browseModel{table: t, total: summary.Total}
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading requirements: %v\nPress q to quit.", m.err)
	}

	header := headerStyle.Render(fmt.Sprintf("Requirements (%d tracked)", m.total))

	return browseBaseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			m.table.View(),
			"\n[q] Quit  [Up/Down] Navigate",
		),
	) + "\n"
}
