package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/gjalla/gjalla/pkg/application"
)

var (
	undoSessionID    string
	undoListSessions bool
	undoDryRun       bool
	undoYes          bool
)

var undoCmd = &cobra.Command{
	Use:   "undo [dir]",
	Short: "Restore files moved by an organize session",
	Long: `Restore the files moved by the most recent organize session, or by
the session named with --session-id. Asks for confirmation before touching
anything unless --yes or --dry-run is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(args)
		if err != nil {
			return err
		}
		svc := application.NewUndoService(services.Repo, services.Audit)

		if undoListSessions {
			return printSessions(svc)
		}

		sess, err := svc.Resolve(undoSessionID)
		if err != nil {
			return MapError(err)
		}

		if !undoDryRun && !undoYes {
			prompt := fmt.Sprintf("Undo session %s (%d moves from %s)?",
				sess.ID, len(sess.Moves()), sess.CreatedAt.Format("2006-01-02 15:04"))
			confirmed := false
			if err := survey.AskOne(&survey.Confirm{Message: prompt}, &confirmed); err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		result, err := svc.Undo(sess.ID, undoDryRun)
		if err != nil {
			return MapError(err)
		}

		if result.DryRun {
			fmt.Println(warnStyle.Render("Dry run: nothing was restored"))
		}
		for _, op := range result.Restored {
			fmt.Printf("restore %s -> %s\n", op.Target, op.Source)
		}
		if !result.DryRun {
			fmt.Println(successStyle.Render(fmt.Sprintf("Session %s undone", result.Session.ID)))
		}
		return nil
	},
}

func printSessions(svc *application.UndoService) error {
	sessions, err := svc.ListSessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded.")
		return nil
	}
	for _, s := range sessions {
		fmt.Printf("%s  %s  %-9s %-9s %d ops\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.Operation, s.Status, len(s.Ops))
	}
	return nil
}

func init() {
	undoCmd.Flags().StringVar(&undoSessionID, "session-id", "", "Undo a specific session")
	undoCmd.Flags().BoolVar(&undoListSessions, "list-sessions", false, "List recorded sessions and exit")
	undoCmd.Flags().BoolVar(&undoDryRun, "dry-run", false, "Preview without restoring")
	undoCmd.Flags().BoolVarP(&undoYes, "yes", "y", false, "Skip the confirmation prompt")
	RootCmd.AddCommand(undoCmd)
}
