package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect and verify the workspace event log",
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Verify the integrity of the event log hash chain",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(args)
		if err != nil {
			return err
		}

		violations, err := services.Audit.VerifyIntegrity()
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}

		if len(violations) == 0 {
			fmt.Println(successStyle.Render("Event log is intact and verified."))
			return nil
		}

		for _, v := range violations {
			fmt.Println(errorStyle.Render("  - " + v))
		}
		return &CLIError{
			Message:  fmt.Sprintf("%d integrity violations", len(violations)),
			Hint:     "The event log was modified outside gjalla",
			ExitCode: 1,
		}
	},
}

var auditTimelineCmd = &cobra.Command{
	Use:   "timeline [dir]",
	Short: "Print the recorded events in order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(args)
		if err != nil {
			return err
		}

		events, err := services.Audit.GetTimeline()
		if err != nil {
			return MapError(err)
		}
		if len(events) == 0 {
			fmt.Println("No events recorded.")
			return nil
		}

		for _, e := range events {
			fmt.Printf("%s  %-22s %s\n",
				e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, dimStyle.Render(e.ID))
		}
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditVerifyCmd)
	auditCmd.AddCommand(auditTimelineCmd)
	RootCmd.AddCommand(auditCmd)
}
