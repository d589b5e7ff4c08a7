package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gjalla/gjalla/pkg/application"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status [dir]",
	Short: "Show a summary of the documentation workspace",
	Long: `Show whether the workspace is initialized, how well the directory
layout matches the template, how many requirements are tracked, the current
lint state, and the most recent organize session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(args)
		if err != nil {
			return err
		}

		st, err := application.NewStatusService(services.Repo).Summary()
		if err != nil {
			return MapError(err)
		}

		if statusJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}

		return printStatus(st)
	},
}

func printStatus(st *application.Status) error {
	fmt.Println(headerStyle.Render("gjalla workspace"))

	if st.Initialized {
		fmt.Println(successStyle.Render("Initialized: yes"))
	} else {
		fmt.Println(warnStyle.Render("Initialized: no") + dimStyle.Render("  (run 'gjalla init')"))
	}

	fmt.Printf("Structure compliance: %.0f%%\n", st.ComplianceScore*100)
	for _, dir := range st.MissingDirs {
		fmt.Println(warnStyle.Render("  missing " + dir + "/"))
	}
	for _, dir := range st.UnexpectedDirs {
		fmt.Println(dimStyle.Render("  unexpected " + dir + "/"))
	}

	fmt.Printf("Requirements tracked: %d\n", st.RequirementsTotal)
	for _, kind := range sortedKeys(st.RequirementsByType) {
		fmt.Printf("  %-12s %d\n", kind, st.RequirementsByType[kind])
	}

	switch {
	case st.LintedDocuments == 0:
		fmt.Println("Lint: no requirements documents")
	case st.LintViolations == 0:
		fmt.Println(successStyle.Render(fmt.Sprintf("Lint: %d documents clean", st.LintedDocuments)))
	default:
		fmt.Println(errorStyle.Render(fmt.Sprintf("Lint: %d violations in %d documents", st.LintViolations, st.LintedDocuments)))
	}

	if st.LastSessionID != "" {
		fmt.Printf("Last session: %s (%s), %d total\n", st.LastSessionID, st.LastSessionStatus, st.SessionCount)
	} else {
		fmt.Println("Last session: none")
	}
	fmt.Printf("Audit events: %d", st.EventCount)
	fmt.Println(dimStyle.Render("  (.gjalla/events.jsonl)"))
	return nil
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(statusCmd)
}
