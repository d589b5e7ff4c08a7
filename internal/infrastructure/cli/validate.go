package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gjalla/gjalla/pkg/application"
)

var validateFormat string

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Lint requirements documents for structural problems",
	Long: `Check every requirements document in the project:

  - every requirement has a user story
  - every requirement has at least one acceptance criterion
  - every criterion follows a controlled sentence form
    (WHEN/THEN, WHEN/AND/THEN, IF/THEN, WHILE/THE)
  - the Acceptance Criteria Summary holds exactly four checklist items
  - no unfilled [bracketed] placeholders remain

Exits with code 1 when violations are found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(args)
		if err != nil {
			return err
		}

		report, err := application.NewValidateService(services.Repo).ValidateAll()
		if err != nil {
			return MapError(err)
		}

		if validateFormat == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			printValidationReport(report)
		}

		if report.TotalViolations > 0 {
			return &CLIError{
				Message:  fmt.Sprintf("%d violations in %d documents", report.TotalViolations, report.DocumentsLinted),
				Hint:     "Fix the findings above and rerun 'gjalla validate'",
				ExitCode: 1,
			}
		}
		return nil
	},
}

func printValidationReport(report *application.ValidationReport) {
	if report.DocumentsLinted == 0 {
		fmt.Println("No requirements documents found.")
		return
	}

	for _, file := range report.Files {
		if len(file.Violations) == 0 {
			fmt.Println(successStyle.Render("OK   ") + file.Path)
			continue
		}
		fmt.Println(errorStyle.Render("FAIL ") + file.Path)
		for _, v := range file.Violations {
			fmt.Printf("  %s:%d [%s] %s\n", file.Path, v.Line, v.Rule, v.Message)
		}
	}

	fmt.Printf("\n%d documents, %d violations\n", report.DocumentsLinted, report.TotalViolations)
}

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format (text or json)")
	RootCmd.AddCommand(validateCmd)
}
