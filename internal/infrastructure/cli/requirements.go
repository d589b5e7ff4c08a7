package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gjalla/gjalla/pkg/application"
)

var (
	requirementsKiro    bool
	requirementsList    bool
	requirementsQuiet   bool
	requirementsVerbose bool
)

var requirementsCmd = &cobra.Command{
	Use:   "requirements [dir]",
	Short: "Extract and aggregate requirement statements",
	Long: `Scan project markdown for requirement statements (EARS phrasing,
user stories, general shall/must prose), deduplicate them, and write the
living requirements document at specs/requirements.md.

With --kiro, parse the structured REQ-* files under .kiro/ instead.
With --list, print a summary of the existing document without scanning.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(args)
		if err != nil {
			return err
		}
		svc := application.NewRequirementsService(services.Repo, services.Audit)

		switch {
		case requirementsList:
			return runRequirementsList(svc)
		case requirementsKiro:
			return runRequirementsKiro(svc)
		default:
			return runRequirementsAggregate(svc)
		}
	},
}

func runRequirementsAggregate(svc *application.RequirementsService) error {
	agg, path, err := svc.WriteAggregate()
	if err != nil {
		return MapError(err)
	}

	if requirementsQuiet {
		return nil
	}
	fmt.Printf("Extracted %d requirements from %d files (%d duplicates removed)\n",
		len(agg.Requirements), len(agg.SourceFiles), agg.DuplicatesRemoved)
	if requirementsVerbose {
		for _, req := range agg.Requirements {
			fmt.Printf("  [%.2f] %-10s %s:%d\n", req.Confidence, req.Type, req.SourceFile, req.Line)
		}
	}
	fmt.Println(successStyle.Render("Written to " + path))
	return nil
}

func runRequirementsKiro(svc *application.RequirementsService) error {
	reqs, path, err := svc.SyncStructured()
	if err != nil {
		return MapError(err)
	}

	if requirementsQuiet {
		return nil
	}
	fmt.Printf("Parsed %d structured requirements\n", len(reqs))
	if requirementsVerbose {
		for _, req := range reqs {
			fmt.Printf("  %s: %s (%d criteria)\n", req.ID, req.Title, len(req.Criteria))
		}
	}
	fmt.Println(successStyle.Render("Written to " + path))
	return nil
}

func runRequirementsList(svc *application.RequirementsService) error {
	summary, err := svc.List()
	if err != nil {
		return MapError(err)
	}

	fmt.Printf("Total requirements: %d\n", summary.Total)
	for _, entry := range summary.Entries {
		switch {
		case entry.ID != "":
			fmt.Printf("  %-14s %s\n", entry.ID, entry.Title)
		default:
			fmt.Printf("  %-20s %s\n", entry.Source, entry.Text)
		}
	}
	return nil
}

func init() {
	requirementsCmd.Flags().BoolVar(&requirementsKiro, "kiro", false, "Parse structured .kiro requirement files")
	requirementsCmd.Flags().BoolVar(&requirementsList, "list", false, "Summarize the existing requirements document")
	requirementsCmd.Flags().BoolVarP(&requirementsQuiet, "quiet", "q", false, "Suppress output")
	requirementsCmd.Flags().BoolVarP(&requirementsVerbose, "verbose", "v", false, "Show each requirement")
	RootCmd.AddCommand(requirementsCmd)
}
