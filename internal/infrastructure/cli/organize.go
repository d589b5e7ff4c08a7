package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/gjalla/gjalla/pkg/application"
)

var (
	organizeDryRun      bool
	organizeAggregates  bool
	organizeTemplateDir string
	organizeBackupDir   string
	organizeQuiet       bool
	organizeVerbose     bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize [dir]",
	Short: "Classify markdown files and move them into the specs layout",
	Long: `Discover markdown files, classify each into a category (features,
fixes, reference by default), create any missing template directories, and
move the files into place. The operation is recorded as a session with
per-file backups so it can be undone with 'gjalla undo'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(args)
		if err != nil {
			return err
		}
		if organizeBackupDir != "" {
			if err := services.Repo.SetBackupDir(organizeBackupDir); err != nil {
				return err
			}
		}

		svc := application.NewOrganizeService(services.Repo, services.Audit)
		result, err := svc.Organize(cmd.Context(), application.OrganizeOptions{
			DryRun:           organizeDryRun,
			CreateAggregates: organizeAggregates,
			TemplateDir:      organizeTemplateDir,
			BackupDir:        organizeBackupDir,
		})
		if err != nil {
			return MapError(err)
		}

		if organizeQuiet {
			return nil
		}

		if result.DryRun {
			fmt.Println(warnStyle.Render("Dry run: no files were touched"))
		}

		fmt.Printf("Classified %d files in %s\n", result.Classification.TotalFiles, result.Classification.Elapsed.Round(time.Millisecond))
		for _, category := range sortedKeys(result.Classification.Distribution) {
			fmt.Printf("  %-12s %d\n", category, result.Classification.Distribution[category])
		}

		if n := len(result.Classification.LowConfidence); n > 0 {
			fmt.Println(warnStyle.Render(fmt.Sprintf("\n%d low-confidence classifications:", n)))
			for _, cf := range result.Classification.LowConfidence {
				fmt.Printf("  %.2f %s -> %s\n", cf.Confidence, cf.Path, cf.Category)
			}
		}

		for _, dir := range result.Plan.CreateDirs {
			fmt.Printf("create %s/\n", dir)
		}
		for _, move := range result.Plan.Moves {
			fmt.Printf("move   %s -> %s\n", move.Source, move.Target)
		}
		if organizeVerbose {
			for _, skipped := range result.Plan.Skipped {
				fmt.Println(dimStyle.Render("skip   " + skipped))
			}
		}

		if result.Plan.Empty() {
			fmt.Println(successStyle.Render("Everything already in place"))
		}
		if result.Session != nil {
			fmt.Printf("\nSession %s recorded. Undo with 'gjalla undo'.\n", result.Session.ID)
		}
		if result.AggregatePath != "" {
			fmt.Printf("Aggregate written to %s\n", result.AggregatePath)
		}
		return nil
	},
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	organizeCmd.Flags().BoolVar(&organizeDryRun, "dry-run", false, "Preview the plan without moving anything")
	organizeCmd.Flags().BoolVar(&organizeAggregates, "create-aggregates", false, "Also write the extracted requirements aggregate")
	organizeCmd.Flags().StringVar(&organizeTemplateDir, "template-dir", "", "Directory holding a custom organization template")
	organizeCmd.Flags().StringVar(&organizeBackupDir, "backup-dir", "", "Keep backups in this directory (relative to the project)")
	organizeCmd.Flags().BoolVarP(&organizeQuiet, "quiet", "q", false, "Suppress output")
	organizeCmd.Flags().BoolVarP(&organizeVerbose, "verbose", "v", false, "Show skipped files")
	RootCmd.AddCommand(organizeCmd)
}
