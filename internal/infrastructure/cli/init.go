package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gjalla/gjalla/pkg/application"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Initialize a gjalla workspace in the current directory",
	Long: `Initialize .gjalla/ with a default configuration, create the
specs/{features,fixes,reference} layout, and scaffold a fill-in-the-blank
requirements document at specs/requirements.md.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(nil)
		if err != nil {
			return err
		}

		projectName := ""
		if len(args) > 0 {
			projectName = args[0]
		}

		result, err := application.NewInitService(services.Repo, services.Audit).Initialize(projectName, initForce)
		if err != nil {
			return MapError(err)
		}

		fmt.Println(successStyle.Render("Initialized gjalla workspace"))
		for _, dir := range result.CreatedDirs {
			fmt.Printf("  created %s/\n", dir)
		}
		fmt.Printf("  scaffold at %s\n", result.ScaffoldPath)
		fmt.Println("\nFill in the bracketed placeholders, then run 'gjalla validate'.")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Reinitialize an existing workspace")
	RootCmd.AddCommand(initCmd)
}
