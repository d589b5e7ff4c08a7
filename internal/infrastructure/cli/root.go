package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "gjalla",
	Version: Version,
	Short:   "Organize, standardize, and track project documentation",
	Long: `Gjalla keeps project documentation and requirements in shape.
It classifies markdown files into a standard layout, extracts requirement
statements into a living document, and lints requirements documents for
structural problems. Everything runs locally; state lives under .gjalla/.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}
