package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gjalla/gjalla/internal/infrastructure/watch"
	"github.com/gjalla/gjalla/pkg/application"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-run validation whenever project markdown changes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(args)
		if err != nil {
			return err
		}

		cfg, err := services.Repo.LoadConfig()
		if err != nil {
			return MapError(err)
		}
		validate := application.NewValidateService(services.Repo)

		revalidate := func(event watch.ChangeEvent) {
			fmt.Printf("\n%s %s\n", dimStyle.Render(event.ChangeType), event.Path)
			report, err := validate.ValidateAll()
			if err != nil {
				fmt.Println(errorStyle.Render("validate: " + err.Error()))
				return
			}
			printValidationReport(report)
		}

		filter := watch.NewPatternFilter(services.Dir, cfg.Include, cfg.Exclude)
		watcher, err := watch.NewFSWatcher(filter, watchDebounce, revalidate)
		if err != nil {
			return err
		}
		if err := watcher.WatchRecursive(services.Dir); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %s (ctrl-c to stop)\n", services.Dir)
		if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Quiet period before revalidating")
	RootCmd.AddCommand(watchCmd)
}
