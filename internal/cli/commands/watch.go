package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/structype-lang/structype/internal/cli/config"
	"github.com/structype-lang/structype/internal/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompile declarations on change",
		Long: `Watch the source directory and recompile whenever a .stx file changes.

Changes are debounced, so an editor that fires several write events per
save triggers a single rebuild. Compilation errors are printed without
stopping the watcher.

Examples:
  # Watch with default settings
  structype watch

  # Enable verbose logging
  structype watch --verbose
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if _, err := os.Stat(cfg.Source.Dir); os.IsNotExist(err) {
				return fmt.Errorf("%s/ directory not found - are you in a structype project?", cfg.Source.Dir)
			}

			logger := zap.NewNop()
			if verbose {
				logger, err = zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("failed to create logger: %w", err)
				}
			}

			rebuild := func(files []string) error {
				if err := runBuild(cmd, nil); err != nil {
					// Keep watching after a failed build
					color.New(color.FgRed).Printf("Build failed: %v\n", err)
				}
				return nil
			}

			watcher, err := watch.NewFileWatcher(cfg.Source.Dir, logger, rebuild)
			if err != nil {
				return fmt.Errorf("failed to create file watcher: %w", err)
			}

			if err := watcher.Start(); err != nil {
				return fmt.Errorf("failed to start file watcher: %w", err)
			}

			// Initial build so the output is current before the first change
			if err := runBuild(cmd, nil); err != nil {
				color.New(color.FgRed).Printf("Build failed: %v\n", err)
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			banner := color.New(color.FgCyan, color.Bold)
			fmt.Println()
			banner.Println("structype watch")
			color.New(color.FgWhite).Printf("   Watching: %s\n", cfg.Source.Dir)
			fmt.Println()
			color.New(color.FgYellow).Println("Press Ctrl+C to stop")
			fmt.Println()

			<-sigChan

			fmt.Println("\n\nShutting down...")

			if err := watcher.Stop(); err != nil {
				return fmt.Errorf("error stopping watcher: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show verbose output")

	return cmd
}
