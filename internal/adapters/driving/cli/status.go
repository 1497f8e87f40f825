package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jimkring/mirascope/internal/core/ports/driving"
	"github.com/jimkring/mirascope/internal/logger"
)

// statusWatch keeps the status command running, re-checking on prompt
// file changes.
var statusWatch bool

var statusCmd = &cobra.Command{
	Use:   "status [prompt]",
	Short: "Show which prompts have uncommitted changes",
	Long: `Compares working prompt files against their current revisions.

With a prompt name, checks that prompt alone. Without arguments, checks
every prompt in the prompts directory. With --watch, stays running and
re-checks whenever a prompt file changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "re-check on prompt file changes")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	service, err := resolveVersionService()
	if err != nil {
		return err
	}

	prompt := ""
	if len(args) > 0 {
		prompt = args[0]
	}

	ctx := context.Background()
	if !statusWatch {
		return printStatus(ctx, cmd, service, prompt)
	}
	return watchStatus(ctx, cmd, service, prompt)
}

// printStatus runs one status check and prints the outcome.
func printStatus(ctx context.Context, cmd *cobra.Command, service driving.VersionService, prompt string) error {
	if prompt != "" {
		status, err := service.CheckStatus(ctx, prompt)
		if err != nil {
			return fmt.Errorf("failed to check status: %w", err)
		}
		if status.Changed {
			cmd.Printf("Prompt %s has changed.\n", styleModified.Render(status.Path))
		} else {
			cmd.Println(styleClean.Render("No changes detected."))
		}
		return nil
	}

	names, err := service.ListPrompts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list prompts: %w", err)
	}

	var changed []string
	for _, name := range names {
		status, err := service.CheckStatus(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to check status of %s: %w", name, err)
		}
		if status.Changed {
			changed = append(changed, status.Path)
		}
	}

	if len(changed) == 0 {
		cmd.Println(styleClean.Render("No changes detected."))
		return nil
	}

	cmd.Println("The following prompts have changed:")
	for _, path := range changed {
		cmd.Printf("    %s\n", styleModified.Render(path))
	}
	return nil
}

// watchStatus re-runs the status check whenever a prompt file changes,
// until interrupted.
func watchStatus(ctx context.Context, cmd *cobra.Command, service driving.VersionService, prompt string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck // Best-effort cleanup

	if err := watcher.Add(settings.PromptsLocation); err != nil {
		return fmt.Errorf("failed to watch %s: %w", settings.PromptsLocation, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := printStatus(ctx, cmd, service, prompt); err != nil {
		return err
	}
	cmd.Println("Watching for changes. Press Ctrl+C to stop.")

	// Editors fire several events per save; a short delay folds them
	// into one re-check.
	const settle = 200 * time.Millisecond
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Watch event: %s", event)
			pending = time.After(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		case <-pending:
			pending = nil
			if err := printStatus(ctx, cmd, service, prompt); err != nil {
				logger.Warn("Status check failed: %v", err)
			}
		}
	}
}
