package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jimkring/mirascope/internal/core/domain"
)

var useCmd = &cobra.Command{
	Use:   "use [prompt] [revision|alias]",
	Short: "Restore the working prompt from a committed revision",
	Long: `Rewrites the working prompt file from a committed snapshot.

The target is a four digit revision number such as 0003, or an alias
attached by 'mirascope add --alias'. When the same alias names several
revisions, pass the revision number as a third argument to pin one.

A prompt with uncommitted changes cannot be switched; commit the
changes first with 'mirascope add'.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runUse,
}

func init() {
	rootCmd.AddCommand(useCmd)
}

func runUse(cmd *cobra.Command, args []string) error {
	service, err := resolveVersionService()
	if err != nil {
		return err
	}

	pin := ""
	if len(args) > 2 {
		pin = args[2]
	}

	ctx := context.Background()
	result, err := service.Use(ctx, args[0], args[1], pin)
	if err != nil {
		if errors.Is(err, domain.ErrUncommittedChanges) {
			cmd.Println("Changes detected, please add or remove changes first.")
			cmd.Printf("    mirascope add %s\n", args[0])
			return nil
		}
		return fmt.Errorf("failed to use revision: %w", err)
	}

	cmd.Printf("Using %s\n", stylePath.Render(result.SnapshotPath))
	return nil
}
