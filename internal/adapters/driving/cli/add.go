package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jimkring/mirascope/internal/core/domain"
)

// addAlias is the --alias flag for the add command.
var addAlias string

var addCmd = &cobra.Command{
	Use:   "add [prompt]",
	Short: "Commit the working prompt as a new revision",
	Long: `Saves the working prompt file as the next numbered revision.

The working file is rewritten with the new revision's header so later
edits are compared against the revision they started from. An alias
attached with --alias can be passed to 'mirascope use' in place of the
revision number.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addAlias, "alias", "a", "", "alias to attach to the new revision")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	service, err := resolveVersionService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	result, err := service.Add(ctx, args[0], addAlias)
	if err != nil {
		if errors.Is(err, domain.ErrNoChanges) {
			cmd.Println("No changes detected.")
			return nil
		}
		return fmt.Errorf("failed to add prompt: %w", err)
	}

	cmd.Printf("Adding %s\n", stylePath.Render(result.SnapshotPath))
	return nil
}
