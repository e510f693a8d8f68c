package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/adapters/outbound/tui"
	"github.com/abdidvp/expectfix/internal/domain"
)

func newFixCmd() *cobra.Command {
	var (
		dryRun     bool
		jsonOutput bool
		allowDirty bool
		only       []string
	)

	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Rewrite expected-exception tests into assertThrows",
		Long: "Apply every available fix and write the changed files back. Files with uncommitted " +
			"git changes are left alone unless --allow-dirty is set.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := projectPath(args)
			if err != nil {
				return err
			}

			result, err := newFixService().Fix(cmd.Context(), path, domain.FixOptions{
				DryRun:     dryRun,
				AllowDirty: allowDirty,
				Only:       only,
			})
			if err != nil {
				return errors.Errorf("fix failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFixResult(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute fixes without writing files")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output result as JSON")
	cmd.Flags().BoolVar(&allowDirty, "allow-dirty", false, "Also rewrite files with uncommitted changes")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Apply only these inspections (expected-exception, reference-equality)")

	return cmd
}
