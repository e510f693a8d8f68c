package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/adapters/outbound/tui"
	"github.com/abdidvp/expectfix/internal/domain"
)

func newInspectCmd() *cobra.Command {
	var (
		jsonOutput bool
		ciMode     bool
		noCache    bool
		only       []string
	)

	cmd := &cobra.Command{
		Use:   "inspect [path]",
		Short: "Report rewritable tests without changing anything",
		Long:  "Scan a Java project and list @Test(expected = ...) methods and reference comparisons that expectfix can rewrite.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := projectPath(args)
			if err != nil {
				return err
			}

			report, err := newInspectService().Inspect(cmd.Context(), path, domain.InspectOptions{
				NoCache: noCache,
				Only:    only,
			})
			if err != nil {
				return errors.Errorf("inspection failed: %w", err)
			}

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderInspectReport(report))
			}

			if ciMode && (len(report.Issues) > 0 || len(report.FileErrors) > 0) {
				return errors.Errorf("%d issues and %d unreadable files found", len(report.Issues), len(report.FileErrors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if any issue is found")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Inspect every file, ignoring and not updating the cache")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Run only these inspections (expected-exception, reference-equality)")

	return cmd
}
