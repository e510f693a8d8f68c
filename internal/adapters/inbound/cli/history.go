package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/adapters/outbound/history"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/tui"
)

func newHistoryCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show previous fix runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := projectPath(args)
			if err != nil {
				return err
			}
			entries, err := history.New().Load(path)
			if err != nil {
				return errors.Errorf("loading history: %w", err)
			}
			if jsonOutput {
				return renderJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")
	return cmd
}
