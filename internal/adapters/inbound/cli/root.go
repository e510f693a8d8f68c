package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "expectfix",
		Short: "Rewrite JUnit 4 expected exceptions into assertThrows",
		Long: "expectfix inspects Java test sources and rewrites @Test(expected = X.class) into " +
			"assertThrows(X.class, () -> { ... }), keeping everything it does not touch byte for byte.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return errors.Errorf("invalid --log-level %q: %w", logLevel, err)
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				Level(level).With().Timestamp().Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newFixCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
