package cli

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/adapters/outbound/cache"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/config"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/detector"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/history"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/parser"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/printer"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/scanner"
	"github.com/abdidvp/expectfix/internal/application"
)

func newInspectService() *application.InspectService {
	return application.NewInspectService(scanner.New(), parser.New(), config.New(), detector.New(), cache.New())
}

func newFixService() *application.FixService {
	return application.NewFixService(
		scanner.New(),
		parser.New(),
		printer.New(),
		config.New(),
		detector.New(),
		gitinfo.New(),
		history.New(),
	)
}

func projectPath(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
