package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/adapters/outbound/config"
)

const configURI = "expectfix://config"

func registerResources(s *server.MCPServer, projectPath string) {
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Effective Configuration",
			mcplib.WithResourceDescription("The .expectfix.yaml settings merged over the defaults"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath),
	)
}

func handleConfigResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      configURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
