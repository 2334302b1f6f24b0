package cmd

import (
	"context"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	mcpsrv "github.com/elos-ai/google-search-mcp/internal/mcp"
	"github.com/elos-ai/google-search-mcp/internal/web"
	"github.com/elos-ai/google-search-mcp/library/log"
	"github.com/elos-ai/google-search-mcp/library/search/google"
)

var apiCMD = &cobra.Command{
	Use:   "api",
	Short: "api",
	Long:  `serve the Google search MCP tools over streamable HTTP`,
	PreRun: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := initialize(ctx, cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		resolver := google.NewResolver(mcpsrv.LoadCredentialConfigFromConfig())

		server, err := mcpsrv.NewServer(resolver, mcpsrv.LoadToolsSettingsFromConfig(), log.Logger)
		if err != nil {
			log.Logger.Panic("create mcp server", zap.Error(err))
		}

		web.RunServer(gconfig.Shared.GetString("listen"), server.Handler(), resolver)
	},
}

func init() {
	rootCMD.AddCommand(apiCMD)
}
