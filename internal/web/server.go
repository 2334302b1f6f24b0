// Package web runs the gin server that fronts the MCP handler.
package web

import (
	"net/http"

	ginMw "github.com/Laisky/gin-middlewares/v7"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/elos-ai/google-search-mcp/internal/mcp/tools"
	"github.com/elos-ai/google-search-mcp/library/log"
)

var (
	server = gin.New()
)

// RunServer mounts the MCP handler and the health endpoint and blocks
// serving HTTP on addr.
func RunServer(addr string, mcpHandler http.Handler, resolver tools.EngineResolver) {
	server.Use(
		gin.Recovery(),
		ginMw.NewLoggerMiddleware(
			ginMw.WithLoggerMwColored(),
			ginMw.WithLevel(log.Logger.Level().String()),
			ginMw.WithLogger(log.Logger.Named("gin")),
		),
	)
	if !gconfig.Shared.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := ginMw.EnableMetric(server); err != nil {
		log.Logger.Panic("enable metric server", zap.Error(err))
	}

	registerRoutes(server, mcpHandler, resolver)

	log.Logger.Info("listening on http", zap.String("addr", addr))
	log.Logger.Panic("httpServer exit", zap.Error(server.Run(addr)))
}

func registerRoutes(r *gin.Engine, mcpHandler http.Handler, resolver tools.EngineResolver) {
	r.Any("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, tools.CheckHealth(ctx.Request.Context(), resolver))
	})

	r.Any("/mcp", ginMw.FromStd(mcpHandler.ServeHTTP))
}
