package config

import (
	"os"
	"path/filepath"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"

	"github.com/elos-ai/google-search-mcp/library/log"
)

// LoadFromFile loads the shared configuration from cfgPath.
//
// A missing file is not fatal: credentials may be supplied entirely through
// environment variables, so the server must be able to start without any
// configuration file at all.
func LoadFromFile(cfgPath string) {
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Logger.Info("no configuration file, relying on environment",
			zap.String("config", cfgPath))
		return
	}

	gconfig.Shared.Set("cfg_dir", filepath.Dir(cfgPath))
	if err := gconfig.Shared.LoadFromFile(cfgPath); err != nil {
		log.Logger.Panic("load configuration",
			zap.Error(err),
			zap.String("config", cfgPath))
	}

	log.Logger.Info("load configuration",
		zap.String("config", cfgPath))
}
