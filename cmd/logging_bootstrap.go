package cmd

import (
	"github.com/fennig/focusping/internal/config"
	"github.com/fennig/focusping/internal/logging"
)

var commandLoggingBootstrap = func(cfg config.LoggingConfig, role logging.Role) {
	logging.Bootstrap(cfg, role)
}

func initializeCommandLogging(cfg config.LoggingConfig, role logging.Role) {
	commandLoggingBootstrap(cfg, role)
}
