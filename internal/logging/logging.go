package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"taskly/internal/config"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// New builds the application logger for the configured environment.
// A configured file receives the output in dev and prod; local always logs to stdout.
func New(cfg config.LogConfig) (*logrus.Logger, error) {
	log := logrus.New()

	var out io.Writer = os.Stdout
	if cfg.File != "" && cfg.Env != envLocal {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		out = f
	}
	log.SetOutput(out)

	switch cfg.Env {
	case envProd:
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.WarnLevel)
	case envDev:
		log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}

	if cfg.Level != "" {
		lvl, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		log.SetLevel(lvl)
	}
	return log, nil
}
