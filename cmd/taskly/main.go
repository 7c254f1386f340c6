// @title                       taskly API
// @version                     1.0
// @description                 Team task tracking with review workflow, progress log, threaded comments and live notifications.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"taskly/internal/config"
	"taskly/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "taskly",
	Short:         "taskly - team task tracking server",
	Long:          `taskly serves the task, activity, comment and notification API for teams.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	rootCmd.AddCommand(serveCmd(), migrateCmd(), seedCmd())
}

// setup loads the config and builds the logger every subcommand shares.
func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}
	return cfg, log, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
