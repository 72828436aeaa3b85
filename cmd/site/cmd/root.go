package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/familyspace/modules/site"
	"github.com/dmitrymomot/familyspace/pkg/clientip"
	"github.com/dmitrymomot/familyspace/pkg/config"
	"github.com/dmitrymomot/familyspace/pkg/environment"
	"github.com/dmitrymomot/familyspace/pkg/logger"
	"github.com/dmitrymomot/familyspace/pkg/requestid"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:           "site",
	Short:         "Family space forms site",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadEnv(envFiles...)
	},
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Extra .env files to load, later files win")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
}

// loadConfig reads the site configuration and builds its logger.
func loadConfig() (site.Config, *slog.Logger, error) {
	var cfg site.Config
	if err := config.Load(&cfg); err != nil {
		return cfg, nil, err
	}

	env := environment.Parse(cfg.Env)
	opts := []logger.Option{
		logger.WithEnvironment(env, cfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil && env != environment.Development {
		opts = append(opts, logger.WithLevel(level))
	}

	log := logger.New(opts...)
	logger.SetAsDefault(log)
	return cfg, log, nil
}
