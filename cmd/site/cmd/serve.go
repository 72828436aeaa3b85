package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/familyspace/modules/site"
	"github.com/dmitrymomot/familyspace/pkg/cookie"
	"github.com/dmitrymomot/familyspace/pkg/environment"
	"github.com/dmitrymomot/familyspace/pkg/form"
	"github.com/dmitrymomot/familyspace/pkg/httpserver"
	"github.com/dmitrymomot/familyspace/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the HTTP server until SIGINT or SIGTERM.

Configuration comes from the environment (and .env files):
  HTTP_ADDR, APP_ENV, LOG_LEVEL, DEFAULT_LANGUAGE, COOKIE_SECRETS, TOAST_DISMISS`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if !cfg.Cookie.HasSecret() {
		secret, err := cookie.RandomSecret()
		if err != nil {
			return err
		}
		cfg.Cookie.Secrets = []string{secret}
		log.WarnContext(ctx, "COOKIE_SECRETS is not set, using a random secret; theme and flash cookies will not survive a restart",
			logger.Component("site"))
	}
	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return fmt.Errorf("cookies: %w", err)
	}

	tr, err := site.NewTranslator(ctx, cfg.DefaultLanguage, log)
	if err != nil {
		return fmt.Errorf("translations: %w", err)
	}
	forms, err := form.Builtin()
	if err != nil {
		return fmt.Errorf("forms: %w", err)
	}

	svc := site.NewService(cfg, forms, tr, cookies, log)
	router := site.Router(site.RouterOptions{
		Site:            svc,
		Themes:          svc.Themes(),
		Logger:          log,
		Env:             environment.Parse(cfg.Env),
		DefaultLanguage: cfg.DefaultLanguage,
		MaxBodySize:     cfg.HTTP.MaxBodySize,
		TrustProxy:      cfg.TrustProxy,
	})

	srv := httpserver.New(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithShutdownHook(svc.Shutdown),
	)
	return srv.Run(ctx, router)
}
