package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/calliof/switchboard/internal/config"
	"github.com/calliof/switchboard/internal/gateway"
	"github.com/calliof/switchboard/internal/hub"
	"github.com/calliof/switchboard/internal/responder"
	"github.com/calliof/switchboard/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the switchboard server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Local deployments ship credentials in a .env next to the
			// binary; missing files are fine.
			godotenv.Load()

			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			if port != 0 {
				cfg.Server.Port = port
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			if err := paths.EnsureDirs(); err != nil {
				return fmt.Errorf("creating data directories: %w", err)
			}

			var leads store.LeadStore
			if cfg.Store.Driver == "sqlite" {
				dbPath := paths.DatabasePath(&cfg)
				db, err := store.Open(dbPath, log)
				if err != nil {
					return fmt.Errorf("opening database: %w", err)
				}
				defer db.Close()
				leads = store.NewSQLiteLeadStore(db)
				log.Info().Str("path", dbPath).Msg("using SQLite lead store")
			} else {
				leads = store.NewMemoryLeadStore()
				log.Info().Msg("using in-memory lead store")
			}

			rsp := buildResponder(cfg.Responder)
			log.Info().Str("provider", rsp.Name()).Str("model", cfg.Responder.Model).Msg("automated responder ready")

			h := hub.New(rsp, leads, log)
			srv := gateway.New(cfg, h, log)

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")
	cmd.Flags().StringVar(&bind, "bind", "", "bind mode: loopback, all, custom (overrides config)")

	return cmd
}

func buildResponder(cfg config.ResponderConfig) responder.Client {
	if cfg.Provider == "mock" {
		return &responder.MockClient{}
	}
	system := cfg.SystemPrompt
	if system == "" {
		system = responder.DefaultSystemPrompt
	}
	return responder.NewOpenAIClient(cfg.BaseURL, cfg.APIKey, cfg.Model, system,
		time.Duration(cfg.TimeoutSeconds)*time.Second)
}
