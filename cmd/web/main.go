package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	funnelhandler "github.com/relasi-app/relasi-core/pkg/handlers/funnel"
	reporthandler "github.com/relasi-app/relasi-core/pkg/handlers/report"
	"github.com/relasi-app/relasi-core/pkg/models/domain"
	"github.com/relasi-app/relasi-core/pkg/server"
	"github.com/relasi-app/relasi-core/pkg/services/analytics"
	"github.com/relasi-app/relasi-core/pkg/services/config"
	"github.com/relasi-app/relasi-core/pkg/services/experiment"
	"github.com/relasi-app/relasi-core/pkg/services/funnel"
	"github.com/relasi-app/relasi-core/pkg/services/pdf"
	"github.com/relasi-app/relasi-core/pkg/store/client"
	"github.com/relasi-app/relasi-core/pkg/store/session"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the Relasi report funnel",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "relasi.yaml",
		"Path to the service configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	sessions := session.NewRedis(redisClient)

	backend := client.NewRelasi(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	microcopy, err := experiment.LoadMicrocopy()
	if err != nil {
		return fmt.Errorf("failed to load microcopy tables: %w", err)
	}

	assigner := experiment.NewAssigner(experiment.DefaultRegistry(), sessions, cfg.SessionTTL)
	exits := experiment.NewExitIntentDetector(sessions, cfg.SessionTTL)
	gate := funnel.NewAvailabilityChecker(backend, cfg.Backend.GateCode, 5*time.Minute)
	flow := funnel.NewController(backend, sessions, cfg.SessionTTL)

	emitter := analytics.NewEmitter(logger, analytics.Config{
		CollectorURL: cfg.Analytics.CollectorURL,
		QueueSize:    cfg.Analytics.QueueSize,
	})
	defer emitter.Close()

	generator := pdf.NewGenerator(domain.Locale(cfg.Locale))
	artifactCache := expirable.NewLRU[string, *pdf.Result](64, nil, 15*time.Minute)

	logger.Info().
		Str("backend", cfg.Backend.BaseURL).
		Str("redis", cfg.Redis.Addr).
		Str("locale", cfg.Locale).
		Msg("configuration loaded")

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Report: reporthandler.NewHandler(backend, flow, generator, artifactCache),
			Funnel: funnelhandler.NewHandler(assigner, microcopy, exits, gate, flow, emitter),
		},
	})

	return webAPI.Start()
}
