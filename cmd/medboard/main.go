package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/medboard/internal/api"
	"github.com/terraincognita07/medboard/internal/assistant"
	"github.com/terraincognita07/medboard/internal/cli"
	"github.com/terraincognita07/medboard/internal/client"
	"github.com/terraincognita07/medboard/internal/config"
	"github.com/terraincognita07/medboard/internal/db"
	"github.com/terraincognita07/medboard/internal/logging"
	"github.com/terraincognita07/medboard/internal/services"
	"github.com/terraincognita07/medboard/internal/symptoms"
	"go.uber.org/zap"
)

const (
	shutdownTimeout = 10 * time.Second
	bodyLimit       = services.MaxDocumentBytes + 2<<20
)

type commandEnv struct {
	envFile string
	cfg     config.Config
	logger  *zap.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rt := &commandEnv{}

	root := &cobra.Command{
		Use:          "medboard",
		Short:        "Patient records dashboard with a symptom checker",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rt.envFile)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&rt.envFile, "env-file", ".env", "optional .env file")

	root.AddCommand(newServeCommand(rt), newImportCommand(rt), newDiagnoseCommand(rt))
	return root
}

func newServeCommand(rt *commandEnv) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				rt.cfg.Port = port
			}
			return serve(cmd.Context(), rt.cfg, rt.logger)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides MEDBOARD_PORT)")
	return cmd
}

func newImportCommand(rt *commandEnv) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "import <patients.json>",
		Short: "Load patient records from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = rt.cfg.DBPath
			}
			return cli.RunImportCommand(dbPath, args[0], cmd.OutOrStdout(), rt.logger)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "database path (overrides MEDBOARD_DB_PATH)")
	return cmd
}

func newDiagnoseCommand(rt *commandEnv) *cobra.Command {
	var serverURL string
	cmd := &cobra.Command{
		Use:   "diagnose <symptoms...>",
		Short: "Match symptoms locally, asking the server when nothing is recognized",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if serverURL == "" {
				serverURL = rt.cfg.ServerURL
			}
			remote := client.New(serverURL, rt.cfg.ClientTimeout)
			return cli.RunDiagnoseCommand(cmd.Context(), symptoms.Default(), remote, strings.Join(args, " "), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "server URL (overrides MEDBOARD_SERVER_URL)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	database, err := db.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	remote, err := assistant.New(ctx, assistant.Config{
		APIKey:            cfg.GeminiAPIKey,
		Model:             cfg.GeminiModel,
		RequestsPerSecond: cfg.AssistantRPS,
		Burst:             cfg.AssistantBurst,
	}, logger)
	if err != nil {
		return fmt.Errorf("assistant init failed: %w", err)
	}
	if !cfg.AssistantConfigured() {
		logger.Warn("GEMINI_API_KEY not set, remote fallback disabled")
	}

	handler, err := api.NewHandler(database, remote, api.Options{
		FallbackLimit:    fallbackLimit(cfg.FallbackLimit),
		FallbackWindow:   cfg.FallbackWindow,
		AssistantTimeout: cfg.AssistantTimeout,
		Logger:           logger.Named("api"),
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler, cfg.StaticDir)

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("medboard listening",
		zap.String("addr", "http://0.0.0.0:"+cfg.Port),
		zap.String("db", cfg.DBPath),
		zap.Bool("assistant", cfg.AssistantConfigured()),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler, staticDir string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "medboard",
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	if strings.TrimSpace(staticDir) != "" {
		app.Static("/static", staticDir)
	}
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

// fallbackLimit maps the config convention (0 disables) onto the handler's
// (negative disables).
func fallbackLimit(configured int) int {
	if configured == 0 {
		return -1
	}
	return configured
}
