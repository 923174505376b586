package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/ovumcalendar/internal/api"
	"github.com/terraincognita07/ovumcalendar/internal/cli"
	"github.com/terraincognita07/ovumcalendar/internal/config"
	"github.com/terraincognita07/ovumcalendar/internal/db"
	"github.com/terraincognita07/ovumcalendar/internal/i18n"
	"github.com/terraincognita07/ovumcalendar/internal/logging"
	"go.uber.org/zap"
)

const serviceName = "ovumcalendar"

const usage = `usage:
  ovumcalendar [serve]            run the HTTP server
  ovumcalendar secret             print a new SECRET_KEY
  ovumcalendar purge <device-id>  delete all records of one device`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	command := "serve"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "serve":
		return serve()
	case "secret":
		return cli.RunGenerateSecretCommand(out, 0)
	case "purge":
		if len(args) != 2 {
			return errors.New(usage)
		}
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		return cli.RunPurgeDeviceCommand(context.Background(), storeOptions(cfg), args[1], out, logger)
	case "help", "-h", "--help":
		_, err := fmt.Fprintln(out, usage)
		return err
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}

func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("logger init failed: %w", err)
	}
	return cfg, logger, nil
}

func serve() error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	location := cfg.Location()
	time.Local = location

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	store, err := db.OpenStore(sigCtx, storeOptions(cfg), logger)
	if err != nil {
		return fmt.Errorf("storage init failed: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("storage close failed", zap.Error(err))
		}
	}()

	i18nManager, err := i18n.NewBundledManager(cfg.I18n.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(store, i18nManager, logger, api.HandlerConfig{
		SecretKey:      cfg.Security.SecretKey,
		Location:       location,
		CookieSecure:   cfg.Security.CookieSecure,
		DeviceTokenTTL: cfg.Security.DeviceTokenTTL,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler, logger)

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("server listening",
		zap.String("addr", cfg.Server.ListenAddr()),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("tz", location.String()),
	)
	if err := app.Listen(cfg.Server.ListenAddr()); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Ovum Calendar",
		DisableStartupMessage: true,
		ErrorHandler:          api.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${status} ${method} ${path} ${latency}\n",
		Output: logging.Writer(logger.Named("http")),
	}))
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)
	return app
}

func storeOptions(cfg *config.Config) db.StoreOptions {
	return db.StoreOptions{
		Driver:        cfg.Storage.Driver,
		SQLitePath:    cfg.Storage.DBPath,
		RedisAddr:     cfg.Storage.RedisAddr,
		RedisPassword: cfg.Storage.RedisPassword,
		RedisDB:       cfg.Storage.RedisDB,
	}
}
