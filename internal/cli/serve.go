package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/qhuang/xiehouyu-arena/internal/api"
	"github.com/qhuang/xiehouyu-arena/internal/config"
	"github.com/qhuang/xiehouyu-arena/internal/factory"
	redisstorage "github.com/qhuang/xiehouyu-arena/internal/storage/redis"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath)
		},
	}
}

func runServe(configPath string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	var redisCfg *redisstorage.Config
	if cfg.Storage.Type == config.StorageTypeRedis {
		rc := cfg.RedisConfig()
		redisCfg = &rc
	}

	app, err := factory.New(factory.Config{
		Logger:      logger,
		StorageType: cfg.Storage.Type,
		RedisConfig: redisCfg,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := app.RiddleService.LoadFromFile(ctx, cfg.Dataset.Path); err != nil {
		// Fall back to a snapshot persisted by a previous run
		logger.Warn("could not load dataset from file, trying storage",
			slog.String("path", cfg.Dataset.Path),
			slog.String("error", err.Error()),
		)
		if storageErr := app.RiddleService.LoadFromStorage(ctx); storageErr != nil {
			return err
		}
		logger.Info("riddle dataset loaded from storage",
			slog.Int("count", app.RiddleService.Count()),
		)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		RiddleService:  app.RiddleService,
		DefaultGame:    cfg.GameConfig(),
	})

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = cfg.Server.Host
	if cfg.Server.Port > 0 {
		serverCfg.Port = cfg.Server.Port
	}
	server := api.NewServer(router, serverCfg, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	return server.Shutdown(ctx)
}
