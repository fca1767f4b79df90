package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/omarshaarawi/ffhistory/internal/api/league"
	"github.com/omarshaarawi/ffhistory/internal/api/static"
	"github.com/omarshaarawi/ffhistory/internal/bot"
	"github.com/omarshaarawi/ffhistory/internal/config"
	"github.com/omarshaarawi/ffhistory/internal/handlers"
	"github.com/omarshaarawi/ffhistory/internal/logging"
	"github.com/omarshaarawi/ffhistory/internal/mcptools"
	"github.com/omarshaarawi/ffhistory/internal/repository/memory"
	rediscache "github.com/omarshaarawi/ffhistory/internal/repository/redis"
	"github.com/omarshaarawi/ffhistory/internal/scheduler"
	"github.com/omarshaarawi/ffhistory/internal/service"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	envErr := godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()
	if envErr != nil {
		log.Debugw("No .env file loaded", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var fileCache static.Cache
	var flusher scheduler.CacheFlusher
	if cfg.Redis.URL != "" {
		client, err := rediscache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer client.Close()
		cache := rediscache.NewCache(client, cfg.Redis.TTL)
		fileCache, flusher = cache, cache
		log.Infow("Caching league files in redis", "ttl", cfg.Redis.TTL)
	}

	staticClient := static.NewClient(cfg.Data, fileCache, logger)
	staticAPI := static.NewAPI(staticClient, cfg.Data, logger)
	leagueAPI := league.NewAPI(staticAPI, logger)

	repo := memory.NewRepository(cfg.Data.CacheTTL)
	statsService := service.NewStatsService(leagueAPI, repo, logger)

	if err := statsService.Refresh(ctx); err != nil {
		log.Warnw("Initial league data load failed", "error", err)
	}

	mcpServer := mcptools.NewServer(statsService, logger, version)
	h := handlers.New(handlers.Config{
		Stats:          statsService,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		MCP:            mcpServer.Handler(),
	})

	var sendMessage func(string) error
	if cfg.TelegramBot.Enabled() {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, statsService, logger)
		if err != nil {
			return err
		}
		sendMessage = telegramBot.SendMessage

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				log.Errorw("Error running telegram bot", "error", err)
			}
		}()
	} else {
		log.Infow("TELEGRAM_TOKEN not set, bot and scheduled posts disabled")
	}

	sched, err := scheduler.NewScheduler(cfg.Schedule, statsService, flusher, sendMessage, logger)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			log.Errorw("Error stopping scheduler", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("HTTP server listening", "addr", srv.Addr, "tools", len(mcpServer.Tools()), "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("error starting HTTP server: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
