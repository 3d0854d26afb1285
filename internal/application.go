package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-bot/internal/config"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/repository"
	"github.com/rocketscienceinc/tictactoe-bot/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-bot/internal/service"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-bot/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-bot/transport/rest"
)

var (
	ErrAddrNotFound = errors.New("redis address string is empty")
	ErrInvalidBot   = errors.New("invalid bot config")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	engine, err := newEngine(logger, conf.Bot)
	if err != nil {
		return err
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage, conf.Redis.GameTTL)
	botService := service.NewBotService(logger, engine)
	gameManager := usecase.NewGameManager(logger, gameRepo, botService)
	router := rest.NewRouter(rest.NewHandlers(logger, gameManager, engine))

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "botMark", conf.Bot.Mark, "tieBreak", conf.Bot.TieBreak)
	if err = rest.Start(ctx, logger, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newEngine(logger *slog.Logger, conf config.Bot) (*tictactoe.Engine, error) {
	if !entity.IsMark(conf.Mark) {
		return nil, fmt.Errorf("%w: mark %q", ErrInvalidBot, conf.Mark)
	}

	tieBreak, err := tictactoe.NewTieBreaker(conf.TieBreak)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBot, err)
	}

	return tictactoe.NewEngine(logger, conf.Mark, tieBreak), nil
}
