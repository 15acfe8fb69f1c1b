package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/carcassonne-backend/internal/config"
	"github.com/rocketscienceinc/carcassonne-backend/internal/repository"
	"github.com/rocketscienceinc/carcassonne-backend/internal/repository/storage"
	"github.com/rocketscienceinc/carcassonne-backend/internal/usecase"
	"github.com/rocketscienceinc/carcassonne-backend/transport/rest"
	"github.com/rocketscienceinc/carcassonne-backend/transport/tcp"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

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

	matchRepo := repository.NewMatchRepository(redisStorage, conf.Redis.SessionTTL)
	matchHost := usecase.NewMatchHost(logger, matchRepo, conf.Game)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewRouter(matchRepo)); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run TCP matchmaker
	tcpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting TCP matchmaker", "port", conf.SocketPort, "redirect", conf.Matchmaker.Redirect)
		tcpServer := tcp.New(logger, matchHost, conf.Matchmaker)
		if tcpErr := tcpServer.Start(ctx, conf.SocketPort); tcpErr != nil {
			log.Error("TCP server error", "error", tcpErr)
			tcpErrCh <- tcpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-tcpErrCh:
		return fmt.Errorf("TCP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
