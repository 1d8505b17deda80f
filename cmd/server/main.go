package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chandrashekhar-patil/Chat-App/internal/presence"
	"github.com/chandrashekhar-patil/Chat-App/internal/presence/redismirror"
	"github.com/chandrashekhar-patil/Chat-App/internal/realtime"
	"github.com/chandrashekhar-patil/Chat-App/internal/server"
	"github.com/chandrashekhar-patil/Chat-App/internal/store/mongostore"
	"github.com/gin-gonic/gin"
	"github.com/mama165/sdk-go/logs"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := server.LoadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(cfg.LogLevel)
	if cfg.LogLevel != "DEBUG" && cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	mongoClient, err := mongostore.Connect(connectCtx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		log.Info("Closing MongoDB connection...")
		_ = mongoClient.Disconnect(context.Background())
	}()
	st := mongostore.New(mongoClient.Database(cfg.MongoDatabase), log)

	var listeners []presence.Listener
	if cfg.MirrorEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()

		mirror := redismirror.New(rdb, cfg.RedisPresenceKey, log)
		if err := mirror.Reset(connectCtx); err != nil {
			return err
		}
		listeners = append(listeners, mirror)
		log.Info("Mirroring presence to redis", "addr", cfg.RedisAddr, "key", cfg.RedisPresenceKey)
	}

	svc := realtime.New(st, log, listeners...)
	srv := server.New(cfg, svc, log)
	srv.StartHub()

	httpServer := server.CreateServer(cfg.Addr(), srv.Handler())
	errChan := make(chan error, 1)
	go func() {
		if err := server.StartServer(httpServer, log); err != nil {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case serveErr = <-errChan:
		log.Error("HTTP server failed; shutting down", "error", serveErr)
	}

	shutdown(httpServer, srv, svc, cfg.ShutdownTimeout, log)
	if serveErr != nil {
		return serveErr
	}
	log.Info("Program stopped cleanly")
	return nil
}

// shutdown stops intake first, then closes live sockets, then flushes
// presence listeners.
func shutdown(httpServer *http.Server, srv *server.Server, svc *realtime.Service, timeout time.Duration, log *slog.Logger) {
	if err := server.ShutdownServer(httpServer, timeout, log); err != nil {
		log.Warn("HTTP shutdown incomplete", "error", err)
	}
	if err := srv.Hub().Shutdown(timeout); err != nil {
		log.Warn("Hub shutdown incomplete", "error", err)
	}
	svc.Close()
}
