package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/cart_api/internal/config"
	"github.com/Skotchmaster/cart_api/internal/db"
	"github.com/Skotchmaster/cart_api/internal/events"
	"github.com/Skotchmaster/cart_api/internal/httpserver"
	"github.com/Skotchmaster/cart_api/internal/logging"
	loggingmw "github.com/Skotchmaster/cart_api/internal/middleware/logging"
	"github.com/Skotchmaster/cart_api/internal/repo"
	"github.com/Skotchmaster/cart_api/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(logging.IntoContext(initCtx, logger), cfg.DBDriver, cfg.DSN())
	cancel()
	if err != nil {
		logger.Error("db_init_error", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	cartService := &service.CartService{Repo: repo.New(gdb)}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaCartTopic)
		if err != nil {
			logger.Error("kafka_init_error", "error", err)
			os.Exit(1)
		}
		cartService.Events = producer
	} else {
		logger.Info("KAFKA_BROKERS empty, cart events disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	httpserver.Register(e, &httpserver.Deps{
		DB:          gdb,
		CartHandler: &httpserver.CartHTTP{Svc: cartService},
		UserHandler: &httpserver.UserHTTP{Svc: &service.UserService{Repo: repo.New(gdb)}},
		JWTSecret:   cfg.JWTSecret,
	})

	addr := ":" + strconv.Itoa(cfg.ServerPort)
	go func() {
		logger.Info("starting cart service", "addr", addr, "driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("echo_start_error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo_shutdown_error", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka_close_error", "error", err)
		}
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}

	logger.Info("server stopped")
}
