package main

import (
	"context"
	"os"
	"time"

	"github.com/Skotchmaster/cart_api/internal/config"
	"github.com/Skotchmaster/cart_api/internal/db"
	"github.com/Skotchmaster/cart_api/internal/logging"
	"github.com/Skotchmaster/cart_api/internal/seed"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "cmd", "seed")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ctx = logging.IntoContext(ctx, logger)

	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		logger.Error("db_init_error", "error", err)
		os.Exit(1)
	}
	defer db.Close(gdb)

	if err := seed.Run(ctx, gdb); err != nil {
		logger.Error("seed_error", "error", err)
		os.Exit(1)
	}

	logger.Info("database seeded", "user_1_items", 2, "user_2_items", 1, "user_3_items", 0)
}
