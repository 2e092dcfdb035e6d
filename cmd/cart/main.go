package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/rl1809/console-cart/internal/adapter/console"
	"github.com/rl1809/console-cart/internal/adapter/storage"
	"github.com/rl1809/console-cart/internal/config"
	"github.com/rl1809/console-cart/internal/core/domain"
	"github.com/rl1809/console-cart/internal/core/service"
	"github.com/rl1809/console-cart/internal/logger"
	"github.com/rl1809/console-cart/internal/port"
)

func main() {
	app := &cli.App{
		Name:  "cart",
		Usage: "console shopping cart",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-file", Usage: "error log path (overrides ERROR_LOG_PATH)"},
			&cli.StringFlag{Name: "stock-backend", Usage: "memory or redis (overrides STOCK_BACKEND)"},
			&cli.StringFlag{Name: "reservation", Usage: "permissive or reserve (overrides RESERVATION_POLICY)"},
		},
		Action: shop,
		Commands: []*cli.Command{
			{
				Name:   "shop",
				Usage:  "start an interactive shopping session",
				Action: shop,
			},
			{
				Name:   "catalog",
				Usage:  "print the catalog the store opens with and exit",
				Action: printCatalog,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if v := c.String("log-file"); v != "" {
		cfg.ErrorLogPath = v
	}
	if v := c.String("stock-backend"); v != "" {
		cfg.StockBackend = v
	}
	if v := c.String("reservation"); v != "" {
		cfg.ReservationPolicy = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func shop(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	errLog, logFile, err := logger.New(cfg.ErrorLogPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	stock, closeStock, err := openStockStore(ctx, cfg, errLog)
	if err != nil {
		return err
	}
	defer closeStock()

	inventory := service.NewInventoryService(stock, errLog)
	if err := inventory.Seed(ctx, domain.DefaultCatalog()); err != nil {
		errLog.WithError(err).Error("failed to seed inventory")
		return err
	}

	recorder, closeRecorder, err := openReceiptRecorder(ctx, cfg, errLog)
	if err != nil {
		return err
	}
	defer closeRecorder()

	cart := service.NewCartService(inventory, cfg.Policy(), errLog)
	checkout := service.NewCheckoutService(cart, inventory, recorder, errLog)

	errLog.WithFields(log.Fields{
		"session_id":    checkout.SessionID(),
		"stock_backend": cfg.StockBackend,
		"reservation":   cfg.ReservationPolicy,
	}).Info("session started")

	// The first signal ends the session through Run; restore default
	// handling so a second one kills the process.
	go func() {
		<-ctx.Done()
		stop()
	}()

	handler := console.NewHandler(inventory, cart, checkout, os.Stdin, os.Stdout, errLog)
	return handler.Run(ctx)
}

func printCatalog(c *cli.Context) error {
	stock := storage.NewMemoryAdapter()
	inventory := service.NewInventoryService(stock, logger.Discard())
	if err := inventory.Seed(c.Context, domain.DefaultCatalog()); err != nil {
		return err
	}

	entries, err := inventory.ListAll(c.Context)
	if err != nil {
		return err
	}
	console.RenderCatalog(os.Stdout, entries)
	return nil
}

func openStockStore(ctx context.Context, cfg *config.Config, errLog *log.Logger) (port.StockRepository, func(), error) {
	if cfg.StockBackend != config.StockBackendRedis {
		return storage.NewMemoryAdapter(), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		errLog.WithError(err).Error("failed to connect redis")
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	return storage.NewRedisAdapter(rdb), func() { rdb.Close() }, nil
}

func openReceiptRecorder(ctx context.Context, cfg *config.Config, errLog *log.Logger) (*service.ReceiptRecorder, func(), error) {
	if cfg.ReceiptDSN == "" {
		return nil, func() {}, nil
	}

	db, err := sql.Open("mysql", cfg.ReceiptDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(cfg.ReceiptWorkers)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		errLog.WithError(err).Error("failed to ping mysql")
		return nil, nil, fmt.Errorf("ping mysql: %w", err)
	}

	recorder := service.NewReceiptRecorder(storage.NewMySQLAdapter(db), cfg.ReceiptQueueSize, cfg.ReceiptWorkers, errLog)
	return recorder, func() {
		recorder.Close()
		db.Close()
	}, nil
}
