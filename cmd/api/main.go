package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GGmuzem/showcase-api/internal/calculator"
	"github.com/GGmuzem/showcase-api/internal/config"
	"github.com/GGmuzem/showcase-api/internal/database"
	"github.com/GGmuzem/showcase-api/internal/grpcserver"
	"github.com/GGmuzem/showcase-api/internal/handlers"
	"github.com/GGmuzem/showcase-api/internal/logger"
	"github.com/GGmuzem/showcase-api/internal/metrics"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	os.Exit(serve(os.Args[1:]))
}

// serve запускает сервис и возвращает код выхода. Отложенные вызовы
// (закрытие БД, сброс логов) выполняются до возврата
func serve(args []string) int {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// .env необязателен
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		return 1
	}
	log.Info("server stopped")
	return 0
}

func run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	m := metrics.New()
	calc := calculator.New(
		calculator.WithDelay(cfg.SqrtDelay),
		calculator.WithObserver(m.ObserveCalculation),
	)

	router := handlers.NewRouter(handlers.Deps{
		Calculator: calc,
		Employees:  db,
		Logger:     log.With("component", "http"),
		Metrics:    m,
		RateLimit:  cfg.RateLimit,
	})
	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcListener, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}
	grpcServer := grpcserver.NewServer(calc, log.With("component", "grpc"))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		log.Info("grpc server listening", "addr", grpcListener.Addr().String())
		return grpcserver.Serve(gctx, grpcServer, grpcListener)
	})

	return g.Wait()
}

func openDatabase(ctx context.Context, cfg config.Config) (database.Database, error) {
	var db database.Database
	switch cfg.DBDriver {
	case config.DriverMemory:
		db = database.NewMemoryDB()
	default:
		sqliteDB, err := database.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		db = sqliteDB
	}

	if err := db.MigrateDB(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := database.Seed(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}
	return db, nil
}
