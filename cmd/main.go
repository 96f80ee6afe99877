package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"catalog-service/internal/api"
	"catalog-service/internal/catalog"
	"catalog-service/internal/config"
	"catalog-service/internal/logger"
	"catalog-service/internal/slug"
	"catalog-service/internal/store"
)

const appName = "catalog"

func main() {
	cmd := &cli.Command{
		Name:  appName,
		Usage: "Multi-tenant product and category catalog",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API and the gRPC health server",
				Action: runServe,
			},
			{
				Name:   "schema",
				Usage:  "Create the catalog schema, tables and indexes if missing",
				Action: runSchema,
			},
			{
				Name:  "seed-codes",
				Usage: "Import HSN (Product) or SAC (Service) codes from a CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Usage: "item type: Product or Service", Required: true},
					&cli.StringFlag{Name: "file", Usage: "CSV with code and description columns", Required: true},
				},
				Action: runSeedCodes,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// app bundles what every command needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *sqlx.DB
	store  *store.PostgresStore
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	zl, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	zl = zl.With(zap.String("service", appName), zap.String("env", cfg.AppEnv))

	db, err := openDB(ctx, cfg.Postgres)
	if err != nil {
		zl.Error("database connection failed", zap.Error(err))
		return nil, err
	}
	zl.Info("database connection established",
		zap.String("host", cfg.Postgres.Host),
		zap.String("db", cfg.Postgres.DBName),
		zap.Int("maxOpenConns", cfg.Postgres.MaxOpenConns),
	)
	return &app{cfg: cfg, logger: zl, db: db, store: store.NewPostgresStore(db)}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("error closing database", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func openDB(ctx context.Context, pc config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", pc.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(pc.MaxOpenConns)
	db.SetMaxIdleConns(pc.MaxIdleConns)
	db.SetConnMaxLifetime(pc.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pc.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func runSchema(ctx context.Context, _ *cli.Command) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.store.ApplySchema(ctx); err != nil {
		return err
	}
	a.logger.Info("catalog schema applied")
	return nil
}

func runSeedCodes(ctx context.Context, cmd *cli.Command) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	f, err := os.Open(cmd.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open codes file: %w", err)
	}
	defer f.Close()

	codes, err := readCodes(f)
	if err != nil {
		return err
	}

	svc := newService(a)
	n, err := svc.ImportReferenceCodes(ctx, cmd.String("type"), codes)
	if err != nil {
		return err
	}
	a.logger.Info("reference codes imported", zap.String("type", cmd.String("type")), zap.Int("count", n))
	return nil
}

func newService(a *app) *catalog.Service {
	return catalog.NewService(a.store, a.store, a.store, slug.NewGenerator(), a.logger,
		catalog.Options{BulkConcurrency: a.cfg.Catalog.BulkConcurrency})
}

func runServe(ctx context.Context, _ *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	handler := api.NewHTTPHandler(newService(a), a.store, a.logger)
	httpServer := &http.Server{
		Addr:         ":" + a.cfg.HttpServer.Port,
		Handler:      api.NewRouter(handler, a.logger),
		ReadTimeout:  a.cfg.HttpServer.TimeoutRead,
		WriteTimeout: a.cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  a.cfg.HttpServer.TimeoutIdle,
	}

	grpcServer, healthServer := newGRPCServer()
	grpcListener, err := net.Listen("tcp", ":"+a.cfg.GrpcServer.Port)
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC on port %s: %w", a.cfg.GrpcServer.Port, err)
	}

	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("HTTP server listening", zap.String("port", a.cfg.HttpServer.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()
	go func() {
		a.logger.Info("gRPC health server listening", zap.String("port", a.cfg.GrpcServer.Port))
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- fmt.Errorf("gRPC server: %w", err)
		}
	}()
	go watchDatabase(ctx, a.store, healthServer, a.cfg.GrpcServer.HealthInterval, a.logger)

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case runErr = <-errCh:
		a.logger.Error("server failed", zap.Error(runErr))
	}

	shutdown(a, httpServer, grpcServer, healthServer)
	return runErr
}

func newGRPCServer() (*grpc.Server, *health.Server) {
	s := grpc.NewServer()
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, hs)
	reflection.Register(s)
	return s, hs
}

// watchDatabase flips the gRPC health status with the result of periodic
// database pings until ctx is done.
func watchDatabase(ctx context.Context, db api.Pinger, hs *health.Server, interval time.Duration, zl *zap.Logger) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		status := grpc_health_v1.HealthCheckResponse_SERVING
		if err := db.Ping(pingCtx); err != nil {
			status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
			zl.Warn("database ping failed", zap.Error(err))
		}
		hs.SetServingStatus("", status)
		hs.SetServingStatus(appName, status)
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

func shutdown(a *app, httpServer *http.Server, grpcServer *grpc.Server, hs *health.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HttpServer.ShutdownTimeout)
	defer cancel()

	hs.Shutdown()

	stoppedGrpc := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stoppedGrpc)
	}()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("HTTP server graceful shutdown failed", zap.Error(err))
	}

	select {
	case <-stoppedGrpc:
	case <-shutdownCtx.Done():
		a.logger.Warn("gRPC graceful stop timed out, forcing stop")
		grpcServer.Stop()
	}
	a.logger.Info("graceful shutdown completed")
}
