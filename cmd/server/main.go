package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/rl1809/rocketcart/internal/adapter/handler"
	"github.com/rl1809/rocketcart/internal/adapter/stockrpc"
	"github.com/rl1809/rocketcart/internal/adapter/storage"
	"github.com/rl1809/rocketcart/internal/config"
	"github.com/rl1809/rocketcart/internal/core/service"
	"github.com/rl1809/rocketcart/internal/logger"
	"github.com/rl1809/rocketcart/internal/metrics"
	"github.com/rl1809/rocketcart/internal/port"
)

const serviceName = "stock-server"

func main() {
	cfg, err := config.LoadServer("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(serviceName, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("stock server stopped", zap.Error(err))
	}
}

func run(cfg *config.ServerConfig, log *zap.Logger) error {
	log.Debug("configuration loaded", zap.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, closeCatalog, err := openCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCatalog()

	stock, closeStock, err := openStock(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStock()

	catalogService := service.NewCatalogService(catalog, stock, log)

	// Sync inventory to the stock store
	synced, err := catalogService.SyncStock(ctx)
	if err != nil {
		return fmt.Errorf("sync stock: %w", err)
	}
	log.Info("stock synced", zap.Int("products", synced))

	// Initialize gRPC server
	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	stockrpc.RegisterStockServiceServer(grpcServer, handler.NewGRPCHandler(catalogService, log))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(stockrpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// Initialize HTTP server
	httpMetrics := metrics.NewHTTP(prometheus.DefaultRegisterer)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(handler.Logging(log))
	r.Use(httpMetrics.Middleware(serviceName, handler.RoutePattern))

	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", handler.NewHTTPHandler(catalogService, log).Routes())

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           otelhttp.NewHandler(r, serviceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lis, err := net.Listen("tcp", cfg.GRPC.Addr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", cfg.GRPC.Addr, err)
		}
		log.Info("grpc server starting", zap.String("addr", cfg.GRPC.Addr))
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-gCtx.Done()
		healthServer.Shutdown()
		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
			log.Info("grpc server stopped")
			return nil
		case <-time.After(cfg.Shutdown.Timeout):
			log.Warn("grpc graceful stop timed out, forcing stop")
			grpcServer.Stop()
			return errors.New("grpc server graceful stop timed out")
		}
	})

	g.Go(func() error {
		log.Info("http server starting", zap.String("addr", cfg.HTTP.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		log.Info("http server stopped")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

func openCatalog(ctx context.Context, cfg *config.ServerConfig, log *zap.Logger) (port.CatalogRepository, func(), error) {
	if cfg.Catalog.Driver == config.CatalogMemory {
		log.Info("using seeded in-memory catalog")
		return storage.NewSeededCatalogAdapter(), func() {}, nil
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	adapter := storage.NewMySQLAdapter(db)
	if err := adapter.Ping(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping mysql: %w", err)
	}
	log.Info("connected to mysql")

	return adapter, func() { db.Close() }, nil
}

func openStock(ctx context.Context, cfg *config.ServerConfig, log *zap.Logger) (port.StockRepository, func(), error) {
	if cfg.Stock.Driver == config.StockMemory {
		log.Info("using in-memory stock store")
		return storage.NewMemoryStockAdapter(), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		PoolSize: 50,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	log.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))

	return storage.NewRedisStockAdapter(rdb), func() { rdb.Close() }, nil
}
