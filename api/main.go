package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/rogerio-castellano/warehouse-inventory/internal/auth"
	"github.com/rogerio-castellano/warehouse-inventory/internal/config"
	"github.com/rogerio-castellano/warehouse-inventory/internal/db"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/ban"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/handlers"
	rl "github.com/rogerio-castellano/warehouse-inventory/internal/http/rate_limiter"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/router"
	"github.com/rogerio-castellano/warehouse-inventory/internal/inventory"
	"github.com/rogerio-castellano/warehouse-inventory/internal/logger"
	"github.com/rogerio-castellano/warehouse-inventory/internal/redissvc"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

type repositories struct {
	products    repo.ProductRepository
	adjustments repo.AdjustmentRepository
	users       repo.UserRepository
	metrics     repo.MetricsRepository
}

// @title Warehouse Inventory API
// @version 1.0
// @description REST API for searching the product catalog and adjusting stock levels.
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configFile := pflag.StringP("config", "c", "", "path to a config file")
	pflag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Init("warehouse-inventory", cfg.Log.Pretty)
	logger.SetLevel(cfg.Log.Level)

	if err := run(cfg); err != nil {
		logger.Logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeDB, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := seed(ctx, cfg, repos); err != nil {
		return err
	}

	revoked := auth.RevocationStore(auth.NewMemoryRevocationStore())
	var bans ban.Tracker = ban.NewMemoryTracker(ban.DefaultPolicy())
	if cfg.Redis.Addr != "" {
		rs, err := redissvc.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer rs.Close()
		revoked = auth.NewRedisRevocationStore(rs)
		bans = ban.NewRedisTracker(rs, ban.DefaultPolicy())
		logger.Logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis for token revocation and bans")
	}

	committer := inventory.NewCommitter(repos.products, inventory.WithIdentity(auth.ActorFromContext))
	srv := &handlers.Server{
		Inventory:   inventory.NewService(repos.products, committer),
		Adjustments: repos.adjustments,
		Metrics:     repos.metrics,
		Auth:        auth.NewAuthService(repos.users, auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), revoked),
	}

	routerCfg := router.Config{CORSOrigins: cfg.Server.CORSOrigins}
	if cfg.RateLimit.Enabled() {
		limiter := rl.NewLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go limiter.Cleanup(ctx)
		routerCfg.Limiter = limiter
		routerCfg.Bans = bans
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.NewRouter(srv, routerCfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Logger.Info().Str("addr", httpServer.Addr).Msg("server running")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, cfg config.Config) (repositories, func(), error) {
	if cfg.Database.URL == "" {
		adjustments := repo.NewInMemoryAdjustmentRepository()
		products := repo.NewInMemoryProductRepository(adjustments)
		logger.Logger.Info().Msg("using in-memory catalog")
		return repositories{
			products:    products,
			adjustments: adjustments,
			users:       repo.NewInMemoryUserRepository(),
			metrics:     repo.NewInMemoryMetricsRepository(products, adjustments),
		}, func() {}, nil
	}

	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("could not connect to database: %w", err)
	}
	if err := db.Migrate(ctx, database); err != nil {
		database.Close()
		return repositories{}, nil, err
	}

	logger.Logger.Info().Msg("using postgres catalog")
	return postgresRepositories(database), func() { database.Close() }, nil
}

func postgresRepositories(database *sql.DB) repositories {
	return repositories{
		products:    repo.NewPostgresProductRepository(database),
		adjustments: repo.NewPostgresAdjustmentRepository(database),
		users:       repo.NewPostgresUserRepository(database),
		metrics:     repo.NewPostgresMetricsRepository(database),
	}
}

// seed loads the catalog CSV when configured, the mock catalog otherwise,
// and the demo users.
func seed(ctx context.Context, cfg config.Config, repos repositories) error {
	products := repo.MockProducts()
	if cfg.Catalog.CSV != "" {
		f, err := os.Open(cfg.Catalog.CSV)
		if err != nil {
			return fmt.Errorf("could not open catalog: %w", err)
		}
		defer f.Close()

		products, err = repo.LoadCatalogCSV(f, time.Now())
		if err != nil {
			return err
		}
	}

	added, err := repo.SeedProducts(ctx, repos.products, products)
	if err != nil {
		return fmt.Errorf("could not seed catalog: %w", err)
	}
	if err := repo.SeedUsers(ctx, repos.users, time.Now()); err != nil {
		return fmt.Errorf("could not seed users: %w", err)
	}

	logger.Logger.Info().Int("products_added", added).Msg("catalog seeded")
	return nil
}
