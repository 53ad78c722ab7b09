package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/pgxstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"go.uber.org/zap"

	"github.com/siamfleet/fleet-usage-api/internal/adapters/httpapi"
	memtriprepo "github.com/siamfleet/fleet-usage-api/internal/adapters/memory/triprepo"
	memuserrepo "github.com/siamfleet/fleet-usage-api/internal/adapters/memory/userrepo"
	memvehiclerepo "github.com/siamfleet/fleet-usage-api/internal/adapters/memory/vehiclerepo"
	postgres "github.com/siamfleet/fleet-usage-api/internal/adapters/postgres"
	pgtriprepo "github.com/siamfleet/fleet-usage-api/internal/adapters/postgres/triprepo"
	pguserrepo "github.com/siamfleet/fleet-usage-api/internal/adapters/postgres/userrepo"
	pgvehiclerepo "github.com/siamfleet/fleet-usage-api/internal/adapters/postgres/vehiclerepo"
	"github.com/siamfleet/fleet-usage-api/internal/adapters/telegram"
	"github.com/siamfleet/fleet-usage-api/internal/app/auth"
	"github.com/siamfleet/fleet-usage-api/internal/app/report"
	"github.com/siamfleet/fleet-usage-api/internal/app/trips"
	"github.com/siamfleet/fleet-usage-api/internal/app/vehicles"
	"github.com/siamfleet/fleet-usage-api/internal/database"
	"github.com/siamfleet/fleet-usage-api/internal/jobs/dailyreport"
	platformclock "github.com/siamfleet/fleet-usage-api/internal/platform/clock"
	"github.com/siamfleet/fleet-usage-api/internal/platform/config"
	"github.com/siamfleet/fleet-usage-api/internal/platform/logger"
	"github.com/siamfleet/fleet-usage-api/internal/platform/seed"
	notifierport "github.com/siamfleet/fleet-usage-api/internal/ports/out/notifier"
	triprepoport "github.com/siamfleet/fleet-usage-api/internal/ports/out/triprepo"
	userrepoport "github.com/siamfleet/fleet-usage-api/internal/ports/out/userrepo"
	vehiclerepoport "github.com/siamfleet/fleet-usage-api/internal/ports/out/vehiclerepo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("invalid log config: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		zlog.Fatal("invalid report timezone", zap.String("tz", cfg.Report.Timezone), zap.Error(err))
	}

	clk := platformclock.NewSystemClock()
	ctx := context.Background()

	sessions := scs.New()
	sessions.Lifetime = 8 * time.Hour
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode

	var (
		userRepo    userrepoport.Repository
		vehicleRepo vehiclerepoport.Repository
		tripRepo    triprepoport.Repository
		cleanup     func()
	)

	switch cfg.StorageBackend {
	case "postgres":
		if err := database.Migrate(ctx, cfg.DatabaseURL); err != nil {
			zlog.Fatal("migrate database", zap.Error(err))
		}
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			zlog.Fatal("connect postgres", zap.Error(err))
		}
		cleanup = pool.Close

		userRepo = pguserrepo.NewRepo(pool)
		vehicleRepo = pgvehiclerepo.NewRepo(pool)
		tripRepo = pgtriprepo.NewRepo(pool)
		sessions.Store = pgxstore.New(pool)
	default:
		memUsers := memuserrepo.NewRepo()
		memVehicles := memvehiclerepo.NewRepo()
		userRepo = memUsers
		vehicleRepo = memVehicles
		tripRepo = memtriprepo.NewRepo(memUsers, memVehicles)
		sessions.Store = memstore.New()
	}

	if cleanup != nil {
		defer cleanup()
	}

	if err := seed.Seed(ctx, userRepo, vehicleRepo, zlog); err != nil {
		zlog.Fatal("seed data", zap.Error(err))
	}

	authSvc := auth.NewService(userRepo)
	vehiclesSvc := vehicles.NewService(vehicleRepo)
	tripsSvc := trips.NewService(tripRepo, vehicleRepo, clk)
	reportSvc := report.NewService(tripRepo, loc)

	// The interface stays nil unless both credentials are present, which
	// keeps the report job permanently disabled for this process.
	var n notifierport.Notifier
	if cfg.Telegram.Configured() {
		n = telegram.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}
	job := dailyreport.New(reportSvc, n, clk, zlog)
	stopJob, err := job.Start(loc)
	if err != nil {
		zlog.Fatal("start daily report job", zap.Error(err))
	}

	api := httpapi.NewServer(authSvc, vehiclesSvc, tripsSvc, sessions, loc, zlog)
	handler := httpapi.NewRouter(api, cfg.ClientOrigin)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("api listening", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("listen", zap.Error(err))
		}
	}()

	<-runCtx.Done()
	zlog.Info("shutting down")
	stopJob()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
