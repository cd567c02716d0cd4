package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/vacay-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/vacay-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/vacay-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/vacay-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/vacay-backend-go/internal/service/auth"
	serviceCompany "github.com/cmlabs-hris/vacay-backend-go/internal/service/company"
	dashboardService "github.com/cmlabs-hris/vacay-backend-go/internal/service/dashboard"
	"github.com/cmlabs-hris/vacay-backend-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/vacay-backend-go/internal/service/notification"
	userService "github.com/cmlabs-hris/vacay-backend-go/internal/service/user"
	"golang.org/x/time/rate"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.SlogLevel(), cfg.App.Env, version)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := postgresql.EnsureSchema(ctx, db); err != nil {
		return err
	}

	transactor := postgresql.NewTransactor(db, cfg.Database.TxTimeout)
	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("create jwt service: %w", err)
	}

	hub := sse.NewHub(cfg.Notification.StreamBuffer)
	notifService := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{
		BatchSize:     cfg.Notification.BatchSize,
		FlushInterval: cfg.Notification.FlushInterval,
		WorkerCount:   cfg.Notification.WorkerCount,
		QueueSize:     cfg.Notification.QueueSize,
	})

	ledger := leave.NewLedger(userRepo, notifService)
	leaveService := leave.NewLeaveService(transactor, leaveRequestRepo, userRepo, companyRepo, ledger, notifService)
	authService := serviceAuth.NewAuthService(transactor, userRepo, companyRepo, JWTService)
	companyService := serviceCompany.NewCompanyService(companyRepo)
	userSvc := userService.NewUserService(userRepo, ledger)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	authLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.AuthRPS), cfg.RateLimit.AuthBurst)

	scheduler := cron.NewScheduler()
	cron.NewNotificationJobs(notifService, cfg.Notification.Retention, cfg.Notification.CleanupInterval).RegisterJobs(scheduler)
	scheduler.AddJob("prune_rate_limiters", 10*time.Minute, 0, func(ctx context.Context) error {
		if removed := authLimiter.Prune(); removed > 0 {
			slog.Debug("rate limiter entries pruned", "removed", removed)
		}
		return nil
	})
	scheduler.Start()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AuthLimiter:    authLimiter,
		},
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewLeaveHandler(leaveService),
		appHTTP.NewUserHandler(userSvc),
		appHTTP.NewCompanyHandler(companyService),
		appHTTP.NewNotificationHandler(notifService, JWTService),
		appHTTP.NewDashboardHandler(dashboardSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	// Open SSE streams would hold Shutdown until the timeout.
	hub.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown failed", "error", err)
	}
	scheduler.Stop()
	notifService.Stop()

	slog.Info("server stopped")
	return nil
}
