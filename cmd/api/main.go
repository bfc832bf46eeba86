package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotation-api/internal/application/service"
	"github.com/sangkips/quotation-api/internal/config"
	"github.com/sangkips/quotation-api/internal/infrastructure/database"
	"github.com/sangkips/quotation-api/internal/infrastructure/repository"
	"github.com/sangkips/quotation-api/internal/presentation/http/handler"
	"github.com/sangkips/quotation-api/internal/presentation/http/middleware"
	"github.com/sangkips/quotation-api/internal/presentation/http/routes"
	"github.com/sangkips/quotation-api/pkg/logger"
	"github.com/sangkips/quotation-api/pkg/metrics"
	"github.com/sangkips/quotation-api/pkg/money"
	"github.com/sangkips/quotation-api/pkg/pdf"
	"github.com/sangkips/quotation-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, cfgErr := config.Load()

	log := logger.Must(logger.New(logger.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
	}))
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if cfgErr != nil {
		log.Info("configuration loaded from environment", zap.String("reason", cfgErr.Error()))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDB(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	if err := database.SeedDefaultData(db, cfg.Admin, log); err != nil {
		log.Warn("failed to seed default data", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(
		cfg.App.Name,
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)
	appMetrics := metrics.New(cfg.App.Name)

	// Repositories
	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	clientRepo := repository.NewClientRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	itemRepo := repository.NewLineItemRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	if purged, err := idempotencyRepo.PurgeExpired(context.Background(), time.Now()); err != nil {
		log.Warn("failed to purge expired idempotency keys", zap.Error(err))
	} else if purged > 0 {
		log.Info("purged expired idempotency keys", zap.Int64("count", purged))
	}

	format := currencyFormat(cfg.Currency)
	defaults, err := quoteDefaults(cfg.Quote)
	if err != nil {
		log.Fatal("invalid quote defaults", zap.Error(err))
	}

	// Services
	authService := service.NewAuthService(userRepo, roleRepo, jwtManager, log)
	clientService := service.NewClientService(clientRepo, log)
	catalogService := service.NewCatalogService(serviceRepo, log)
	quoteService := service.NewQuoteService(tx, quoteRepo, itemRepo, clientRepo, serviceRepo, sequenceRepo, defaults, appMetrics, log)
	exportService := service.NewExportService(quoteService, companyInfo(cfg.Company), format, appMetrics, log)
	dashboardService := service.NewDashboardService(quoteRepo, clientRepo)
	userService := service.NewUserService(tx, userRepo, roleRepo, log)

	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Client:    handler.NewClientHandler(clientService),
		Service:   handler.NewServiceHandler(catalogService, format),
		Quote:     handler.NewQuoteHandler(quoteService, exportService, format),
		Dashboard: handler.NewDashboardHandler(dashboardService, format),
		User:      handler.NewUserHandler(userService),
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFromWindow(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.Duration)*time.Second,
	))
	defer rateLimiter.Close()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Metrics:         appMetrics,
		Logger:          log,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server starting", zap.String("port", port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}

func currencyFormat(cfg config.CurrencyConfig) money.Format {
	format := money.DefaultFormat()
	if cfg.Symbol != "" {
		format.Symbol = cfg.Symbol
	}
	if cfg.DecimalSep != "" {
		format.DecimalSep = cfg.DecimalSep
	}
	if cfg.ThousandsSep != "" {
		format.ThousandsSep = cfg.ThousandsSep
	}
	return format
}

func quoteDefaults(cfg config.QuoteConfig) (service.QuoteDefaults, error) {
	taxPct := decimal.NewFromInt(16)
	if cfg.DefaultTaxPct != "" {
		parsed, err := decimal.NewFromString(cfg.DefaultTaxPct)
		if err != nil {
			return service.QuoteDefaults{}, err
		}
		taxPct = parsed
	}
	return service.QuoteDefaults{
		TaxPct:       taxPct,
		ValidityDays: cfg.ValidityDays,
		Notes:        cfg.DefaultNotes,
		Terms:        cfg.DefaultTerms,
	}, nil
}

func companyInfo(cfg config.CompanyConfig) pdf.Company {
	return pdf.Company{
		Name:        cfg.Name,
		Slogan:      cfg.Slogan,
		Description: cfg.Description,
		Address:     cfg.Address,
		City:        cfg.City,
		Country:     cfg.Country,
		Phone:       cfg.Phone,
		Email:       cfg.Email,
		Website:     cfg.Website,
		TaxID:       cfg.TaxID,
	}
}
