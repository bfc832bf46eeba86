package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	"github.com/sangkips/quotation-api/internal/domain/enum"
	"github.com/sangkips/quotation-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/quotation-api/internal/infrastructure/repository"
	"github.com/sangkips/quotation-api/pkg/metrics"
	"github.com/sangkips/quotation-api/pkg/money"
	"github.com/sangkips/quotation-api/pkg/pdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	clients   *ClientService
	catalog   *CatalogService
	quotes    *QuoteService
	dashboard *DashboardService
	exports   *ExportService
	auth      *AuthService
	metrics   *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + "_" + uuid.NewString()
	db, err := database.NewSQLiteDB(database.SQLiteMemoryDSN(name), "silent", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	log := zap.NewNop()
	m := metrics.New("test")

	clientRepo := infraRepo.NewClientRepository(db)
	serviceRepo := infraRepo.NewServiceRepository(db)
	quoteRepo := infraRepo.NewQuoteRepository(db)

	quotes := NewQuoteService(
		infraRepo.NewTransactor(db),
		quoteRepo,
		infraRepo.NewLineItemRepository(db),
		clientRepo,
		serviceRepo,
		infraRepo.NewSequenceRepository(db),
		QuoteDefaults{
			TaxPct:       decimal.NewFromInt(16),
			ValidityDays: 30,
			Notes:        "default notes",
			Terms:        "default terms",
		},
		m,
		log,
	)

	return &testEnv{
		db:        db,
		clients:   NewClientService(clientRepo, log),
		catalog:   NewCatalogService(serviceRepo, log),
		quotes:    quotes,
		dashboard: NewDashboardService(quoteRepo, clientRepo),
		exports:   NewExportService(quotes, pdf.Company{Name: "Northwind Software"}, money.DefaultFormat(), m, log),
		metrics:   m,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func (e *testEnv) client(t *testing.T, name string) *entity.Client {
	t.Helper()
	c, err := e.clients.CreateClient(context.Background(), &CreateClientInput{
		Name:    name,
		Email:   strings.ToLower(name) + "@example.com",
		Company: name + " Inc",
	})
	require.NoError(t, err)
	return c
}

func (e *testEnv) service(t *testing.T, name, rate string) *entity.Service {
	t.Helper()
	s, err := e.catalog.CreateService(context.Background(), &CreateServiceInput{
		Name:       name,
		Category:   enum.ServiceCategoryConsulting,
		HourlyRate: dec(rate),
	})
	require.NoError(t, err)
	return s
}

// assertAmount compares decimals at storage resolution.
func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	require.Equal(t, want, got.StringFixed(2), field)
}
