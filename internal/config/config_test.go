package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.Error(t, err, "no .env in an empty directory")
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "16", cfg.Quote.DefaultTaxPct)
	assert.Equal(t, 30, cfg.Quote.ValidityDays)
	assert.Equal(t, "USD$ ", cfg.Currency.Symbol)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiryHours)
	assert.NotEmpty(t, cfg.Quote.DefaultTerms)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("QUOTE_VALIDITY_DAYS", "15")
	t.Setenv("COMPANY_NAME", "Acme Labs")

	cfg, _ := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 15, cfg.Quote.ValidityDays)
	assert.Equal(t, "Acme Labs", cfg.Company.Name)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "q", Port: "5432", SSLMode: "disable", Timezone: "UTC"}

	assert.Equal(t, "host=db user=u password=p dbname=q port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}

// chdir mirrors testing.T.Chdir (Go 1.24+): switch the working directory
// for the duration of the test and restore it afterwards.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
