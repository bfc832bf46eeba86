package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Company   CompanyConfig
	Currency  CurrencyConfig
	Quote     QuoteConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	Timezone   string
	SQLitePath string
	LogLevel   string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level  string
	Format string
}

// CompanyConfig is the issuer block printed on quote documents.
type CompanyConfig struct {
	Name        string
	Address     string
	City        string
	Country     string
	Phone       string
	Email       string
	Website     string
	TaxID       string
	Description string
	Slogan      string
}

// CurrencyConfig controls how amounts are displayed.
type CurrencyConfig struct {
	Symbol       string
	DecimalSep   string
	ThousandsSep string
}

// QuoteConfig holds the defaults applied to new quotes.
type QuoteConfig struct {
	DefaultTaxPct string
	ValidityDays  int
	DefaultNotes  string
	DefaultTerms  string
}

type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

const defaultTerms = `1. This quote is valid for 30 days from its issue date.
2. Prices are expressed in US dollars and exclude any applicable taxes.
3. A 50% advance payment is required to start the work.
4. The remaining 50% is due on delivery of the project.
5. Any change to the agreed scope will be quoted separately.
6. Delivery times start once the advance payment is received.`

const defaultNotes = "Thank you for considering our services. We are happy to answer any question about this proposal."

// Load reads configuration from .env and the environment.
// A missing .env is not an error; the second return value reports it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	var readErr error
	if err := v.ReadInConfig(); err != nil {
		readErr = fmt.Errorf(".env file not found, using environment variables: %w", err)
	}

	setDefaults(v)

	return &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			Name:       v.GetString("DB_NAME"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			SSLMode:    v.GetString("DB_SSL_MODE"),
			Timezone:   v.GetString("DB_TIMEZONE"),
			SQLitePath: v.GetString("DB_SQLITE_PATH"),
			LogLevel:   v.GetString("DB_LOG_LEVEL"),
		},
		JWT: JWTConfig{
			Secret:             v.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(v.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: v.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: v.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Company: CompanyConfig{
			Name:        v.GetString("COMPANY_NAME"),
			Address:     v.GetString("COMPANY_ADDRESS"),
			City:        v.GetString("COMPANY_CITY"),
			Country:     v.GetString("COMPANY_COUNTRY"),
			Phone:       v.GetString("COMPANY_PHONE"),
			Email:       v.GetString("COMPANY_EMAIL"),
			Website:     v.GetString("COMPANY_WEBSITE"),
			TaxID:       v.GetString("COMPANY_TAX_ID"),
			Description: v.GetString("COMPANY_DESCRIPTION"),
			Slogan:      v.GetString("COMPANY_SLOGAN"),
		},
		Currency: CurrencyConfig{
			Symbol:       v.GetString("CURRENCY_SYMBOL"),
			DecimalSep:   v.GetString("CURRENCY_DECIMAL_SEP"),
			ThousandsSep: v.GetString("CURRENCY_THOUSANDS_SEP"),
		},
		Quote: QuoteConfig{
			DefaultTaxPct: v.GetString("QUOTE_DEFAULT_TAX_PCT"),
			ValidityDays:  v.GetInt("QUOTE_VALIDITY_DAYS"),
			DefaultNotes:  v.GetString("QUOTE_DEFAULT_NOTES"),
			DefaultTerms:  v.GetString("QUOTE_DEFAULT_TERMS"),
		},
		Admin: AdminConfig{
			Name:     v.GetString("ADMIN_NAME"),
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
	}, readErr
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "quotation-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "quotations")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_SQLITE_PATH", "quotations.db")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("COMPANY_NAME", "Logsytech")
	v.SetDefault("COMPANY_CITY", "Ciudad de México")
	v.SetDefault("COMPANY_COUNTRY", "México")
	v.SetDefault("COMPANY_PHONE", "+52 55 1234 5678")
	v.SetDefault("COMPANY_EMAIL", "contacto@logsytech.com")
	v.SetDefault("COMPANY_WEBSITE", "www.logsytech.com")
	v.SetDefault("COMPANY_DESCRIPTION", "Software development and technology consulting")
	v.SetDefault("COMPANY_SLOGAN", "Technology that drives your business")
	v.SetDefault("CURRENCY_SYMBOL", "USD$ ")
	v.SetDefault("CURRENCY_DECIMAL_SEP", ",")
	v.SetDefault("CURRENCY_THOUSANDS_SEP", ".")
	v.SetDefault("QUOTE_DEFAULT_TAX_PCT", "16")
	v.SetDefault("QUOTE_VALIDITY_DAYS", 30)
	v.SetDefault("QUOTE_DEFAULT_NOTES", defaultNotes)
	v.SetDefault("QUOTE_DEFAULT_TERMS", defaultTerms)
	v.SetDefault("ADMIN_NAME", "Administrator")
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
