package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timeouts, thresholds, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	DB       DBConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Supplier SupplierConfig
	Stripe   StripeConfig
	Checkout CheckoutConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type DBConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER"`
	Password    string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME"`
	SSLMode     string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone    string `envconfig:"DB_TIMEZONE" default:"UTC"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

type MongoConfig struct {
	URI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database string `envconfig:"MONGO_DATABASE" default:"storefront"`
}

type RedisConfig struct {
	URL string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret              string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration time.Duration `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"15m"`
}

const (
	SupplierEnvSandbox    = "sandbox"
	SupplierEnvProduction = "production"
)

type SupplierConfig struct {
	BaseURL           string        `envconfig:"SUPPLIER_BASE_URL" required:"true"`
	Environment       string        `envconfig:"SUPPLIER_ENV" default:"sandbox"`
	SandboxAPIKey     string        `envconfig:"SUPPLIER_API_KEY_SANDBOX"`
	ProductionAPIKey  string        `envconfig:"SUPPLIER_API_KEY_PRODUCTION"`
	Timeout           time.Duration `envconfig:"SUPPLIER_TIMEOUT" default:"20s"`
	TokenSafetyMargin time.Duration `envconfig:"SUPPLIER_TOKEN_SAFETY_MARGIN" default:"5m"`
	Search            string        `envconfig:"SUPPLIER_SYNC_SEARCH"`
	ProductTypes      []string      `envconfig:"SUPPLIER_SYNC_PRODUCT_TYPES"`
}

// ActiveAPIKey returns the key for the configured environment, empty when unset.
func (c SupplierConfig) ActiveAPIKey() string {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case SupplierEnvProduction:
		return strings.TrimSpace(c.ProductionAPIKey)
	case SupplierEnvSandbox, "":
		return strings.TrimSpace(c.SandboxAPIKey)
	default:
		return ""
	}
}

type StripeConfig struct {
	SecretKey     string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	WebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" required:"true"`
}

type CheckoutConfig struct {
	Currency   string  `envconfig:"CHECKOUT_CURRENCY" default:"usd"`
	TaxPercent float64 `envconfig:"CHECKOUT_TAX_PERCENT" default:"0"`
	SuccessURL string  `envconfig:"CHECKOUT_SUCCESS_URL" default:"http://localhost:3000/checkout/success?session_id={CHECKOUT_SESSION_ID}"`
	CancelURL  string  `envconfig:"CHECKOUT_CANCEL_URL" default:"http://localhost:3000/cart"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	// .env is optional; real environments inject variables directly
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}

	switch cfg.Store.Driver {
	case StoreDriverPostgres, StoreDriverMongo:
	default:
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{Driver: StoreDriverPostgres},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{Secret: "test-secret", AccessTokenDuration: 15 * time.Minute},
		Supplier: SupplierConfig{
			BaseURL:           "http://localhost:9999",
			Environment:       SupplierEnvSandbox,
			SandboxAPIKey:     "test-api-key",
			Timeout:           5 * time.Second,
			TokenSafetyMargin: time.Minute,
		},
		Stripe: StripeConfig{
			SecretKey:     "sk_test_dummy",
			WebhookSecret: "whsec_test",
		},
		Checkout: CheckoutConfig{
			Currency:   "usd",
			SuccessURL: "http://localhost:3000/checkout/success?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:  "http://localhost:3000/cart",
		},
	}
}
