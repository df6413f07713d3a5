package config

import (
	"fmt"
	"strings"
	"time"

	"frame_ledger_backend/pkg/utils"
)

// Stock policies applied when a sale decrements inventory.
const (
	StockPolicyAllowNegative  = "allow_negative"
	StockPolicyRejectOversell = "reject_oversell"
)

// Frame policies applied when a CSV import references an existing product_id.
const (
	FramePolicyIgnore  = "ignore"
	FramePolicyRefresh = "refresh"
)

// Config holds every setting read from the environment at startup.
type Config struct {
	Port string

	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBMaxOpenConns int
	ApplySchema    bool

	LogLevel  string
	LogPretty bool

	CORSAllowedOrigins []string

	JWTSecret          string
	JWTTTL             time.Duration
	DistributorKeyHash string
	AuthDisabled       bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	StockPolicy         string
	FrameReimportPolicy string
	BillingLocation     *time.Location
	MaxImportBytes      int64
}

// Load reads the configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                utils.Getenv("PORT", "8080"),
		DBHost:              utils.Getenv("DB_HOST", "localhost"),
		DBPort:              utils.Getenv("DB_PORT", "5432"),
		DBUser:              utils.Getenv("DB_USER", "frame_ledger"),
		DBPassword:          utils.Getenv("DB_PASSWORD", "frame_ledger"),
		DBName:              utils.Getenv("DB_NAME", "frame_ledger_db"),
		DBSSLMode:           utils.Getenv("DB_SSLMODE", "disable"),
		LogLevel:            utils.Getenv("LOG_LEVEL", "info"),
		JWTSecret:           utils.Getenv("JWT_SECRET", ""),
		DistributorKeyHash:  utils.Getenv("DISTRIBUTOR_KEY_HASH", ""),
		RedisAddr:           utils.Getenv("REDIS_ADDR", ""),
		RedisPassword:       utils.Getenv("REDIS_PASSWORD", ""),
		StockPolicy:         utils.Getenv("STOCK_POLICY", StockPolicyAllowNegative),
		FrameReimportPolicy: utils.Getenv("FRAME_REIMPORT_POLICY", FramePolicyIgnore),
	}

	var err error
	if cfg.DBMaxOpenConns, err = utils.GetenvInt("DB_MAX_OPEN_CONNS", 25); err != nil {
		return nil, err
	}
	if cfg.ApplySchema, err = utils.GetenvBool("APPLY_SCHEMA", true); err != nil {
		return nil, err
	}
	if cfg.LogPretty, err = utils.GetenvBool("LOG_PRETTY", true); err != nil {
		return nil, err
	}
	if cfg.JWTTTL, err = utils.GetenvDuration("JWT_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AuthDisabled, err = utils.GetenvBool("AUTH_DISABLED", false); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = utils.GetenvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	maxImport, err := utils.GetenvInt("MAX_IMPORT_BYTES", 5<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxImportBytes = int64(maxImport)

	tz := utils.Getenv("BILLING_TIMEZONE", "UTC")
	if cfg.BillingLocation, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("BILLING_TIMEZONE: %w", err)
	}

	origins := utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.StockPolicy {
	case StockPolicyAllowNegative, StockPolicyRejectOversell:
	default:
		return fmt.Errorf("STOCK_POLICY: unknown policy %q", c.StockPolicy)
	}
	switch c.FrameReimportPolicy {
	case FramePolicyIgnore, FramePolicyRefresh:
	default:
		return fmt.Errorf("FRAME_REIMPORT_POLICY: unknown policy %q", c.FrameReimportPolicy)
	}
	if !c.AuthDisabled && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required unless AUTH_DISABLED=true")
	}
	if c.DBMaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive")
	}
	if c.MaxImportBytes <= 0 {
		return fmt.Errorf("MAX_IMPORT_BYTES must be positive")
	}
	return nil
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
