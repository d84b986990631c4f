package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
	"github.com/launchdarkly/go-server-sdk/v7/ldcomponents"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	LDConnectionTimeout = 5 * time.Second
)

type Config struct {
	Env              string `env:"ENV" envDefault:"dev"`
	OrganizationName string `env:"ORGANIZATION_NAME" envDefault:"Apartment Maintenance"`
	AppName          string `env:"APP_NAME" envDefault:"maintenance-service"`
	AppHost          string `env:"APP_HOST" envDefault:"0.0.0.0"`
	AppPort          string `env:"APP_PORT" envDefault:"8000"`
	AppUrl           string `env:"APP_URL" envDefault:"http://localhost:5173"`

	// Database
	DBDriver    string `env:"DB_DRIVER" envDefault:"postgres"`
	DBUrl       string `env:"DB_URL"`
	PGHost      string `env:"PG_HOST"`
	PGPort      string `env:"PG_PORT" envDefault:"5432"`
	PGDatabase  string `env:"PG_DATABASE" envDefault:"maintenance"`
	PGUser      string `env:"PG_USER" envDefault:"postgres"`
	PGPassword  string `env:"PG_PASSWORD"`
	PGSSLMode   string `env:"PG_SSLMODE" envDefault:"disable"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	// HTTP
	RateLimit      string `env:"RATE_LIMIT" envDefault:"600-M"`
	PrometheusPath string `env:"PROMETHEUS_PATH" envDefault:"/debug/prometheus"`

	// Twilio / SendGrid for request notifications
	TwilioAccountSID  string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFromPhone   string `env:"TWILIO_FROM_PHONE" envDefault:"+10005550006"`
	SendGridAPIKey    string `env:"SENDGRID_API_KEY"`
	SendGridFromEmail string `env:"SENDGRID_FROM_EMAIL" envDefault:"no-reply@example.com"`

	// LaunchDarkly
	LDSDKKey      string `env:"LD_SDK_KEY"`
	LDContextKey  string `env:"LD_SERVER_CONTEXT_KEY" envDefault:"maintenance-service"`
	LDContextKind string `env:"LD_SERVER_CONTEXT_KIND" envDefault:"service"`

	// Flag defaults, overridden by LaunchDarkly when a key is configured.
	SeedDbWithTestData bool `env:"SEED_DB_WITH_TEST_DATA" envDefault:"false"`
	CORSHighSecurity   bool `env:"CORS_HIGH_SECURITY" envDefault:"false"`
	SendgridSandbox    bool `env:"SENDGRID_SANDBOX_MODE" envDefault:"false"`

	LDFlag_SeedDbWithTestData  bool
	LDFlag_CORSHighSecurity    bool
	LDFlag_SendgridSandboxMode bool
}

// LoadConfig reads .env files, the process environment and feature flags.
func LoadConfig() (*Config, error) {
	loadDotEnv(".env.local", ".env")

	cfg, err := Parse(env.Options{})
	if err != nil {
		return nil, err
	}
	utils.Logger.Info("Loading config for app: ", cfg.AppName)

	if err := cfg.loadFlags(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse builds a Config from opts.Environment (or the process env when nil)
// and validates it. Flags take their env defaults.
func Parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBUrl == "" && cfg.PGHost != "" {
		u, err := utils.BuildPostgresURL(cfg.PGHost, cfg.PGPort, cfg.PGDatabase, cfg.PGUser, cfg.PGPassword, cfg.PGSSLMode)
		if err != nil {
			return nil, err
		}
		cfg.DBUrl = u
	}
	cfg.LDFlag_SeedDbWithTestData = cfg.SeedDbWithTestData
	cfg.LDFlag_CORSHighSecurity = cfg.CORSHighSecurity
	cfg.LDFlag_SendgridSandboxMode = cfg.SendgridSandbox
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DBUrl == "" {
			return errors.New("DB_URL or PG_HOST is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	if c.AppPort == "" {
		return errors.New("APP_PORT must not be empty")
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.AppHost + ":" + c.AppPort
}

// loadFlags evaluates feature flags. Without an SDK key the client runs
// offline and every flag keeps its env default.
func (c *Config) loadFlags() error {
	ldCfg := ld.Config{}
	if c.LDSDKKey == "" {
		ldCfg.Offline = true
		ldCfg.Logging = ldcomponents.NoLogging()
		utils.Logger.Info("LD_SDK_KEY not set; feature flags use env defaults")
	}
	ldClient, err := ld.MakeCustomClient(c.LDSDKKey, ldCfg, LDConnectionTimeout)
	if err != nil {
		return fmt.Errorf("create LaunchDarkly client: %w", err)
	}
	defer ldClient.Close()
	if !ldCfg.Offline && !ldClient.Initialized() {
		return errors.New("LaunchDarkly client failed to initialize")
	}

	ctx := ldcontext.NewWithKind(ldcontext.Kind(c.LDContextKind), c.LDContextKey)

	if c.LDFlag_SeedDbWithTestData, err = ldClient.BoolVariation("seed_db_with_test_data", ctx, c.SeedDbWithTestData); err != nil {
		return fmt.Errorf("seed_db_with_test_data flag: %w", err)
	}
	utils.Logger.Debugf("seed_db_with_test_data flag: %t", c.LDFlag_SeedDbWithTestData)

	if c.LDFlag_CORSHighSecurity, err = ldClient.BoolVariation("cors_high_security", ctx, c.CORSHighSecurity); err != nil {
		return fmt.Errorf("cors_high_security flag: %w", err)
	}
	utils.Logger.Debugf("cors_high_security flag: %t", c.LDFlag_CORSHighSecurity)

	if c.LDFlag_SendgridSandboxMode, err = ldClient.BoolVariation("sendgrid_sandbox_mode", ctx, c.SendgridSandbox); err != nil {
		return fmt.Errorf("sendgrid_sandbox_mode flag: %w", err)
	}
	utils.Logger.Debugf("sendgrid_sandbox_mode flag: %t", c.LDFlag_SendgridSandboxMode)
	return nil
}

func loadDotEnv(files ...string) {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			utils.Logger.WithError(err).Warnf("Failed to load %s", f)
		}
	}
}
