// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Venue     VenueConfig     `mapstructure:"venue"`
	DCA       DCAConfig       `mapstructure:"dca"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	Network     string `mapstructure:"network"` // testnet or mainnet
}

// LedgerConfig holds full-node configuration for vault and session reads.
type LedgerConfig struct {
	RPCURL         string        `mapstructure:"rpc_url"`
	PackageID      string        `mapstructure:"package_id"`
	OwnerAddress   string        `mapstructure:"owner_address"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff"`
}

// VenueConfig holds order-book venue configuration.
type VenueConfig struct {
	IndexerURL    string        `mapstructure:"indexer_url"`
	WebSocketURL  string        `mapstructure:"websocket_url"`
	PriceRangeLo  float64       `mapstructure:"price_range_lo"`
	PriceRangeHi  float64       `mapstructure:"price_range_hi"`
	BookDepth     int           `mapstructure:"book_depth"`
	StaleTimeout  time.Duration `mapstructure:"stale_timeout"`
	RequestsPerSec float64      `mapstructure:"requests_per_sec"`
}

// PriceRangeLoDecimal returns the lower price bound as decimal.Decimal.
func (c *VenueConfig) PriceRangeLoDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.PriceRangeLo)
}

// PriceRangeHiDecimal returns the upper price bound as decimal.Decimal.
func (c *VenueConfig) PriceRangeHiDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.PriceRangeHi)
}

// DCAConfig holds execution engine configuration.
type DCAConfig struct {
	SlippageBps int  `mapstructure:"slippage_bps"`
	TUIMode     bool `mapstructure:"-"` // Set at runtime, not from config file
}

// SlippageBpsDecimal returns the default slippage tolerance as decimal.Decimal.
func (c *DCAConfig) SlippageBpsDecimal() decimal.Decimal {
	return decimal.NewFromInt(int64(c.SlippageBps))
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
	HealthPort     int    `mapstructure:"health_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("DCA")
	v.AutomaticEnv()

	// Bind env vars to config keys
	bindEnvVars(v)

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "DCA_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "DCA_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "DCA_LOG_LEVEL", "LOG_LEVEL")
	v.BindEnv("app.network", "DCA_NETWORK", "NETWORK")

	// Ledger
	v.BindEnv("ledger.rpc_url", "DCA_LEDGER_RPC_URL", "LEDGER_RPC_URL")
	v.BindEnv("ledger.package_id", "DCA_PACKAGE_ID", "PACKAGE_ID")
	v.BindEnv("ledger.owner_address", "DCA_OWNER_ADDRESS", "OWNER_ADDRESS")

	// Venue
	v.BindEnv("venue.indexer_url", "DCA_VENUE_INDEXER_URL", "VENUE_INDEXER_URL")
	v.BindEnv("venue.websocket_url", "DCA_VENUE_WS_URL", "VENUE_WS_URL")

	// DCA
	v.BindEnv("dca.slippage_bps", "DCA_SLIPPAGE_BPS")

	// Telemetry
	v.BindEnv("telemetry.enabled", "DCA_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "DCA_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "DCA_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "dcavault")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.network", "testnet")

	// Ledger defaults
	v.SetDefault("ledger.rpc_url", "https://fullnode.testnet.sui.io:443")
	v.SetDefault("ledger.poll_interval", "10s")
	v.SetDefault("ledger.request_timeout", "10s")
	v.SetDefault("ledger.max_reconnects", 0) // infinite
	v.SetDefault("ledger.initial_backoff", "1s")
	v.SetDefault("ledger.max_backoff", "30s")

	// Venue defaults
	v.SetDefault("venue.indexer_url", "https://deepbook-indexer.testnet.mystenlabs.com")
	v.SetDefault("venue.price_range_lo", 0)
	v.SetDefault("venue.price_range_hi", 1000)
	v.SetDefault("venue.book_depth", 5)
	v.SetDefault("venue.stale_timeout", "5s")
	v.SetDefault("venue.requests_per_sec", 10)

	// DCA defaults
	v.SetDefault("dca.slippage_bps", 100) // 1%

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "dcavault")
	v.SetDefault("telemetry.prometheus_port", 9090)
	v.SetDefault("telemetry.health_port", 8081)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.App.Network {
	case "testnet", "mainnet":
	default:
		return fmt.Errorf("invalid app.network: %s", c.App.Network)
	}
	if c.Ledger.RPCURL == "" {
		return fmt.Errorf("ledger.rpc_url is required")
	}
	if c.Venue.IndexerURL == "" {
		return fmt.Errorf("venue.indexer_url is required")
	}
	if c.Ledger.PackageID != "" && !isHexID(c.Ledger.PackageID) {
		return fmt.Errorf("invalid ledger.package_id: %s", c.Ledger.PackageID)
	}
	if c.Ledger.OwnerAddress != "" && !isHexID(c.Ledger.OwnerAddress) {
		return fmt.Errorf("invalid ledger.owner_address: %s", c.Ledger.OwnerAddress)
	}
	if c.Venue.PriceRangeHi <= c.Venue.PriceRangeLo {
		return fmt.Errorf("venue.price_range_hi must exceed venue.price_range_lo")
	}
	if c.Venue.BookDepth <= 0 {
		return fmt.Errorf("venue.book_depth must be positive")
	}
	if c.DCA.SlippageBps < 0 || c.DCA.SlippageBps > 10000 {
		return fmt.Errorf("dca.slippage_bps must be within [0, 10000]")
	}
	return nil
}

// isHexID reports whether s looks like a 0x-prefixed hex object id or address.
func isHexID(s string) bool {
	if !strings.HasPrefix(s, "0x") || len(s) < 3 {
		return false
	}
	for _, r := range s[2:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
