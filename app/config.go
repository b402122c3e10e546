package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read into the config
const EnvPrefix = "PAWSWAP"

// Config keys
const (
	KeyHome              = "home"
	KeyLogLevel          = "log_level"
	KeyLogFormat         = "log_format"
	KeyDBBackend         = "db_backend"
	KeyAPIAddress        = "api.address"
	KeyMinInitialDeposit = "exchange.min_initial_deposit"
)

// Log formats
const (
	LogFormatPlain = "plain"
	LogFormatJSON  = "json"
)

// Config holds the node configuration
type Config struct {
	Home      string         `mapstructure:"home"`
	LogLevel  string         `mapstructure:"log_level"`
	LogFormat string         `mapstructure:"log_format"`
	DBBackend string         `mapstructure:"db_backend"`
	API       APIConfig      `mapstructure:"api"`
	Exchange  ExchangeConfig `mapstructure:"exchange"`
}

// APIConfig configures the read-only HTTP API
type APIConfig struct {
	Address string `mapstructure:"address"`
}

// ExchangeConfig carries the exchange params applied at InitChain
type ExchangeConfig struct {
	MinInitialDeposit math.Int `mapstructure:"-"`
}

// SetDefaults registers the default value of every config key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyHome, DefaultNodeHome)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, LogFormatPlain)
	v.SetDefault(KeyDBBackend, string(dbm.GoLevelDBBackend))
	v.SetDefault(KeyAPIAddress, "127.0.0.1:1318")
	v.SetDefault(KeyMinInitialDeposit, "1000000000")
}

// ReadConfig loads the configuration from, in order of precedence, values
// already set on v (bound flags), PAWSWAP_* environment variables,
// <home>/config.toml and the defaults.
func ReadConfig(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("toml")
	v.SetConfigFile(filepath.Join(v.GetString(KeyHome), "config.toml"))
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	raw, err := cast.ToStringE(v.Get(KeyMinInitialDeposit))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyMinInitialDeposit, err)
	}
	deposit, ok := math.NewIntFromString(strings.TrimSpace(raw))
	if !ok {
		return Config{}, fmt.Errorf("invalid %s: %q is not an integer", KeyMinInitialDeposit, raw)
	}
	cfg.Exchange.MinInitialDeposit = deposit

	return cfg, cfg.Validate()
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.Home == "" {
		return errors.New("home cannot be empty")
	}
	switch c.LogFormat {
	case LogFormatPlain, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	switch dbm.BackendType(c.DBBackend) {
	case dbm.MemDBBackend, dbm.GoLevelDBBackend:
	default:
		return fmt.Errorf("unsupported db backend %q", c.DBBackend)
	}
	if c.API.Address == "" {
		return errors.New("api address cannot be empty")
	}
	if c.Exchange.MinInitialDeposit.IsNil() || !c.Exchange.MinInitialDeposit.IsPositive() {
		return fmt.Errorf("%s must be positive", KeyMinInitialDeposit)
	}
	return nil
}

// OpenDB opens the state database selected by the config.
func OpenDB(cfg Config) (dbm.DB, error) {
	backend := dbm.BackendType(cfg.DBBackend)
	if backend == dbm.MemDBBackend {
		return dbm.NewMemDB(), nil
	}

	dataDir := filepath.Join(cfg.Home, "data")
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return dbm.NewDB(Name, backend, dataDir)
}

// WriteConfig writes cfg to <home>/config.toml unless the file already
// exists.
func WriteConfig(cfg Config) error {
	out := viper.New()
	out.Set(KeyLogLevel, cfg.LogLevel)
	out.Set(KeyLogFormat, cfg.LogFormat)
	out.Set(KeyDBBackend, cfg.DBBackend)
	out.Set(KeyAPIAddress, cfg.API.Address)
	out.Set(KeyMinInitialDeposit, cfg.Exchange.MinInitialDeposit.String())

	if err := os.MkdirAll(cfg.Home, 0o750); err != nil {
		return fmt.Errorf("failed to create home: %w", err)
	}
	err := out.SafeWriteConfigAs(filepath.Join(cfg.Home, "config.toml"))
	var exists viper.ConfigFileAlreadyExistsError
	if err != nil && !errors.As(err, &exists) {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
