// Package config loads and validates the YAML runtime configuration, and
// adapts it into live session settings for the monitor's periodic refresh.
package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/CasinoHe/quanttrader-sub001/internal/session"
	"github.com/CasinoHe/quanttrader-sub001/pkg/errors"
)

// GatewayConfig selects and addresses the gateway. These fields are cold:
// changing them requires a restart.
type GatewayConfig struct {
	Provider string `yaml:"provider" json:"provider" jsonschema:"title=Provider,description=Gateway provider,enum=sim,enum=binance" validate:"required,oneof=sim binance"`
	Host     string `yaml:"host" json:"host" jsonschema:"title=Host,description=Gateway host"`
	Port     int    `yaml:"port" json:"port" jsonschema:"title=Port,description=Gateway port" validate:"gte=0,lte=65535"`
	ClientID int    `yaml:"client_id" json:"client_id" jsonschema:"title=Client ID,description=Connection client id" validate:"gte=0"`
	// ApiKey and SecretKey authenticate against providers that need them.
	ApiKey    string `yaml:"api_key" json:"api_key" jsonschema:"title=API Key"`
	SecretKey string `yaml:"secret_key" json:"secret_key" jsonschema:"title=Secret Key"`
	// WatchSymbols are subscribed for realtime market data on every
	// connect, keeping position marks and equity current.
	WatchSymbols []string `yaml:"watch_symbols" json:"watch_symbols" jsonschema:"title=Watch Symbols,description=Symbols subscribed for realtime data"`
}

// SessionConfig is the hot subset of the session's behavior. Every field is
// re-applied on each refresh without a restart.
type SessionConfig struct {
	RetryIntervalMs     int  `yaml:"retry_interval_ms" json:"retry_interval_ms" jsonschema:"title=Retry Interval,description=Milliseconds between failed connect attempts" validate:"gte=0"`
	WaitTimeoutMs       int  `yaml:"wait_timeout_ms" json:"wait_timeout_ms" jsonschema:"title=Wait Timeout,description=Milliseconds each worker waits on its queue" validate:"gte=0"`
	KeepaliveIntervalMs int  `yaml:"keepalive_interval_ms" json:"keepalive_interval_ms" jsonschema:"title=Keepalive Interval,description=Idle milliseconds before a heartbeat" validate:"gte=0"`
	RefreshIntervalMs   int  `yaml:"refresh_interval_ms" json:"refresh_interval_ms" jsonschema:"title=Refresh Interval,description=Milliseconds between config reloads" validate:"gte=0"`
	Verbose             bool `yaml:"verbose" json:"verbose" jsonschema:"title=Verbose,description=Enable debug logging"`
	// Stop shuts the session down when a refresh observes it true.
	Stop bool `yaml:"stop" json:"stop" jsonschema:"title=Stop,description=Operational kill switch"`
}

// AccountConfig funds the ledger and locates trade history.
type AccountConfig struct {
	StartingCash float64 `yaml:"starting_cash" json:"starting_cash" jsonschema:"title=Starting Cash,description=Initial cash balance" validate:"gt=0"`
	// TradeHistoryPath is the DuckDB file for persisted trades. Empty
	// keeps history in memory.
	TradeHistoryPath string `yaml:"trade_history_path" json:"trade_history_path" jsonschema:"title=Trade History Path,description=DuckDB file for trade history"`
}

// Config is the root runtime configuration.
type Config struct {
	Gateway GatewayConfig `yaml:"gateway" json:"gateway" validate:"required"`
	Session SessionConfig `yaml:"session" json:"session"`
	Account AccountConfig `yaml:"account" json:"account" validate:"required"`
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "invalid config", err)
	}

	return nil
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeConfigLoadFailed, err, "cannot read config %s", path)
	}

	return Parse(data)
}

// Parse decodes and validates raw YAML configuration.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoadFailed, "cannot parse config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SessionSettings converts the config into session settings.
func (c *Config) SessionSettings() session.Settings {
	return session.Settings{
		Host:              c.Gateway.Host,
		Port:              c.Gateway.Port,
		ClientID:          c.Gateway.ClientID,
		RetryInterval:     time.Duration(c.Session.RetryIntervalMs) * time.Millisecond,
		WaitTimeout:       time.Duration(c.Session.WaitTimeoutMs) * time.Millisecond,
		KeepaliveInterval: time.Duration(c.Session.KeepaliveIntervalMs) * time.Millisecond,
		RefreshInterval:   time.Duration(c.Session.RefreshIntervalMs) * time.Millisecond,
		Verbose:           c.Session.Verbose,
		Stop:              c.Session.Stop,
	}
}

// Schema returns the JSON schema for the configuration file.
func Schema() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(&Config{})

	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigSchemaFailed, "cannot marshal config schema", err)
	}

	return string(schemaBytes), nil
}

var _ session.SettingsSource = (*FileSource)(nil)

// FileSource re-reads the config file on every Load, feeding the session
// monitor's periodic refresh.
type FileSource struct {
	path string
}

// NewFileSource creates a settings source over the config file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load re-reads the file and converts it to session settings.
func (f *FileSource) Load() (session.Settings, error) {
	config, err := Load(f.path)
	if err != nil {
		return session.Settings{}, err
	}

	return config.SessionSettings(), nil
}
