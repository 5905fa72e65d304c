package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/CasinoHe/quanttrader-sub001/pkg/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

const validYAML = `
gateway:
  provider: sim
  host: localhost
  port: 7497
  client_id: 1
session:
  retry_interval_ms: 5000
  wait_timeout_ms: 200
  keepalive_interval_ms: 30000
  refresh_interval_ms: 60000
  verbose: true
account:
  starting_cash: 100000
`

func (s *ConfigTestSuite) TestParseValid() {
	config, err := Parse([]byte(validYAML))
	s.Require().NoError(err)

	s.Equal("sim", config.Gateway.Provider)
	s.Equal("localhost", config.Gateway.Host)
	s.Equal(7497, config.Gateway.Port)
	s.Equal(1, config.Gateway.ClientID)
	s.True(config.Session.Verbose)
	s.False(config.Session.Stop)
	s.InDelta(100000, config.Account.StartingCash, 1e-9)
}

func (s *ConfigTestSuite) TestParseRejectsUnknownProvider() {
	_, err := Parse([]byte(`
gateway:
  provider: carrier-pigeon
account:
  starting_cash: 100000
`))
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeConfigInvalid))
}

func (s *ConfigTestSuite) TestParseRejectsMissingCash() {
	_, err := Parse([]byte(`
gateway:
  provider: sim
`))
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeConfigInvalid))
}

func (s *ConfigTestSuite) TestParseRejectsBadYAML() {
	_, err := Parse([]byte("gateway: [unbalanced"))
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeConfigLoadFailed))
}

func (s *ConfigTestSuite) TestLoadMissingFile() {
	_, err := Load("/nonexistent/config.yaml")
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeConfigLoadFailed))
}

func (s *ConfigTestSuite) TestSessionSettings() {
	config, err := Parse([]byte(validYAML))
	s.Require().NoError(err)

	settings := config.SessionSettings()
	s.Equal("localhost", settings.Host)
	s.Equal(7497, settings.Port)
	s.Equal(5*time.Second, settings.RetryInterval)
	s.Equal(200*time.Millisecond, settings.WaitTimeout)
	s.Equal(30*time.Second, settings.KeepaliveInterval)
	s.Equal(time.Minute, settings.RefreshInterval)
	s.True(settings.Verbose)
}

func (s *ConfigTestSuite) TestFileSourceObservesEdits() {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(validYAML), 0o644))

	source := NewFileSource(path)

	settings, err := source.Load()
	s.Require().NoError(err)
	s.False(settings.Stop)

	edited := `
gateway:
  provider: sim
  host: localhost
  port: 7497
  client_id: 1
session:
  stop: true
account:
  starting_cash: 100000
`
	s.Require().NoError(os.WriteFile(path, []byte(edited), 0o644))

	settings, err = source.Load()
	s.Require().NoError(err)
	s.True(settings.Stop)
}

func (s *ConfigTestSuite) TestSchemaGenerates() {
	schema, err := Schema()
	s.Require().NoError(err)
	s.Contains(schema, "starting_cash")
	s.Contains(schema, "provider")
}
