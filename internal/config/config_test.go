package config_test

import (
	"io/fs"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lc/anothermq/internal/config"
	"github.com/lc/anothermq/internal/mocks"
)

type ConfigTestSuite struct {
	suite.Suite
	fs       mockFS
	provider config.Provider
}

type mockFS struct {
	files map[string]string
}

func (m mockFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; !ok {
		return nil, os.ErrNotExist
	}
	return nil, nil
}

func (m mockFS) ReadFile(path string) ([]byte, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(content), nil
}

func ptr[T any](v T) *T { return &v }

func (s *ConfigTestSuite) SetupTest() {
	s.fs = mockFS{
		files: make(map[string]string),
	}
	s.provider = config.NewWithPath(s.fs, "test/another-mq.toml")
}

func (s *ConfigTestSuite) TestDefault() {
	cfg := config.Default()

	s.Equal(uint16(5672), cfg.Network.Port)
	s.Equal(netip.IPv4Unspecified(), cfg.Network.Hostname)
	s.Equal("0.0.0.0:5672", cfg.Network.Address())
	s.Equal(config.LevelInfo, cfg.Log.Level)
	s.Nil(cfg.Log.File)
	s.Nil(cfg.Log.Syslog)
	s.Equal(config.Queue{}, cfg.Queue)
}

func (s *ConfigTestSuite) TestDefaultSyslog() {
	sl := config.DefaultSyslog()

	s.Nil(sl.Host)
	s.Nil(sl.Port)
	s.Equal(config.Rfc3164, sl.Protocol)
	s.Equal(config.FacilityUser, sl.Facility)
	s.Empty(sl.Process)
}

func (s *ConfigTestSuite) TestLoadDefaultWhenNoFile() {
	// When loading configuration with no file present
	cfg := s.provider.Load()

	// Then default configuration should be returned
	s.Equal(config.Default(), cfg)
}

func (s *ConfigTestSuite) TestLoadValidConfig() {
	// Given a config file setting every field
	s.fs.files["test/another-mq.toml"] = `
[log]
level = "debug"
file = "/var/log/another-mq.log"

[log.syslog]
host = "10.0.0.5"
port = 514
protocol = "RFC5424"
facility = "local3"
process = "another-mq"

[network]
hostname = "127.0.0.1"
port = 5673

[queue]
`
	// When loading configuration
	cfg := s.provider.Load()

	// Then custom values should be loaded
	s.Equal(&config.Config{
		Log: config.Log{
			Level: config.LevelDebug,
			File:  ptr("/var/log/another-mq.log"),
			Syslog: &config.Syslog{
				Host:     ptr(netip.MustParseAddr("10.0.0.5")),
				Port:     ptr(uint16(514)),
				Protocol: config.Rfc5424,
				Facility: config.FacilityLocal3,
				Process:  "another-mq",
			},
		},
		Network: config.Network{
			Hostname: netip.MustParseAddr("127.0.0.1"),
			Port:     5673,
		},
	}, cfg)
}

func (s *ConfigTestSuite) TestLoadPartialConfig() {
	// Given a config file that only sets the listener port
	s.fs.files["test/another-mq.toml"] = `
[network]
port = 15672
`
	// When loading configuration
	cfg := s.provider.Load()

	// Then every other field keeps its default
	want := config.Default()
	want.Network.Port = 15672
	s.Equal(want, cfg)
}

func (s *ConfigTestSuite) TestLoadFallsBackToDefault() {
	testCases := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed document",
			content: "[network\nport = 1",
		},
		{
			name:    "type mismatch",
			content: "[network]\nport = \"amqp\"",
		},
		{
			name:    "port out of range",
			content: "[network]\nport = 70000",
		},
		{
			name:    "unknown syslog facility",
			content: "[log.syslog]\nfacility = \"LOCAL7\"",
		},
		{
			name:    "unknown syslog protocol",
			content: "[log.syslog]\nprotocol = \"rfc5425\"",
		},
		{
			name:    "hostname is not an address",
			content: "[network]\nhostname = \"localhost\"",
		},
		{
			name:    "not text",
			content: "[log]\nfile = \"\xff\xfe\"",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.fs.files["test/another-mq.toml"] = tc.content
			s.Equal(config.Default(), s.provider.Load())
		})
	}
}

func (s *ConfigTestSuite) TestLoadReadError() {
	// Given a file system that refuses to read the file
	mfs := new(mocks.MockFS)
	mfs.On("ReadFile", "/etc/another-mq/another-mq.toml").Return(nil, fs.ErrPermission)
	provider := config.NewWithPath(mfs, "/etc/another-mq/another-mq.toml")

	// When loading configuration
	cfg := provider.Load()

	// Then defaults are used and the error is not surfaced
	s.Equal(config.Default(), cfg)
	mfs.AssertExpectations(s.T())
}

func (s *ConfigTestSuite) TestPath() {
	s.Equal("test/another-mq.toml", s.provider.Path())
}

func (s *ConfigTestSuite) TestFromFile() {
	dir := s.T().TempDir()
	path := filepath.Join(dir, "another-mq.toml")
	s.Require().NoError(os.WriteFile(path, []byte("[log]\nlevel = \"warn\"\n"), 0o644))

	cfg := config.FromFile(path)
	s.Equal(config.LevelWarn, cfg.Log.Level)
	s.Equal(config.DefaultListenerPort, cfg.Network.Port)

	s.Equal(config.Default(), config.FromFile(filepath.Join(dir, "missing.toml")))
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
