// Package config provides configuration loading for the another-mq broker.
// It locates the platform configuration file, parses it into a typed tree,
// fills every omitted field with its default and validates syslog settings.
package config

import (
	"errors"
	"fmt"
	"net/netip"

	"github.com/lc/anothermq/internal/filesys"
)

var (
	// ErrInvalidConfig is returned by Parse when the document is malformed
	// or one of its values is rejected.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrEnvNotConfigured is returned when a variable the platform requires
	// for locating the configuration file is not set.
	ErrEnvNotConfigured = errors.New("environment not configured")
)

// Config holds the broker configuration.
type Config struct {
	Log     Log
	Network Network
	Queue   Queue
}

// Log holds logging configuration. Entries always go to standard output;
// File and Syslog add independent sinks and may both be set.
type Log struct {
	// Level is the minimum severity of an entry to be logged.
	Level Level
	// File is the path of the logfile, nil when no file sink is configured.
	File *string
	// Syslog is nil when no syslog sink is configured.
	Syslog *Syslog
}

// Syslog holds the syslog sink configuration.
type Syslog struct {
	// Host is the collector address, nil for the local syslog daemon.
	Host     *netip.Addr
	Port     *uint16
	Protocol SyslogProtocol
	Facility SyslogFacility
	// Process is the tag attached to every message.
	Process string
}

// Network holds listener configuration.
type Network struct {
	Hostname netip.Addr
	Port     uint16
}

// Address returns the listener address in host:port form.
func (n Network) Address() string {
	return netip.AddrPortFrom(n.Hostname, n.Port).String()
}

// Queue is reserved for queue settings.
type Queue struct{}

// Provider defines the interface for loading configuration.
type Provider interface {
	// Load never fails: a missing, unreadable or invalid file yields Default().
	Load() *Config
	// Path is the file Load reads.
	Path() string
}

// FSProvider implements Provider using a filesystem.
type FSProvider struct {
	fs   filesys.ReadFS
	path string
}

// Verify FSProvider implements Provider interface.
var _ Provider = (*FSProvider)(nil)

// New creates a provider reading the platform default configuration file.
// The only error is ErrEnvNotConfigured, see ResolvePath.
func New() (Provider, error) {
	path, err := ResolvePath(DetectEnvironment())
	if err != nil {
		return nil, err
	}
	return NewWithPath(filesys.OS(), path), nil
}

// NewWithPath creates a new provider with a specific config path.
func NewWithPath(fs filesys.ReadFS, path string) Provider {
	return &FSProvider{
		fs:   fs,
		path: path,
	}
}

// FromFile loads the configuration stored at path, or Default().
func FromFile(path string) *Config {
	return NewWithPath(filesys.OS(), path).Load()
}

// FromConfigFile loads the configuration from the platform default location.
func FromConfigFile() (*Config, error) {
	p, err := New()
	if err != nil {
		return nil, err
	}
	return p.Load(), nil
}

// Load reads and parses the configuration file. Errors are not reported:
// every failure produces the default configuration.
func (p *FSProvider) Load() *Config {
	cfg, err := p.loadAndParse()
	if err != nil {
		return Default()
	}
	return cfg
}

// Path returns the configuration file path.
func (p *FSProvider) Path() string { return p.path }

func (p *FSProvider) loadAndParse() (*Config, error) {
	data, err := p.fs.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}
