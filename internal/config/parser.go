package config

import (
	"errors"
	"fmt"
	"net/netip"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
)

var errNotText = errors.New("document is not valid UTF-8")

// document mirrors the file layout. Every field is a pointer so that an
// omitted key can be told apart from a zero value.
type document struct {
	Log     *logTable     `toml:"log" yaml:"log"`
	Network *networkTable `toml:"network" yaml:"network"`
	Queue   *queueTable   `toml:"queue" yaml:"queue"`
}

type logTable struct {
	Level  *string      `toml:"level,omitempty" yaml:"level,omitempty"`
	File   *string      `toml:"file,omitempty" yaml:"file,omitempty"`
	Syslog *syslogTable `toml:"syslog,omitempty" yaml:"syslog,omitempty"`
}

type syslogTable struct {
	Host     *string `toml:"host,omitempty" yaml:"host,omitempty"`
	Port     *uint16 `toml:"port,omitempty" yaml:"port,omitempty"`
	Protocol *string `toml:"protocol,omitempty" yaml:"protocol,omitempty"`
	Facility *string `toml:"facility,omitempty" yaml:"facility,omitempty"`
	Process  *string `toml:"process,omitempty" yaml:"process,omitempty"`
}

type networkTable struct {
	Hostname *string `toml:"hostname,omitempty" yaml:"hostname,omitempty"`
	Port     *uint16 `toml:"port,omitempty" yaml:"port,omitempty"`
}

type queueTable struct{}

// Parse decodes a TOML document into a Config. Omitted fields take their
// defaults and unknown keys are ignored. The returned error wraps
// ErrInvalidConfig; when several values are rejected they are combined and
// can be listed with multierr.Errors.
func Parse(data []byte) (*Config, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errNotText)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decoding config file: %w", ErrInvalidConfig, err)
	}
	return doc.normalize()
}

func (d *document) normalize() (*Config, error) {
	cfg := Default()
	var errs error

	if d.Log != nil {
		l, err := d.Log.normalize()
		errs = multierr.Append(errs, err)
		cfg.Log = l
	}
	if d.Network != nil {
		n, err := d.Network.normalize()
		errs = multierr.Append(errs, err)
		cfg.Network = n
	}

	if errs != nil {
		return nil, errs
	}
	return cfg, nil
}

func (t *logTable) normalize() (Log, error) {
	l := defaultLog()
	var errs error

	if t.Level != nil {
		lvl, err := ParseLevel(*t.Level)
		if err != nil {
			errs = multierr.Append(errs, fieldError("log", err))
		}
		l.Level = lvl
	}
	if t.File != nil {
		file := *t.File
		l.File = &file
	}
	if t.Syslog != nil {
		s, err := t.Syslog.normalize()
		errs = multierr.Append(errs, err)
		l.Syslog = &s
	}
	return l, errs
}

func (t *syslogTable) normalize() (Syslog, error) {
	s := DefaultSyslog()
	var errs error

	if t.Host != nil {
		host, err := netip.ParseAddr(*t.Host)
		if err != nil {
			errs = multierr.Append(errs, fieldError("log.syslog", fmt.Errorf("host: %w", err)))
		} else {
			s.Host = &host
		}
	}
	if t.Port != nil {
		port := *t.Port
		s.Port = &port
	}
	if t.Protocol != nil {
		p, err := ParseSyslogProtocol(*t.Protocol)
		if err != nil {
			errs = multierr.Append(errs, fieldError("log.syslog", err))
		}
		s.Protocol = p
	}
	if t.Facility != nil {
		f, err := ParseSyslogFacility(*t.Facility)
		if err != nil {
			errs = multierr.Append(errs, fieldError("log.syslog", err))
		}
		s.Facility = f
	}
	if t.Process != nil {
		s.Process = *t.Process
	}
	return s, errs
}

func (t *networkTable) normalize() (Network, error) {
	n := defaultNetwork()

	if t.Hostname != nil {
		host, err := netip.ParseAddr(*t.Hostname)
		if err != nil {
			return n, fieldError("network", fmt.Errorf("hostname: %w", err))
		}
		n.Hostname = host
	}
	if t.Port != nil {
		n.Port = *t.Port
	}
	return n, nil
}

func fieldError(table string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, table, err)
}

// Marshal renders c as a TOML document that Parse reads back unchanged.
func Marshal(c *Config) ([]byte, error) {
	return toml.Marshal(c.document())
}

// MarshalYAML implements yaml.Marshaler using the same layout as the TOML file.
func (c Config) MarshalYAML() (any, error) {
	return c.document(), nil
}

func (c *Config) document() *document {
	level := c.Log.Level.String()
	hostname := c.Network.Hostname.String()
	port := c.Network.Port

	doc := &document{
		Log: &logTable{
			Level: &level,
			File:  c.Log.File,
		},
		Network: &networkTable{
			Hostname: &hostname,
			Port:     &port,
		},
		Queue: &queueTable{},
	}

	if s := c.Log.Syslog; s != nil {
		protocol := s.Protocol.String()
		facility := s.Facility.String()
		process := s.Process
		t := &syslogTable{
			Port:     s.Port,
			Protocol: &protocol,
			Facility: &facility,
			Process:  &process,
		}
		if s.Host != nil {
			host := s.Host.String()
			t.Host = &host
		}
		doc.Log.Syslog = t
	}
	return doc
}
