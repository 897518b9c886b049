package config

import "net/netip"

const (
	// DefaultListenerPort is the standard AMQP port.
	DefaultListenerPort uint16 = 5672
	// DefaultLevel is the minimum severity logged when none is configured.
	DefaultLevel = LevelInfo
	// DefaultSyslogProtocol is used when a syslog table omits "protocol".
	DefaultSyslogProtocol = Rfc3164
	// DefaultSyslogFacility is used when a syslog table omits "facility".
	DefaultSyslogFacility = FacilityUser
)

// DefaultListenerHostname is the unspecified IPv4 address, so the listener
// binds every interface.
var DefaultListenerHostname = netip.IPv4Unspecified()

// Default returns the configuration used when no file could be loaded.
// Log entries go to standard output only.
func Default() *Config {
	return &Config{
		Log:     defaultLog(),
		Network: defaultNetwork(),
		Queue:   Queue{},
	}
}

// DefaultSyslog returns a syslog sink targeting the local daemon.
func DefaultSyslog() Syslog {
	return Syslog{
		Protocol: defaultProtocol(),
		Facility: defaultFacility(),
		Process:  defaultProcess(),
	}
}

func defaultLog() Log {
	return Log{Level: defaultLevel()}
}

func defaultNetwork() Network {
	return Network{
		Hostname: defaultHostname(),
		Port:     defaultPort(),
	}
}

func defaultLevel() Level             { return DefaultLevel }
func defaultHostname() netip.Addr     { return DefaultListenerHostname }
func defaultPort() uint16             { return DefaultListenerPort }
func defaultProtocol() SyslogProtocol { return DefaultSyslogProtocol }
func defaultFacility() SyslogFacility { return DefaultSyslogFacility }
func defaultProcess() string          { return "" }
