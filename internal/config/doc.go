// Package config provides configuration management for the another-mq broker.
//
// The package uses a Provider interface to abstract configuration loading, with the
// primary implementation reading a TOML file through the filesys.ReadFS seam.
//
// # Configuration Structure
//
// Configuration is structured as follows:
//
//	[log]
//	level = "info"                    # error, warn, info, debug or trace
//	file = "/var/log/another-mq.log"  # optional logfile
//
//	[log.syslog]                      # optional syslog sink
//	host = "10.0.0.5"                 # omitted: local syslog daemon
//	port = 514
//	protocol = "rfc3164"              # rfc3164 or rfc5424, any case
//	facility = "user"                 # kern ... local7, lowercase only
//	process = "another-mq"
//
//	[network]
//	hostname = "0.0.0.0"
//	port = 5672
//
//	[queue]
//
// # Location of the configuration file
//
// ResolvePath computes the default location from an Environment:
//
//	Windows     %APPDATA%\another-mq\another-mq.toml
//	macOS       $(brew --prefix)/etc/another-mq/another-mq.toml
//	Linux/Unix  $ANOTHERMQ_HOME/etc/another-mq/another-mq.toml
//
// ANOTHERMQ_HOME is empty by default. On macOS, when brew is not installed,
// the Linux/Unix location is used. APPDATA must be defined on Windows.
//
// # Basic Usage
//
// Load configuration from the default location:
//
//	cfg, err := config.FromConfigFile()
//	if err != nil {
//		log.Fatal(err) // APPDATA is not defined
//	}
//
// Load configuration from a specific path:
//
//	cfg := config.FromFile("/etc/another-mq/another-mq.toml")
//
// # Defaults
//
// Every omitted field takes its default, at every nesting level:
//   - log.level: info
//   - log.file, log.syslog: absent
//   - log.syslog.protocol: rfc3164
//   - log.syslog.facility: user
//   - log.syslog.process: ""
//   - network.hostname: 0.0.0.0
//   - network.port: 5672
//
// Unknown keys are ignored.
//
// # Error Handling
//
// Loading never fails. A missing, unreadable or invalid file results in
// Default(), and nothing is logged. Use Parse to get the reason a document
// was rejected:
//   - ErrInvalidConfig: the document could not be decoded or a value was rejected
//   - ErrUnrecognizedValue: a level, protocol or facility token is unknown (*ValueError)
//   - ErrEnvNotConfigured: APPDATA is not set (Windows only)
//
// # Thread Safety
//
// A loaded Config should be treated as immutable.
package config
