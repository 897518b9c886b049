package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnrecognizedValue is matched by every *ValueError.
var ErrUnrecognizedValue = errors.New("unrecognized value")

// ValueError reports a token that does not name any member of a tagged variant.
type ValueError struct {
	Field    string
	Value    string
	Expected []string
}

// Error lists the accepted values.
func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: unrecognized value %q, expected one of: %s",
		e.Field, e.Value, strings.Join(e.Expected, ", "))
}

// Unwrap lets errors.Is match ErrUnrecognizedValue.
func (e *ValueError) Unwrap() error { return ErrUnrecognizedValue }

// Level is the minimum severity of an entry written to the application log.
type Level int

// Levels, from least to most verbose.
const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var levelNames = [...]string{
	LevelError: "error",
	LevelWarn:  "warn",
	LevelInfo:  "info",
	LevelDebug: "debug",
	LevelTrace: "trace",
}

// ParseLevel matches s against the level names ignoring case.
func ParseLevel(s string) (Level, error) {
	for l, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(l), nil
		}
	}
	return 0, &ValueError{Field: "level", Value: s, Expected: cloneNames(levelNames[:])}
}

// String returns the lowercase level name.
func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// MarshalText encodes l as its name.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText decodes a level name via ParseLevel.
func (l *Level) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// SyslogProtocol selects the wire format of syslog messages.
type SyslogProtocol int

const (
	// Rfc3164 is the legacy BSD syslog format.
	Rfc3164 SyslogProtocol = iota
	// Rfc5424 is the structured syslog format.
	Rfc5424
)

var protocolNames = [...]string{
	Rfc3164: "rfc3164",
	Rfc5424: "rfc5424",
}

// ParseSyslogProtocol accepts "rfc3164" and "rfc5424" in any letter case.
func ParseSyslogProtocol(s string) (SyslogProtocol, error) {
	for p, name := range protocolNames {
		if strings.EqualFold(s, name) {
			return SyslogProtocol(p), nil
		}
	}
	return 0, &ValueError{Field: "protocol", Value: s, Expected: cloneNames(protocolNames[:])}
}

// String returns the lowercase protocol name.
func (p SyslogProtocol) String() string {
	if p < 0 || int(p) >= len(protocolNames) {
		return fmt.Sprintf("SyslogProtocol(%d)", int(p))
	}
	return protocolNames[p]
}

// MarshalText encodes p as its name.
func (p SyslogProtocol) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText decodes a protocol name via ParseSyslogProtocol.
func (p *SyslogProtocol) UnmarshalText(b []byte) error {
	v, err := ParseSyslogProtocol(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// SyslogFacility is the syslog facility log entries are tagged with.
type SyslogFacility int

// Facilities, in the order of their syslog codes.
const (
	FacilityKern SyslogFacility = iota
	FacilityUser
	FacilityMail
	FacilityDaemon
	FacilityAuth
	FacilitySyslog
	FacilityLpr
	FacilityNews
	FacilityUucp
	FacilityCron
	FacilityAuthPriv
	FacilityFtp
	FacilityLocal0
	FacilityLocal1
	FacilityLocal2
	FacilityLocal3
	FacilityLocal4
	FacilityLocal5
	FacilityLocal6
	FacilityLocal7
)

var facilityNames = [...]string{
	FacilityKern:     "kern",
	FacilityUser:     "user",
	FacilityMail:     "mail",
	FacilityDaemon:   "daemon",
	FacilityAuth:     "auth",
	FacilitySyslog:   "syslog",
	FacilityLpr:      "lpr",
	FacilityNews:     "news",
	FacilityUucp:     "uucp",
	FacilityCron:     "cron",
	FacilityAuthPriv: "authpriv",
	FacilityFtp:      "ftp",
	FacilityLocal0:   "local0",
	FacilityLocal1:   "local1",
	FacilityLocal2:   "local2",
	FacilityLocal3:   "local3",
	FacilityLocal4:   "local4",
	FacilityLocal5:   "local5",
	FacilityLocal6:   "local6",
	FacilityLocal7:   "local7",
}

// SyslogFacilities returns every facility in declaration order.
func SyslogFacilities() []SyslogFacility {
	out := make([]SyslogFacility, len(facilityNames))
	for i := range facilityNames {
		out[i] = SyslogFacility(i)
	}
	return out
}

// ParseSyslogFacility matches s exactly against the lowercase facility names.
// Unlike ParseSyslogProtocol the match is case-sensitive: "LOCAL7" is rejected.
func ParseSyslogFacility(s string) (SyslogFacility, error) {
	for f, name := range facilityNames {
		if s == name {
			return SyslogFacility(f), nil
		}
	}
	return 0, &ValueError{Field: "facility", Value: s, Expected: cloneNames(facilityNames[:])}
}

// String returns the facility name.
func (f SyslogFacility) String() string {
	if f < 0 || int(f) >= len(facilityNames) {
		return fmt.Sprintf("SyslogFacility(%d)", int(f))
	}
	return facilityNames[f]
}

// MarshalText encodes f as its name.
func (f SyslogFacility) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText decodes a facility name via ParseSyslogFacility.
func (f *SyslogFacility) UnmarshalText(b []byte) error {
	v, err := ParseSyslogFacility(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func cloneNames(names []string) []string {
	return append([]string(nil), names...)
}
