package log

import (
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"strings"

	"github.com/RackSec/srslog"
	"github.com/mitchellh/go-ps"
	"go.uber.org/zap/zapcore"

	"github.com/lc/anothermq/internal/config"
)

// DefaultSyslogPort is used when a remote syslog host has no port.
const DefaultSyslogPort uint16 = 514

// SyslogWriter is the part of *srslog.Writer the syslog sink uses.
type SyslogWriter interface {
	Crit(string) error
	Err(string) error
	Warning(string) error
	Info(string) error
	Debug(string) error
	Close() error
}

var _ SyslogWriter = (*srslog.Writer)(nil)

// Dialer connects to a syslog daemon. An empty network and raddr select
// the local daemon.
type Dialer func(network, raddr string, priority srslog.Priority, tag string, format srslog.Formatter) (SyslogWriter, error)

// DialSyslog is the Dialer backed by srslog.
func DialSyslog(network, raddr string, priority srslog.Priority, tag string, format srslog.Formatter) (SyslogWriter, error) {
	w, err := srslog.Dial(network, raddr, priority, tag)
	if err != nil {
		return nil, err
	}
	w.SetFormatter(format)
	return w, nil
}

// Facility translates a configured facility to its srslog value.
func Facility(f config.SyslogFacility) srslog.Priority {
	switch f {
	case config.FacilityKern:
		return srslog.LOG_KERN
	case config.FacilityUser:
		return srslog.LOG_USER
	case config.FacilityMail:
		return srslog.LOG_MAIL
	case config.FacilityDaemon:
		return srslog.LOG_DAEMON
	case config.FacilityAuth:
		return srslog.LOG_AUTH
	case config.FacilitySyslog:
		return srslog.LOG_SYSLOG
	case config.FacilityLpr:
		return srslog.LOG_LPR
	case config.FacilityNews:
		return srslog.LOG_NEWS
	case config.FacilityUucp:
		return srslog.LOG_UUCP
	case config.FacilityCron:
		return srslog.LOG_CRON
	case config.FacilityAuthPriv:
		return srslog.LOG_AUTHPRIV
	case config.FacilityFtp:
		return srslog.LOG_FTP
	case config.FacilityLocal0:
		return srslog.LOG_LOCAL0
	case config.FacilityLocal1:
		return srslog.LOG_LOCAL1
	case config.FacilityLocal2:
		return srslog.LOG_LOCAL2
	case config.FacilityLocal3:
		return srslog.LOG_LOCAL3
	case config.FacilityLocal4:
		return srslog.LOG_LOCAL4
	case config.FacilityLocal5:
		return srslog.LOG_LOCAL5
	case config.FacilityLocal6:
		return srslog.LOG_LOCAL6
	case config.FacilityLocal7:
		return srslog.LOG_LOCAL7
	}
	// Unreachable for facilities produced by config.ParseSyslogFacility.
	return srslog.LOG_USER
}

// Formatter returns the srslog message format for a protocol.
func Formatter(p config.SyslogProtocol) srslog.Formatter {
	if p == config.Rfc5424 {
		return srslog.RFC5424Formatter
	}
	return srslog.RFC3164Formatter
}

// SyslogTarget returns the network and address to dial. A nil host means
// the local daemon, in which case the port is ignored.
func SyslogTarget(s config.Syslog) (network, raddr string) {
	if s.Host == nil {
		return "", ""
	}
	port := DefaultSyslogPort
	if s.Port != nil {
		port = *s.Port
	}
	return "udp", netip.AddrPortFrom(*s.Host, port).String()
}

// syslogCore is a zapcore.Core writing each entry as one syslog message,
// with the severity taken from the entry level.
type syslogCore struct {
	zapcore.LevelEnabler
	enc zapcore.Encoder
	w   SyslogWriter
}

func newSyslogCore(s config.Syslog, level zapcore.LevelEnabler, dial Dialer) (*syslogCore, error) {
	tag := s.Process
	if tag == "" {
		tag = processName()
	}
	network, raddr := SyslogTarget(s)

	w, err := dial(network, raddr, Facility(s.Facility)|srslog.LOG_INFO, tag, Formatter(s.Protocol))
	if err != nil {
		return nil, fmt.Errorf("connecting to syslog %s: %w", describeTarget(network, raddr), err)
	}

	// syslog stamps the time, level and tag itself.
	encCfg := encoderConfig()
	encCfg.TimeKey = zapcore.OmitKey
	encCfg.LevelKey = zapcore.OmitKey
	return &syslogCore{
		LevelEnabler: level,
		enc:          zapcore.NewJSONEncoder(encCfg),
		w:            w,
	}, nil
}

func (c *syslogCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &syslogCore{
		LevelEnabler: c.LevelEnabler,
		enc:          c.enc.Clone(),
		w:            c.w,
	}
	for i := range fields {
		fields[i].AddTo(clone.enc)
	}
	return clone
}

func (c *syslogCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *syslogCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	msg := strings.TrimSuffix(buf.String(), "\n")
	buf.Free()

	switch {
	case ent.Level >= zapcore.DPanicLevel:
		return c.w.Crit(msg)
	case ent.Level == zapcore.ErrorLevel:
		return c.w.Err(msg)
	case ent.Level == zapcore.WarnLevel:
		return c.w.Warning(msg)
	case ent.Level == zapcore.InfoLevel:
		return c.w.Info(msg)
	default:
		return c.w.Debug(msg)
	}
}

func (c *syslogCore) Sync() error { return nil }

// processName is the executable name of the running process, used as the
// syslog tag when none is configured.
func processName() string {
	if p, err := ps.FindProcess(os.Getpid()); err == nil && p != nil && p.Executable() != "" {
		return p.Executable()
	}
	return filepath.Base(os.Args[0])
}

func describeTarget(network, raddr string) string {
	if network == "" {
		return "local daemon"
	}
	return network + "://" + raddr
}
