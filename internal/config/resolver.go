package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
)

const (
	// HomeEnv prefixes the configuration path on Linux/Unix, and on macOS
	// when Homebrew is unavailable. It is empty by default.
	HomeEnv = "ANOTHERMQ_HOME"
	// AppDataEnv is the Windows per-user application data directory. It must be set.
	AppDataEnv = "APPDATA"

	appDir   = "another-mq"
	fileName = "another-mq.toml"
)

// PrefixQuery returns a package manager installation prefix.
type PrefixQuery func() (string, error)

// Environment is the state ResolvePath reads. It is passed explicitly so
// that every platform branch can be exercised on any host.
type Environment struct {
	// GOOS selects the platform branch, using runtime.GOOS names.
	GOOS string
	// Vars holds environment variables.
	Vars map[string]string
	// InstallPrefix is consulted on darwin only; nil counts as a failure.
	InstallPrefix PrefixQuery
}

type windowsVars struct {
	AppData string `env:"APPDATA,required"`
}

type unixVars struct {
	Home string `env:"ANOTHERMQ_HOME"`
}

// DetectEnvironment describes the running process.
func DetectEnvironment() Environment {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return Environment{
		GOOS:          runtime.GOOS,
		Vars:          vars,
		InstallPrefix: BrewPrefix,
	}
}

// ResolvePath returns the default configuration file location:
//
//	windows     %APPDATA%\another-mq\another-mq.toml
//	darwin      $(brew --prefix)/etc/another-mq/another-mq.toml
//	otherwise   $ANOTHERMQ_HOME/etc/another-mq/another-mq.toml
//
// On darwin a failing prefix query falls back to ANOTHERMQ_HOME. An unset
// ANOTHERMQ_HOME is treated as empty, while an unset APPDATA is an
// ErrEnvNotConfigured error. No file is accessed.
//
// The windows path is always joined with backslashes, whatever the host,
// while the other branches use forward slashes. This is intentional:
// the result depends only on e, never on the platform running the resolver.
func ResolvePath(e Environment) (string, error) {
	opts := env.Options{Environment: e.Vars}
	if opts.Environment == nil {
		opts.Environment = map[string]string{}
	}

	switch e.GOOS {
	case "windows":
		var v windowsVars
		if err := env.ParseWithOptions(&v, opts); err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrEnvNotConfigured, AppDataEnv, err)
		}
		return v.AppData + `\` + appDir + `\` + fileName, nil

	case "darwin":
		prefix, err := installPrefix(e.InstallPrefix)
		if err != nil {
			if prefix, err = homePrefix(opts); err != nil {
				return "", err
			}
		}
		return unixPath(prefix), nil

	default:
		prefix, err := homePrefix(opts)
		if err != nil {
			return "", err
		}
		return unixPath(prefix), nil
	}
}

// BrewPrefix runs `brew --prefix` and returns its output without the
// trailing line break. A missing binary, a non-zero exit or output that is
// not UTF-8 is an error.
func BrewPrefix() (string, error) {
	out, err := exec.Command("brew", "--prefix").Output()
	if err != nil {
		return "", fmt.Errorf("brew --prefix: %w", err)
	}
	if !utf8.Valid(out) {
		return "", errors.New("brew --prefix: output is not valid UTF-8")
	}
	return string(bytes.TrimRight(out, "\r\n")), nil
}

func installPrefix(q PrefixQuery) (string, error) {
	if q == nil {
		return "", errors.New("no install prefix query")
	}
	return q()
}

func homePrefix(opts env.Options) (string, error) {
	var v unixVars
	if err := env.ParseWithOptions(&v, opts); err != nil {
		return "", fmt.Errorf("reading %s: %w", HomeEnv, err)
	}
	return v.Home, nil
}

func unixPath(prefix string) string {
	return path.Join(prefix, "/etc", appDir, fileName)
}
