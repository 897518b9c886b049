package config_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lc/anothermq/internal/config"
)

func TestParseSyslogProtocol(t *testing.T) {
	testCases := []struct {
		input    string
		expected config.SyslogProtocol
		wantErr  bool
	}{
		{input: "rfc3164", expected: config.Rfc3164},
		{input: "RFC3164", expected: config.Rfc3164},
		{input: "rfc5424", expected: config.Rfc5424},
		{input: "RFC5424", expected: config.Rfc5424},
		{input: "Rfc5424", expected: config.Rfc5424},
		{input: "rfc5324", wantErr: true},
		{input: "5424", wantErr: true},
		{input: " rfc3164", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := config.ParseSyslogProtocol(tc.input)
			if tc.wantErr {
				var verr *config.ValueError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "protocol", verr.Field)
				assert.Equal(t, tc.input, verr.Value)
				assert.Equal(t, []string{"rfc3164", "rfc5424"}, verr.Expected)
				assert.ErrorIs(t, err, config.ErrUnrecognizedValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseSyslogFacility(t *testing.T) {
	got, err := config.ParseSyslogFacility("local7")
	require.NoError(t, err)
	assert.Equal(t, config.FacilityLocal7, got)

	got, err = config.ParseSyslogFacility("authpriv")
	require.NoError(t, err)
	assert.Equal(t, config.FacilityAuthPriv, got)

	// Facilities are matched case-sensitively, unlike protocols.
	for _, input := range []string{"LOCAL7", "Local7", "KERN", "auth-priv", "local8", ""} {
		t.Run(input, func(t *testing.T) {
			_, err := config.ParseSyslogFacility(input)
			var verr *config.ValueError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "facility", verr.Field)
			assert.Equal(t, input, verr.Value)
			assert.Len(t, verr.Expected, 20)
		})
	}
}

func TestSyslogFacilitiesAreExhaustive(t *testing.T) {
	facilities := config.SyslogFacilities()
	require.Len(t, facilities, 20)
	assert.Equal(t, config.FacilityKern, facilities[0])
	assert.Equal(t, config.FacilityLocal7, facilities[19])

	seen := make(map[string]bool)
	for _, f := range facilities {
		name := f.String()
		assert.False(t, seen[name], "duplicate facility name %q", name)
		seen[name] = true

		parsed, err := config.ParseSyslogFacility(name)
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected config.Level
	}{
		{input: "error", expected: config.LevelError},
		{input: "WARN", expected: config.LevelWarn},
		{input: "Info", expected: config.LevelInfo},
		{input: "debug", expected: config.LevelDebug},
		{input: "trace", expected: config.LevelTrace},
	}
	for _, tc := range testCases {
		got, err := config.ParseLevel(tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, got)
	}

	_, err := config.ParseLevel("warning")
	assert.True(t, errors.Is(err, config.ErrUnrecognizedValue))
}

func TestVariantText(t *testing.T) {
	var p config.SyslogProtocol
	require.NoError(t, p.UnmarshalText([]byte("RFC5424")))
	assert.Equal(t, config.Rfc5424, p)
	text, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "rfc5424", string(text))

	var f config.SyslogFacility
	require.NoError(t, f.UnmarshalText([]byte("ftp")))
	assert.Equal(t, config.FacilityFtp, f)
	assert.Error(t, f.UnmarshalText([]byte("FTP")))
	assert.Equal(t, config.FacilityFtp, f, "failed unmarshal must not modify the value")

	var l config.Level
	require.NoError(t, l.UnmarshalText([]byte("debug")))
	assert.Equal(t, config.LevelDebug, l)

	assert.Equal(t, "SyslogFacility(42)", config.SyslogFacility(42).String())
}

func TestVariantOrderAndNames(t *testing.T) {
	levels := []config.Level{config.LevelError, config.LevelWarn, config.LevelInfo, config.LevelDebug, config.LevelTrace}
	for i := 1; i < len(levels); i++ {
		assert.Less(t, levels[i-1], levels[i], "%s must be less verbose than %s", levels[i-1], levels[i])
	}

	testCases := []struct {
		v        interface{ MarshalText() ([]byte, error) }
		expected string
	}{
		{config.LevelTrace, "trace"},
		{config.Rfc3164, "rfc3164"},
		{config.FacilityAuthPriv, "authpriv"},
		{config.FacilityLocal0, "local0"},
	}
	for _, tc := range testCases {
		text, err := tc.v.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, tc.expected, string(text))
		assert.Equal(t, tc.expected, tc.v.(fmt.Stringer).String())
	}

	assert.Equal(t, "Level(-1)", config.Level(-1).String())
	assert.Equal(t, "SyslogProtocol(2)", config.SyslogProtocol(2).String())
	assert.Equal(t, config.FacilityKern, config.SyslogFacilities()[0])
	assert.Equal(t, config.FacilityLocal7, config.SyslogFacilities()[19])
}

func TestValueErrorMessage(t *testing.T) {
	err := &config.ValueError{Field: "protocol", Value: "tcp", Expected: []string{"rfc3164", "rfc5424"}}
	assert.Equal(t, `protocol: unrecognized value "tcp", expected one of: rfc3164, rfc5424`, err.Error())
}
