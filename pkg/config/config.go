// Package config handles loading, merging, and validation of the CLI
// configuration.
//
// The effective configuration for an invocation is built from four
// sources, lowest to highest precedence: built-in defaults (including the
// root-server URL when the local host is detected as one), the proxy
// resolved from the environment, the first section of the config file,
// and the command-line flags the user actually set.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Option keys, shared between command-line flags and config-file entries.
const (
	KeyConfFile      = "conffile"
	KeyURL           = "url"
	KeyToken         = "token"
	KeyCA            = "ca"
	KeySkipVerify    = "skip-verify"
	KeyProxy         = "proxy"
	KeyTimeout       = "timeout"
	KeyRaw           = "raw"
	KeyReason        = "reason"
	KeyCRName        = "cr-name"
	KeyCRDescription = "cr-description"
)

// defaultTimeout is in seconds, kept as a string so a config-file or flag
// value can override it before parsing.
const defaultTimeout = "5"

var (
	// ErrMissingURL is returned when no server URL is resolvable from any
	// configuration source.
	ErrMissingURL = errors.New("a server URL is needed, set one with --url or in the configuration file")

	// ErrMissingToken is returned when no API token is resolvable from any
	// configuration source.
	ErrMissingToken = errors.New("an API token is needed, set one with --token or in the configuration file")
)

// TLSVerify is the server-certificate verification setting: disabled,
// enabled against the system pool, or enabled against a specific CA
// bundle.
type TLSVerify struct {
	Enabled bool
	CAFile  string
}

// Effective is the merged configuration for a single invocation.
type Effective struct {
	URL           string
	Token         string
	Verify        TLSVerify
	Timeout       time.Duration
	Proxy         string
	HasProxy      bool
	Raw           bool
	Reason        string
	CRName        string
	CRDescription string
}

// ChangeInfo reports whether any change-request metadata is set.
func (e *Effective) ChangeInfo() bool {
	return e.Reason != "" || e.CRName != "" || e.CRDescription != ""
}

// DefaultConfFile returns the path consulted when --conffile is not given.
func DefaultConfFile() string {
	return filepath.Join(xdg.Home, ".rudder")
}

// Resolve builds the effective configuration from the given flag set.
// generic marks the `api <method> <url>` form, which always prints the
// raw response body.
//
// The merge is carried by a viper instance: defaults and the resolved
// proxy sit at the default level (a later SetDefault overrides an earlier
// one), the config-file section at the config level, and changed flags at
// the override level, which reproduces the documented precedence order.
func Resolve(flags *pflag.FlagSet, generic bool) (*Effective, error) {
	v := viper.New()

	v.SetDefault(KeyConfFile, DefaultConfFile())
	v.SetDefault(KeyTimeout, defaultTimeout)
	v.SetDefault(KeyRaw, false)
	v.SetDefault(KeySkipVerify, false)
	if isRootServer(markerFile) {
		v.SetDefault(KeyURL, rootServerURL)
	}

	// Flags the user left unset must not shadow lower-precedence values.
	args := changedFlags(flags)

	path := v.GetString(KeyConfFile)
	if p, ok := args[KeyConfFile].(string); ok {
		path = p
	}
	section, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	// The proxy target is the URL the call will go to: the flag value if
	// given, else the config-file one. Without either there is nothing to
	// proxy to and resolution is skipped.
	target := ""
	if u, ok := args[KeyURL].(string); ok {
		target = u
	} else if u, ok := section[KeyURL].(string); ok {
		target = u
	}
	if proxy, found := proxyFromEnv(target); found {
		v.SetDefault(KeyProxy, proxy)
	}

	if err := v.MergeConfigMap(section); err != nil {
		return nil, fmt.Errorf("failed to merge config file: %w", err)
	}
	for key, value := range args {
		v.Set(key, value)
	}
	if generic {
		v.Set(KeyRaw, true)
	}

	return interpret(v)
}

// changedFlags collects the flags the user actually set, dropping string
// flags set to an empty value.
func changedFlags(flags *pflag.FlagSet) map[string]any {
	args := make(map[string]any)
	flags.Visit(func(f *pflag.Flag) {
		if f.Value.Type() == "bool" {
			args[f.Name] = f.Value.String() == "true"
			return
		}
		if value := f.Value.String(); value != "" {
			args[f.Name] = value
		}
	})
	return args
}

// interpret validates the merged settings and converts them to their
// final types.
func interpret(v *viper.Viper) (*Effective, error) {
	if v.GetString(KeyURL) == "" {
		return nil, ErrMissingURL
	}
	if v.GetString(KeyToken) == "" {
		return nil, ErrMissingToken
	}

	seconds, err := strconv.ParseFloat(v.GetString(KeyTimeout), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout %q: %w", v.GetString(KeyTimeout), err)
	}

	eff := &Effective{
		URL:           v.GetString(KeyURL),
		Token:         v.GetString(KeyToken),
		Timeout:       time.Duration(seconds * float64(time.Second)),
		Proxy:         v.GetString(KeyProxy),
		HasProxy:      v.IsSet(KeyProxy),
		Raw:           v.GetBool(KeyRaw),
		Reason:        v.GetString(KeyReason),
		CRName:        v.GetString(KeyCRName),
		CRDescription: v.GetString(KeyCRDescription),
	}

	// Verification is on unless explicitly skipped; a configured CA bundle
	// narrows "verify" down to "verify against this file".
	eff.Verify = TLSVerify{Enabled: !v.GetBool(KeySkipVerify)}
	if eff.Verify.Enabled {
		eff.Verify.CAFile = v.GetString(KeyCA)
	}

	return eff, nil
}
