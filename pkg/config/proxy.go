package config

import (
	"os"
	"strings"
)

// proxyFromEnv resolves the proxy to use for target from the environment.
// The scheme is taken by prefix match; a target that is empty or does not
// start with http:// or https:// means no proxy applies, reported by a
// false second return value. That sentinel is distinct from a proxy
// variable that is present but empty.
//
// Three spellings of the variable are checked in order and the first one
// present in the environment wins.
func proxyFromEnv(target string) (string, bool) {
	var scheme string
	switch {
	case strings.HasPrefix(target, "http://"):
		scheme = "http"
	case strings.HasPrefix(target, "https://"):
		scheme = "https"
	default:
		return "", false
	}

	names := []string{
		scheme + "_proxy",
		scheme + "_PROXY",
		strings.ToUpper(scheme) + "_PROXY",
	}
	for _, name := range names {
		if value, ok := os.LookupEnv(name); ok {
			return value, true
		}
	}
	return "", false
}
