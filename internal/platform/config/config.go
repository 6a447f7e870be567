// Package config reads prefixed environment variables. Missing required keys panic
// through the logger at startup, malformed optional ones fall back with a warning
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"meetgrid/internal/platform/logger"
)

// Conf is a prefixed view over the environment, New().Prefix("EVENTS_") and so on
type Conf struct{ prefix string }

// New returns an unprefixed view
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key is the full variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) get(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

// may parses key with parse, returning def when unset and warning when malformed
func may[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

// must parses key with parse and panics when unset or malformed
func must[T any](c Conf, key, kind string, parse func(string) (T, error)) T {
	s := c.get(key)
	if s == "" {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required env")
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.Key(key)).Str("value", s).Msgf("invalid %s", kind)
	}
	return v
}

func ident(s string) (string, error) { return s, nil }

// MustString panics when key is unset
func (c Conf) MustString(key string) string { return must(c, key, "string", ident) }

// MustInt panics when key is unset or not an int
func (c Conf) MustInt(key string) int { return must(c, key, "int", strconv.Atoi) }

// MustPort returns a listen address like ":4000" for a port in 1..65535
func (c Conf) MustPort(key string) string { return ":" + strconv.Itoa(must(c, key, "port", parsePort)) }

// MayPort is MustPort with a default port
func (c Conf) MayPort(key string, def int) string {
	return ":" + strconv.Itoa(may(c, key, def, "port", parsePort))
}

func parsePort(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if p < 1 || p > 65535 {
		return 0, strconv.ErrRange
	}
	return p, nil
}

// MayString returns def when key is unset
func (c Conf) MayString(key, def string) string { return may(c, key, def, "string", ident) }

// MayInt returns def when key is unset or not an int
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, "int", strconv.Atoi) }

// MayBool returns def when key is unset or not a bool
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, "bool", strconv.ParseBool) }

// MayDuration returns def when key is unset or not a duration such as 250ms or 2s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, "duration", time.ParseDuration)
}

// MayCSV splits a comma separated list and drops blanks
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.get(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
