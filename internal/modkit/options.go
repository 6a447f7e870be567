package modkit

import "net/http"

// Option configures a module at construction
type Option func(*buildCfg)

type buildCfg struct {
	name   string
	prefix string
	mw     []func(http.Handler) http.Handler
	ports  any
}

// WithName overrides the module name used in logs and the registry
func WithName(name string) Option { return func(c *buildCfg) { c.name = name } }

// WithPrefix overrides the mount path
func WithPrefix(prefix string) Option { return func(c *buildCfg) { c.prefix = prefix } }

// WithMiddlewares appends middleware applied only under the module prefix
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithPorts hands the module a port set owned by another module
func WithPorts(p any) Option { return func(c *buildCfg) { c.ports = p } }
