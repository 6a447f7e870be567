package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"meetgrid/internal/platform/logger"
)

// ServerOptions tunes the listener, zero values take the defaults below
type ServerOptions struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownGrace     time.Duration
}

// Server runs a handler until its context ends, then drains for ShutdownGrace
type Server struct {
	opt ServerOptions
	srv *stdhttp.Server
}

// NewServer prepares a server for h
func NewServer(h stdhttp.Handler, opt ServerOptions) *Server {
	if opt.Addr == "" {
		opt.Addr = ":4000"
	}
	if opt.ReadHeaderTimeout <= 0 {
		opt.ReadHeaderTimeout = 10 * time.Second
	}
	if opt.ShutdownGrace <= 0 {
		opt.ShutdownGrace = 15 * time.Second
	}
	return &Server{opt: opt, srv: &stdhttp.Server{
		Addr:              opt.Addr,
		Handler:           h,
		ReadHeaderTimeout: opt.ReadHeaderTimeout,
	}}
}

// Addr is the configured listen address
func (s *Server) Addr() string { return s.opt.Addr }

// Run listens on Addr and blocks until ctx is done or the listener fails
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opt.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run over an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("grace", s.opt.ShutdownGrace).Msg("http draining")
	sctx, cancel := context.WithTimeout(context.Background(), s.opt.ShutdownGrace)
	defer cancel()
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}
