package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/colonysim-go/internal/application/common"
)

// Server exposes the global registry over HTTP
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	errs       chan error
}

// NewServer builds a metrics server for addr, serving the registry at path
func NewServer(addr, path string) (*Server, error) {
	if Registry == nil {
		return nil, errors.New("metrics registry not initialized")
	}

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		errs: make(chan error, 1),
	}, nil
}

// Start binds the configured address and serves in the background
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.Serve(ctx, listener)
	return nil
}

// Serve accepts scrapes on listener in the background. A serve failure other
// than a shutdown is logged and delivered on Errors.
func (s *Server) Serve(ctx context.Context, listener net.Listener) {
	s.listener = listener
	logger := common.LoggerFromContext(ctx)

	go func() {
		err := s.httpServer.Serve(listener)
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		logger.Log("ERROR", fmt.Sprintf("[Metrics] Server on %s stopped: %v", listener.Addr(), err), map[string]interface{}{
			"address": listener.Addr().String(),
			"error":   err.Error(),
		})
		s.errs <- fmt.Errorf("metrics server on %s failed: %w", listener.Addr(), err)
	}()
}

// Errors delivers at most one unexpected serve failure
func (s *Server) Errors() <-chan error {
	return s.errs
}

// Addr returns the bound address, useful when started on port 0
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.httpServer.Addr
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting scrapes and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
