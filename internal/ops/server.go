package ops

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Server is the driver's observability HTTP endpoint: /healthz, /readyz,
// and /metrics. Plain HTTP — no TLS, compression, or HTTP/2/3 layers;
// this endpoint is meant for an internal scrape target, not public
// traffic.
type Server struct {
	logger  *slog.Logger
	http    *http.Server
	metrics *Metrics
}

// New builds the ops server bound to addr, reporting stats from d.
func New(addr string, d StatsProvider, logger *slog.Logger) *Server {
	s := &Server{logger: logger}
	s.metrics = NewMetrics(d)

	mux := http.NewServeMux()
	health := NewHealthHandler(d)
	mux.Handle("/healthz", health)
	mux.Handle("/readyz", health)
	mux.Handle("/", health)

	handler := s.metrics.Middleware("/metrics")(mux)
	handler = CoreMiddleware(logger)(handler)

	s.http = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) Start() error {
	s.logger.Info("ops endpoint starting", "address", s.http.Addr)
	return s.http.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("ops endpoint shutting down")
	return s.http.Shutdown(ctx)
}
