package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sandevgo/asisten/pkg/log"
)

const LineWebhookPath = "/line/webhook"

// Routes lists what the server mounts. Nil fields are left out.
type Routes struct {
	LineWebhook http.Handler
	Metrics     prometheus.Gatherer
}

// Server hosts the LINE webhook, health check and metrics.
type Server struct {
	srv *http.Server
}

func NewServer(ctx context.Context, addr string, routes Routes) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(ctx, routes),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewRouter builds the handler tree. Requests inherit the logger of ctx.
func NewRouter(ctx context.Context, routes Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		logger := log.FromCtx(ctx)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(logger.WithContext(req.Context())))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})

	if routes.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(routes.Metrics, promhttp.HandlerOpts{}))
	}
	if routes.LineWebhook != nil {
		r.Method(http.MethodPost, LineWebhookPath, routes.LineWebhook)
	}

	return r
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.srv.Addr).Msg("starting http server")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
