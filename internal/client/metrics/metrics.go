// Package metrics records client-side request metrics and optionally
// exposes them for scraping.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dailyhustle/hustle/internal/logging"
)

// Metrics owns its registry so several clients (and tests) never collide
// on the global one.
type Metrics struct {
	reg *prometheus.Registry

	Requests    *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	InFlight    prometheus.Gauge
	UnreadCount prometheus.Gauge
	Polls       *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hustle",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Backend requests by method, route and outcome.",
		}, []string{"method", "route", "code"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hustle",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hustle",
			Subsystem: "client",
			Name:      "requests_in_flight",
			Help:      "Backend requests currently outstanding.",
		}),
		UnreadCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hustle",
			Name:      "notifications_unread",
			Help:      "Last polled unread notification count.",
		}),
		Polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hustle",
			Name:      "unread_polls_total",
			Help:      "Unread-count polls by result.",
		}, []string{"result"}),
	}
	m.reg.MustRegister(m.Requests, m.Duration, m.InFlight, m.UnreadCount, m.Polls)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// ObserveRequest records one finished request. status 0 means the request
// never got a response.
func (m *Metrics) ObserveRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	route := RouteLabel(path)
	code := "network"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.Requests.WithLabelValues(method, route, code).Inc()
	m.Duration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObservePoll records an unread-count poll; count is ignored on error.
func (m *Metrics) ObservePoll(count int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.Polls.WithLabelValues("error").Inc()
		return
	}
	m.Polls.WithLabelValues("ok").Inc()
	m.UnreadCount.Set(float64(count))
}

var idSegment = regexp.MustCompile(`^([0-9a-fA-F]{24}|[0-9a-fA-F-]{36}|\d+)$`)

// RouteLabel strips the query and replaces id-like path segments with ":id"
// to keep label cardinality bounded.
func RouteLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if idSegment.MatchString(p) {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

// Router exposes /metrics and /health.
func (m *Metrics) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg}))
	return r
}

// Serve listens on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, log logging.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "metrics listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
