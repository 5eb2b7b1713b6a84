package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteLabel(t *testing.T) {
	tests := map[string]string{
		"/users/me":                                  "/users/me",
		"/tasks/65a1b2c3d4e5f60718293a4b":            "/tasks/:id",
		"/task-proof/users/65a1b2c3d4e5f60718293a4b": "/task-proof/users/:id",
		"/transactions/users?pageNo=1&limitNo=10":    "/transactions/users",
		"/users/me/bank-accounts/42/remove":          "/users/me/bank-accounts/:id/remove",
	}
	for in, want := range tests {
		assert.Equal(t, want, RouteLabel(in), in)
	}
}

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/tasks/123", 200, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/tasks/456", 200, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/users/me", 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/tasks/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/users/me", "network")))
}

func TestObservePoll(t *testing.T) {
	m := New()
	m.ObservePoll(7, nil)
	m.ObservePoll(99, errors.New("boom"))

	assert.Equal(t, 7.0, testutil.ToFloat64(m.UnreadCount))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Polls.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Polls.WithLabelValues("error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("GET", "/x", 200, time.Second)
	m.ObservePoll(1, nil)
}

func TestRouter_ServesMetrics(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodPost, "/task-proof", 201, time.Millisecond)

	ts := httptest.NewServer(m.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `hustle_client_requests_total{code="201",method="POST",route="/task-proof"} 1`))

	resp, err = http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
