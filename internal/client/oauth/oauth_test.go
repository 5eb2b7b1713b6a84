package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	out := make(chan Result, 1)
	h := Handler(out)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, CallbackPath, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, CallbackPath+"?firebase_token=fb-1&referral_code=REF", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Result{FirebaseToken: "fb-1", ReferralCode: "REF"}, <-out)
}

func TestHandler_SecondCallbackRejected(t *testing.T) {
	out := make(chan Result, 1)
	h := Handler(out)

	for _, want := range []int{http.StatusOK, http.StatusConflict} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, CallbackPath+"?firebase_token=x", nil))
		assert.Equal(t, want, rec.Code)
	}
}

func TestReceiver_Wait(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r := NewReceiver("", nil)
	res, err := r.Wait(ctx, func(url string) {
		go func() {
			resp, err := http.Get(url + "?firebase_token=fb-2")
			if err == nil {
				_ = resp.Body.Close()
			}
		}()
	})
	require.NoError(t, err)
	assert.Equal(t, "fb-2", res.FirebaseToken)
}

func TestReceiver_WaitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReceiver("", nil).Wait(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
