// Package oauth receives the identity token from the hosted sign-in page.
// The page redirects the browser to a loopback URL served here, carrying
// the token as a query parameter.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dailyhustle/hustle/internal/logging"
)

const (
	CallbackPath = "/callback"
	DefaultAddr  = "127.0.0.1:0"
)

var ErrMissingToken = errors.New("callback carried no firebase_token")

// Result is what the sign-in page hands back.
type Result struct {
	FirebaseToken string
	ReferralCode  string
}

type Receiver struct {
	addr string
	log  logging.Logger
}

func NewReceiver(addr string, log logging.Logger) *Receiver {
	if addr == "" {
		addr = DefaultAddr
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Receiver{addr: addr, log: log}
}

// Handler serves the callback and sends the first valid result on out.
func Handler(out chan<- Result) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.HandleFunc(CallbackPath, func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		res := Result{
			FirebaseToken: req.Form.Get("firebase_token"),
			ReferralCode:  req.Form.Get("referral_code"),
		}
		if res.FirebaseToken == "" {
			http.Error(w, ErrMissingToken.Error(), http.StatusBadRequest)
			return
		}
		select {
		case out <- res:
			_, _ = w.Write([]byte("Signed in. You can close this window and return to the terminal."))
		default:
			http.Error(w, "sign-in already completed", http.StatusConflict)
		}
	})
	return r
}

// Wait listens on the receiver's address, reports the callback URL through
// onReady and blocks until the token arrives or ctx is done.
func (r *Receiver) Wait(ctx context.Context, onReady func(callbackURL string)) (Result, error) {
	ln, err := net.Listen("tcp", r.addr)
	if err != nil {
		return Result{}, fmt.Errorf("listen %s: %w", r.addr, err)
	}

	results := make(chan Result, 1)
	srv := &http.Server{
		Handler:           Handler(results),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://%s%s", ln.Addr().String(), CallbackPath)
	r.log.Debug(ctx, "oauth callback listening", "url", url)
	if onReady != nil {
		onReady(url)
	}

	select {
	case res := <-results:
		return res, nil
	case err := <-errCh:
		return Result{}, err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
