// Package guard decides whether a view may be shown for the current
// session, or where to send the user instead.
package guard

import (
	"context"
	"errors"

	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/common"
	"github.com/dailyhustle/hustle/internal/logging"
)

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectOnboarding
	RedirectDashboard
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "login"
	case RedirectOnboarding:
		return "onboarding"
	case RedirectDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// Access is what a route requires of the session.
type Access int

const (
	// Public routes are always shown.
	Public Access = iota
	// GuestOnly routes (login, sign-up) send a logged-in user to the dashboard.
	GuestOnly
	// LoggedIn routes need a session but not a complete profile.
	LoggedIn
	// Onboarded routes need a session and a complete profile.
	Onboarded
)

type Route struct {
	Name   string
	Access Access
}

var (
	Landing    = Route{Name: "landing", Access: GuestOnly}
	Login      = Route{Name: "login", Access: GuestOnly}
	Signup     = Route{Name: "signup", Access: GuestOnly}
	Onboarding = Route{Name: "onboarding", Access: LoggedIn}
	KYC        = Route{Name: "kyc", Access: LoggedIn}
	Dashboard  = Route{Name: "dashboard", Access: Onboarded}
)

// Session is the part of the store a guard reads.
type Session interface {
	UserLoggedIn() bool
	UserData() models.UserProfile
	RefetchUserData(ctx context.Context) error
}

type Guard struct {
	session Session
	log     logging.Logger
}

func New(s Session, log logging.Logger) *Guard {
	if log == nil {
		log = logging.Discard()
	}
	return &Guard{session: s, log: log}
}

// RequireAuth sends anonymous users to login.
func (g *Guard) RequireAuth() Decision {
	if !g.session.UserLoggedIn() {
		return RedirectLogin
	}
	return Allow
}

// RequireOnboarded re-reads the profile and sends users with an incomplete
// one to onboarding. onLoading runs before the request is made; the
// decision is only returned once it has completed.
func (g *Guard) RequireOnboarded(ctx context.Context, onLoading func()) Decision {
	if onLoading != nil {
		onLoading()
	}
	if !g.session.UserLoggedIn() {
		return RedirectLogin
	}

	if err := g.session.RefetchUserData(ctx); err != nil {
		// a rejected token has already ended the session
		if errors.Is(err, common.ErrNotLoggedIn) || !g.session.UserLoggedIn() {
			return RedirectLogin
		}
		g.log.Warn(ctx, "verify profile, using cached copy", "error", err)
	}
	if models.NeedsOnboarding(g.session.UserData()) {
		return RedirectOnboarding
	}
	return Allow
}

// Evaluate runs the guards route needs, in order.
func (g *Guard) Evaluate(ctx context.Context, route Route, onLoading func()) Decision {
	switch route.Access {
	case GuestOnly:
		if g.session.UserLoggedIn() {
			return RedirectDashboard
		}
		return Allow
	case LoggedIn:
		return g.RequireAuth()
	case Onboarded:
		if d := g.RequireAuth(); d != Allow {
			return d
		}
		return g.RequireOnboarded(ctx, onLoading)
	default:
		return Allow
	}
}
