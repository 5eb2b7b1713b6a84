// Package common contains shared constants and sentinel errors used across
// Daily Hustle client components.
package common

// AuthorizationHeaderName carries the bearer credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName correlates a client request with backend logs.
const RequestIDHeaderName = "X-Request-ID"

// Persisted client-state keys. Logout must remove every one of them.
const (
	KeyUserToken         = "userToken"
	KeyUserLoggedIn      = "userLoggedIn"
	KeyCachedUser        = "dh_user"
	KeyCachedTasks       = "dh_tasks"
	KeyTasksActiveTab    = "tasksActiveTab"
	KeySettingsActiveTab = "settingsActiveTab"
)

// SessionKeys lists every key derived from an authenticated session.
var SessionKeys = []string{
	KeyUserToken,
	KeyUserLoggedIn,
	KeyCachedUser,
	KeyCachedTasks,
	KeyTasksActiveTab,
	KeySettingsActiveTab,
}

// DefaultCurrency is used when the wallet endpoint does not report one.
const DefaultCurrency = "NGN"
