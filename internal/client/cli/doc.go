// Package cli is the Daily Hustle terminal client.
//
// Every page of the web client is a cobra command here; `hustle shell`
// runs the same command tree in a read-eval-print loop. Commands go through
// the route guards before they touch the backend, and the shell refreshes
// app data before each command the way a route change does.
//
// State lives in the session store. Commands that only display backend
// data (transactions, notifications, referrals) read it through the
// gateway directly.
package cli
