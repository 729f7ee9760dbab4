// Package session coordinates what happens when the server says the session
// is no longer valid: the credential is cleared and the user is sent to the
// login entry point at most once, no matter how many in-flight requests fail
// together.
package session

import (
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/triply/triply-go/internal/token"
)

// LoginPath is the login entry point a dead session redirects to.
const LoginPath = "/login"

// Navigator is the host application's view of the current location. In a
// browser this is the window location; the CLI supplies its own.
type Navigator interface {
	// CurrentPath returns the current path including any query string.
	CurrentPath() string
	// Replace navigates to url without leaving a history entry.
	Replace(url string)
}

// IsAuthPath reports whether p is an authentication page, where unauthorized
// responses must not trigger a redirect.
func IsAuthPath(p string) bool {
	return strings.HasPrefix(p, "/login") || strings.HasPrefix(p, "/register")
}

// Guard performs the credential-clear and redirect side effect for
// unauthorized responses. The redirect-in-progress flag is local to this
// guard: each tab avoids loops independently.
type Guard struct {
	store       token.Store
	nav         Navigator
	redirecting atomic.Bool
}

// NewGuard wires a guard to the token store it clears and the navigator it
// redirects through.
func NewGuard(store token.Store, nav Navigator) *Guard {
	return &Guard{store: store, nav: nav}
}

// Location returns the current path from the navigator.
func (g *Guard) Location() string {
	return g.nav.CurrentPath()
}

// HandleUnauthorized clears the credential and, unless a redirect is already
// in progress or the user is on an authentication page, navigates to login
// carrying returnPath so the user comes back after re-authenticating.
func (g *Guard) HandleUnauthorized(returnPath string) {
	_ = g.store.Clear()

	if IsAuthPath(g.nav.CurrentPath()) {
		return
	}
	if !g.redirecting.CompareAndSwap(false, true) {
		return
	}
	g.nav.Replace(LoginPath + "?next=" + url.QueryEscape(returnPath))
}

// ResetIfAuthPage drops the redirect-in-progress flag once the user has
// landed on an authentication page, re-arming the guard for the next
// unauthorized episode.
func (g *Guard) ResetIfAuthPage() {
	if IsAuthPath(g.nav.CurrentPath()) {
		g.redirecting.Store(false)
	}
}
