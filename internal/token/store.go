// Package token holds the single bearer credential the client authenticates
// with, and tells interested parties when it changes.
package token

// Key is the storage key the credential lives under. Shared by every store
// implementation so one browser-profile analogue sees one credential.
const Key = "triply_token"

// AuthChannel is the change-notification channel name.
const AuthChannel = "triply:auth"

// Store owns the credential. Writes are last-writer-wins; Get never fails and
// observes either the old or the new value, never a partial one.
type Store interface {
	// Get returns the current credential, or false when logged out.
	Get() (string, bool)
	// Set persists the credential and notifies subscribers.
	Set(token string) error
	// Clear removes the credential and notifies subscribers. Idempotent.
	Clear() error
	// Subscribe registers a change listener and returns its cancel func.
	// Listeners in the mutating process are invoked synchronously.
	Subscribe(fn func()) (cancel func())
}
