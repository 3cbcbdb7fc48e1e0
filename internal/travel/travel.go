// Package travel is the data-access layer for the travel domain. Every
// function takes the active Store and speaks the shared SQL subset, so it
// behaves identically over the embedded engine and the object store.
package travel

import "errors"

var (
	// ErrEmailTaken is returned when registering with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrBuddyLinkExists is returned when a buddy request already exists
	// between the two users, in either direction.
	ErrBuddyLinkExists = errors.New("buddy request already exists between these users")
)
