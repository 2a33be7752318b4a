// Package repository implements the persistence layer on top of MySQL.
// This file defines sentinel errors shared across repositories. Handlers
// compare against them to pick HTTP statuses: missing resources become
// 404 and unique-key conflicts 409. Raw driver errors are never allowed
// to cross the handler boundary for these cases.
package repository

import (
	"errors"
	"strings"
)

// ErrUserNotFound is returned when a referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrProfileNotFound is returned when a user has no profile row. Profiles
// are created with the user, so this indicates either a deleted user or a
// corrupted database.
var ErrProfileNotFound = errors.New("profile not found")

// ErrListingNotFound is returned when a referenced listing does not exist.
var ErrListingNotFound = errors.New("listing not found")

// ErrMessageNotFound is returned when a referenced message does not exist.
var ErrMessageNotFound = errors.New("message not found")

// ErrUsernameExists and ErrEmailExists are returned on signup when the
// unique index on the respective column rejects the insert. The index is
// the source of truth; any pre-check in a handler is advisory only.
var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

// translateDuplicate maps a MySQL duplicate-entry error (code 1062) on the
// users table to the matching domain error. The index names carry the
// column, so the message tells us which constraint fired. Other errors
// pass through unchanged.
func translateDuplicate(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return err
	}
	if strings.Contains(msg, "email") {
		return ErrEmailExists
	}
	return ErrUsernameExists
}
