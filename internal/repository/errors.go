// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios.  For
// example, ErrUserNotFound lets the login handler answer 400 instead of
// 500 when an email is unknown.
package repository

import "errors"

// ErrUserNotFound is returned by UserRepo.GetByEmail when no user has the
// given email.  Handlers should translate this into a client error.
var ErrUserNotFound = errors.New("user not found")

// ErrNoParent is returned by the parent-scoped operations of a Table whose
// TableSpec has no Parent column.
var ErrNoParent = errors.New("table has no parent column")
