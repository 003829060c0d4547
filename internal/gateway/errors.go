// Package gateway defines the error surface shared between the persistence
// boundary and the domain layer. The Gateway interface itself lives with its
// consumer in the project package; implementations translate backend errors
// to these sentinels so the domain can classify failures with errors.Is.
package gateway

import "errors"

var (
	// ErrNotFound is returned when a requested document doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when the storage backend cannot be
	// reached or a durable write fails. The domain rolls optimistic state
	// back when it sees this.
	ErrUnavailable = errors.New("storage unavailable")
)
