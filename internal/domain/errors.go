package domain

import "github.com/cockroachdb/errors"

// ErrNotFound is returned by key-value backends when a key was never written
// or has been deleted. The store never surfaces it: lookups return (T, bool).
// Handlers map it to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation marks a request rejected at the HTTP boundary because a
// required field is empty or malformed. The store itself performs no
// validation. Handlers map it to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidCredentials is returned by the auth gate for both an unknown
// username and a wrong password so callers cannot tell the two apart.
// Handlers map it to HTTP 401.
var ErrInvalidCredentials = errors.New("invalid credentials")

// InvalidCredentialsMessage is the user-facing text exposed after a failed login.
const InvalidCredentialsMessage = "Invalid username or password"

// ErrUnreadable is returned by the persistence adapter when a stored value is
// malformed, carries a schema version newer than this build understands, or
// fails to migrate. Callers treat it as absence.
var ErrUnreadable = errors.New("unreadable stored value")
