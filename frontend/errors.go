package frontend

import "errors"

// ErrAuthentication is returned when an email/password pair does not match
// any stored account. The caller's existing session is never touched on
// this failure.
var ErrAuthentication = errors.New("frontend: authentication failed")
