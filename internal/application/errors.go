package application

import "errors"

var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrInvalidTransition = errors.New("invalid view transition")
	ErrForbidden         = errors.New("admin role required")
	ErrSaveNotFound      = errors.New("no failed save with that reference")
)
