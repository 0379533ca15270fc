package auth

import "context"

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

// Checker reports whether a session token belongs to a live login.
type Checker interface {
	IsLogged(ctx context.Context, token string) (bool, error)
}
