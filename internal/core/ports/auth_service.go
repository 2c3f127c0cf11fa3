package ports

import "context"

// AuthService implements the passwordless signup flow: Signup provisions the
// account idempotently and emails a confirmation code; IssueToken exchanges
// a valid code for a signed bearer token.
type AuthService interface {
	Signup(ctx context.Context, username, email string) error
	IssueToken(ctx context.Context, username, code string) (string, error)
}
