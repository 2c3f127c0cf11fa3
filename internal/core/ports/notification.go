package ports

import "context"

// NotificationChannel delivers out-of-band messages (confirmation codes).
// A returned error means delivery failed; the signup flow treats that as
// fatal because the code is the only way to complete registration.
type NotificationChannel interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
