package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
	"github.com/afoninsb/api-yamdb/internal/core/ports"
)

// AuthService implements the passwordless signup and token exchange flow.
type AuthService struct {
	users  ports.UserRepository
	codes  *CodeIssuer
	tokens *TokenIssuer
	mail   ports.NotificationChannel
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codes *CodeIssuer, tokens *TokenIssuer, mail ports.NotificationChannel, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, codes: codes, tokens: tokens, mail: mail, logger: logger}
}

// Signup resolves the (username, email) pair to a user record, creating it
// when absent, and emails a confirmation code. Repeating the call with the
// same pair is idempotent and simply re-sends a code. Delivery failure fails
// the whole request: without the code the account is unusable.
func (s *AuthService) Signup(ctx context.Context, username, email string) error {
	if username == domain.ReservedUsername {
		return domain.ErrReservedUsername
	}

	user, created, err := s.users.GetOrCreate(ctx, username, email)
	if err != nil {
		return err
	}

	code := s.codes.Issue(user)
	body := fmt.Sprintf("%s - %s", user.Username, code)
	if err := s.mail.Send(ctx, user.Email, "confirmation_code", body); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("confirmation email delivery failed")
		return domain.ErrNotificationFailed
	}

	s.logger.Info().Str("username", username).Bool("created", created).Msg("confirmation code sent")
	return nil
}

// IssueToken exchanges a valid confirmation code for a signed bearer token.
// A successful exchange activates the account and bumps its code epoch, so
// the code that was just used no longer validates.
func (s *AuthService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if !s.codes.Validate(user, code) {
		s.logger.Warn().Str("username", username).Msg("confirmation code rejected")
		return "", domain.ErrInvalidCode
	}

	exchanged, err := s.users.MarkExchanged(ctx, user.ID)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Mint(exchanged)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", username).Msg("bearer token issued")
	return token, nil
}
