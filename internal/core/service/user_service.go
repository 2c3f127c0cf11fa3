package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
	"github.com/afoninsb/api-yamdb/internal/core/ports"
)

// UserService serves the /users/me surface and admin user management.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Profile returns the actor's own record.
func (s *UserService) Profile(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	if !domain.Authorize(actor, domain.ActionRead, domain.Resource{Kind: domain.KindProfile, OwnerID: actor.ID}) {
		return nil, domain.ErrForbidden
	}
	return s.users.FindByID(ctx, actor.ID)
}

// UpdateProfile applies a partial update to the actor's own record. The role
// field never reaches this method: self-service role changes are dropped at
// the transport boundary, mirroring the admin-only role mutation rule.
func (s *UserService) UpdateProfile(ctx context.Context, actor domain.Actor, patch ports.ProfilePatch) (*domain.User, error) {
	if !domain.Authorize(actor, domain.ActionUpdate, domain.Resource{Kind: domain.KindProfile, OwnerID: actor.ID}) {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	applyProfilePatch(user, patch)
	return s.users.Update(ctx, user)
}

func (s *UserService) List(ctx context.Context, actor domain.Actor, search string, page, limit int) ([]domain.User, int64, error) {
	if !domain.Authorize(actor, domain.ActionRead, domain.Resource{Kind: domain.KindAccount}) {
		return nil, 0, domain.ErrForbidden
	}
	return s.users.List(ctx, search, page, limit)
}

func (s *UserService) Create(ctx context.Context, actor domain.Actor, input ports.CreateUserInput) (*domain.User, error) {
	if !domain.Authorize(actor, domain.ActionCreate, domain.Resource{Kind: domain.KindAccount}) {
		return nil, domain.ErrForbidden
	}
	if input.Username == domain.ReservedUsername {
		return nil, domain.ErrReservedUsername
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrValidation
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("role", created.Role).Msg("user created by admin")
	return created, nil
}

func (s *UserService) Get(ctx context.Context, actor domain.Actor, username string) (*domain.User, error) {
	if !domain.Authorize(actor, domain.ActionRead, domain.Resource{Kind: domain.KindAccount}) {
		return nil, domain.ErrForbidden
	}
	return s.users.FindByUsername(ctx, username)
}

func (s *UserService) Update(ctx context.Context, actor domain.Actor, username string, patch ports.UserPatch) (*domain.User, error) {
	if !domain.Authorize(actor, domain.ActionUpdate, domain.Resource{Kind: domain.KindAccount}) {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	applyProfilePatch(user, ports.ProfilePatch{FirstName: patch.FirstName, LastName: patch.LastName, Bio: patch.Bio})
	if patch.Role != nil {
		if !domain.ValidRole(*patch.Role) {
			return nil, domain.ErrValidation
		}
		user.Role = *patch.Role
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	if patch.Role != nil {
		// Existing tokens keep the old role until they expire or are
		// re-exchanged; see TokenIssuer.
		s.logger.Info().Str("username", username).Str("role", updated.Role).Msg("user role changed")
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, actor domain.Actor, username string) error {
	if !domain.Authorize(actor, domain.ActionDelete, domain.Resource{Kind: domain.KindAccount}) {
		return domain.ErrForbidden
	}
	if err := s.users.Delete(ctx, username); err != nil {
		return err
	}
	s.logger.Info().Str("username", username).Msg("user deleted by admin")
	return nil
}

func applyProfilePatch(user *domain.User, patch ports.ProfilePatch) {
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
}
