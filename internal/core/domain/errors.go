package domain

import "errors"

// Sentinel errors recognised by the central HTTP error handler.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUserExists         = errors.New("username or email already registered")
	ErrReservedUsername   = errors.New("username is reserved")
	ErrInvalidScore       = errors.New("score must be between 1 and 10")
	ErrDuplicateReview    = errors.New("review for this title already exists")
	ErrInvalidCode        = errors.New("invalid confirmation code")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrGenreNotFound      = errors.New("genre not found")
	ErrTitleNotFound      = errors.New("title not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNotificationFailed = errors.New("confirmation email could not be delivered")
)
