package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"credauth/internal/auth"
	"credauth/internal/db"

	"github.com/google/uuid"
)

var (
	ErrWeakPassword = errors.New("password does not meet policy")
	ErrUnknownUser  = errors.New("unknown user")
)

// Service authenticates email/password pairs against the user store and
// applies password changes. The salt is injected at construction; nothing
// here reads ambient process state.
type Service struct {
	db   *db.DB
	salt string
}

func NewService(db *db.DB, salt string) *Service {
	return &Service{db: db, salt: salt}
}

// Authenticate returns the Identity for a matching email/password pair, or
// nil when there is no match. Unknown email, wrong password and
// password-login-disabled records are indistinguishable: all yield a plain
// (nil, nil). Only store failures return an error.
func (s *Service) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (*auth.Identity, error) {

	// Missing input never reaches the digest or the store.
	if email == "" || password == "" {
		return nil, nil
	}

	digest := HashWithSalt(password, s.salt)

	var (
		userID uuid.UUID
		name   sql.NullString
		image  sql.NullString
	)

	// Email and digest are matched in one conjunctive query so the
	// response shape cannot reveal whether the email exists.
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, image
		FROM users
		WHERE email = $1
		  AND password_digest = $2
	`, email, digest).Scan(&userID, &name, &image)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("credentials: lookup failed: %w", err)
	}

	return &auth.Identity{
		ID:    userID.String(),
		Email: email,
		Name:  name.String,
		Image: image.String,
	}, nil
}

// SetPassword replaces a user's password digest. This is the only path that
// enforces the password policy.
func (s *Service) SetPassword(
	ctx context.Context,
	userID string,
	plaintext string,
) error {

	if !IsValidPassword(plaintext) {
		return ErrWeakPassword
	}

	digest := HashWithSalt(plaintext, s.salt)

	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET password_digest = $2, updated_at = NOW()
		WHERE id = $1
	`, userID, digest)

	if err != nil {
		return fmt.Errorf("credentials: update failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("credentials: update failed: %w", err)
	}

	if rows == 0 {
		return ErrUnknownUser
	}

	return nil
}
