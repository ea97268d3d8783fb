package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stellarion/backend/internal/pkg/apperrors"
)

// Credential is one identity record: the subject id the tokens carry plus
// the password hash it is verified against.
type Credential struct {
	ID           int64
	AuthUID      string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CredentialRepository stores identity credentials and token revocations.
type CredentialRepository struct {
	db *pgxpool.Pool
}

// NewCredentialRepository creates a new CredentialRepository.
func NewCredentialRepository(db *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Create inserts a credential.
func (r *CredentialRepository) Create(ctx context.Context, c *Credential) error {
	err := r.db.QueryRow(ctx,
		"INSERT INTO auth_credentials (auth_uid, email, password_hash) VALUES ($1, $2, $3) RETURNING id",
		c.AuthUID, c.Email, c.PasswordHash).Scan(&c.ID)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrEmailExists
		}
		return fmt.Errorf("error creating credential: %w", err)
	}
	return nil
}

// GetByEmail loads a credential by email.
func (r *CredentialRepository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	c := &Credential{}
	err := r.db.QueryRow(ctx,
		"SELECT id, auth_uid, email, password_hash, created_at FROM auth_credentials WHERE email = $1",
		email).Scan(&c.ID, &c.AuthUID, &c.Email, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting credential: %w", err)
	}
	return c, nil
}

// GetByAuthUID loads a credential by subject id.
func (r *CredentialRepository) GetByAuthUID(ctx context.Context, authUID string) (*Credential, error) {
	c := &Credential{}
	err := r.db.QueryRow(ctx,
		"SELECT id, auth_uid, email, password_hash, created_at FROM auth_credentials WHERE auth_uid = $1",
		authUID).Scan(&c.ID, &c.AuthUID, &c.Email, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting credential: %w", err)
	}
	return c, nil
}

// UpdatePassword rotates a credential's password hash.
func (r *CredentialRepository) UpdatePassword(ctx context.Context, authUID, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE auth_credentials SET password_hash = $1 WHERE auth_uid = $2", passwordHash, authUID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a credential.
func (r *CredentialRepository) Delete(ctx context.Context, authUID string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM auth_credentials WHERE auth_uid = $1", authUID)
	if err != nil {
		return fmt.Errorf("error deleting credential: %w", err)
	}
	return nil
}

// Revoke records a token id so the verifier refuses it from now on.
func (r *CredentialRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO auth_revocations (jti, expires_at) VALUES ($1, $2) ON CONFLICT (jti) DO NOTHING",
		jti, expiresAt)
	if err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token id has been revoked.
func (r *CredentialRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM auth_revocations WHERE jti = $1)", jti).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking revocation: %w", err)
	}
	return exists, nil
}
