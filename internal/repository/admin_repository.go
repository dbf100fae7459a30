package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	uuid2 "github.com/gofrs/uuid"
	"github.com/google/uuid"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
	"github.com/jmoiron/sqlx"
)

type AdminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*entity.AdminUser, error) {
	var user entity.AdminUser
	query := `SELECT * FROM admin_users WHERE username = $1`

	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// EnsureAdmin seeds the bootstrap administrator at startup. An existing
// username is left untouched so rotated hashes survive restarts.
func (r *AdminRepository) EnsureAdmin(ctx context.Context, username, passwordHash string) error {
	query := `
		INSERT INTO admin_users (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, 'admin', $4)
		ON CONFLICT (username) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, uuid2.UUID(uuid.New()), username, passwordHash, time.Now().UTC())
	return err
}
