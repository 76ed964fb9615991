package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"
)

type UserRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

const userFields = "id, company_id, email, password_hash, fio, is_active, created_at, updated_at"

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `SELECT ` + userFields + ` FROM users WHERE email = $1 AND is_active = TRUE`

	var u entities.User
	err := r.storage.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.Fio, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	query := `SELECT ` + userFields + ` FROM users WHERE id = $1`

	var u entities.User
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.Fio, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
