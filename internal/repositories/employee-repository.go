package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"
)

type EmployeeRepositoryInterface interface {
	FindEmployee(ctx context.Context, id uint64) (*entities.Employee, error)
}

type EmployeeRepository struct {
	storage *pgxpool.Pool
}

func NewEmployeeRepository(storage *pgxpool.Pool) EmployeeRepositoryInterface {
	return &EmployeeRepository{storage: storage}
}

func (r *EmployeeRepository) FindEmployee(ctx context.Context, id uint64) (*entities.Employee, error) {
	query := `SELECT id, company_id, fio, user_id, created_at, updated_at FROM employees WHERE id = $1`

	var e entities.Employee
	err := r.storage.QueryRow(ctx, query, id).Scan(&e.ID, &e.CompanyID, &e.Fio, &e.UserID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}
