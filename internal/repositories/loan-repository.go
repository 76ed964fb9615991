package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	dbbuilder "asset-system/internal/infrastructure/db"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
)

const loanFields = "id, company_id, asset_id, borrower_employee_id, responsible_employee_id, requested_by_id, approved_by_id, status, loan_date, expected_return_date, returned_at, created_at, updated_at"

var loanAllowedColumns = map[string]string{
	"status":               "status",
	"asset_id":             "asset_id",
	"borrower_employee_id": "borrower_employee_id",
	"created_at":           "created_at",
	"expected_return_date": "expected_return_date",
}

type LoanRepositoryInterface interface {
	GetLoans(ctx context.Context, companyID uint64, filter types.Filter) ([]dto.LoanDTO, uint64, error)
	FindLoan(ctx context.Context, companyID uint64, id uint64) (*entities.Loan, error)
	CreateLoan(ctx context.Context, companyID uint64, requestedByID uint64, data dto.CreateLoanDTO) (uint64, error)
	ReturnLoan(ctx context.Context, companyID uint64, id uint64, returnedAt time.Time) (*entities.Loan, error)
	ListActiveReturnBefore(ctx context.Context, before time.Time) ([]entities.Loan, error)
	ListActiveReturnBetween(ctx context.Context, from, to time.Time) ([]entities.Loan, error)
	MarkOverdue(ctx context.Context, id uint64) error
}

type LoanRepository struct {
	storage *pgxpool.Pool
}

func NewLoanRepository(storage *pgxpool.Pool) LoanRepositoryInterface {
	return &LoanRepository{storage: storage}
}

func scanLoanRows(rows pgx.Rows) ([]entities.Loan, error) {
	defer rows.Close()

	var result []entities.Loan
	for rows.Next() {
		var l entities.Loan
		if err := rows.Scan(
			&l.ID, &l.CompanyID, &l.AssetID, &l.BorrowerEmployeeID, &l.ResponsibleEmployeeID,
			&l.RequestedByID, &l.ApprovedByID, &l.Status, &l.LoanDate, &l.ExpectedReturnDate,
			&l.ReturnedAt, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (r *LoanRepository) GetLoans(ctx context.Context, companyID uint64, filter types.Filter) ([]dto.LoanDTO, uint64, error) {
	builder := psql.Select(loanFields).
		From("loans").
		Where(sq.Eq{"company_id": companyID})

	builder = dbbuilder.ApplyListParams(builder, filter, loanAllowedColumns)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("created_at DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("сборка запроса списка выдач: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	loans, err := scanLoanRows(rows)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.LoanDTO, 0, len(loans))
	for i := range loans {
		result = append(result, LoanToDTO(&loans[i]))
	}

	countBuilder := psql.Select("COUNT(*)").
		From("loans").
		Where(sq.Eq{"company_id": companyID})
	countBuilder = dbbuilder.ApplyFilterOnly(countBuilder, filter, loanAllowedColumns)

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("сборка count-запроса: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *LoanRepository) FindLoan(ctx context.Context, companyID uint64, id uint64) (*entities.Loan, error) {
	query := fmt.Sprintf(`SELECT %s FROM loans WHERE id = $1 AND company_id = $2`, loanFields)

	var l entities.Loan
	err := r.storage.QueryRow(ctx, query, id, companyID).Scan(
		&l.ID, &l.CompanyID, &l.AssetID, &l.BorrowerEmployeeID, &l.ResponsibleEmployeeID,
		&l.RequestedByID, &l.ApprovedByID, &l.Status, &l.LoanDate, &l.ExpectedReturnDate,
		&l.ReturnedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *LoanRepository) CreateLoan(ctx context.Context, companyID uint64, requestedByID uint64, data dto.CreateLoanDTO) (uint64, error) {
	query := `
		INSERT INTO loans (company_id, asset_id, borrower_employee_id, responsible_employee_id, requested_by_id, status, loan_date, expected_return_date)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), $7)
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		companyID, data.AssetID, data.BorrowerEmployeeID, data.ResponsibleEmployeeID,
		requestedByID, constants.LoanStatusActive, data.ExpectedReturnDate,
	).Scan(&newID)
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// ReturnLoan закрывает выдачу. Допустимо только из ACTIVE или OVERDUE.
func (r *LoanRepository) ReturnLoan(ctx context.Context, companyID uint64, id uint64, returnedAt time.Time) (*entities.Loan, error) {
	query := fmt.Sprintf(`
		UPDATE loans
		SET status = $1, returned_at = $2, updated_at = NOW()
		WHERE id = $3 AND company_id = $4 AND status IN ($5, $6)
		RETURNING %s
	`, loanFields)

	var l entities.Loan
	err := r.storage.QueryRow(ctx, query,
		constants.LoanStatusReturned, returnedAt, id, companyID,
		constants.LoanStatusActive, constants.LoanStatusOverdue,
	).Scan(
		&l.ID, &l.CompanyID, &l.AssetID, &l.BorrowerEmployeeID, &l.ResponsibleEmployeeID,
		&l.RequestedByID, &l.ApprovedByID, &l.Status, &l.LoanDate, &l.ExpectedReturnDate,
		&l.ReturnedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			current, findErr := r.FindLoan(ctx, companyID, id)
			if findErr != nil {
				return nil, findErr
			}
			return nil, apperrors.NewInvalidStateError("выдача #%d уже в статусе %s", id, current.Status)
		}
		return nil, err
	}
	return &l, nil
}

// ListActiveReturnBefore — активные выдачи с датой возврата строго раньше before.
// Используется sweep'ом для просроченных (before = начало сегодняшнего дня).
func (r *LoanRepository) ListActiveReturnBefore(ctx context.Context, before time.Time) ([]entities.Loan, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM loans
		WHERE status = $1 AND expected_return_date < $2
		ORDER BY expected_return_date
	`, loanFields)

	rows, err := r.storage.Query(ctx, query, constants.LoanStatusActive, before)
	if err != nil {
		return nil, err
	}
	return scanLoanRows(rows)
}

// ListActiveReturnBetween — активные выдачи с датой возврата в полуинтервале [from, to).
func (r *LoanRepository) ListActiveReturnBetween(ctx context.Context, from, to time.Time) ([]entities.Loan, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM loans
		WHERE status = $1 AND expected_return_date >= $2 AND expected_return_date < $3
		ORDER BY expected_return_date
	`, loanFields)

	rows, err := r.storage.Query(ctx, query, constants.LoanStatusActive, from, to)
	if err != nil {
		return nil, err
	}
	return scanLoanRows(rows)
}

// MarkOverdue переводит ACTIVE -> OVERDUE. Повторный вызов безвреден:
// условие по статусу просто не найдет строку.
func (r *LoanRepository) MarkOverdue(ctx context.Context, id uint64) error {
	query := `UPDATE loans SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`
	_, err := r.storage.Exec(ctx, query, constants.LoanStatusOverdue, id, constants.LoanStatusActive)
	return err
}

func LoanToDTO(l *entities.Loan) dto.LoanDTO {
	return dto.LoanDTO{
		ID:                    l.ID,
		AssetID:               l.AssetID,
		BorrowerEmployeeID:    l.BorrowerEmployeeID,
		ResponsibleEmployeeID: l.ResponsibleEmployeeID,
		RequestedByID:         l.RequestedByID,
		ApprovedByID:          null.Uint64FromPtr(l.ApprovedByID),
		Status:                l.Status,
		LoanDate:              l.LoanDate,
		ExpectedReturnDate:    l.ExpectedReturnDate,
		ReturnedAt:            null.TimeFromPtr(l.ReturnedAt),
		CreatedAt:             l.CreatedAt,
	}
}
