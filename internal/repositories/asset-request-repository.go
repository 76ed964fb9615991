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

const assetRequestFields = "id, company_id, request_type, status, requester_id, approver_id, asset_id, reason, completed_date, created_at, updated_at"

var assetRequestAllowedColumns = map[string]string{
	"status":       "status",
	"request_type": "request_type",
	"asset_id":     "asset_id",
	"requester_id": "requester_id",
	"created_at":   "created_at",
}

type AssetRequestRepositoryInterface interface {
	GetRequests(ctx context.Context, companyID uint64, filter types.Filter) ([]dto.AssetRequestDTO, uint64, error)
	FindRequest(ctx context.Context, companyID uint64, id uint64) (*entities.AssetRequest, error)
	CreateRequest(ctx context.Context, companyID uint64, requesterID uint64, data dto.CreateAssetRequestDTO) (uint64, error)
	SetStatusFromPending(ctx context.Context, companyID uint64, id uint64, newStatus string, approverID uint64) error
	FindForUpdateInTx(ctx context.Context, q Querier, companyID uint64, id uint64) (*entities.AssetRequest, error)
	CompleteInTx(ctx context.Context, q Querier, id uint64, completedAt time.Time) error
}

type AssetRequestRepository struct {
	storage *pgxpool.Pool
}

func NewAssetRequestRepository(storage *pgxpool.Pool) AssetRequestRepositoryInterface {
	return &AssetRequestRepository{storage: storage}
}

func scanAssetRequest(row pgx.Row) (*entities.AssetRequest, error) {
	var req entities.AssetRequest
	err := row.Scan(
		&req.ID,
		&req.CompanyID,
		&req.RequestType,
		&req.Status,
		&req.RequesterID,
		&req.ApproverID,
		&req.AssetID,
		&req.Reason,
		&req.CompletedDate,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *AssetRequestRepository) GetRequests(ctx context.Context, companyID uint64, filter types.Filter) ([]dto.AssetRequestDTO, uint64, error) {
	builder := psql.Select(assetRequestFields).
		From("asset_requests").
		Where(sq.Eq{"company_id": companyID})

	builder = dbbuilder.ApplyListParams(builder, filter, assetRequestAllowedColumns)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("created_at DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("сборка запроса списка заявок: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []dto.AssetRequestDTO
	for rows.Next() {
		var req entities.AssetRequest
		if err := rows.Scan(&req.ID, &req.CompanyID, &req.RequestType, &req.Status, &req.RequesterID, &req.ApproverID, &req.AssetID, &req.Reason, &req.CompletedDate, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, AssetRequestToDTO(&req))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countBuilder := psql.Select("COUNT(*)").
		From("asset_requests").
		Where(sq.Eq{"company_id": companyID})
	countBuilder = dbbuilder.ApplyFilterOnly(countBuilder, filter, assetRequestAllowedColumns)

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

func (r *AssetRequestRepository) FindRequest(ctx context.Context, companyID uint64, id uint64) (*entities.AssetRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM asset_requests WHERE id = $1 AND company_id = $2`, assetRequestFields)
	return scanAssetRequest(r.storage.QueryRow(ctx, query, id, companyID))
}

func (r *AssetRequestRepository) CreateRequest(ctx context.Context, companyID uint64, requesterID uint64, data dto.CreateAssetRequestDTO) (uint64, error) {
	query := `
		INSERT INTO asset_requests (company_id, request_type, status, requester_id, asset_id, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		companyID, data.RequestType, constants.RequestStatusPending, requesterID, data.AssetID, data.Reason,
	).Scan(&newID)
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// SetStatusFromPending переводит заявку из PENDING в APPROVED или REJECTED.
// Условие status = 'PENDING' прямо в UPDATE гарантирует монотонность
// переходов: если заявку уже согласовали или отклонили, обновится 0 строк.
func (r *AssetRequestRepository) SetStatusFromPending(ctx context.Context, companyID uint64, id uint64, newStatus string, approverID uint64) error {
	query := `
		UPDATE asset_requests
		SET status = $1, approver_id = $2, updated_at = NOW()
		WHERE id = $3 AND company_id = $4 AND status = $5
	`
	tag, err := r.storage.Exec(ctx, query, newStatus, approverID, id, companyID, constants.RequestStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Различаем "нет такой заявки" и "заявка не в PENDING".
		current, findErr := r.FindRequest(ctx, companyID, id)
		if findErr != nil {
			return findErr
		}
		return apperrors.NewInvalidStateError("заявка #%d уже в статусе %s, переход невозможен", id, current.Status)
	}
	return nil
}

// FindForUpdateInTx читает заявку с блокировкой строки (FOR UPDATE).
// Конкурирующая транзакция выполнения той же заявки встанет на этой
// блокировке и после коммита первой увидит статус COMPLETED.
func (r *AssetRequestRepository) FindForUpdateInTx(ctx context.Context, q Querier, companyID uint64, id uint64) (*entities.AssetRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM asset_requests WHERE id = $1 AND company_id = $2 FOR UPDATE`, assetRequestFields)
	return scanAssetRequest(q.QueryRow(ctx, query, id, companyID))
}

func (r *AssetRequestRepository) CompleteInTx(ctx context.Context, q Querier, id uint64, completedAt time.Time) error {
	query := `
		UPDATE asset_requests
		SET status = $1, completed_date = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := q.Exec(ctx, query, constants.RequestStatusCompleted, completedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func AssetRequestToDTO(req *entities.AssetRequest) dto.AssetRequestDTO {
	return dto.AssetRequestDTO{
		ID:            req.ID,
		RequestType:   req.RequestType,
		Status:        req.Status,
		RequesterID:   req.RequesterID,
		ApproverID:    null.Uint64FromPtr(req.ApproverID),
		AssetID:       req.AssetID,
		Reason:        req.Reason,
		CompletedDate: null.TimeFromPtr(req.CompletedDate),
		CreatedAt:     req.CreatedAt,
		UpdatedAt:     req.UpdatedAt,
	}
}
