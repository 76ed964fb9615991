package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	dbbuilder "asset-system/internal/infrastructure/db"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
)

const assetFields = "id, company_id, asset_tag, name, status, is_active, notes, created_at, updated_at"

// Разрешенные для фильтрации/сортировки колонки списка активов.
var assetAllowedColumns = map[string]string{
	"status":     "status",
	"is_active":  "is_active",
	"asset_tag":  "asset_tag",
	"name":       "name",
	"created_at": "created_at",
}

type AssetRepositoryInterface interface {
	GetAssets(ctx context.Context, companyID uint64, filter types.Filter) ([]dto.AssetDTO, uint64, error)
	FindAsset(ctx context.Context, companyID uint64, id uint64) (*entities.Asset, error)
	CreateAsset(ctx context.Context, companyID uint64, data dto.CreateAssetDTO) (uint64, error)
	UpdateAsset(ctx context.Context, companyID uint64, id uint64, data dto.UpdateAssetDTO) error
	ListForExport(ctx context.Context, companyID uint64) ([]entities.Asset, error)
	ApplyTransition(ctx context.Context, companyID uint64, id uint64, status string, isActive bool, note string) (*entities.Asset, error)
	ApplyTransitionInTx(ctx context.Context, q Querier, companyID uint64, id uint64, status string, isActive bool, note string) (*entities.Asset, error)
}

type AssetRepository struct {
	storage *pgxpool.Pool
}

func NewAssetRepository(storage *pgxpool.Pool) AssetRepositoryInterface {
	return &AssetRepository{storage: storage}
}

func scanAsset(row pgx.Row) (*entities.Asset, error) {
	var a entities.Asset
	err := row.Scan(
		&a.ID,
		&a.CompanyID,
		&a.AssetTag,
		&a.Name,
		&a.Status,
		&a.IsActive,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepository) GetAssets(ctx context.Context, companyID uint64, filter types.Filter) ([]dto.AssetDTO, uint64, error) {
	builder := psql.Select(assetFields).
		From("assets").
		Where(sq.Eq{"company_id": companyID})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"asset_tag": pattern},
		})
	}

	builder = dbbuilder.ApplyListParams(builder, filter, assetAllowedColumns)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("created_at DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("сборка запроса списка активов: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []dto.AssetDTO
	for rows.Next() {
		var a entities.Asset
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.AssetTag, &a.Name, &a.Status, &a.IsActive, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, assetToDTO(&a))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countBuilder := psql.Select("COUNT(*)").
		From("assets").
		Where(sq.Eq{"company_id": companyID})
	countBuilder = dbbuilder.ApplyFilterOnly(countBuilder, filter, assetAllowedColumns)

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

func (r *AssetRepository) FindAsset(ctx context.Context, companyID uint64, id uint64) (*entities.Asset, error) {
	query := fmt.Sprintf(`SELECT %s FROM assets WHERE id = $1 AND company_id = $2`, assetFields)
	return scanAsset(r.storage.QueryRow(ctx, query, id, companyID))
}

func (r *AssetRepository) CreateAsset(ctx context.Context, companyID uint64, data dto.CreateAssetDTO) (uint64, error) {
	query := `
		INSERT INTO assets (company_id, asset_tag, name, status, is_active, notes)
		VALUES ($1, $2, $3, $4, TRUE, '')
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query, companyID, data.AssetTag, data.Name, constants.AssetStatusAvailable).Scan(&newID)
	if err != nil {
		return 0, err
	}
	return newID, nil
}

func (r *AssetRepository) UpdateAsset(ctx context.Context, companyID uint64, id uint64, data dto.UpdateAssetDTO) error {
	builder := psql.Update("assets").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "company_id": companyID})

	if data.Name.Valid {
		builder = builder.Set("name", data.Name.String)
	}
	if data.Status.Valid {
		builder = builder.Set("status", data.Status.String)
	}
	if data.Notes.Valid {
		builder = builder.Set("notes", data.Notes.String)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("сборка запроса обновления актива: %w", err)
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *AssetRepository) ListForExport(ctx context.Context, companyID uint64) ([]entities.Asset, error) {
	query := fmt.Sprintf(`SELECT %s FROM assets WHERE company_id = $1 ORDER BY asset_tag`, assetFields)
	rows, err := r.storage.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []entities.Asset
	for rows.Next() {
		var a entities.Asset
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.AssetTag, &a.Name, &a.Status, &a.IsActive, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// ApplyTransition — вариант ApplyTransitionInTx вне транзакции.
func (r *AssetRepository) ApplyTransition(ctx context.Context, companyID uint64, id uint64, status string, isActive bool, note string) (*entities.Asset, error) {
	return r.ApplyTransitionInTx(ctx, r.storage, companyID, id, status, isActive, note)
}

// ApplyTransitionInTx переводит актив в новый статус и дописывает строку
// в журнал notes одним UPDATE. Вызывается внутри транзакции движка
// выполнения заявок, но принимает Querier и потому работает и вне её.
func (r *AssetRepository) ApplyTransitionInTx(ctx context.Context, q Querier, companyID uint64, id uint64, status string, isActive bool, note string) (*entities.Asset, error) {
	query := fmt.Sprintf(`
		UPDATE assets
		SET status = $1,
		    is_active = $2,
		    notes = CASE WHEN notes = '' THEN $3 ELSE notes || E'\n' || $3 END,
		    updated_at = NOW()
		WHERE id = $4 AND company_id = $5
		RETURNING %s
	`, assetFields)

	return scanAsset(q.QueryRow(ctx, query, status, isActive, note, id, companyID))
}

func assetToDTO(a *entities.Asset) dto.AssetDTO {
	return dto.AssetDTO{
		ID:        a.ID,
		AssetTag:  a.AssetTag,
		Name:      a.Name,
		Status:    a.Status,
		IsActive:  a.IsActive,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
