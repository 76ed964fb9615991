package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/internal/entities"
)

const licenseFields = "id, company_id, name, asset_id, expiry_date, responsible_employee_id, created_at, updated_at"

type LicenseRepositoryInterface interface {
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]entities.License, error)
}

type LicenseRepository struct {
	storage *pgxpool.Pool
}

func NewLicenseRepository(storage *pgxpool.Pool) LicenseRepositoryInterface {
	return &LicenseRepository{storage: storage}
}

// ListExpiringBetween — лицензии с датой истечения в полуинтервале [from, to).
func (r *LicenseRepository) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]entities.License, error) {
	query := `
		SELECT ` + licenseFields + `
		FROM licenses
		WHERE expiry_date >= $1 AND expiry_date < $2
		ORDER BY expiry_date
	`
	rows, err := r.storage.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []entities.License
	for rows.Next() {
		var l entities.License
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.Name, &l.AssetID, &l.ExpiryDate, &l.ResponsibleEmployeeID, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
