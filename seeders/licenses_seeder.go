package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedLicenses(ctx context.Context, db *pgxpool.Pool, companyID uint64) error {
	log.Println("  - Наполнение таблицы 'licenses'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, l := range licensesData {
		var responsibleID *uint64
		var id uint64
		if err := tx.QueryRow(ctx,
			`SELECT id FROM employees WHERE company_id = $1 AND fio = $2`,
			companyID, l.Responsible).Scan(&id); err == nil {
			responsibleID = &id
		}

		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM licenses WHERE company_id = $1 AND name = $2)`,
			companyID, l.Name).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO licenses (company_id, name, expiry_date, responsible_employee_id)
			 VALUES ($1, $2, $3, $4)`,
			companyID, l.Name, expiryFromNow(l.ExpiresInDays), responsibleID); err != nil {
			log.Printf("Ошибка при вставке лицензии '%s': %v", l.Name, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
