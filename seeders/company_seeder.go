package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedCompany(ctx context.Context, db *pgxpool.Pool) (uint64, error) {
	log.Println("  - Наполнение таблицы 'companies'...")

	var companyID uint64
	err := db.QueryRow(ctx,
		`SELECT id FROM companies WHERE name = $1`, companyData.Name).Scan(&companyID)
	if err == nil {
		log.Printf("    - Компания '%s' уже существует (id=%d), пропуск", companyData.Name, companyID)
		return companyID, nil
	}

	err = db.QueryRow(ctx,
		`INSERT INTO companies (name, is_active) VALUES ($1, TRUE) RETURNING id`,
		companyData.Name).Scan(&companyID)
	if err != nil {
		return 0, err
	}
	return companyID, nil
}
