package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedAssets(ctx context.Context, db *pgxpool.Pool, companyID uint64) error {
	log.Println("  - Наполнение таблицы 'assets'...")

	query := `INSERT INTO assets (company_id, asset_tag, name, status, is_active, notes)
			  VALUES ($1, $2, $3, $4, TRUE, '')
			  ON CONFLICT (company_id, asset_tag) DO NOTHING`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, a := range assetsData {
		if _, err := tx.Exec(ctx, query, companyID, a.AssetTag, a.Name, a.Status); err != nil {
			log.Printf("Ошибка при вставке актива '%s': %v", a.AssetTag, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
