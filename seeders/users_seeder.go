package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/pkg/utils"
)

func seedUsers(ctx context.Context, db *pgxpool.Pool, companyID uint64) error {
	log.Println("  - Наполнение таблицы 'users'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, u := range usersData {
		hash, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO users (company_id, email, password_hash, fio, is_active)
			 VALUES ($1, $2, $3, $4, TRUE)
			 ON CONFLICT (email) DO NOTHING`,
			companyID, u.Email, hash, u.Fio); err != nil {
			log.Printf("Ошибка при вставке пользователя '%s': %v", u.Email, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
