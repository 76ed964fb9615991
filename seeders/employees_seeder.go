package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedEmployees(ctx context.Context, db *pgxpool.Pool, companyID uint64) error {
	log.Println("  - Наполнение таблицы 'employees'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, e := range employeesData {
		var userID *uint64
		if e.UserEmail != "" {
			var id uint64
			if err := tx.QueryRow(ctx,
				`SELECT id FROM users WHERE email = $1`, e.UserEmail).Scan(&id); err != nil {
				log.Printf("Пользователь '%s' не найден, сотрудник будет без учетки", e.UserEmail)
			} else {
				userID = &id
			}
		}

		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM employees WHERE company_id = $1 AND fio = $2)`,
			companyID, e.Fio).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO employees (company_id, fio, user_id) VALUES ($1, $2, $3)`,
			companyID, e.Fio, userID); err != nil {
			log.Printf("Ошибка при вставке сотрудника '%s': %v", e.Fio, err)
			return err
		}
	}

	return tx.Commit(ctx)
}
