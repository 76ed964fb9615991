package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDemoCompany наполняет БД демонстрационной компанией со штатом,
// активами и лицензиями. Повторный запуск безопасен: все вставки
// идут через ON CONFLICT DO NOTHING.
func SeedDemoCompany(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения демо-данными...")

	companyID, err := seedCompany(ctx, db)
	if err != nil {
		log.Fatalf("❌ Ошибка наполнения Компании: %v", err)
	}
	if err := seedUsers(ctx, db, companyID); err != nil {
		log.Fatalf("❌ Ошибка наполнения Пользователей: %v", err)
	}
	if err := seedEmployees(ctx, db, companyID); err != nil {
		log.Fatalf("❌ Ошибка наполнения Сотрудников: %v", err)
	}
	if err := seedAssets(ctx, db, companyID); err != nil {
		log.Fatalf("❌ Ошибка наполнения Активов: %v", err)
	}
	if err := seedLicenses(ctx, db, companyID); err != nil {
		log.Fatalf("❌ Ошибка наполнения Лицензий: %v", err)
	}

	log.Println("✅ Наполнение демо-данными завершено!")
}
