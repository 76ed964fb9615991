package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"asset-system/pkg/config"
)

func main() {
	command := flag.String("command", "up", "goose-команда: up, down, status, version")
	dir := flag.String("dir", "db/migrations", "каталог с миграциями")
	flag.Parse()

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ Не удалось открыть соединение с БД: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("❌ Не удалось выбрать диалект: %v", err)
	}

	if err := goose.Run(*command, db, *dir); err != nil {
		log.Fatalf("❌ Миграция завершилась ошибкой: %v", err)
	}

	log.Println("✅ Миграции успешно применены.")
}
