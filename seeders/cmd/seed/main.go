package main

import (
	"flag"
	"log"

	"asset-system/pkg/config"
	"asset-system/pkg/database/postgresql"
	"asset-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runDemo := flag.Bool("demo", false, "Наполнить БД демонстрационной компанией (пользователи, активы, лицензии)")
	flag.Parse()

	if !*runDemo {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Пример использования:")
		log.Println("  go run ./seeders/cmd/seed/main.go -demo")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	log.Println("======================================================")
	seeders.SeedDemoCompany(dbPool)
	log.Println("======================================================")
	log.Println("✅ Все указанные операции сидирования успешно завершены.")
}
