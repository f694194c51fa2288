package main

import (
	"fmt"
	"os"

	"github.com/joe-black-jb/mops-revenue/internal"
	"github.com/joe-black-jb/mops-revenue/internal/config"
	"github.com/joe-black-jb/mops-revenue/internal/db"
	"github.com/joe-black-jb/mops-revenue/internal/logger"
)

// migration.go は MySQL のスキーマを作成する
// コンテナ外で実行する場合は MYSQL_HOST=127.0.0.1 を指定する
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if !cfg.MySQL.Enabled() {
		log.Error("MYSQL_HOST and MYSQL_DATABASE must be set")
		os.Exit(1)
	}
	conn, err := db.Connect(cfg.MySQL)
	if err != nil {
		log.Error("connect", "error", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 && os.Args[1] == "--drop" {
		if err := conn.Migrator().DropTable(&internal.RevenueRecord{}); err != nil {
			log.Error("drop table", "error", err)
			os.Exit(1)
		}
		log.Info("dropped revenue_records")
	}

	if err := db.Migrate(conn); err != nil {
		log.Error("migrate", "error", err)
		os.Exit(1)
	}

	sqlDB, err := conn.DB()
	if err == nil {
		sqlDB.Close()
	}
	log.Info("Done!!", "database", cfg.MySQL.Database)
}
