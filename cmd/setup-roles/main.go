// Command setup-roles creates one account per role for local development.
package main

import (
	"context"
	"flag"
	"os"

	"taskboard/application/serviceimpl"
	"taskboard/infrastructure/postgres"
	"taskboard/pkg/config"
	"taskboard/pkg/logger"
)

func main() {
	password := flag.String("password", "", "use this password for every seeded account instead of the defaults")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Format: "text", Output: "stdout"}); err != nil {
		panic("Failed to init logger: " + err.Error())
	}

	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	accounts := serviceimpl.DefaultSeedAccounts()
	if *password != "" {
		for i := range accounts {
			accounts[i].Password = *password
		}
	}

	created, err := serviceimpl.SeedAccounts(context.Background(), postgres.NewUserRepository(db), accounts)
	if err != nil {
		logger.Error("Seeding accounts failed", "error", err, "created", created)
		os.Exit(1)
	}
	logger.Info("Setup completed", "created", created, "total", len(accounts))
}
