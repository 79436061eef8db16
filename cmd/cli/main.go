package main

import (
	"context"
	"os"
	"strings"

	"github.com/kbenedict/customer-orders/internal/config"
	"github.com/kbenedict/customer-orders/internal/repository"
	"github.com/kbenedict/customer-orders/internal/seeder"
	"github.com/kbenedict/customer-orders/pkg/logger"
	"github.com/kbenedict/customer-orders/pkg/pg"
)

// main.go --dir=./migrations [--recreate] [--seed]
func main() {
	err := config.Load(getEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
	}

	pgConf := pg.Config{
		User:     config.Get().DBUser,
		Host:     config.Get().DBHost,
		Port:     config.Get().DBPort,
		Password: config.Get().DBPassword,
		Database: config.Get().DBName,
	}

	pg.EnsureDatabase(pgConf)

	dir := getMigrationPath()
	if hasArg("--recreate") {
		err = pg.Reset(pgConf, dir)
	} else {
		err = pg.Migrate(pgConf, dir)
	}
	if err != nil {
		logger.Error("migration: error running migrations", "error", err)
		return
	}

	if hasArg("--seed") {
		db, err := pg.Connect(pgConf, false)
		if err != nil {
			logger.Error("failed connecting to pg", "error", err)
			return
		}
		s := seeder.New(db, repository.NewCustomerRepository(db), repository.NewOrderRepository(db))
		if err := s.Run(context.Background()); err != nil {
			logger.Error("seeding failed", "error", err)
		}
	}
}

func hasArg(name string) bool {
	for _, v := range os.Args {
		if v == name {
			return true
		}
	}
	return false
}

func getEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	if _, err := os.Open(".env"); err != nil {
		logger.Error("failed to open the passed env file, got error" + err.Error())
		return ""
	}
	return ".env"
}

func getMigrationPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--dir=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed migrations dir, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	if _, err := os.Open("./migrations"); err != nil {
		logger.Error("failed to open the default migrations dir, got error" + err.Error())
		return ""
	}
	return "./migrations"
}
