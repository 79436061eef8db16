package pg

import (
	"github.com/kbenedict/customer-orders/pkg/logger"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func Migrate(cfg Config, dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal(err)
	}

	db, err := newSqlConnection(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err = goose.Up(db, dir); err != nil {
		return err
	}
	return nil
}

// Reset rolls every migration back and reapplies it, dropping and
// recreating the tables.
func Reset(cfg Config, dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal(err)
	}

	db, err := newSqlConnection(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err = goose.DownTo(db, dir, 0); err != nil {
		return err
	}
	if err = goose.Up(db, dir); err != nil {
		return err
	}
	return nil
}
