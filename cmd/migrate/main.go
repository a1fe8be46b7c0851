// Command migrate applies or rolls back the embedded schema migrations.
//
//	migrate up
//	migrate down [n]
//	migrate version
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"payroll-backend/internal/config"
	"payroll-backend/internal/database"

	"github.com/golang-migrate/migrate/v4"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: migrate up | down [n] | version")
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		slog.Error("migration failed", "cmd", os.Args[1], "err", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string) error {
	cfg := config.Load()

	m, err := database.NewMigrator(cfg.MigrationURL())
	if err != nil {
		return err
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		steps := 1
		if len(args) > 0 {
			if steps, err = strconv.Atoi(args[0]); err != nil || steps <= 0 {
				return fmt.Errorf("invalid step count %q", args[0])
			}
		}
		err = m.Steps(-steps)
	case "version":
		v, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return nil
		}
		if verr != nil {
			return verr
		}
		fmt.Printf("version %d (dirty: %t)\n", v, dirty)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		slog.Info("no change")
		return nil
	}
	return err
}
