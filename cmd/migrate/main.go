package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/guidanceoffice/discipline-backend/internal/config"
)

func main() {
	var migrationDir string
	flag.StringVar(&migrationDir, "path", "migrations", "Path to migration files")
	flag.Parse()

	if err := run(migrationDir, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(dir string, args []string) error {
	if len(args) < 1 {
		printUsage()
		return nil
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}

	m, err := migrate.New("file://"+dir, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("initialize migrations: %w", err)
	}
	defer m.Close()

	switch cmd := args[0]; cmd {
	case "up", "down":
		if err := applySteps(m, cmd, args[1:]); err != nil {
			return fmt.Errorf("%s failed: %w", cmd, err)
		}
		fmt.Printf("Migrated %s successfully\n", cmd)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("Version: %d, Dirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			return errors.New("force requires a version argument")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[1])
		}
		if err := m.Force(v); err != nil {
			return fmt.Errorf("force failed: %w", err)
		}
		fmt.Printf("Forced version to %d\n", v)
	default:
		printUsage()
	}
	return nil
}

// applySteps runs all pending migrations, or exactly N of them when a step
// count follows the command. "down 1" is the usual rollback invocation.
func applySteps(m *migrate.Migrate, direction string, rest []string) error {
	var err error
	if len(rest) > 0 {
		n, convErr := strconv.Atoi(rest[0])
		if convErr != nil || n < 1 {
			return fmt.Errorf("invalid step count %q", rest[0])
		}
		if direction == "down" {
			n = -n
		}
		err = m.Steps(n)
	} else if direction == "up" {
		err = m.Up()
	} else {
		err = m.Down()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func printUsage() {
	fmt.Println("Usage: migrate [flags] <command>")
	fmt.Println("Commands: up [n], down [n], version, force <version>")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
