package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/infrastructure/migration"
	"github.com/portfolio/backend/migrations"
	"go.uber.org/zap"
)

func main() {
	var (
		migrationsPath string
		configPath     string
		logLevel       string
	)

	flag.StringVar(&migrationsPath, "path", "", "Read migrations from this directory instead of the embedded set")
	flag.StringVar(&configPath, "config", "", "Path to a config.toml (default: search ., ./backend, /app)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	var source fs.FS = migrations.FS
	if migrationsPath != "" {
		source = os.DirFS(migrationsPath)
	}

	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate -path <dir> create <name> [description]")
		}
		if migrationsPath == "" {
			migrationsPath = "migrations"
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(migrationsPath, args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return

	case "list":
		names, err := migration.ListMigrations(source)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		log.Info("Available migrations", zap.Int("count", len(names)))
		for _, name := range names {
			fmt.Println("  -", name)
		}
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.Database.Driver != "postgres" {
		log.Fatal("SQL migrations target postgres; sqlite databases are created by the server",
			zap.String("driver", cfg.Database.Driver))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	m, err := migration.New(db, source, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}

	case "step":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration step failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		if version == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func printUsage() {
	fmt.Println(`Portfolio Database Migration Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  version               Show current migration version
  force <version>       Force set migration version after a failed run
  create <name> [desc]  Create a new migration file pair
  list                  List available migrations

Flags:
  -path string          Migrations directory (default: embedded migrations)
  -config string        Config file (default: config.toml search path)
  -log-level string     Log level: debug, info, warn, error (default: info)

Environment Variables:
  PORTFOLIO_DATABASE_HOST, PORTFOLIO_DATABASE_PORT, PORTFOLIO_DATABASE_USER,
  PORTFOLIO_DATABASE_PASSWORD, PORTFOLIO_DATABASE_DBNAME, PORTFOLIO_DATABASE_SSLMODE

Examples:
  migrate up
  migrate step -1
  migrate -path ./migrations create add_project_tags "Tag column for projects"`)
}
