// Command portfolioctl administers portfolio content from the command line:
// skills backups, seeding a fresh database and hashing the admin password.
package main

import (
	"context"
	"fmt"
	"os"

	contentapp "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs
type app struct {
	configPath string
	verbose    bool
	logger     *zap.Logger

	// openStore connects to the configured database
	openStore func(ctx context.Context) (contentapp.RecordStore, func() error, error)
}

func newApp() *app {
	a := &app{logger: zap.NewNop()}
	a.openStore = a.openDatabase
	return a
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		return config.LoadFile(a.configPath)
	}
	return config.Load()
}

func (a *app) openDatabase(context.Context) (contentapp.RecordStore, func() error, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}
	return persistence.NewGormRecordStore(db.DB), db.Close, nil
}

// withStore opens the store for the duration of fn
func (a *app) withStore(ctx context.Context, fn func(contentapp.RecordStore) error) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = closeStore() }()
	return fn(store)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "portfolioctl",
		Short:         "Administer portfolio content",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !a.verbose {
				return nil
			}
			log, err := logger.New(&logger.Config{Level: "debug", Format: "console", Output: "stderr"})
			if err != nil {
				return err
			}
			a.logger = log
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a config.toml (default: search ., ./backend, /app)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log service activity to stderr")

	root.AddCommand(newSkillsCmd(a), newSeedCmd(a), newHashPasswordCmd())
	return root
}

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
