// ABOUTME: Migration utility that upgrades a callbook SQLite file in place
// ABOUTME: Backs up the file, then loads every collection so legacy records are rewritten

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/callbook/config"
	"github.com/harperreed/callbook/db"
	"github.com/harperreed/callbook/store"
)

func main() {
	dbPath := flag.String("db", "", "Path to database file (default: configured SQLite path)")
	dryRun := flag.Bool("dry-run", false, "List stored keys without changing anything")
	backup := flag.Bool("backup", true, "Create backup before migration")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "migrate", Level: log.InfoLevel})

	path := *dbPath
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			logger.Fatal("failed to load config", "err", err)
		}
		path = cfg.SQLitePath()
	}

	if err := migrate(context.Background(), logger, path, *dryRun, *backup); err != nil {
		logger.Fatal("migration failed", "err", err)
	}
	logger.Info("migration completed successfully")
}

func migrate(ctx context.Context, logger *log.Logger, dbPath string, dryRun, createBackup bool) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("database file does not exist: %s", dbPath)
	}

	if createBackup && !dryRun {
		backupPath := fmt.Sprintf("%s.backup.%s", dbPath, time.Now().Format("20060102-150405"))
		input, err := os.ReadFile(dbPath)
		if err != nil {
			return fmt.Errorf("failed to read database: %w", err)
		}
		if err := os.WriteFile(backupPath, input, 0600); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
		logger.Info("backup created", "path", backupPath)
	}

	kv, err := db.OpenKV(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = kv.Close() }()

	keys, err := kv.Keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	logger.Info("stored keys", "keys", keys)

	if dryRun {
		logger.Info("dry run, no changes made")
		return nil
	}

	st := store.New(kv, store.WithLogger(logger.WithPrefix("store")))
	defer func() { _ = st.Close() }()
	if err := st.Init(ctx); err != nil {
		return err
	}

	snap := st.Export(ctx)
	logger.Info("collections loaded",
		"contacts", len(snap.Contacts),
		"notes", len(snap.Notes),
		"reminders", len(snap.Reminders),
		"orders", len(snap.Orders),
		"folders", len(snap.Folders))
	return nil
}
