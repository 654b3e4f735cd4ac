package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"shareit/internal/config"
	"shareit/internal/database"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		configPath = flag.String("config", "", "path to config.yaml; flags below override it")
		dbPath     = flag.String("db", "./data/shareit.db", "path to sqlite db")
		dir        = flag.String("dir", "./data/backups", "backup directory")
		retention  = flag.Int("retention", 0, "remove snapshots older than this many days (0 keeps all)")
	)
	flag.Parse()

	backupCfg := config.BackupConfig{StoragePath: *dir, RetentionDays: *retention}
	path := *dbPath
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		backupCfg = cfg.Backup
		path = cfg.Database.Path
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "db":
				path = *dbPath
			case "dir":
				backupCfg.StoragePath = *dir
			case "retention":
				backupCfg.RetentionDays = *retention
			}
		})
	}

	db, err := database.NewDB(path, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	svc := database.NewBackupService(db, backupCfg, &logger)
	out, err := svc.PerformBackup(ctx)
	if err != nil {
		return err
	}
	svc.CleanupOldBackups(time.Now())

	fmt.Printf("done: %s\n", out)
	return nil
}
