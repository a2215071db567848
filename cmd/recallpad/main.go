package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"recallpad/internal/backup"
	"recallpad/internal/config"
	"recallpad/internal/storage"
	"recallpad/internal/web"
)

func main() {
	defaults := config.Default()

	flags := pflag.NewFlagSet("recallpad", pflag.ExitOnError)
	configPath := flags.String("config", "config.yaml", "Path to the YAML config file")
	flags.String("addr", defaults.Addr, "HTTP listen address")
	flags.String("db", defaults.DB, "Path to the SQLite database file")
	flags.String("backup_dir", defaults.BackupDir, "Directory holding JSON backups")
	doBackup := flags.Bool("backup", false, "Dump the database to a JSON backup and exit")
	doRestore := flags.Bool("restore", false, "Restore the database from the JSON backup and exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := storage.Open(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DB)

	switch {
	case *doBackup:
		if err := backup.Run(db, cfg.BackupDir); err != nil {
			log.Fatalf("Backup failed: %v", err)
		}
	case *doRestore:
		if err := backup.Restore(db, cfg.BackupDir); err != nil {
			log.Fatalf("Restore failed: %v", err)
		}
	default:
		server := web.NewServer(db, cfg.NotesPerPage, cfg.CardsPerPage)
		slog.Info("listening", "addr", cfg.Addr)
		if err := http.ListenAndServe(cfg.Addr, server); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}
}
