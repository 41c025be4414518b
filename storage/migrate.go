package storage

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed migrations/*
var migrationsFS embed.FS

func (p ProviderSQL) Migrate() {
	migrationsDir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		p.logger.Error("failed to get embedded migrations directory", "error", err)
		return
	}
	files, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		p.logger.Error("failed to read migrations directory", "error", err)
		return
	}
	for _, file := range files {
		if strings.HasSuffix(file.Name(), ".up.sql") {
			if err := p.executeMigration(migrationsDir, file.Name()); err != nil {
				p.logger.Error("failed to execute migration", "file", file.Name(), "error", err)
			}
		}
	}
}

func (p ProviderSQL) executeMigration(migrationsDir fs.FS, fileName string) error {
	migrationContent, err := fs.ReadFile(migrationsDir, fileName)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", fileName, err)
	}
	if _, err := p.db.Exec(string(migrationContent)); err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}
