package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT)
const baseSchema = `
CREATE TABLE IF NOT EXISTS translations (
  id INTEGER PRIMARY KEY,
  source_lang TEXT NOT NULL,
  target_lang TEXT NOT NULL,
  mode TEXT NOT NULL,
  source_text TEXT NOT NULL,
  translated_text TEXT NOT NULL,
  created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_translations_created_at ON translations(created_at);

CREATE TABLE IF NOT EXISTS audio_artifacts (
  id TEXT PRIMARY KEY,
  translation_id INTEGER,
  role TEXT NOT NULL,
  language TEXT NOT NULL,
  path TEXT NOT NULL,
  created_at TEXT NOT NULL,
  FOREIGN KEY (translation_id) REFERENCES translations(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_audio_artifacts_translation_id ON audio_artifacts(translation_id);

CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: Add detected column to translations (source language was
	// auto-detected rather than chosen by the user).
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('translations') WHERE name = 'detected'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check detected column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE translations ADD COLUMN detected INTEGER NOT NULL DEFAULT 0`); err != nil {
			return fmt.Errorf("add detected column: %w", err)
		}
	}

	// Migration 2: Index on mode for history filtering.
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_translations_mode ON translations(mode)`); err != nil {
		return fmt.Errorf("create idx_translations_mode: %w", err)
	}

	return nil
}
