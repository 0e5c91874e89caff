package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/model"
)

type ArtifactRepository interface {
	Save(ctx context.Context, a model.AudioArtifact) error
	Get(ctx context.Context, id string) (*model.AudioArtifact, error)
	ListByTranslation(ctx context.Context, translationID int64) ([]model.AudioArtifact, error)
	// DeleteByTranslation removes rows for one translation and returns the
	// file paths that backed them so the caller can unlink the files.
	DeleteByTranslation(ctx context.Context, translationID int64) ([]string, error)
	// DeleteAll removes every row and returns the backing file paths.
	DeleteAll(ctx context.Context) ([]string, error)
}

type artifactRepository struct {
	db dbtx
}

func NewArtifactRepository(db dbtx) ArtifactRepository {
	return &artifactRepository{db: db}
}

func (r *artifactRepository) Save(ctx context.Context, a model.AudioArtifact) error {
	var translationID any
	if a.TranslationID != 0 {
		translationID = a.TranslationID
	}
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO audio_artifacts (id, translation_id, role, language, path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, translationID, a.Role, a.Language, a.Path, formatTime(time.Now()),
	)
	return err
}

func (r *artifactRepository) Get(ctx context.Context, id string) (*model.AudioArtifact, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, COALESCE(translation_id, 0), role, language, path, created_at
		 FROM audio_artifacts WHERE id = ?`,
		id,
	)

	var a model.AudioArtifact
	var createdAt string
	err := row.Scan(&a.ID, &a.TranslationID, &a.Role, &a.Language, &a.Path, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.CreatedAt, _ = parseTime(createdAt)
	return &a, nil
}

func (r *artifactRepository) ListByTranslation(ctx context.Context, translationID int64) ([]model.AudioArtifact, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, COALESCE(translation_id, 0), role, language, path, created_at
		 FROM audio_artifacts WHERE translation_id = ? ORDER BY created_at`,
		translationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AudioArtifact
	for rows.Next() {
		var a model.AudioArtifact
		var createdAt string
		if err := rows.Scan(&a.ID, &a.TranslationID, &a.Role, &a.Language, &a.Path, &createdAt); err != nil {
			return nil, err
		}
		a.CreatedAt, _ = parseTime(createdAt)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *artifactRepository) DeleteByTranslation(ctx context.Context, translationID int64) ([]string, error) {
	paths, err := r.paths(ctx, `SELECT path FROM audio_artifacts WHERE translation_id = ?`, translationID)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM audio_artifacts WHERE translation_id = ?`, translationID); err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *artifactRepository) DeleteAll(ctx context.Context) ([]string, error) {
	paths, err := r.paths(ctx, `SELECT path FROM audio_artifacts`)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM audio_artifacts`); err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *artifactRepository) paths(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
