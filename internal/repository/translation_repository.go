package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/model"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/snowflake"
)

type TranslationRepository interface {
	Create(ctx context.Context, t model.Translation) (model.Translation, error)
	GetByID(ctx context.Context, id int64) (*model.Translation, error)
	// List returns records newest-first.
	List(ctx context.Context, limit, offset int) ([]model.Translation, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

type translationRepository struct {
	db dbtx
}

func NewTranslationRepository(db dbtx) TranslationRepository {
	return &translationRepository{db: db}
}

func (r *translationRepository) Create(ctx context.Context, t model.Translation) (model.Translation, error) {
	t.ID = snowflake.NextID()
	t.CreatedAt = time.Now().UTC()

	detectedInt := 0
	if t.Detected {
		detectedInt = 1
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO translations (id, source_lang, target_lang, mode, source_text, translated_text, detected, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.SourceLang, t.TargetLang, t.Mode, t.SourceText, t.TranslatedText, detectedInt, formatTime(t.CreatedAt),
	)
	if err != nil {
		return model.Translation{}, err
	}
	return t, nil
}

func (r *translationRepository) GetByID(ctx context.Context, id int64) (*model.Translation, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, source_lang, target_lang, mode, source_text, translated_text, detected, created_at
		 FROM translations WHERE id = ?`,
		id,
	)
	t, err := scanTranslation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *translationRepository) List(ctx context.Context, limit, offset int) ([]model.Translation, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, source_lang, target_lang, mode, source_text, translated_text, detected, created_at
		 FROM translations ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Translation
	for rows.Next() {
		var t model.Translation
		var detectedInt int
		var createdAt string
		if err := rows.Scan(&t.ID, &t.SourceLang, &t.TargetLang, &t.Mode, &t.SourceText, &t.TranslatedText, &detectedInt, &createdAt); err != nil {
			return nil, err
		}
		t.Detected = detectedInt == 1
		t.CreatedAt, _ = parseTime(createdAt)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *translationRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM translations`).Scan(&count)
	return count, err
}

func (r *translationRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM translations WHERE id = ?`, id)
	return err
}

func (r *translationRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM translations`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanTranslation(row *sql.Row) (model.Translation, error) {
	var t model.Translation
	var detectedInt int
	var createdAt string

	err := row.Scan(&t.ID, &t.SourceLang, &t.TargetLang, &t.Mode, &t.SourceText, &t.TranslatedText, &detectedInt, &createdAt)
	if err != nil {
		return model.Translation{}, err
	}

	t.Detected = detectedInt == 1
	t.CreatedAt, _ = parseTime(createdAt)

	return t, nil
}
