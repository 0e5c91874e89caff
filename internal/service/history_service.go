package service

import (
	"context"
	"fmt"
	"os"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/logger"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/model"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/repository"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// HistoryService provides access to the translation history.
type HistoryService interface {
	// List returns history records newest-first.
	List(ctx context.Context, limit, offset int) ([]model.Translation, error)
	// Count returns the total number of records.
	Count(ctx context.Context) (int, error)
	// Get returns one record by ID.
	Get(ctx context.Context, id int64) (*model.Translation, error)
	// Delete removes one record and its audio artifacts, files included.
	Delete(ctx context.Context, id int64) error
	// Clear removes all records and artifacts. Returns the number of
	// deleted translations.
	Clear(ctx context.Context) (int64, error)
}

type historyService struct {
	translationRepo repository.TranslationRepository
	artifactRepo    repository.ArtifactRepository
}

// NewHistoryService creates a new history service.
func NewHistoryService(translationRepo repository.TranslationRepository, artifactRepo repository.ArtifactRepository) HistoryService {
	return &historyService{
		translationRepo: translationRepo,
		artifactRepo:    artifactRepo,
	}
}

func (s *historyService) List(ctx context.Context, limit, offset int) ([]model.Translation, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.translationRepo.List(ctx, limit, offset)
}

func (s *historyService) Count(ctx context.Context) (int, error) {
	return s.translationRepo.Count(ctx)
}

func (s *historyService) Get(ctx context.Context, id int64) (*model.Translation, error) {
	t, err := s.translationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *historyService) Delete(ctx context.Context, id int64) error {
	t, err := s.translationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrNotFound
	}

	paths, err := s.artifactRepo.DeleteByTranslation(ctx, id)
	if err != nil {
		return fmt.Errorf("delete artifacts: %w", err)
	}
	removeFiles(paths)

	if err := s.translationRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("history record deleted", "module", "service", "action", "delete", "resource", "history", "result", "ok", "id", id, "artifacts", len(paths))
	return nil
}

func (s *historyService) Clear(ctx context.Context) (int64, error) {
	paths, err := s.artifactRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear artifacts: %w", err)
	}
	removeFiles(paths)

	deleted, err := s.translationRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear translations: %w", err)
	}

	logger.Info("history cleared", "module", "service", "action", "clear", "resource", "history", "result", "ok", "translations", deleted, "artifacts", len(paths))
	return deleted, nil
}

// removeFiles unlinks artifact files, logging failures without aborting.
func removeFiles(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.Warn("artifact file remove failed", "module", "service", "action", "delete", "resource", "history", "result", "failed", "path", p, "error", err)
		}
	}
}
