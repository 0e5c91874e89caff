package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/language"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/logger"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/model"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/repository"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/ai"
)

// detectSnippetRunes caps how much text is sent for language identification.
const detectSnippetRunes = 200

// batchConcurrency limits parallel batch item translations.
const batchConcurrency = 5

// documentConcurrency limits parallel document block translations.
const documentConcurrency = 3

// TranslateRequest is a single translation job.
type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
	Mode       string `json:"mode"`
}

// TranslateResult is a finished translation with its history record.
type TranslateResult struct {
	Record       model.Translation `json:"record"`
	DetectedLang string            `json:"detectedLang,omitempty"`
}

// BatchItemResult is the outcome for one item of a batch. Items fail
// independently; Error is set instead of Result when the item failed.
type BatchItemResult struct {
	Index  int              `json:"index"`
	Result *TranslateResult `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// DocumentBlockInfo describes one paragraph of a document before translation.
type DocumentBlockInfo struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// DocumentBlockResult is one translated paragraph, delivered in completion
// order.
type DocumentBlockResult struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// TranslationService provides translation, detection, and document work.
type TranslationService interface {
	// Translate runs a single translation, detecting the source language
	// when the request asks for auto-detection, and records it in history.
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResult, error)
	// DetectLanguage identifies the language of the text, returning a
	// dictionary display name. Falls back to English when the reply cannot
	// be matched.
	DetectLanguage(ctx context.Context, text string) (string, error)
	// TranslateBatch translates several items concurrently. Items fail
	// independently; the slice is ordered by input index.
	TranslateBatch(ctx context.Context, reqs []TranslateRequest) ([]BatchItemResult, error)
	// TranslateDocument splits text into paragraph blocks and translates
	// them in parallel. Returns block info, a channel of results in
	// completion order, and an error channel.
	TranslateDocument(ctx context.Context, req TranslateRequest) ([]DocumentBlockInfo, <-chan DocumentBlockResult, <-chan error, error)
}

type translationService struct {
	translationRepo repository.TranslationRepository
	settingsRepo    repository.SettingsRepository
	rateLimiter     *ai.RateLimiter

	// newProvider is swappable for tests.
	newProvider func(ai.Config) (ai.Provider, error)
}

// NewTranslationService creates a new translation service.
func NewTranslationService(
	translationRepo repository.TranslationRepository,
	settingsRepo repository.SettingsRepository,
	rateLimiter *ai.RateLimiter,
) TranslationService {
	return &translationService{
		translationRepo: translationRepo,
		settingsRepo:    settingsRepo,
		rateLimiter:     rateLimiter,
		newProvider:     ai.NewProvider,
	}
}

func (s *translationService) Translate(ctx context.Context, req TranslateRequest) (*TranslateResult, error) {
	req, err := normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	cfg, err := s.getAIConfig(ctx)
	if err != nil {
		return nil, err
	}

	provider, err := s.newProvider(cfg)
	if err != nil {
		logger.Warn("ai provider create failed", "module", "service", "action", "translate", "resource", "translation", "result", "failed", "provider", cfg.Provider, "model", cfg.Model, "error", err)
		return nil, fmt.Errorf("create provider: %w", err)
	}

	sourceLang := req.SourceLang
	detected := false
	var detectedLang string
	if sourceLang == language.AutoDetect {
		detectedLang, err = s.detectWith(ctx, provider, req.Text)
		if err != nil {
			return nil, err
		}
		sourceLang = detectedLang
		detected = true
	}

	translated, err := s.completeOne(ctx, provider, req.Mode, sourceLang, req.TargetLang, req.Text)
	if err != nil {
		return nil, err
	}

	record, err := s.translationRepo.Create(ctx, model.Translation{
		SourceLang:     sourceLang,
		TargetLang:     req.TargetLang,
		Mode:           req.Mode,
		SourceText:     req.Text,
		TranslatedText: translated,
		Detected:       detected,
	})
	if err != nil {
		logger.Warn("translation history save failed", "module", "service", "action", "save", "resource", "translation", "result", "failed", "error", err)
		return nil, fmt.Errorf("save history: %w", err)
	}

	logger.Info("translation completed", "module", "service", "action", "translate", "resource", "translation", "result", "ok", "id", record.ID, "source", sourceLang, "target", req.TargetLang, "mode", req.Mode, "detected", detected)

	return &TranslateResult{Record: record, DetectedLang: detectedLang}, nil
}

func (s *translationService) DetectLanguage(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", invalidf("text is required")
	}

	cfg, err := s.getAIConfig(ctx)
	if err != nil {
		return "", err
	}

	provider, err := s.newProvider(cfg)
	if err != nil {
		return "", fmt.Errorf("create provider: %w", err)
	}

	return s.detectWith(ctx, provider, text)
}

// detectWith asks the provider to name the language of a snippet and matches
// the free-form reply against the dictionary.
func (s *translationService) detectWith(ctx context.Context, provider ai.Provider, text string) (string, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	reply, err := provider.Complete(ctx, ai.GetDetectPrompt(), snippet(text, detectSnippetRunes))
	if err != nil {
		logger.Warn("language detection failed", "module", "service", "action", "detect", "resource", "translation", "result", "failed", "error", err)
		return "", fmt.Errorf("%w: detect language: %v", ErrUpstream, err)
	}

	name, matched := language.Match(reply)
	if !matched {
		logger.Warn("language detection unmatched reply", "module", "service", "action", "detect", "resource", "translation", "result", "ok", "reply", snippet(reply, 80), "fallback", name)
	}
	return name, nil
}

func (s *translationService) TranslateBatch(ctx context.Context, reqs []TranslateRequest) ([]BatchItemResult, error) {
	if len(reqs) == 0 {
		return nil, invalidf("no items to translate")
	}

	cfg, err := s.getAIConfig(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]BatchItemResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			results[i] = s.batchItem(gctx, cfg, i, req)
			return nil
		})
	}
	// Goroutines report per-item failures through results, never an error.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("batch translation completed", "module", "service", "action", "translate", "resource", "translation", "result", "ok", "items", len(reqs))
	return results, nil
}

func (s *translationService) batchItem(ctx context.Context, cfg ai.Config, index int, req TranslateRequest) BatchItemResult {
	req, err := normalizeRequest(req)
	if err != nil {
		return BatchItemResult{Index: index, Error: err.Error()}
	}

	provider, err := s.newProvider(cfg)
	if err != nil {
		return BatchItemResult{Index: index, Error: fmt.Sprintf("create provider: %v", err)}
	}

	sourceLang := req.SourceLang
	detected := false
	var detectedLang string
	if sourceLang == language.AutoDetect {
		detectedLang, err = s.detectWith(ctx, provider, req.Text)
		if err != nil {
			return BatchItemResult{Index: index, Error: err.Error()}
		}
		sourceLang = detectedLang
		detected = true
	}

	translated, err := s.completeOne(ctx, provider, req.Mode, sourceLang, req.TargetLang, req.Text)
	if err != nil {
		return BatchItemResult{Index: index, Error: err.Error()}
	}

	record, err := s.translationRepo.Create(ctx, model.Translation{
		SourceLang:     sourceLang,
		TargetLang:     req.TargetLang,
		Mode:           req.Mode,
		SourceText:     req.Text,
		TranslatedText: translated,
		Detected:       detected,
	})
	if err != nil {
		return BatchItemResult{Index: index, Error: fmt.Sprintf("save history: %v", err)}
	}

	return BatchItemResult{Index: index, Result: &TranslateResult{Record: record, DetectedLang: detectedLang}}
}

func (s *translationService) TranslateDocument(ctx context.Context, req TranslateRequest) ([]DocumentBlockInfo, <-chan DocumentBlockResult, <-chan error, error) {
	req, err := normalizeRequest(req)
	if err != nil {
		return nil, nil, nil, err
	}
	if req.SourceLang == language.AutoDetect {
		return nil, nil, nil, invalidf("document translation requires an explicit source language")
	}

	blocks := ai.SplitBlocks(req.Text)
	if len(blocks) == 0 {
		return nil, nil, nil, invalidf("no blocks to translate")
	}

	blockInfos := make([]DocumentBlockInfo, len(blocks))
	for i, b := range blocks {
		blockInfos[i] = DocumentBlockInfo{Index: b.Index, Text: b.Text}
	}

	cfg, err := s.getAIConfig(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	resultCh := make(chan DocumentBlockResult)
	errCh := make(chan error, len(blocks))

	go func() {
		defer close(resultCh)
		defer close(errCh)

		var wg sync.WaitGroup
		sem := make(chan struct{}, documentConcurrency)

		var results []DocumentBlockResult
		var resultsMu sync.Mutex
		var hasError atomic.Bool

	blockLoop:
		for _, block := range blocks {
			if ctx.Err() != nil {
				break
			}

			if !block.NeedTranslate {
				// Separators keep their place but skip the model round trip.
				resultsMu.Lock()
				results = append(results, DocumentBlockResult{Index: block.Index, Text: block.Text})
				resultsMu.Unlock()
				continue
			}

			wg.Add(1)

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				wg.Done()
				break blockLoop
			}

			go func(b ai.Block) {
				defer wg.Done()
				defer func() { <-sem }()

				if err := s.rateLimiter.Wait(ctx); err != nil {
					select {
					case errCh <- fmt.Errorf("rate limit: %w", err):
						hasError.Store(true)
					default:
					}
					return
				}

				provider, err := s.newProvider(cfg)
				if err != nil {
					select {
					case errCh <- fmt.Errorf("create provider: %w", err):
						hasError.Store(true)
					default:
					}
					return
				}

				systemPrompt := ai.GetTranslatePrompt(req.Mode, req.SourceLang, req.TargetLang)
				translated, err := provider.Complete(ctx, systemPrompt, b.Text)
				if err != nil {
					select {
					case errCh <- fmt.Errorf("translate block %d: %w", b.Index, err):
						hasError.Store(true)
					default:
					}
					return
				}

				result := DocumentBlockResult{Index: b.Index, Text: translated}
				resultsMu.Lock()
				results = append(results, result)
				resultsMu.Unlock()

				select {
				case resultCh <- result:
				case <-ctx.Done():
					return
				}
			}(block)
		}

		wg.Wait()

		// Record the full document once everything succeeded.
		if !hasError.Load() && len(results) == len(blocks) && ctx.Err() == nil {
			sort.Slice(results, func(i, j int) bool {
				return results[i].Index < results[j].Index
			})

			parts := make([]string, len(results))
			for i, r := range results {
				parts[i] = r.Text
			}

			if _, err := s.translationRepo.Create(ctx, model.Translation{
				SourceLang:     req.SourceLang,
				TargetLang:     req.TargetLang,
				Mode:           req.Mode,
				SourceText:     req.Text,
				TranslatedText: strings.Join(parts, "\n\n"),
			}); err != nil {
				logger.Warn("document history save failed", "module", "service", "action", "save", "resource", "translation", "result", "failed", "error", err)
			}
		}
	}()

	logger.Info("document translation started", "module", "service", "action", "translate", "resource", "translation", "result", "ok", "blocks", len(blocks), "source", req.SourceLang, "target", req.TargetLang)

	return blockInfos, resultCh, errCh, nil
}

// completeOne translates one piece of text with rate limiting applied.
func (s *translationService) completeOne(ctx context.Context, provider ai.Provider, mode, sourceLang, targetLang, text string) (string, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	systemPrompt := ai.GetTranslatePrompt(mode, sourceLang, targetLang)
	translated, err := provider.Complete(ctx, systemPrompt, text)
	if err != nil {
		logger.Warn("translation request failed", "module", "service", "action", "translate", "resource", "translation", "result", "failed", "source", sourceLang, "target", targetLang, "error", err)
		return "", fmt.Errorf("%w: translate: %v", ErrUpstream, err)
	}
	return strings.TrimSpace(translated), nil
}

func (s *translationService) getAIConfig(ctx context.Context) (ai.Config, error) {
	var cfg ai.Config

	// Batch fetch all ai.* settings in a single query
	settings, err := s.settingsRepo.GetByPrefix(ctx, "ai.")
	if err != nil {
		return cfg, fmt.Errorf("get AI settings: %w", err)
	}

	settingsMap := make(map[string]string, len(settings))
	for _, st := range settings {
		settingsMap[st.Key] = st.Value
	}

	cfg.Provider = settingsMap[KeyAIProvider]
	if cfg.Provider == "" {
		cfg.Provider = ai.ProviderGemini
	}

	cfg.APIKey = settingsMap[KeyAIAPIKey]
	if cfg.APIKey == "" {
		return cfg, invalidf("AI API key is not configured")
	}

	cfg.BaseURL = settingsMap[KeyAIBaseURL]

	cfg.Model = settingsMap[KeyAIModel]
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	return cfg, nil
}

// normalizeRequest validates a request and fills mode and language defaults.
func normalizeRequest(req TranslateRequest) (TranslateRequest, error) {
	if strings.TrimSpace(req.Text) == "" {
		return req, invalidf("text is required")
	}
	if req.Mode == "" {
		req.Mode = ai.ModeStandard
	}
	if !ai.IsValidMode(req.Mode) {
		return req, invalidf("unknown translation mode %q", req.Mode)
	}
	if req.SourceLang == "" {
		req.SourceLang = language.AutoDetect
	}
	if req.SourceLang != language.AutoDetect && !language.IsSupported(req.SourceLang) {
		return req, invalidf("unsupported source language %q", req.SourceLang)
	}
	if !language.IsSupported(req.TargetLang) {
		return req, invalidf("unsupported target language %q", req.TargetLang)
	}
	return req, nil
}

// snippet caps s at n runes.
func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
