package service_test

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/model"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/ai"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/speech"
)

// settingsRepoStub is a map-backed settings repository.
type settingsRepoStub struct {
	mu   sync.Mutex
	data map[string]string
}

func newSettingsRepoStub() *settingsRepoStub {
	return &settingsRepoStub{data: make(map[string]string)}
}

// newConfiguredSettingsRepo returns a stub with a working AI configuration.
func newConfiguredSettingsRepo() *settingsRepoStub {
	repo := newSettingsRepoStub()
	repo.data["ai.provider"] = ai.ProviderGemini
	repo.data["ai.api_key"] = "test-api-key-1234567890"
	repo.data["ai.model"] = "gemini-1.5-flash"
	return repo
}

func (r *settingsRepoStub) Get(ctx context.Context, key string) (*model.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	val, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return &model.Setting{Key: key, Value: val, UpdatedAt: time.Now()}, nil
}

func (r *settingsRepoStub) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
	return nil
}

func (r *settingsRepoStub) GetByPrefix(ctx context.Context, prefix string) ([]model.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Setting
	for k, v := range r.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, model.Setting{Key: k, Value: v})
		}
	}
	return out, nil
}

func (r *settingsRepoStub) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

// translationRepoStub is an in-memory translation repository.
type translationRepoStub struct {
	mu        sync.Mutex
	nextID    int64
	records   []model.Translation
	createErr error
}

func (r *translationRepoStub) Create(ctx context.Context, t model.Translation) (model.Translation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return model.Translation{}, r.createErr
	}
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = time.Now().UTC()
	r.records = append(r.records, t)
	return t, nil
}

func (r *translationRepoStub) GetByID(ctx context.Context, id int64) (*model.Translation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			t := r.records[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (r *translationRepoStub) List(ctx context.Context, limit, offset int) ([]model.Translation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Translation
	for i := len(r.records) - 1; i >= 0; i-- {
		out = append(out, r.records[i])
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *translationRepoStub) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records), nil
}

func (r *translationRepoStub) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *translationRepoStub) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.records))
	r.records = nil
	return n, nil
}

// artifactRepoStub is an in-memory artifact repository.
type artifactRepoStub struct {
	mu        sync.Mutex
	artifacts []model.AudioArtifact
}

func (r *artifactRepoStub) Save(ctx context.Context, a model.AudioArtifact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.CreatedAt = time.Now().UTC()
	r.artifacts = append(r.artifacts, a)
	return nil
}

func (r *artifactRepoStub) Get(ctx context.Context, id string) (*model.AudioArtifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.artifacts {
		if r.artifacts[i].ID == id {
			a := r.artifacts[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (r *artifactRepoStub) ListByTranslation(ctx context.Context, translationID int64) ([]model.AudioArtifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.AudioArtifact
	for _, a := range r.artifacts {
		if a.TranslationID == translationID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *artifactRepoStub) DeleteByTranslation(ctx context.Context, translationID int64) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var paths []string
	var kept []model.AudioArtifact
	for _, a := range r.artifacts {
		if a.TranslationID == translationID {
			paths = append(paths, a.Path)
		} else {
			kept = append(kept, a)
		}
	}
	r.artifacts = kept
	return paths, nil
}

func (r *artifactRepoStub) DeleteAll(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var paths []string
	for _, a := range r.artifacts {
		paths = append(paths, a.Path)
	}
	r.artifacts = nil
	return paths, nil
}

// providerStub answers completions from a function.
type providerStub struct {
	complete func(systemPrompt, content string) (string, error)
}

func (p *providerStub) Test(ctx context.Context) (string, error) {
	return "Hello!", nil
}

func (p *providerStub) Name() string {
	return "stub"
}

func (p *providerStub) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	return p.complete(systemPrompt, content)
}

func stubProviderFactory(complete func(systemPrompt, content string) (string, error)) func(ai.Config) (ai.Provider, error) {
	return func(ai.Config) (ai.Provider, error) {
		return &providerStub{complete: complete}, nil
	}
}

// recognizerStub records the transcription calls it receives.
type recognizerStub struct {
	text     string
	err      error
	language string
	filename string
}

func (r *recognizerStub) Transcribe(ctx context.Context, audio io.Reader, filename, language string) (string, error) {
	r.filename = filename
	r.language = language
	if r.err != nil {
		return "", r.err
	}
	return r.text, nil
}

func (r *recognizerStub) Name() string { return "stub" }

// synthesizerStub records the text it is asked to speak.
type synthesizerStub struct {
	data     []byte
	err      error
	text     string
	langCode string
}

func (s *synthesizerStub) Synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	s.text = text
	s.langCode = langCode
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

func (s *synthesizerStub) Name() string { return "stub" }

func stubRecognizerFactory(r *recognizerStub) func(speech.Config) (speech.Recognizer, error) {
	return func(speech.Config) (speech.Recognizer, error) { return r, nil }
}

func stubSynthesizerFactory(s *synthesizerStub) func(speech.Config) (speech.Synthesizer, error) {
	return func(speech.Config) (speech.Synthesizer, error) { return s, nil }
}
