package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/language"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/logger"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/model"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/repository"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/ai"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/speech"
)

// SpeechService provides speech recognition, synthesis, and audio artifacts.
type SpeechService interface {
	// Transcribe converts uploaded audio to text. languageName is an
	// optional dictionary display name used as a recognition hint.
	Transcribe(ctx context.Context, audio io.Reader, filename, languageName string) (string, error)
	// Synthesize returns MP3 bytes for the text in the named language.
	// Markup is stripped before synthesis.
	Synthesize(ctx context.Context, text, languageName string) ([]byte, error)
	// Speak synthesizes one side of a history record and stores the result
	// as a downloadable artifact. role is source or translation.
	Speak(ctx context.Context, translationID int64, role string) (*model.AudioArtifact, error)
	// GetArtifact returns artifact metadata by ID.
	GetArtifact(ctx context.Context, id string) (*model.AudioArtifact, error)
	// OpenArtifact opens the artifact's audio file for reading.
	OpenArtifact(ctx context.Context, id string) (*model.AudioArtifact, io.ReadCloser, error)
}

type speechService struct {
	translationRepo repository.TranslationRepository
	artifactRepo    repository.ArtifactRepository
	settingsRepo    repository.SettingsRepository
	audioDir        string

	// Factories are swappable for tests.
	newRecognizer  func(speech.Config) (speech.Recognizer, error)
	newSynthesizer func(speech.Config) (speech.Synthesizer, error)
}

// NewSpeechService creates a new speech service. Audio artifacts are written
// under audioDir.
func NewSpeechService(
	translationRepo repository.TranslationRepository,
	artifactRepo repository.ArtifactRepository,
	settingsRepo repository.SettingsRepository,
	audioDir string,
) SpeechService {
	return &speechService{
		translationRepo: translationRepo,
		artifactRepo:    artifactRepo,
		settingsRepo:    settingsRepo,
		audioDir:        audioDir,
		newRecognizer:   speech.NewRecognizer,
		newSynthesizer:  speech.NewSynthesizer,
	}
}

func (s *speechService) Transcribe(ctx context.Context, audio io.Reader, filename, languageName string) (string, error) {
	cfg, err := s.getSpeechConfig(ctx)
	if err != nil {
		return "", err
	}

	recognizer, err := s.newRecognizer(cfg)
	if err != nil {
		logger.Warn("speech recognizer create failed", "module", "service", "action", "transcribe", "resource", "speech", "result", "failed", "error", err)
		return "", invalidf("speech recognition is not configured: %v", err)
	}

	hint := ""
	if languageName != "" && languageName != language.AutoDetect {
		hint = language.CodeFor(languageName)
	}

	text, err := recognizer.Transcribe(ctx, audio, filename, hint)
	if err != nil {
		logger.Warn("transcription failed", "module", "service", "action", "transcribe", "resource", "speech", "result", "failed", "error", err)
		return "", fmt.Errorf("%w: transcribe: %v", ErrUpstream, err)
	}
	if text == "" {
		return "", invalidf("no speech recognized in audio")
	}

	logger.Info("transcription completed", "module", "service", "action", "transcribe", "resource", "speech", "result", "ok", "recognizer", recognizer.Name(), "chars", len(text))
	return text, nil
}

func (s *speechService) Synthesize(ctx context.Context, text, languageName string) ([]byte, error) {
	cleaned := ai.CleanForSpeech(text)
	if cleaned == "" {
		return nil, invalidf("no text to synthesize")
	}

	cfg, err := s.getSpeechConfig(ctx)
	if err != nil {
		return nil, err
	}

	synthesizer, err := s.newSynthesizer(cfg)
	if err != nil {
		logger.Warn("speech synthesizer create failed", "module", "service", "action", "synthesize", "resource", "speech", "result", "failed", "error", err)
		return nil, invalidf("speech synthesis is not configured: %v", err)
	}

	data, err := synthesizer.Synthesize(ctx, cleaned, language.SpeechCodeFor(languageName))
	if err != nil {
		logger.Warn("synthesis failed", "module", "service", "action", "synthesize", "resource", "speech", "result", "failed", "error", err)
		return nil, fmt.Errorf("%w: synthesize: %v", ErrUpstream, err)
	}

	logger.Info("synthesis completed", "module", "service", "action", "synthesize", "resource", "speech", "result", "ok", "synthesizer", synthesizer.Name(), "bytes", len(data))
	return data, nil
}

func (s *speechService) Speak(ctx context.Context, translationID int64, role string) (*model.AudioArtifact, error) {
	if role != model.ArtifactRoleSource && role != model.ArtifactRoleTranslation {
		return nil, invalidf("unknown audio role %q", role)
	}

	t, err := s.translationRepo.GetByID(ctx, translationID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}

	text, lang := t.SourceText, t.SourceLang
	if role == model.ArtifactRoleTranslation {
		text, lang = t.TranslatedText, t.TargetLang
	}

	// Reuse an existing artifact for the same side if one was already made.
	existing, err := s.artifactRepo.ListByTranslation(ctx, translationID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Role == role {
			return &existing[i], nil
		}
	}

	data, err := s.Synthesize(ctx, text, lang)
	if err != nil {
		return nil, err
	}

	artifact := model.AudioArtifact{
		ID:            uuid.NewString(),
		TranslationID: translationID,
		Role:          role,
		Language:      lang,
		Path:          filepath.Join(s.audioDir, uuid.NewString()+".mp3"),
	}

	if err := os.WriteFile(artifact.Path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write audio file: %w", err)
	}

	if err := s.artifactRepo.Save(ctx, artifact); err != nil {
		os.Remove(artifact.Path)
		return nil, fmt.Errorf("save artifact: %w", err)
	}

	logger.Info("audio artifact created", "module", "service", "action", "synthesize", "resource", "speech", "result", "ok", "id", artifact.ID, "translation_id", translationID, "role", role)
	return &artifact, nil
}

func (s *speechService) GetArtifact(ctx context.Context, id string) (*model.AudioArtifact, error) {
	a, err := s.artifactRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *speechService) OpenArtifact(ctx context.Context, id string) (*model.AudioArtifact, io.ReadCloser, error) {
	a, err := s.GetArtifact(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(a.Path)
	if os.IsNotExist(err) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open audio file: %w", err)
	}
	return a, f, nil
}

func (s *speechService) getSpeechConfig(ctx context.Context) (speech.Config, error) {
	var cfg speech.Config

	settings, err := s.settingsRepo.GetByPrefix(ctx, "speech.")
	if err != nil {
		return cfg, fmt.Errorf("get speech settings: %w", err)
	}

	settingsMap := make(map[string]string, len(settings))
	for _, st := range settings {
		settingsMap[st.Key] = st.Value
	}

	cfg.Provider = settingsMap[KeySpeechProvider]
	cfg.STTModel = settingsMap[KeySpeechSTTModel]
	cfg.TTSModel = settingsMap[KeySpeechTTSModel]
	cfg.Voice = settingsMap[KeySpeechVoice]

	// Recognition and the OpenAI TTS backend share the AI key.
	if setting, err := s.settingsRepo.Get(ctx, KeyAIAPIKey); err == nil && setting != nil {
		cfg.APIKey = setting.Value
	}
	if setting, err := s.settingsRepo.Get(ctx, KeyAIBaseURL); err == nil && setting != nil {
		cfg.BaseURL = setting.Value
	}

	return cfg, nil
}
