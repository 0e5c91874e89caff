package service

import (
	"context"
	"fmt"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/repository"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/ai"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/speech"
)

// AISettings holds the AI configuration.
type AISettings struct {
	Provider  string `json:"provider"`
	APIKey    string `json:"apiKey"`
	BaseURL   string `json:"baseUrl"`
	Model     string `json:"model"`
	RateLimit int    `json:"rateLimit"`
}

// SpeechSettings holds the speech configuration.
type SpeechSettings struct {
	Provider string `json:"provider"`
	STTModel string `json:"sttModel"`
	TTSModel string `json:"ttsModel"`
	Voice    string `json:"voice"`
}

// Setting keys
const (
	KeyAIProvider  = "ai.provider"
	KeyAIAPIKey    = "ai.api_key"
	KeyAIBaseURL   = "ai.base_url"
	KeyAIModel     = "ai.model"
	KeyAIRateLimit = "ai.rate_limit"

	KeySpeechProvider = "speech.provider"
	KeySpeechSTTModel = "speech.stt_model"
	KeySpeechTTSModel = "speech.tts_model"
	KeySpeechVoice    = "speech.voice"
)

// DefaultModel is used when no model has been configured.
const DefaultModel = "gemini-1.5-flash"

// SettingsService provides settings management.
type SettingsService interface {
	// GetAISettings returns the AI configuration with masked API keys.
	GetAISettings(ctx context.Context) (*AISettings, error)
	// SetAISettings updates the AI configuration.
	// An empty or masked apiKey keeps the existing key.
	SetAISettings(ctx context.Context, settings *AISettings) error
	// TestAI tests the AI connection with the given configuration.
	TestAI(ctx context.Context, provider, apiKey, baseURL, model string) (string, error)
	// GetSpeechSettings returns the speech configuration.
	GetSpeechSettings(ctx context.Context) (*SpeechSettings, error)
	// SetSpeechSettings updates the speech configuration.
	SetSpeechSettings(ctx context.Context, settings *SpeechSettings) error
}

type settingsService struct {
	repo        repository.SettingsRepository
	rateLimiter *ai.RateLimiter
}

// NewSettingsService creates a new settings service. The rate limiter is
// updated in place when the configured limit changes.
func NewSettingsService(repo repository.SettingsRepository, rateLimiter *ai.RateLimiter) SettingsService {
	return &settingsService{repo: repo, rateLimiter: rateLimiter}
}

// GetAISettings returns the AI configuration with masked API keys.
func (s *settingsService) GetAISettings(ctx context.Context) (*AISettings, error) {
	settings := &AISettings{
		Provider:  ai.ProviderGemini, // default
		Model:     DefaultModel,
		RateLimit: ai.DefaultRateLimit,
	}

	if val, err := s.getString(ctx, KeyAIProvider); err == nil && val != "" {
		settings.Provider = val
	}
	if val, err := s.getString(ctx, KeyAIAPIKey); err == nil && val != "" {
		settings.APIKey = maskAPIKey(val)
	}
	if val, err := s.getString(ctx, KeyAIBaseURL); err == nil {
		settings.BaseURL = val
	}
	if val, err := s.getString(ctx, KeyAIModel); err == nil && val != "" {
		settings.Model = val
	}
	if val, err := s.getInt(ctx, KeyAIRateLimit); err == nil && val > 0 {
		settings.RateLimit = val
	}

	return settings, nil
}

// SetAISettings updates the AI configuration.
func (s *settingsService) SetAISettings(ctx context.Context, settings *AISettings) error {
	if settings.Provider != "" {
		if err := s.repo.Set(ctx, KeyAIProvider, settings.Provider); err != nil {
			return fmt.Errorf("set provider: %w", err)
		}
	}
	if err := s.setAPIKey(ctx, KeyAIAPIKey, settings.APIKey); err != nil {
		return fmt.Errorf("set api key: %w", err)
	}
	if err := s.repo.Set(ctx, KeyAIBaseURL, settings.BaseURL); err != nil {
		return fmt.Errorf("set base url: %w", err)
	}
	if err := s.repo.Set(ctx, KeyAIModel, settings.Model); err != nil {
		return fmt.Errorf("set model: %w", err)
	}
	if settings.RateLimit > 0 {
		if err := s.repo.Set(ctx, KeyAIRateLimit, fmt.Sprintf("%d", settings.RateLimit)); err != nil {
			return fmt.Errorf("set rate limit: %w", err)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.SetLimit(settings.RateLimit)
		}
	}
	return nil
}

// TestAI tests the AI connection with the given configuration.
func (s *settingsService) TestAI(ctx context.Context, provider, apiKey, baseURL, model string) (string, error) {
	// A masked key means "use the stored one"
	if isMaskedKey(apiKey) {
		storedKey, err := s.getString(ctx, KeyAIAPIKey)
		if err != nil {
			return "", fmt.Errorf("get stored api key: %w", err)
		}
		apiKey = storedKey
	}

	cfg := ai.Config{
		Provider: provider,
		APIKey:   apiKey,
		BaseURL:  baseURL,
		Model:    model,
	}

	p, err := ai.NewProvider(cfg)
	if err != nil {
		return "", err
	}

	return p.Test(ctx)
}

// GetSpeechSettings returns the speech configuration.
func (s *settingsService) GetSpeechSettings(ctx context.Context) (*SpeechSettings, error) {
	settings := &SpeechSettings{
		Provider: speech.ProviderGoogle, // default, needs no key
		STTModel: speech.DefaultSTTModel,
		TTSModel: speech.DefaultTTSModel,
		Voice:    speech.DefaultVoice,
	}

	if val, err := s.getString(ctx, KeySpeechProvider); err == nil && val != "" {
		settings.Provider = val
	}
	if val, err := s.getString(ctx, KeySpeechSTTModel); err == nil && val != "" {
		settings.STTModel = val
	}
	if val, err := s.getString(ctx, KeySpeechTTSModel); err == nil && val != "" {
		settings.TTSModel = val
	}
	if val, err := s.getString(ctx, KeySpeechVoice); err == nil && val != "" {
		settings.Voice = val
	}

	return settings, nil
}

// SetSpeechSettings updates the speech configuration.
func (s *settingsService) SetSpeechSettings(ctx context.Context, settings *SpeechSettings) error {
	if settings.Provider != "" {
		if settings.Provider != speech.ProviderGoogle && settings.Provider != speech.ProviderOpenAI {
			return invalidf("unknown speech provider %q", settings.Provider)
		}
		if err := s.repo.Set(ctx, KeySpeechProvider, settings.Provider); err != nil {
			return fmt.Errorf("set provider: %w", err)
		}
	}
	if err := s.repo.Set(ctx, KeySpeechSTTModel, settings.STTModel); err != nil {
		return fmt.Errorf("set stt model: %w", err)
	}
	if err := s.repo.Set(ctx, KeySpeechTTSModel, settings.TTSModel); err != nil {
		return fmt.Errorf("set tts model: %w", err)
	}
	if err := s.repo.Set(ctx, KeySpeechVoice, settings.Voice); err != nil {
		return fmt.Errorf("set voice: %w", err)
	}
	return nil
}

// maskAPIKey returns a masked version of the API key for display.
func maskAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 8 {
		return "***"
	}
	// Find prefix (e.g., "sk-" for OpenAI)
	prefixEnd := 0
	for i, c := range apiKey {
		if c == '-' {
			prefixEnd = i + 1
			break
		}
		if i >= 4 {
			break
		}
	}
	prefix := apiKey[:prefixEnd]
	suffix := apiKey[len(apiKey)-3:]
	return prefix + "***" + suffix
}

// isMaskedKey checks if a string looks like a masked API key.
func isMaskedKey(key string) bool {
	if len(key) == 0 || len(key) >= 20 {
		return false
	}
	for i := 0; i <= len(key)-3; i++ {
		if key[i:i+3] == "***" {
			return true
		}
	}
	return false
}

// getString gets a plain string value from settings.
func (s *settingsService) getString(ctx context.Context, key string) (string, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return "", nil
	}
	return setting.Value, nil
}

// getInt gets an integer value from settings.
func (s *settingsService) getInt(ctx context.Context, key string) (int, error) {
	val, err := s.getString(ctx, key)
	if err != nil || val == "" {
		return 0, err
	}
	var result int
	_, err = fmt.Sscanf(val, "%d", &result)
	return result, err
}

// setAPIKey sets an API key.
// If the value is empty or looks like a masked key, it keeps the existing key.
func (s *settingsService) setAPIKey(ctx context.Context, key, value string) error {
	if value == "" || isMaskedKey(value) {
		return nil
	}
	return s.repo.Set(ctx, key, value)
}
