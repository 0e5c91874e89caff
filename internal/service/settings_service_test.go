package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/service"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/ai"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/speech"
)

func TestSettingsService_GetAISettings_Defaults(t *testing.T) {
	svc := service.NewSettingsService(newSettingsRepoStub(), ai.NewRateLimiter(10))

	settings, err := svc.GetAISettings(context.Background())
	require.NoError(t, err)
	require.Equal(t, ai.ProviderGemini, settings.Provider)
	require.Equal(t, service.DefaultModel, settings.Model)
	require.Equal(t, ai.DefaultRateLimit, settings.RateLimit)
	require.Empty(t, settings.APIKey)
}

func TestSettingsService_SetAndGetAISettings_MasksKey(t *testing.T) {
	repo := newSettingsRepoStub()
	svc := service.NewSettingsService(repo, ai.NewRateLimiter(10))
	ctx := context.Background()

	err := svc.SetAISettings(ctx, &service.AISettings{
		Provider: ai.ProviderOpenAI,
		APIKey:   "sk-1234567890abcdef",
		Model:    "gpt-4o-mini",
	})
	require.NoError(t, err)

	settings, err := svc.GetAISettings(ctx)
	require.NoError(t, err)
	require.Equal(t, ai.ProviderOpenAI, settings.Provider)
	require.Equal(t, "gpt-4o-mini", settings.Model)
	require.Contains(t, settings.APIKey, "***")
	require.NotContains(t, settings.APIKey, "1234567890")

	// The stored key stays intact
	require.Equal(t, "sk-1234567890abcdef", repo.data[service.KeyAIAPIKey])
}

func TestSettingsService_SetAISettings_MaskedKeyKeepsStored(t *testing.T) {
	repo := newSettingsRepoStub()
	repo.data[service.KeyAIAPIKey] = "sk-originalsecretkey"
	svc := service.NewSettingsService(repo, ai.NewRateLimiter(10))
	ctx := context.Background()

	// Round-tripping the masked display value must not clobber the key
	err := svc.SetAISettings(ctx, &service.AISettings{
		Provider: ai.ProviderGemini,
		APIKey:   "sk-***key",
		Model:    "gemini-1.5-flash",
	})
	require.NoError(t, err)
	require.Equal(t, "sk-originalsecretkey", repo.data[service.KeyAIAPIKey])

	// Empty key keeps it too
	err = svc.SetAISettings(ctx, &service.AISettings{Provider: ai.ProviderGemini, APIKey: "", Model: "gemini-1.5-flash"})
	require.NoError(t, err)
	require.Equal(t, "sk-originalsecretkey", repo.data[service.KeyAIAPIKey])
}

func TestSettingsService_SetAISettings_UpdatesRateLimiter(t *testing.T) {
	limiter := ai.NewRateLimiter(10)
	svc := service.NewSettingsService(newSettingsRepoStub(), limiter)

	err := svc.SetAISettings(context.Background(), &service.AISettings{
		Provider:  ai.ProviderGemini,
		Model:     "gemini-1.5-flash",
		RateLimit: 3,
	})
	require.NoError(t, err)
	require.Equal(t, 3, limiter.GetLimit())
}

func TestSettingsService_TestAI_MissingKey(t *testing.T) {
	svc := service.NewSettingsService(newSettingsRepoStub(), ai.NewRateLimiter(10))

	_, err := svc.TestAI(context.Background(), ai.ProviderGemini, "", "", "gemini-1.5-flash")
	require.ErrorIs(t, err, ai.ErrMissingAPIKey)
}

func TestSettingsService_GetSpeechSettings_Defaults(t *testing.T) {
	svc := service.NewSettingsService(newSettingsRepoStub(), ai.NewRateLimiter(10))

	settings, err := svc.GetSpeechSettings(context.Background())
	require.NoError(t, err)
	require.Equal(t, speech.ProviderGoogle, settings.Provider)
	require.Equal(t, speech.DefaultSTTModel, settings.STTModel)
	require.Equal(t, speech.DefaultTTSModel, settings.TTSModel)
	require.Equal(t, speech.DefaultVoice, settings.Voice)
}

func TestSettingsService_SetSpeechSettings_RoundTrip(t *testing.T) {
	svc := service.NewSettingsService(newSettingsRepoStub(), ai.NewRateLimiter(10))
	ctx := context.Background()

	err := svc.SetSpeechSettings(ctx, &service.SpeechSettings{
		Provider: speech.ProviderOpenAI,
		STTModel: "whisper-1",
		TTSModel: "tts-1-hd",
		Voice:    "nova",
	})
	require.NoError(t, err)

	settings, err := svc.GetSpeechSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, speech.ProviderOpenAI, settings.Provider)
	require.Equal(t, "tts-1-hd", settings.TTSModel)
	require.Equal(t, "nova", settings.Voice)
}

func TestSettingsService_SetSpeechSettings_InvalidProvider(t *testing.T) {
	svc := service.NewSettingsService(newSettingsRepoStub(), ai.NewRateLimiter(10))

	err := svc.SetSpeechSettings(context.Background(), &service.SpeechSettings{Provider: "siri"})
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestMaskAPIKey(t *testing.T) {
	require.Equal(t, "", service.MaskAPIKeyForTest(""))
	require.Equal(t, "***", service.MaskAPIKeyForTest("short"))

	masked := service.MaskAPIKeyForTest("sk-1234567890abcdef")
	require.Equal(t, "sk-***def", masked)
	require.True(t, service.IsMaskedKeyForTest(masked))
	require.False(t, service.IsMaskedKeyForTest("sk-1234567890abcdef"))
}
