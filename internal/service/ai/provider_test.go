package ai_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/ai"
)

func TestNewProvider_Validation(t *testing.T) {
	_, err := ai.NewProvider(ai.Config{Provider: ai.ProviderGemini, Model: "gemini-1.5-flash"})
	require.ErrorIs(t, err, ai.ErrMissingAPIKey)

	_, err = ai.NewProvider(ai.Config{Provider: ai.ProviderGemini, APIKey: "key"})
	require.ErrorIs(t, err, ai.ErrMissingModel)

	_, err = ai.NewProvider(ai.Config{Provider: "watson", APIKey: "key", Model: "m"})
	require.ErrorIs(t, err, ai.ErrInvalidProvider)

	_, err = ai.NewProvider(ai.Config{Provider: ai.ProviderCompatible, APIKey: "key", Model: "m"})
	require.ErrorIs(t, err, ai.ErrMissingBaseURL)
}

func TestNewProvider_Names(t *testing.T) {
	tests := []struct {
		cfg  ai.Config
		name string
	}{
		{ai.Config{Provider: ai.ProviderGemini, APIKey: "k", Model: "m"}, ai.ProviderGemini},
		{ai.Config{Provider: ai.ProviderOpenAI, APIKey: "k", Model: "m"}, ai.ProviderOpenAI},
		{ai.Config{Provider: ai.ProviderAnthropic, APIKey: "k", Model: "m"}, ai.ProviderAnthropic},
		{ai.Config{Provider: ai.ProviderCompatible, APIKey: "k", BaseURL: "http://localhost", Model: "m"}, ai.ProviderCompatible},
	}

	for _, tt := range tests {
		p, err := ai.NewProvider(tt.cfg)
		require.NoError(t, err)
		require.Equal(t, tt.name, p.Name())
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	rl := ai.NewRateLimiter(0)
	require.Equal(t, ai.DefaultRateLimit, rl.GetLimit())

	rl.SetLimit(25)
	require.Equal(t, 25, rl.GetLimit())

	rl.SetLimit(-1)
	require.Equal(t, ai.DefaultRateLimit, rl.GetLimit())
}

func TestRateLimiter_WaitCancelled(t *testing.T) {
	rl := ai.NewRateLimiter(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Burst token may let one call through; a cancelled context must fail
	// once tokens are exhausted.
	_ = rl.Wait(context.Background())
	err := rl.Wait(ctx)
	require.Error(t, err)
}

func TestRateLimiter_WaitAllowsBurst(t *testing.T) {
	rl := ai.NewRateLimiter(100)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 10; i++ {
		require.NoError(t, rl.Wait(ctx))
	}
}
