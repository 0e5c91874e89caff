package ai_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/ai"
)

func TestIsValidMode(t *testing.T) {
	for _, mode := range []string{ai.ModeStandard, ai.ModeCreative, ai.ModeTechnical, ai.ModeFormal, ai.ModeVoice} {
		require.True(t, ai.IsValidMode(mode), "mode %s", mode)
	}
	require.False(t, ai.IsValidMode("poetic"))
	require.False(t, ai.IsValidMode(""))
}

func TestGetTranslatePrompt_ContainsLanguages(t *testing.T) {
	prompt := ai.GetTranslatePrompt(ai.ModeStandard, "English", "Japanese")
	require.Contains(t, prompt, "<source_language>English</source_language>")
	require.Contains(t, prompt, "<target_language>Japanese</target_language>")
	require.Contains(t, prompt, "Output ONLY the translated text")
}

func TestGetTranslatePrompt_ModeInstructions(t *testing.T) {
	standard := ai.GetTranslatePrompt(ai.ModeStandard, "English", "German")
	technical := ai.GetTranslatePrompt(ai.ModeTechnical, "English", "German")
	require.NotEqual(t, standard, technical, "modes should produce different prompts")
	require.Contains(t, technical, "terminology")
}

func TestGetTranslatePrompt_UnknownModeFallsBack(t *testing.T) {
	unknown := ai.GetTranslatePrompt("bogus", "English", "German")
	standard := ai.GetTranslatePrompt(ai.ModeStandard, "English", "German")
	require.Equal(t, standard, unknown)
}

func TestGetDetectPrompt(t *testing.T) {
	prompt := ai.GetDetectPrompt()
	require.Contains(t, prompt, "language")
	require.Contains(t, prompt, "ONLY the language name in English")
}
