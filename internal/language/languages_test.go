package language_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/language"
)

func TestAll_ReturnsCopy(t *testing.T) {
	first := language.All()
	require.NotEmpty(t, first)

	first[0].Name = "mutated"
	second := language.All()
	require.Equal(t, "English", second[0].Name, "mutating the returned slice must not affect the dictionary")
}

func TestIsSupported(t *testing.T) {
	require.True(t, language.IsSupported("English"))
	require.True(t, language.IsSupported("Chinese (Simplified)"))
	require.False(t, language.IsSupported("Klingon"))
	require.False(t, language.IsSupported("english"), "names are case sensitive")
	require.False(t, language.IsSupported(language.AutoDetect), "auto-detect is a sentinel, not a language")
}

func TestCodeFor(t *testing.T) {
	require.Equal(t, "fr", language.CodeFor("French"))
	require.Equal(t, "zh-cn", language.CodeFor("Chinese (Simplified)"))
	require.Equal(t, "fil", language.CodeFor("Filipino"))
	require.Equal(t, "en", language.CodeFor("Klingon"), "unknown names fall back to en")
}

func TestSpeechCodeFor(t *testing.T) {
	// The TTS endpoint wants plain zh for simplified Chinese
	require.Equal(t, "zh", language.SpeechCodeFor("Chinese (Simplified)"))
	require.Equal(t, "zh-tw", language.SpeechCodeFor("Chinese (Traditional)"))
	require.Equal(t, "de", language.SpeechCodeFor("German"))
}

func TestMatch_FreeFormReplies(t *testing.T) {
	tests := []struct {
		reply string
		want  string
		ok    bool
	}{
		{"French", "French", true},
		{"The text is written in Spanish.", "Spanish", true},
		{"that looks like JAPANESE to me", "Japanese", true},
		{"Chinese (Simplified)", "Chinese (Simplified)", true},
		{"no idea", "English", false},
		{"", "English", false},
	}

	for _, tt := range tests {
		got, ok := language.Match(tt.reply)
		require.Equal(t, tt.want, got, "reply %q", tt.reply)
		require.Equal(t, tt.ok, ok, "reply %q", tt.reply)
	}
}
