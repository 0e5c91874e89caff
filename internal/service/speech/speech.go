// Package speech abstracts the hosted speech services: recognition
// (audio in, text out) and synthesis (text in, MP3 out).
package speech

import (
	"context"
	"errors"
	"io"
)

// Recognizer converts recorded audio to text.
type Recognizer interface {
	// Transcribe converts the audio stream to text. language is an optional
	// ISO 639-1 hint for the source language.
	Transcribe(ctx context.Context, audio io.Reader, filename, language string) (string, error)
	// Name returns the backing service name.
	Name() string
}

// Synthesizer converts text to MP3 audio.
type Synthesizer interface {
	// Synthesize returns MP3 bytes for the text. langCode selects the voice
	// language where the backend supports it.
	Synthesize(ctx context.Context, text, langCode string) ([]byte, error)
	// Name returns the backing service name.
	Name() string
}

// Config holds the configuration for the speech services.
type Config struct {
	Provider string // TTS backend: openai or google
	APIKey   string
	BaseURL  string
	STTModel string // e.g. whisper-1
	TTSModel string // e.g. tts-1
	Voice    string // e.g. alloy
}

// Provider constants
const (
	ProviderOpenAI = "openai"
	ProviderGoogle = "google"
)

// Defaults applied when settings are empty.
const (
	DefaultSTTModel = "whisper-1"
	DefaultTTSModel = "tts-1"
	DefaultVoice    = "alloy"
)

var (
	ErrInvalidProvider = errors.New("invalid speech provider")
	ErrMissingAPIKey   = errors.New("API key is required")
	ErrEmptyText       = errors.New("no text to synthesize")
)

// NewRecognizer creates a speech recognizer from the config.
// Recognition always goes through the OpenAI transcription endpoint.
func NewRecognizer(cfg Config) (Recognizer, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	model := cfg.STTModel
	if model == "" {
		model = DefaultSTTModel
	}
	return newOpenAIRecognizer(cfg.APIKey, cfg.BaseURL, model), nil
}

// NewSynthesizer creates a text-to-speech backend from the config.
func NewSynthesizer(cfg Config) (Synthesizer, error) {
	switch cfg.Provider {
	case ProviderGoogle, "":
		return NewGoogleSynthesizer(nil), nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		model := cfg.TTSModel
		if model == "" {
			model = DefaultTTSModel
		}
		voice := cfg.Voice
		if voice == "" {
			voice = DefaultVoice
		}
		return newOpenAISynthesizer(cfg.APIKey, cfg.BaseURL, model, voice), nil
	default:
		return nil, ErrInvalidProvider
	}
}
