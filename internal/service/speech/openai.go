package speech

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openAIRecognizer transcribes audio via the OpenAI transcription endpoint.
type openAIRecognizer struct {
	client openai.Client
	model  string
}

func newOpenAIRecognizer(apiKey, baseURL, model string) *openAIRecognizer {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openAIRecognizer{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (r *openAIRecognizer) Name() string {
	return ProviderOpenAI
}

func (r *openAIRecognizer) Transcribe(ctx context.Context, audio io.Reader, filename, language string) (string, error) {
	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(audio, filename, audioContentType(filename)),
		Model: openai.AudioModel(r.model),
	}
	if language != "" {
		params.Language = openai.String(language)
	}

	resp, err := r.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// openAISynthesizer generates speech via the OpenAI speech endpoint.
// The voice is fixed by configuration; langCode is ignored because the
// endpoint speaks the language of the input text.
type openAISynthesizer struct {
	client openai.Client
	model  string
	voice  string
}

func newOpenAISynthesizer(apiKey, baseURL, model, voice string) *openAISynthesizer {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openAISynthesizer{
		client: openai.NewClient(opts...),
		model:  model,
		voice:  voice,
	}
}

func (s *openAISynthesizer) Name() string {
	return ProviderOpenAI
}

func (s *openAISynthesizer) Synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(s.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return data, nil
}

func audioContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	case ".ogg":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	case ".flac":
		return "audio/flac"
	default:
		return "application/octet-stream"
	}
}
