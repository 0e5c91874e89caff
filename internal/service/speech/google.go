package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	googleTTSEndpoint = "https://translate.google.com/translate_tts"

	// The endpoint rejects long inputs; text is chunked at sentence
	// boundaries below this many runes and the MP3 segments concatenated.
	maxChunkRunes = 200
)

// GoogleSynthesizer generates speech via the unauthenticated Google Translate
// TTS endpoint. It needs no API key but only supports the default voice per
// language.
type GoogleSynthesizer struct {
	client *http.Client
}

// NewGoogleSynthesizer creates a Google Translate TTS backend.
// A nil client gets a default with a 30s timeout.
func NewGoogleSynthesizer(client *http.Client) *GoogleSynthesizer {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &GoogleSynthesizer{client: client}
}

func (s *GoogleSynthesizer) Name() string {
	return ProviderGoogle
}

func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if langCode == "" {
		langCode = "en"
	}

	var audio []byte
	for _, chunk := range chunkText(text, maxChunkRunes) {
		data, err := s.fetchChunk(ctx, chunk, langCode)
		if err != nil {
			return nil, err
		}
		// MP3 frames are self-contained, so segments concatenate cleanly.
		audio = append(audio, data...)
	}
	return audio, nil
}

func (s *GoogleSynthesizer) fetchChunk(ctx context.Context, text, langCode string) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", langCode)
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleTTSEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts request: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return data, nil
}

// chunkText splits text into pieces of at most maxRunes runes, preferring
// sentence boundaries and falling back to word boundaries.
func chunkText(text string, maxRunes int) []string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentRunes := 0

	flush := func() {
		if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		current.Reset()
		currentRunes = 0
	}

	for _, sentence := range splitSentences(text) {
		n := utf8.RuneCountInString(sentence)
		if currentRunes+n > maxRunes && currentRunes > 0 {
			flush()
		}
		if n > maxRunes {
			// A single oversized sentence splits on words.
			for _, word := range strings.Fields(sentence) {
				wn := utf8.RuneCountInString(word) + 1
				if currentRunes+wn > maxRunes && currentRunes > 0 {
					flush()
				}
				current.WriteString(word)
				current.WriteByte(' ')
				currentRunes += wn
			}
			continue
		}
		current.WriteString(sentence)
		currentRunes += n
	}
	flush()

	return chunks
}

// splitSentences cuts text after sentence-ending punctuation, keeping the
// punctuation with the preceding sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		switch r {
		case '.', '!', '?', '。', '！', '？':
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}
