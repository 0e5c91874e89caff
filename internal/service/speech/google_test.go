package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	chunks := chunkText("Hello world.", 200)
	require.Equal(t, []string{"Hello world."}, chunks)
}

func TestChunkText_SplitsAtSentences(t *testing.T) {
	text := strings.Repeat("This is a sentence. ", 20) // well over 200 runes
	chunks := chunkText(text, 200)
	require.Greater(t, len(chunks), 1)

	for _, chunk := range chunks {
		require.LessOrEqual(t, utf8.RuneCountInString(chunk), 200, "chunk %q too long", chunk)
		require.True(t, strings.HasSuffix(chunk, "."), "chunk should end at a sentence boundary: %q", chunk)
	}
}

func TestChunkText_OversizedSentenceSplitsOnWords(t *testing.T) {
	text := strings.Repeat("word ", 100) // one 500-rune "sentence" with no punctuation
	chunks := chunkText(text, 200)
	require.Greater(t, len(chunks), 1)

	for _, chunk := range chunks {
		require.LessOrEqual(t, utf8.RuneCountInString(chunk), 200)
	}
	require.Equal(t, strings.Fields(text), strings.Fields(strings.Join(chunks, " ")), "no words lost")
}

func TestChunkText_CJKPunctuation(t *testing.T) {
	text := strings.Repeat("这是一个句子。", 40)
	chunks := chunkText(text, 200)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		require.LessOrEqual(t, utf8.RuneCountInString(chunk), 200)
	}
}

func TestGoogleSynthesizer_Synthesize(t *testing.T) {
	var requests []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Query())
		w.Write([]byte("MP3"))
	}))
	defer server.Close()

	s := NewGoogleSynthesizer(server.Client())
	// Point the request at the test server by rewriting via a transport.
	s.client.Transport = rewriteHost(server.URL)

	data, err := s.Synthesize(context.Background(), "Hello there.", "fr")
	require.NoError(t, err)
	require.Equal(t, []byte("MP3"), data)

	require.Len(t, requests, 1)
	require.Equal(t, "tw-ob", requests[0].Get("client"))
	require.Equal(t, "fr", requests[0].Get("tl"))
	require.Equal(t, "Hello there.", requests[0].Get("q"))
}

func TestGoogleSynthesizer_ConcatenatesChunks(t *testing.T) {
	var count int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count++
		w.Write([]byte("X"))
	}))
	defer server.Close()

	s := NewGoogleSynthesizer(server.Client())
	s.client.Transport = rewriteHost(server.URL)

	text := strings.Repeat("A sentence here. ", 30)
	data, err := s.Synthesize(context.Background(), text, "en")
	require.NoError(t, err)
	require.Greater(t, count, 1, "long text should be fetched in chunks")
	require.Len(t, data, count)
}

func TestGoogleSynthesizer_EmptyText(t *testing.T) {
	s := NewGoogleSynthesizer(nil)
	_, err := s.Synthesize(context.Background(), "   ", "en")
	require.ErrorIs(t, err, ErrEmptyText)
}

func TestGoogleSynthesizer_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	s := NewGoogleSynthesizer(server.Client())
	s.client.Transport = rewriteHost(server.URL)

	_, err := s.Synthesize(context.Background(), "Hello.", "en")
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

// rewriteHost redirects every request to the test server while keeping the
// path and query intact.
func rewriteHost(serverURL string) http.RoundTripper {
	target, _ := url.Parse(serverURL)
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		req.URL.Scheme = target.Scheme
		req.URL.Host = target.Host
		return http.DefaultTransport.RoundTrip(req)
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
