package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/handler"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/model"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service"
)

// translationServiceStub implements service.TranslationService.
type translationServiceStub struct {
	translateResult *service.TranslateResult
	translateErr    error
	detectName      string
}

func (s *translationServiceStub) Translate(ctx context.Context, req service.TranslateRequest) (*service.TranslateResult, error) {
	if s.translateErr != nil {
		return nil, s.translateErr
	}
	return s.translateResult, nil
}

func (s *translationServiceStub) DetectLanguage(ctx context.Context, text string) (string, error) {
	return s.detectName, nil
}

func (s *translationServiceStub) TranslateBatch(ctx context.Context, reqs []service.TranslateRequest) ([]service.BatchItemResult, error) {
	results := make([]service.BatchItemResult, len(reqs))
	for i := range reqs {
		results[i] = service.BatchItemResult{Index: i, Result: s.translateResult}
	}
	return results, nil
}

func (s *translationServiceStub) TranslateDocument(ctx context.Context, req service.TranslateRequest) ([]service.DocumentBlockInfo, <-chan service.DocumentBlockResult, <-chan error, error) {
	blocks := []service.DocumentBlockInfo{{Index: 0, Text: "Hello."}}
	resultCh := make(chan service.DocumentBlockResult, 1)
	errCh := make(chan error, 1)
	resultCh <- service.DocumentBlockResult{Index: 0, Text: "Bonjour."}
	close(resultCh)
	close(errCh)
	return blocks, resultCh, errCh, nil
}

// speechServiceStub implements service.SpeechService.
type speechServiceStub struct {
	transcript string
	artifact   *model.AudioArtifact
}

func (s *speechServiceStub) Transcribe(ctx context.Context, audio io.Reader, filename, languageName string) (string, error) {
	return s.transcript, nil
}

func (s *speechServiceStub) Synthesize(ctx context.Context, text, languageName string) ([]byte, error) {
	return []byte("mp3"), nil
}

func (s *speechServiceStub) Speak(ctx context.Context, translationID int64, role string) (*model.AudioArtifact, error) {
	if s.artifact == nil {
		return nil, service.ErrNotFound
	}
	return s.artifact, nil
}

func (s *speechServiceStub) GetArtifact(ctx context.Context, id string) (*model.AudioArtifact, error) {
	return s.artifact, nil
}

func (s *speechServiceStub) OpenArtifact(ctx context.Context, id string) (*model.AudioArtifact, io.ReadCloser, error) {
	if s.artifact == nil {
		return nil, nil, service.ErrNotFound
	}
	return s.artifact, io.NopCloser(strings.NewReader("mp3")), nil
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestTranslateHandler_Translate(t *testing.T) {
	stub := &translationServiceStub{
		translateResult: &service.TranslateResult{
			Record: model.Translation{ID: 1, SourceLang: "English", TargetLang: "French", TranslatedText: "Bonjour"},
		},
	}
	h := handler.NewTranslateHandler(stub, &speechServiceStub{})

	c, rec := newTestContext(http.MethodPost, "/api/translate", `{"text":"Hello","sourceLang":"English","targetLang":"French"}`)
	require.NoError(t, h.Translate(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp service.TranslateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Bonjour", resp.Record.TranslatedText)
}

func TestTranslateHandler_Translate_ValidationError(t *testing.T) {
	stub := &translationServiceStub{
		translateErr: &service.ValidationError{Message: "text is required"},
	}
	h := handler.NewTranslateHandler(stub, &speechServiceStub{})

	c, rec := newTestContext(http.MethodPost, "/api/translate", `{"targetLang":"French"}`)
	require.NoError(t, h.Translate(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "text is required")
}

func TestTranslateHandler_Detect(t *testing.T) {
	h := handler.NewTranslateHandler(&translationServiceStub{detectName: "Spanish"}, &speechServiceStub{})

	c, rec := newTestContext(http.MethodPost, "/api/translate/detect", `{"text":"Hola"}`)
	require.NoError(t, h.Detect(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Spanish")
}

func TestTranslateHandler_GetLanguages(t *testing.T) {
	h := handler.NewTranslateHandler(&translationServiceStub{}, &speechServiceStub{})

	c, rec := newTestContext(http.MethodGet, "/api/languages", "")
	require.NoError(t, h.GetLanguages(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Languages []struct {
			Name string `json:"name"`
			Code string `json:"code"`
		} `json:"languages"`
		Modes []string `json:"modes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Languages, 35)
	require.Contains(t, resp.Modes, "voice")
}

func TestTranslateHandler_TranslateDocument_SSE(t *testing.T) {
	h := handler.NewTranslateHandler(&translationServiceStub{}, &speechServiceStub{})

	c, rec := newTestContext(http.MethodPost, "/api/translate/document", `{"text":"Hello.","sourceLang":"English","targetLang":"French"}`)
	require.NoError(t, h.TranslateDocument(c))

	body := rec.Body.String()
	require.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
	require.Contains(t, body, "event: blocks")
	require.Contains(t, body, "event: block")
	require.Contains(t, body, "Bonjour.")
	require.Contains(t, body, "event: done")
}
