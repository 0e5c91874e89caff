package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/language"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/model"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/ai"
)

type TranslateHandler struct {
	translations service.TranslationService
	speech       service.SpeechService
}

// Request/Response types

type detectRequest struct {
	Text string `json:"text"`
}

type detectResponse struct {
	Language string `json:"language"`
}

type batchRequest struct {
	Items []service.TranslateRequest `json:"items"`
}

type batchResponse struct {
	Results []service.BatchItemResult `json:"results"`
}

type voiceResponse struct {
	Transcript string                   `json:"transcript"`
	Result     *service.TranslateResult `json:"result"`
	AudioID    string                   `json:"audioId,omitempty"`
}

type languagesResponse struct {
	Languages []language.Language `json:"languages"`
	Modes     []string            `json:"modes"`
}

func NewTranslateHandler(translations service.TranslationService, speech service.SpeechService) *TranslateHandler {
	return &TranslateHandler{translations: translations, speech: speech}
}

func (h *TranslateHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/languages", h.GetLanguages)
	g.POST("/translate", h.Translate)
	g.POST("/translate/detect", h.Detect)
	g.POST("/translate/batch", h.TranslateBatch)
	g.POST("/translate/document", h.TranslateDocument)
	g.POST("/translate/voice", h.TranslateVoice)
}

// GetLanguages returns the supported languages and translation modes.
// @Summary List languages
// @Description Get the supported languages and translation modes
// @Tags translate
// @Produce json
// @Success 200 {object} languagesResponse
// @Router /languages [get]
func (h *TranslateHandler) GetLanguages(c echo.Context) error {
	return c.JSON(http.StatusOK, languagesResponse{
		Languages: language.All(),
		Modes:     []string{ai.ModeStandard, ai.ModeCreative, ai.ModeTechnical, ai.ModeFormal, ai.ModeVoice},
	})
}

// Translate translates a single piece of text.
// @Summary Translate text
// @Description Translate text between languages, auto-detecting the source when requested
// @Tags translate
// @Accept json
// @Produce json
// @Param request body service.TranslateRequest true "Translation request"
// @Success 200 {object} service.TranslateResult
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /translate [post]
func (h *TranslateHandler) Translate(c echo.Context) error {
	var req service.TranslateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	result, err := h.translations.Translate(c.Request().Context(), req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Detect identifies the language of a piece of text.
// @Summary Detect language
// @Description Identify the language of the given text
// @Tags translate
// @Accept json
// @Produce json
// @Param request body detectRequest true "Detection request"
// @Success 200 {object} detectResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /translate/detect [post]
func (h *TranslateHandler) Detect(c echo.Context) error {
	var req detectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	name, err := h.translations.DetectLanguage(c.Request().Context(), req.Text)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, detectResponse{Language: name})
}

// TranslateBatch translates several items in one call.
// @Summary Batch translate
// @Description Translate several items concurrently; items fail independently
// @Tags translate
// @Accept json
// @Produce json
// @Param request body batchRequest true "Batch request"
// @Success 200 {object} batchResponse
// @Failure 400 {object} errorResponse
// @Router /translate/batch [post]
func (h *TranslateHandler) TranslateBatch(c echo.Context) error {
	var req batchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	results, err := h.translations.TranslateBatch(c.Request().Context(), req.Items)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, batchResponse{Results: results})
}

// TranslateDocument translates a document paragraph by paragraph, streaming
// results as server-sent events.
// @Summary Translate document
// @Description Translate a document block by block, streaming results over SSE
// @Tags translate
// @Accept json
// @Produce text/event-stream
// @Param request body service.TranslateRequest true "Document request"
// @Success 200 {string} string "SSE stream"
// @Failure 400 {object} errorResponse
// @Router /translate/document [post]
func (h *TranslateHandler) TranslateDocument(c echo.Context) error {
	var req service.TranslateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	ctx := c.Request().Context()

	blocks, resultCh, errCh, err := h.translations.TranslateDocument(ctx, req)
	if err != nil {
		return writeServiceError(c, err)
	}

	// Set headers for SSE
	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	writeEvent := func(event string, payload any) bool {
		data, err := json.Marshal(payload)
		if err != nil {
			return false
		}
		if _, err := fmt.Fprintf(c.Response(), "event: %s\ndata: %s\n\n", event, data); err != nil {
			return false
		}
		c.Response().Flush()
		return true
	}

	if !writeEvent("blocks", blocks) {
		return nil
	}

	for {
		select {
		case result, ok := <-resultCh:
			if !ok {
				// Channel closed, surface any pending error
				select {
				case err := <-errCh:
					if err != nil {
						c.Logger().Errorf("document translate error: %v", err)
						writeEvent("error", errorResponse{Error: err.Error()})
						return nil
					}
				default:
				}
				writeEvent("done", struct{}{})
				return nil
			}

			if !writeEvent("block", result) {
				return nil
			}

		case <-ctx.Done():
			return nil
		}
	}
}

// TranslateVoice runs the voice pipeline: transcribe the uploaded audio,
// translate the transcript, and synthesize the translation.
// @Summary Voice translate
// @Description Transcribe uploaded audio, translate it, and synthesize the result
// @Tags translate
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Audio recording"
// @Param sourceLang formData string false "Source language name"
// @Param targetLang formData string true "Target language name"
// @Success 200 {object} voiceResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /translate/voice [post]
func (h *TranslateHandler) TranslateVoice(c echo.Context) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "audio file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "cannot read audio file"})
	}
	defer file.Close()

	ctx := c.Request().Context()
	sourceLang := c.FormValue("sourceLang")

	transcript, err := h.speech.Transcribe(ctx, file, fileHeader.Filename, sourceLang)
	if err != nil {
		return writeServiceError(c, err)
	}

	result, err := h.translations.Translate(ctx, service.TranslateRequest{
		Text:       transcript,
		SourceLang: sourceLang,
		TargetLang: c.FormValue("targetLang"),
		Mode:       ai.ModeVoice,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := voiceResponse{Transcript: transcript, Result: result}

	// Best effort: the translation is still useful if synthesis fails.
	artifact, err := h.speech.Speak(ctx, result.Record.ID, model.ArtifactRoleTranslation)
	if err != nil {
		c.Logger().Errorf("voice synthesis: %v", err)
	} else {
		resp.AudioID = artifact.ID
	}

	return c.JSON(http.StatusOK, resp)
}
