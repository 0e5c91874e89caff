package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/service"
)

type SpeechHandler struct {
	service service.SpeechService
}

// Request/Response types

type transcribeResponse struct {
	Text string `json:"text"`
}

type synthesizeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

func NewSpeechHandler(service service.SpeechService) *SpeechHandler {
	return &SpeechHandler{service: service}
}

func (h *SpeechHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/speech/transcribe", h.Transcribe)
	g.POST("/speech/synthesize", h.Synthesize)
	g.GET("/audio/:id", h.DownloadAudio)
}

// Transcribe converts uploaded audio to text.
// @Summary Transcribe audio
// @Description Convert an uploaded audio recording to text
// @Tags speech
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Audio recording"
// @Param language formData string false "Language name hint"
// @Success 200 {object} transcribeResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /speech/transcribe [post]
func (h *SpeechHandler) Transcribe(c echo.Context) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "audio file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "cannot read audio file"})
	}
	defer file.Close()

	text, err := h.service.Transcribe(c.Request().Context(), file, fileHeader.Filename, c.FormValue("language"))
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, transcribeResponse{Text: text})
}

// Synthesize converts text to downloadable MP3 audio.
// @Summary Synthesize speech
// @Description Convert text to MP3 audio in the named language
// @Tags speech
// @Accept json
// @Produce audio/mpeg
// @Param request body synthesizeRequest true "Synthesis request"
// @Success 200 {file} binary
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /speech/synthesize [post]
func (h *SpeechHandler) Synthesize(c echo.Context) error {
	var req synthesizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	data, err := h.service.Synthesize(c.Request().Context(), req.Text, req.Language)
	if err != nil {
		return writeServiceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="speech.mp3"`)
	return c.Blob(http.StatusOK, "audio/mpeg", data)
}

// DownloadAudio serves a stored audio artifact.
// @Summary Download audio
// @Description Download a stored audio artifact as MP3
// @Tags speech
// @Produce audio/mpeg
// @Param id path string true "Artifact ID"
// @Success 200 {file} binary
// @Failure 404 {object} errorResponse
// @Router /audio/{id} [get]
func (h *SpeechHandler) DownloadAudio(c echo.Context) error {
	artifact, rc, err := h.service.OpenArtifact(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.mp3"`, artifact.ID))
	return c.Stream(http.StatusOK, "audio/mpeg", rc)
}
