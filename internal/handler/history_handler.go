package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/model"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service"
)

type HistoryHandler struct {
	history service.HistoryService
	speech  service.SpeechService
}

// Request/Response types

type historyListResponse struct {
	Items []model.Translation `json:"items"`
	Total int                 `json:"total"`
}

type historyClearResponse struct {
	Deleted int64 `json:"deleted"`
}

type speakRequest struct {
	Role string `json:"role"` // source or translation
}

type speakResponse struct {
	AudioID string `json:"audioId"`
}

func NewHistoryHandler(history service.HistoryService, speech service.SpeechService) *HistoryHandler {
	return &HistoryHandler{history: history, speech: speech}
}

func (h *HistoryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/history", h.List)
	g.GET("/history/:id", h.Get)
	g.DELETE("/history/:id", h.Delete)
	g.DELETE("/history", h.Clear)
	g.POST("/history/:id/speak", h.Speak)
}

// List returns history records newest-first.
// @Summary List history
// @Description List translation history records, newest first
// @Tags history
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} historyListResponse
// @Router /history [get]
func (h *HistoryHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	ctx := c.Request().Context()

	items, err := h.history.List(ctx, limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}

	total, err := h.history.Count(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}

	if items == nil {
		items = []model.Translation{}
	}
	return c.JSON(http.StatusOK, historyListResponse{Items: items, Total: total})
}

// Get returns one history record.
// @Summary Get history record
// @Description Get one translation history record by ID
// @Tags history
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} model.Translation
// @Failure 404 {object} errorResponse
// @Router /history/{id} [get]
func (h *HistoryHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}

	t, err := h.history.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, t)
}

// Delete removes one history record and its audio.
// @Summary Delete history record
// @Description Delete one translation history record and its audio artifacts
// @Tags history
// @Param id path int true "Record ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /history/{id} [delete]
func (h *HistoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}

	if err := h.history.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Clear removes all history records.
// @Summary Clear history
// @Description Delete all translation history records and audio artifacts
// @Tags history
// @Produce json
// @Success 200 {object} historyClearResponse
// @Router /history [delete]
func (h *HistoryHandler) Clear(c echo.Context) error {
	deleted, err := h.history.Clear(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, historyClearResponse{Deleted: deleted})
}

// Speak synthesizes one side of a history record to audio.
// @Summary Speak history record
// @Description Synthesize the source or translated text of a record to MP3
// @Tags history
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param request body speakRequest true "Which side to speak"
// @Success 200 {object} speakResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /history/{id}/speak [post]
func (h *HistoryHandler) Speak(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}

	var req speakRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if req.Role == "" {
		req.Role = model.ArtifactRoleTranslation
	}

	artifact, err := h.speech.Speak(c.Request().Context(), id, req.Role)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, speakResponse{AudioID: artifact.ID})
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
