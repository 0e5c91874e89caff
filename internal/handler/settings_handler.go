package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/service"
)

type SettingsHandler struct {
	service service.SettingsService
}

// Request/Response types

type testAIRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
	BaseURL  string `json:"baseUrl"`
	Model    string `json:"model"`
}

type testAIResponse struct {
	Response string `json:"response"`
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/settings/ai", h.GetAISettings)
	g.PUT("/settings/ai", h.SetAISettings)
	g.POST("/settings/ai/test", h.TestAI)
	g.GET("/settings/speech", h.GetSpeechSettings)
	g.PUT("/settings/speech", h.SetSpeechSettings)
}

// GetAISettings returns the AI configuration.
// @Summary Get AI settings
// @Description Get the AI configuration with masked API key
// @Tags settings
// @Produce json
// @Success 200 {object} service.AISettings
// @Router /settings/ai [get]
func (h *SettingsHandler) GetAISettings(c echo.Context) error {
	settings, err := h.service.GetAISettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, settings)
}

// SetAISettings updates the AI configuration.
// @Summary Update AI settings
// @Description Update the AI configuration; empty or masked API key keeps the stored one
// @Tags settings
// @Accept json
// @Produce json
// @Param request body service.AISettings true "AI settings"
// @Success 200 {object} service.AISettings
// @Failure 400 {object} errorResponse
// @Router /settings/ai [put]
func (h *SettingsHandler) SetAISettings(c echo.Context) error {
	var settings service.AISettings
	if err := c.Bind(&settings); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	ctx := c.Request().Context()

	if err := h.service.SetAISettings(ctx, &settings); err != nil {
		return writeServiceError(c, err)
	}

	updated, err := h.service.GetAISettings(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// TestAI sends a test message with the given configuration.
// @Summary Test AI connection
// @Description Send a test message to verify the AI configuration works
// @Tags settings
// @Accept json
// @Produce json
// @Param request body testAIRequest true "Configuration to test"
// @Success 200 {object} testAIResponse
// @Failure 400 {object} errorResponse
// @Router /settings/ai/test [post]
func (h *SettingsHandler) TestAI(c echo.Context) error {
	var req testAIRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	response, err := h.service.TestAI(c.Request().Context(), req.Provider, req.APIKey, req.BaseURL, req.Model)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, testAIResponse{Response: response})
}

// GetSpeechSettings returns the speech configuration.
// @Summary Get speech settings
// @Description Get the speech recognition and synthesis configuration
// @Tags settings
// @Produce json
// @Success 200 {object} service.SpeechSettings
// @Router /settings/speech [get]
func (h *SettingsHandler) GetSpeechSettings(c echo.Context) error {
	settings, err := h.service.GetSpeechSettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, settings)
}

// SetSpeechSettings updates the speech configuration.
// @Summary Update speech settings
// @Description Update the speech recognition and synthesis configuration
// @Tags settings
// @Accept json
// @Produce json
// @Param request body service.SpeechSettings true "Speech settings"
// @Success 200 {object} service.SpeechSettings
// @Failure 400 {object} errorResponse
// @Router /settings/speech [put]
func (h *SettingsHandler) SetSpeechSettings(c echo.Context) error {
	var settings service.SpeechSettings
	if err := c.Bind(&settings); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	ctx := c.Request().Context()

	if err := h.service.SetSpeechSettings(ctx, &settings); err != nil {
		return writeServiceError(c, err)
	}

	updated, err := h.service.GetSpeechSettings(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}
