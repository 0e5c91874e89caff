package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/handler"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service"
)

func NewRouter(
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	translateHandler *handler.TranslateHandler,
	speechHandler *handler.SpeechHandler,
	historyHandler *handler.HistoryHandler,
	settingsHandler *handler.SettingsHandler,
	staticDir string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	api := e.Group("/api")
	authHandler.RegisterPublicRoutes(api)

	protected := e.Group("/api", JWTAuthMiddleware(authService))
	authHandler.RegisterProtectedRoutes(protected)
	translateHandler.RegisterRoutes(protected)
	speechHandler.RegisterRoutes(protected)
	historyHandler.RegisterRoutes(protected)
	settingsHandler.RegisterRoutes(protected)

	registerStatic(e, staticDir)

	return e
}
