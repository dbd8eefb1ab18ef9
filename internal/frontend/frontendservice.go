package frontend

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jo-hoe/snapfolder/internal/core"
	"github.com/labstack/echo/v4"
)

const (
	MainPageName = "index.html"
	mimeSVG      = "image/svg+xml"
)

type FrontendService struct {
	coreService *core.CoreService
}

func NewFrontendService(coreService *core.CoreService) *FrontendService {
	return &FrontendService{
		coreService: coreService,
	}
}

func (service *FrontendService) SetRoutes(e *echo.Echo) {
	e.Renderer = NewTemplate()

	e.GET("/", service.indexHandler)
	e.GET("/generate", service.generatePageHandler)
	e.POST("/generate", service.generateLinkHandler)

	// Dashboard: folder list, folder view, and single photo view share one route
	e.GET("/dashboard", service.dashboardHandler)
	e.GET("/dashboard/thumb", service.thumbnailHandler)
	e.GET("/dashboard/photo", service.folderPhotoHandler)
	e.GET("/dashboard/download", service.downloadHandler)

	// Capture flow, scoped to one session of one link
	e.GET("/create/:id", service.createPageHandler)
	e.POST("/create/:id/session/:sid/capture", service.captureHandler)
	e.GET("/create/:id/session/:sid/photo/:index", service.sessionPhotoHandler)
	e.DELETE("/create/:id/session/:sid/photo/:index", service.removePhotoHandler)
	e.POST("/create/:id/session/:sid/submit", service.submitHandler)
	e.DELETE("/create/:id/session/:sid", service.closeSessionHandler)
	// sendBeacon can only POST
	e.POST("/create/:id/session/:sid/close", service.closeSessionHandler)

	e.GET("/icon.svg", service.iconHandler)
}

func (service *FrontendService) indexHandler(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, MainPageName, nil)
}

func (service *FrontendService) setNoCache(ctx echo.Context) {
	ctx.Response().Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	ctx.Response().Header().Set("Pragma", "no-cache")
	ctx.Response().Header().Set("Expires", "0")
}

func (service *FrontendService) timestampNanoStr() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

func (service *FrontendService) iconHandler(ctx echo.Context) error {
	data, err := assetsFS.ReadFile("views/icon.svg")
	if err != nil {
		slog.Error("iconHandler: failed to read icon.svg", "status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to load icon")
	}
	// Cache for 7 days
	ctx.Response().Header().Set("Cache-Control", "public, max-age=604800, immutable")
	return ctx.Blob(http.StatusOK, mimeSVG, data)
}
