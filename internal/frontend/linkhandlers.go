package frontend

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type generatePage struct {
	Link string
}

func (service *FrontendService) generatePageHandler(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "generate.html", generatePage{})
}

func (service *FrontendService) generateLinkHandler(ctx echo.Context) error {
	origin := ctx.Scheme() + "://" + ctx.Request().Host
	newLink, err := service.coreService.GenerateLink(origin)
	if err != nil {
		slog.Error("generateLinkHandler: failed to generate link",
			"status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to generate link")
	}
	slog.Info("capture link generated", "link", newLink)
	return ctx.Render(http.StatusOK, "generate.html", generatePage{Link: newLink})
}
