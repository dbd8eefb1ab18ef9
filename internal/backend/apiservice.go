package backend

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jo-hoe/snapfolder/internal/core"
	"github.com/jo-hoe/snapfolder/internal/folder"
	"github.com/labstack/echo/v4"
)

// APIService exposes the folder store and link generation as JSON.
type APIService struct {
	coreService *core.CoreService
}

type FolderSummary struct {
	Name       string `json:"name"`
	ImageCount int    `json:"imageCount"`
}

type FolderResponse struct {
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

type SaveFolderRequest struct {
	Images []string `json:"images" validate:"required,min=1,dive,required"`
}

type LinkResponse struct {
	Link string `json:"link"`
}

func NewAPIService(coreService *core.CoreService) *APIService {
	return &APIService{
		coreService: coreService,
	}
}

func (s *APIService) SetRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/folders", s.listFoldersHandler)
	api.GET("/folders/:name", s.getFolderHandler)
	api.PUT("/folders/:name", s.saveFolderHandler)
	api.POST("/links", s.createLinkHandler)
}

func (s *APIService) listFoldersHandler(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	folders := s.coreService.Folders(reqCtx)

	summaries := make([]FolderSummary, 0, len(folders))
	for _, name := range s.coreService.FolderNames(reqCtx) {
		summaries = append(summaries, FolderSummary{Name: name, ImageCount: len(folders[name])})
	}
	return ctx.JSON(http.StatusOK, summaries)
}

func (s *APIService) getFolderHandler(ctx echo.Context) error {
	name := ctx.Param("name")
	images, ok := s.coreService.Folder(ctx.Request().Context(), name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "folder not found")
	}
	return ctx.JSON(http.StatusOK, FolderResponse{Name: name, Images: images})
}

func (s *APIService) saveFolderHandler(ctx echo.Context) error {
	var request SaveFolderRequest
	if err := ctx.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := ctx.Validate(&request); err != nil {
		return err
	}

	name := ctx.Param("name")
	err := s.coreService.SaveFolder(ctx.Request().Context(), name, request.Images)
	if errors.Is(err, folder.ErrInvalidFolder) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		slog.Error("saveFolderHandler: failed to save folder",
			"status", http.StatusInternalServerError, "folder", name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save folder")
	}

	images, _ := s.coreService.Folder(ctx.Request().Context(), name)
	return ctx.JSON(http.StatusOK, FolderResponse{Name: name, Images: images})
}

func (s *APIService) createLinkHandler(ctx echo.Context) error {
	origin := ctx.Scheme() + "://" + ctx.Request().Host
	newLink, err := s.coreService.GenerateLink(origin)
	if err != nil {
		slog.Error("createLinkHandler: failed to generate link",
			"status", http.StatusInternalServerError, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate link")
	}
	return ctx.JSON(http.StatusCreated, LinkResponse{Link: newLink})
}
