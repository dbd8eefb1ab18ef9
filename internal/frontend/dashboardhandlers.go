package frontend

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jo-hoe/snapfolder/internal/export"
	"github.com/jo-hoe/snapfolder/internal/imaging"
	"github.com/labstack/echo/v4"
)

type folderCard struct {
	Name       string
	ImageCount int
}

type dashboardPage struct {
	Folders        []folderCard
	SelectedFolder string
	Photos         []int
	HasPhoto       bool
	SelectedPhoto  int
	Timestamp      string
}

func (service *FrontendService) dashboardHandler(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	page := dashboardPage{Timestamp: service.timestampNanoStr()}
	service.setNoCache(ctx)

	name := ctx.QueryParam("folder")
	if name == "" {
		folders := service.coreService.Folders(reqCtx)
		for _, folderName := range service.coreService.FolderNames(reqCtx) {
			page.Folders = append(page.Folders, folderCard{Name: folderName, ImageCount: len(folders[folderName])})
		}
		return ctx.Render(http.StatusOK, "dashboard.html", page)
	}

	images, ok := service.coreService.Folder(reqCtx, name)
	if !ok {
		slog.Warn("dashboardHandler: folder not found", "status", http.StatusNotFound, "folder", name)
		return ctx.String(http.StatusNotFound, "Folder not found")
	}
	page.SelectedFolder = name
	for i := range images {
		page.Photos = append(page.Photos, i)
	}

	if raw := ctx.QueryParam("photo"); raw != "" {
		index, err := strconv.Atoi(raw)
		if err != nil || index < 0 || index >= len(images) {
			return ctx.String(http.StatusNotFound, "Photo not found")
		}
		page.HasPhoto = true
		page.SelectedPhoto = index
	}
	return ctx.Render(http.StatusOK, "dashboard.html", page)
}

func (service *FrontendService) folderPhotoHandler(ctx echo.Context) error {
	name := ctx.QueryParam("folder")
	images, ok := service.coreService.Folder(ctx.Request().Context(), name)
	if !ok {
		return ctx.String(http.StatusNotFound, "Folder not found")
	}
	index, err := strconv.Atoi(ctx.QueryParam("index"))
	if err != nil || index < 0 || index >= len(images) {
		return ctx.String(http.StatusNotFound, "Photo not found")
	}
	return service.writeDataURI(ctx, images[index])
}

func (service *FrontendService) thumbnailHandler(ctx echo.Context) error {
	name := ctx.QueryParam("folder")
	thumbnail, mimeType, err := service.coreService.Thumbnail(ctx.Request().Context(), name)
	if err != nil {
		slog.Error("thumbnailHandler: failed to build thumbnail",
			"status", http.StatusInternalServerError, "folder", name, "error", err)
		return ctx.String(http.StatusInternalServerError, "Thumbnail not available")
	}
	service.setNoCache(ctx)
	return ctx.Blob(http.StatusOK, mimeType, thumbnail)
}

func (service *FrontendService) downloadHandler(ctx echo.Context) error {
	name := ctx.QueryParam("folder")
	images, ok := service.coreService.Folder(ctx.Request().Context(), name)
	if !ok {
		return ctx.String(http.StatusNotFound, "Folder not found")
	}

	var buf bytes.Buffer
	written, err := export.WriteZip(&buf, name, images)
	if err != nil {
		slog.Error("downloadHandler: failed to build archive",
			"status", http.StatusInternalServerError, "folder", name, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to build archive")
	}
	slog.Info("folder exported", "folder", name, "entries", written, "size_bytes", buf.Len())

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.FileName(name)))
	return ctx.Blob(http.StatusOK, "application/zip", buf.Bytes())
}

// writeDataURI responds with the decoded payload of a stored image.
func (service *FrontendService) writeDataURI(ctx echo.Context, uri string) error {
	mimeType, data, err := imaging.ParseDataURI(uri)
	if err != nil {
		slog.Warn("writeDataURI: stored image is not a data uri", "status", http.StatusNotFound, "error", err)
		return ctx.String(http.StatusNotFound, "Image not available")
	}
	return ctx.Blob(http.StatusOK, mimeType, data)
}
