package frontend

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jo-hoe/snapfolder/internal/camera"
	"github.com/jo-hoe/snapfolder/internal/capture"
	"github.com/jo-hoe/snapfolder/internal/imaging"
	"github.com/jo-hoe/snapfolder/internal/link"
	"github.com/labstack/echo/v4"
)

const maxFrameBytes = 32 << 20

type createPage struct {
	LinkID      string
	SessionID   string
	BrowserFeed bool
	CameraError string
	Facing      string
	Width       int
	Height      int
}

type previewList struct {
	LinkID    string
	SessionID string
	Images    []capture.CapturedImage
	Timestamp string
}

func (service *FrontendService) createPageHandler(ctx echo.Context) error {
	linkID := ctx.Param("id")
	if linkID == "" {
		return ctx.String(http.StatusBadRequest, "Missing link ID")
	}

	session := service.coreService.OpenSession(ctx.Request().Context(), linkID)
	config := service.coreService.Config()
	page := createPage{
		LinkID:      linkID,
		SessionID:   session.ID(),
		BrowserFeed: config.Camera.Source == camera.TypePush || config.Camera.Source == "",
		Facing:      config.Camera.Facing,
		Width:       config.Camera.Width,
		Height:      config.Camera.Height,
	}
	if err := session.Err(); err != nil {
		page.CameraError = "Error accessing the camera"
	}

	service.setNoCache(ctx)
	return ctx.Render(http.StatusOK, "create.html", page)
}

// sessionFor resolves the session addressed by the route and checks it belongs to the link.
func (service *FrontendService) sessionFor(ctx echo.Context) (*capture.Session, bool) {
	session, ok := service.coreService.Session(ctx.Param("sid"))
	if !ok || session.LinkPath() != link.CreatePath(ctx.Param("id")) {
		return nil, false
	}
	return session, true
}

func (service *FrontendService) captureHandler(ctx echo.Context) error {
	session, ok := service.sessionFor(ctx)
	if !ok {
		return ctx.String(http.StatusNotFound, "Session not found")
	}

	// frames pushed by the browser arrive as the "frame" form file
	if file, err := ctx.FormFile("frame"); err == nil {
		src, err := file.Open()
		if err != nil {
			slog.Error("captureHandler: failed to open frame", "status", http.StatusBadRequest, "error", err)
			return ctx.String(http.StatusBadRequest, "Failed to read frame")
		}
		data, err := io.ReadAll(io.LimitReader(src, maxFrameBytes))
		if cerr := src.Close(); cerr != nil {
			slog.Error("captureHandler: failed to close frame reader", "error", cerr)
		}
		if err != nil {
			return ctx.String(http.StatusBadRequest, "Failed to read frame")
		}
		frame, _, err := imaging.Decode(data)
		if err != nil {
			slog.Warn("captureHandler: undecodable frame", "status", http.StatusBadRequest,
				"session_id", session.ID(), "error", err)
			return ctx.String(http.StatusBadRequest, "Invalid frame")
		}
		_, err = session.CaptureFrame(ctx.Request().Context(), frame)
		if !errors.Is(err, capture.ErrNotPushable) {
			return service.capturedResponse(ctx, session, err)
		}
		slog.Debug("captureHandler: camera does not accept frames, capturing from feed", "session_id", session.ID())
	}

	_, err := session.Capture(ctx.Request().Context())
	return service.capturedResponse(ctx, session, err)
}

func (service *FrontendService) capturedResponse(ctx echo.Context, session *capture.Session, err error) error {
	if errors.Is(err, capture.ErrSessionClosed) {
		return ctx.String(http.StatusNotFound, "Session not found")
	}
	if err != nil {
		slog.Error("captureHandler: capture failed",
			"status", http.StatusInternalServerError, "session_id", session.ID(), "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to capture photo")
	}
	return service.renderPreviews(ctx, session)
}

func (service *FrontendService) sessionPhotoHandler(ctx echo.Context) error {
	session, ok := service.sessionFor(ctx)
	if !ok {
		return ctx.String(http.StatusNotFound, "Session not found")
	}
	images := session.Images()
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil || index < 0 || index >= len(images) {
		return ctx.String(http.StatusNotFound, "Photo not found")
	}
	service.setNoCache(ctx)
	return service.writeDataURI(ctx, images[index].Data)
}

func (service *FrontendService) removePhotoHandler(ctx echo.Context) error {
	session, ok := service.sessionFor(ctx)
	if !ok {
		return ctx.String(http.StatusNotFound, "Session not found")
	}
	// out-of-range or malformed indexes are ignored; the list is re-rendered either way
	if index, err := strconv.Atoi(ctx.Param("index")); err == nil {
		session.Remove(index)
	}
	return service.renderPreviews(ctx, session)
}

func (service *FrontendService) submitHandler(ctx echo.Context) error {
	session, ok := service.sessionFor(ctx)
	if !ok {
		return ctx.String(http.StatusNotFound, "Session not found")
	}

	err := session.Submit(ctx.Request().Context(), ctx.FormValue("name"))
	switch {
	case errors.Is(err, capture.ErrInvalidSubmission), errors.Is(err, capture.ErrSessionClosed):
		return ctx.String(http.StatusBadRequest, "Invalid link or missing folder name/photos")
	case err != nil:
		slog.Error("submitHandler: failed to save folder",
			"status", http.StatusInternalServerError, "session_id", session.ID(), "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to save folder")
	}

	service.coreService.CloseSession(session.ID())
	return ctx.JSON(http.StatusOK, map[string]string{"redirect": "/dashboard"})
}

func (service *FrontendService) closeSessionHandler(ctx echo.Context) error {
	if _, ok := service.sessionFor(ctx); ok {
		service.coreService.CloseSession(ctx.Param("sid"))
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (service *FrontendService) renderPreviews(ctx echo.Context, session *capture.Session) error {
	service.setNoCache(ctx)
	return ctx.Render(http.StatusOK, "previews.html", previewList{
		LinkID:    ctx.Param("id"),
		SessionID: session.ID(),
		Images:    session.Images(),
		Timestamp: service.timestampNanoStr(),
	})
}
