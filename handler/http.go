package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"speech-translate/auth"
	"speech-translate/dto"
	"speech-translate/service"
)

type HTTPHandler struct {
	upload  service.UploadService
	history service.HistoryService
}

func NewHTTPHandler(upload service.UploadService, history service.HistoryService) *HTTPHandler {
	return &HTTPHandler{
		upload:  upload,
		history: history,
	}
}

func (h *HTTPHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "API is running...")
}

func (h *HTTPHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	req := service.UploadRequest{
		TargetLanguage: c.PostForm("targetLang"),
		SourceLanguage: c.PostForm("sourceLang"),
	}

	owner, err := auth.ResolveOwner(c, c.PostForm("userId"))
	if err != nil {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
		return
	}
	req.OwnerID = owner

	// a missing part is left for the service to reject
	if file, err := c.FormFile("audio"); err == nil {
		f, err := file.Open()
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("failed to open uploaded audio")
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Processing failed", Details: err.Error()})
			return
		}
		req.Audio, err = io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("failed to read uploaded audio")
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Processing failed", Details: err.Error()})
			return
		}
		req.Filename = file.Filename
		req.ContentType = file.Header.Get("Content-Type")
	}

	outcome, err := h.upload.Upload(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingAudio):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No audio buffer"})
		case errors.Is(err, service.ErrMissingOwner):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "User ID is required"})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Processing failed", Details: details(err)})
		}
		return
	}

	if outcome.NoSpeech {
		c.JSON(http.StatusOK, dto.UploadResponse{Transcript: outcome.Transcript})
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{
		Transcript:     outcome.Transcript,
		TranslatedText: outcome.TranslatedText,
		TargetLanguage: outcome.TargetLanguage,
	})
}

func (h *HTTPHandler) History(c *gin.Context) {
	owner, err := auth.ResolveOwner(c, c.Query("userId"))
	if err != nil {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if owner == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "userId query parameter is missing"})
		return
	}

	records, err := h.history.History(c.Request.Context(), owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to load history", Details: details(err)})
		return
	}

	c.JSON(http.StatusOK, records)
}

// details flattens joined errors onto one line.
func details(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", ": ")
}
