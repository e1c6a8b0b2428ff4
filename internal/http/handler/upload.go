package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/connectsphere/media-pipeline/internal/pipeline"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type UploadedFile struct {
	Role        string `json:"role"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	StorageKey  string `json:"storageKey"`
	URL         string `json:"url"`
}

type UploadResponse struct {
	Files []UploadedFile `json:"files"`
}

type UploadHandler struct {
	acceptor     *pipeline.Acceptor
	orchestrator *pipeline.Orchestrator
	presets      map[string]pipeline.Preset
	logger       *slog.Logger
}

func NewUploadHandler(acceptor *pipeline.Acceptor, orchestrator *pipeline.Orchestrator, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		acceptor:     acceptor,
		orchestrator: orchestrator,
		presets:      pipeline.Presets(),
		logger:       logger,
	}
}

// Upload returns the handler for one named preset. Every preset runs the same
// accept → compress → materialize path; only the declared fields differ.
func (h *UploadHandler) Upload(presetName string) gin.HandlerFunc {
	preset, ok := h.presets[presetName]
	if !ok {
		panic("unknown upload preset: " + presetName)
	}

	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			h.logger.Warn("failed to parse multipart form", "error", err)
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "Invalid multipart request",
			})
			return
		}

		batch, err := h.acceptor.Accept(form, preset)
		if err != nil {
			var ve *pipeline.ValidationError
			if errors.As(err, &ve) {
				h.logger.Warn("upload rejected", "role", ve.Role, "detail", ve.Detail)
				c.JSON(validationStatus(ve), ErrorResponse{
					Error:   "Upload rejected",
					Details: ve.Error(),
				})
				return
			}
			h.logger.Error("failed to accept upload", "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Failed to process upload",
			})
			return
		}

		if err := h.orchestrator.Process(c.Request.Context(), c.FullPath(), batch); err != nil {
			h.logger.Error("pipeline failed", "preset", preset.Name, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Failed to store upload",
			})
			return
		}

		resp := UploadResponse{Files: make([]UploadedFile, 0, len(batch.Files))}
		for _, f := range batch.Files {
			resp.Files = append(resp.Files, UploadedFile{
				Role:        f.Role,
				Name:        f.OriginalName,
				ContentType: f.MimeType,
				Size:        f.SizeBytes,
				StorageKey:  f.StorageKey,
				URL:         f.PublicURL,
			})
		}

		h.logger.Info("upload complete", "preset", preset.Name, "files", len(resp.Files))
		c.JSON(http.StatusOK, resp)
	}
}

func validationStatus(ve *pipeline.ValidationError) int {
	if ve.Kind == pipeline.TooLarge {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
