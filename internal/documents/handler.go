package documents

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/shared/metrics"
	"docqa-backend/internal/shared/server/respond"
	"docqa-backend/internal/shared/telemetry"
	"docqa-backend/internal/shared/util"
)

const (
	defaultMaxUploadBytes = 10 << 20 // 10MB
	uploadFailed          = "Failed to upload document"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	c.Set("operation", "upload")
	c.Set("failureMessage", uploadFailed)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, uploadFailed, fmt.Errorf("%w: file field: %w", ErrInvalidInput, err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, uploadFailed, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	id, err := h.Svc.Upload(c.Request.Context(), file)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, uploadFailed, err)
		return
	}

	c.Set("docId", id)
	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		fileName = "unnamed"
	}
	telemetry.Info("document.uploaded", map[string]any{
		"doc_id":    id,
		"file_name": fileName,
	})
	metrics.IncDocumentsUploaded()
	respond.JSON(c, http.StatusCreated, UploadResponse{DocID: id})
}
