package summaries

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/documents"
	"docqa-backend/internal/shared/metrics"
	"docqa-backend/internal/shared/server/respond"
)

const (
	downloadFailed = "Failed to download summary"
	docNotFound    = "Document not found"
	fileName       = "summary.pdf"
)

type summaryRequest struct {
	DocID string `json:"doc_id"`
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the summary download route.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/download_summary", h.download)
}

func (h *Handler) download(c *gin.Context) {
	c.Set("operation", "download_summary")
	c.Set("failureMessage", downloadFailed)

	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusInternalServerError, downloadFailed, fmt.Errorf("%w: decode body: %w", ErrInvalidInput, err))
		return
	}
	c.Set("docId", req.DocID)

	data, err := h.Svc.SummaryPDF(c.Request.Context(), req.DocID)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, docNotFound, err)
		default:
			respond.Error(c, http.StatusInternalServerError, downloadFailed, err)
		}
		return
	}

	metrics.IncSummariesGenerated()
	respond.Attachment(c, "application/pdf", fileName, data)
}
