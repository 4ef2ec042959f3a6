package answers

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
	askFailed   = "Failed to process question"
	docNotFound = "Document not found"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the ask route.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/ask", h.ask)
}

func (h *Handler) ask(c *gin.Context) {
	c.Set("operation", "ask")
	c.Set("failureMessage", askFailed)

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncQuestionsFailed()
		respond.Error(c, http.StatusInternalServerError, askFailed, fmt.Errorf("%w: decode body: %w", ErrInvalidInput, err))
		return
	}
	c.Set("docId", req.DocID)

	res, err := h.Svc.Ask(c.Request.Context(), req.DocID, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, docNotFound, err)
		default:
			metrics.IncQuestionsFailed()
			respond.Error(c, http.StatusInternalServerError, askFailed, err)
		}
		return
	}

	metrics.IncQuestionsAnswered()
	respond.OK(c, toResponse(res))
}
