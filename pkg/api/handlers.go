package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"visitor-registration/pkg/middleware"
	"visitor-registration/pkg/models"
	"visitor-registration/pkg/services"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	submissionService services.SubmissionService
	logger            *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(submissionService services.SubmissionService, logger *zap.Logger) *Handlers {
	return &Handlers{
		submissionService: submissionService,
		logger:            logger,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleVisitor accepts a visitor registration from the form
func (h *Handlers) HandleVisitor(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.logger.Error("error reading request body",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, models.FailureResponse{Error: services.MsgServerError})
		return
	}

	res := h.submissionService.Handle(c.Request.Context(), body)
	c.JSON(res.Status, res.Body())
}

// Preflight answers OPTIONS without a body. Cross-origin preflights are
// already answered by the CORS middleware before reaching this handler.
func (h *Handlers) Preflight(c *gin.Context) {
	middleware.SetCORSHeaders(c.Writer.Header())
	c.Status(http.StatusNoContent)
}

// MethodNotAllowed rejects methods other than those routed for a path
func (h *Handlers) MethodNotAllowed(c *gin.Context) {
	c.String(http.StatusMethodNotAllowed, "Method not allowed")
}
