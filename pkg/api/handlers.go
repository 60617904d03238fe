package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"emdash-brief/pkg/checkout"
	apperrors "emdash-brief/pkg/errors"
	"emdash-brief/pkg/logger"
	"emdash-brief/pkg/middleware"
	"emdash-brief/pkg/models"
	"emdash-brief/pkg/schema"
	"emdash-brief/pkg/services"
	"emdash-brief/pkg/utils"
)

const maxBodySize = 64 << 10 // 64KB

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	submissionService services.SubmissionService
	redirector        *checkout.Redirector
	logger            logger.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(submissionService services.SubmissionService, redirector *checkout.Redirector, log logger.Logger) *Handlers {
	if redirector == nil {
		redirector = checkout.NewRedirector("", "", "")
	}
	return &Handlers{
		submissionService: submissionService,
		redirector:        redirector,
		logger:            log,
	}
}

// Register mounts every route on r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Any verb reaches the handler so that wrong methods get a JSON 405.
	r.Any("/api/create-notion-entry", h.HandleSubmission)
	r.Any("/api/submit", h.HandleSubmission)

	r.GET("/api/questions/:type", h.HandleQuestions)
	r.GET("/api/checkout", h.HandleCheckout)
	r.GET("/api/checkout/config", h.HandleCheckoutConfig)
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleSubmission accepts a project brief or contact form and stores it.
func (h *Handlers) HandleSubmission(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.respondError(c, &apperrors.MethodNotAllowedError{Method: c.Request.Method})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
	if err != nil {
		h.respondError(c, apperrors.NewValidationError(apperrors.ErrCodeInvalidBody, "Error reading request", err.Error()))
		return
	}

	if err := schema.ValidateRequest(body); err != nil {
		h.respondError(c, err)
		return
	}

	var req models.SubmissionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondError(c, apperrors.NewValidationError(apperrors.ErrCodeInvalidBody, "Invalid JSON format", err.Error()))
		return
	}

	result, err := h.submissionService.ProcessSubmission(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleQuestions returns the ordered questionnaire for an entry type slug.
func (h *Handlers) HandleQuestions(c *gin.Context) {
	entryType, ok := schema.EntryTypeFromSlug(c.Param("type"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown entry type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"type":      entryType,
		"questions": schema.Questions(entryType),
	})
}

// HandleCheckout redirects the browser to the hosted payment page.
func (h *Handlers) HandleCheckout(c *gin.Context) {
	target, err := h.redirector.URL(checkout.Params{
		Email:     c.Query("email"),
		Reference: c.Query("ref"),
	})
	if err != nil {
		h.logger.WithError(err).Error("Checkout unavailable", map[string]interface{}{
			"requestId": middleware.GetRequestID(c),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout unavailable", "details": err.Error()})
		return
	}

	h.logger.Info("Redirecting to checkout", map[string]interface{}{
		"requestId": middleware.GetRequestID(c),
		"emailHash": utils.HashEmail(c.Query("email")),
	})
	c.Redirect(http.StatusSeeOther, target)
}

// HandleCheckoutConfig exposes the static post-payment URLs.
func (h *Handlers) HandleCheckoutConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"enabled":    h.redirector.Configured(),
		"successUrl": h.redirector.SuccessURL(),
		"cancelUrl":  h.redirector.CancelURL(),
	})
}

func (h *Handlers) respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	log := h.logger.WithError(err).WithFields(map[string]interface{}{
		"requestId": middleware.GetRequestID(c),
		"status":    status,
		"path":      c.FullPath(),
	})

	if status == http.StatusMethodNotAllowed {
		c.JSON(status, gin.H{"error": "Method not allowed"})
		return
	}

	if validationErr, ok := apperrors.AsValidation(err); ok {
		log.Warn("Rejected request", nil)
		c.JSON(status, gin.H{
			"error":   validationErr.Message,
			"code":    validationErr.Code,
			"details": validationErr.Details,
		})
		return
	}

	log.Error("Failed to process request", nil)
	if remoteErr, ok := apperrors.AsRemote(err); ok {
		c.JSON(status, gin.H{
			"error":   "Failed to create entry",
			"details": remoteErr.Message,
			"code":    remoteErr.Code,
			"system":  remoteErr.System,
		})
		return
	}

	c.JSON(status, gin.H{
		"error":   "Failed to process request",
		"details": err.Error(),
	})
}
