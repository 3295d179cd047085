// Package edge serves the visitor endpoint as a single stateless http.Handler,
// the shape Go function runtimes invoke per request.
package edge

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"visitor-registration/pkg/clients/feishu"
	"visitor-registration/pkg/config"
	"visitor-registration/pkg/middleware"
	"visitor-registration/pkg/models"
	"visitor-registration/pkg/services"
)

// Handler answers every path it is mounted on
type Handler struct {
	service services.SubmissionService
	logger  *zap.Logger
}

// NewHandler creates a Handler around an existing submission service
func NewHandler(service services.SubmissionService, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// New builds a Handler from configuration
func New(cfg *config.Config, logger *zap.Logger) *Handler {
	client := feishu.NewClient(feishu.Options{
		BaseURL:    cfg.FeishuBaseURL,
		AppID:      cfg.FeishuAppID,
		AppSecret:  cfg.FeishuAppSecret,
		AppToken:   cfg.FeishuAppToken,
		TableToken: cfg.FeishuTableToken,
		Timeout:    cfg.FeishuTimeout,
	}, logger)
	return NewHandler(services.NewSubmissionService(client, cfg, logger), logger)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		middleware.SetCORSHeaders(w.Header())
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		io.WriteString(w, "Method not allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("error reading request body", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, models.FailureResponse{Error: services.MsgServerError})
		return
	}

	res := h.service.Handle(r.Context(), body)
	h.writeJSON(w, res.Status, res.Body())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	middleware.SetCORSHeaders(w.Header())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("error writing response", zap.Error(err))
	}
}
