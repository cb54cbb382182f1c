package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skedhub/sked-engine/pkg/apperrors"
	"github.com/skedhub/sked-engine/pkg/query"
	"github.com/skedhub/sked-engine/pkg/services"
	"github.com/skedhub/sked-engine/pkg/store"
)

// AskRequest is the natural-language query request body.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse carries rows, the compiled SQL, the translated
// configuration, and token usage for cost accounting.
type AskResponse struct {
	Rows   []map[string]any    `json:"rows"`
	SQL    string              `json:"sql"`
	Config *query.Config       `json:"config"`
	Usage  services.TokenUsage `json:"usage"`
}

// AskHandler handles natural-language schedule questions.
type AskHandler struct {
	translator services.TranslationService
	gateway    store.Gateway
	logger     *zap.Logger
	now        func() time.Time
}

// NewAskHandler creates an AskHandler. The now function supplies
// "today" for both prompt construction and date resolution; pass nil
// for the UTC wall clock.
func NewAskHandler(translator services.TranslationService, gateway store.Gateway, logger *zap.Logger, now func() time.Time) *AskHandler {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &AskHandler{translator: translator, gateway: gateway, logger: logger, now: now}
}

// RegisterRoutes registers the ask handler's routes on the given mux.
func (h *AskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ask", h.Ask)
}

// Ask handles POST /api/ask.
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Request body must be JSON with a question field.")
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		h.writeError(w, http.StatusBadRequest, "Ask a question to run a query.")
		return
	}

	today := h.now()

	translated, err := h.translator.Translate(r.Context(), req.Question, today)
	if err != nil {
		h.handleTranslationError(w, err)
		return
	}

	sqlText, err := query.Compile(translated.Config, today)
	if err != nil {
		var validationErr *query.ValidationError
		if errors.As(err, &validationErr) {
			h.writeError(w, http.StatusBadRequest, validationErr.Message)
			return
		}
		h.logger.Error("Compilation of translated config failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, msgDataUnavailable)
		return
	}

	rows, err := h.gateway.Execute(r.Context(), sqlText)
	if err != nil {
		h.logger.Error("Query execution failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, msgDataUnavailable)
		return
	}

	resp := AskResponse{
		Rows:   rows,
		SQL:    sqlText,
		Config: translated.Config,
		Usage:  translated.Usage,
	}
	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to encode ask response", zap.Error(err))
	}
}

// handleTranslationError maps the translation error taxonomy onto HTTP
// responses. LLM-declared semantic errors surface verbatim; hard
// failures and timeouts surface as generic user-safe messages with the
// detail logged server-side.
func (h *AskHandler) handleTranslationError(w http.ResponseWriter, err error) {
	var semanticErr *services.NotAScheduleQueryError
	if errors.As(err, &semanticErr) {
		h.writeError(w, http.StatusBadRequest, semanticErr.Reason)
		return
	}

	if errors.Is(err, apperrors.ErrTranslationTimeout) {
		h.logger.Warn("Translation timed out", zap.Error(err))
		h.writeError(w, http.StatusGatewayTimeout, msgTranslationTimeout)
		return
	}

	h.logger.Error("Translation failed", zap.Error(err))
	h.writeError(w, http.StatusBadGateway, msgTranslationFailed)
}

func (h *AskHandler) writeError(w http.ResponseWriter, status int, message string) {
	if err := ErrorJSON(w, status, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
