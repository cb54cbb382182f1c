// Package handlers exposes the query engine over HTTP: structured
// queries on /api/query, natural-language questions on /api/ask, and
// the usual health endpoints.
package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skedhub/sked-engine/pkg/query"
	"github.com/skedhub/sked-engine/pkg/schema"
	"github.com/skedhub/sked-engine/pkg/store"
)

// QueryResponse carries the rows plus the compiled SQL for display.
type QueryResponse struct {
	Rows []map[string]any `json:"rows"`
	SQL  string           `json:"sql"`
}

// QueryHandler handles structured schedule queries.
type QueryHandler struct {
	gateway store.Gateway
	logger  *zap.Logger
	now     func() time.Time
}

// NewQueryHandler creates a QueryHandler. The now function supplies
// "today" for date resolution; pass nil for the UTC wall clock.
func NewQueryHandler(gateway store.Gateway, logger *zap.Logger, now func() time.Time) *QueryHandler {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &QueryHandler{gateway: gateway, logger: logger, now: now}
}

// RegisterRoutes registers the query handler's routes on the given mux.
func (h *QueryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/query", h.Query)
}

// Query handles GET /api/query. Query parameters map onto the query
// configuration: dimensions as a CSV list, filter columns by name,
// count as 0/1, plus limit, date, and sort parameters.
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	cfg := configFromValues(r.URL.Query())

	sqlText, err := query.Compile(cfg, h.now())
	if err != nil {
		var validationErr *query.ValidationError
		if errors.As(err, &validationErr) {
			if err := ErrorJSON(w, http.StatusBadRequest, validationErr.Message); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Query compilation failed", zap.Error(err))
		if err := ErrorJSON(w, http.StatusInternalServerError, msgDataUnavailable); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	rows, err := h.gateway.Execute(r.Context(), sqlText)
	if err != nil {
		h.logger.Error("Query execution failed", zap.Error(err))
		if err := ErrorJSON(w, http.StatusInternalServerError, msgDataUnavailable); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, QueryResponse{Rows: rows, SQL: sqlText}); err != nil {
		h.logger.Error("Failed to encode query response", zap.Error(err))
	}
}

// configFromValues builds a query configuration from URL parameters.
// Parse failures fall back to defaults; the compiler owns validation.
func configFromValues(values url.Values) *query.Config {
	cfg := &query.Config{
		DateMode:   query.DateMode(values.Get("date_mode")),
		DateExact:  values.Get("date_exact"),
		DateStart:  values.Get("date_start"),
		DateEnd:    values.Get("date_end"),
		AnchorDate: values.Get("anchor_date"),
		SortColumn: values.Get("sort_column"),
		SortDir:    values.Get("sort_dir"),
	}

	for _, d := range strings.Split(values.Get("dimensions"), ",") {
		if d = strings.TrimSpace(d); d != "" {
			cfg.Dimensions = append(cfg.Dimensions, d)
		}
	}

	switch values.Get("count") {
	case "1", "true", "yes":
		cfg.Count = true
	}

	cfg.Limit = intParam(values, "limit", query.DefaultLimit)
	cfg.DateYear = intParam(values, "date_year", 0)
	cfg.DateN = intParam(values, "date_n", 0)

	cfg.Filters = make(map[string][]string)
	for _, col := range schema.LowCardinalityColumns() {
		var vals []string
		for _, raw := range values[col] {
			for _, v := range strings.Split(raw, ",") {
				if v = strings.TrimSpace(v); v != "" {
					vals = append(vals, v)
				}
			}
		}
		if len(vals) > 0 {
			cfg.Filters[col] = vals
		}
	}
	for col := range schema.HighCardinalityColumns() {
		if v := strings.TrimSpace(values.Get(col)); v != "" {
			cfg.Filters[col] = []string{v}
		}
	}
	if vals := values["either_team"]; len(vals) > 0 {
		var kept []string
		for _, v := range vals {
			if v = strings.TrimSpace(v); v != "" {
				kept = append(kept, v)
			}
		}
		if len(kept) > 0 {
			cfg.Filters["either_team"] = kept
		}
	}

	return cfg
}

func intParam(values url.Values, name string, fallback int) int {
	raw := values.Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
