package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ReviewBoard/internal/domain"
	"ReviewBoard/internal/usecase"
)

// statusClientClosedRequest mirrors nginx's non-standard code for requests
// abandoned by the client, so cancellations are distinguishable from backend
// failures in access logs.
const statusClientClosedRequest = 499

// Handler serves the read API over the pivot engine.
type Handler struct {
	board  *usecase.Board
	logger *slog.Logger
}

// NewHandler wires the engine into the HTTP layer.
func NewHandler(board *usecase.Board, logger *slog.Logger) *Handler {
	return &Handler{board: board, logger: logger}
}

// RegisterRoutes wires the API routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	if mux == nil || h == nil {
		return
	}
	mux.HandleFunc("GET /api/v1/reviews", h.HandleReviews)
	mux.HandleFunc("GET /healthz", h.HandleHealth)
}

// HandleHealth is the liveness probe.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// HandleReviews serves the pivot table in flat or grouped view.
func (h *Handler) HandleReviews(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	query, grouped, err := parseQuery(r)
	if err != nil {
		h.writeError(w, r, err, started)
		return
	}

	if grouped {
		page, err := h.board.GroupedPivots(r.Context(), query)
		if err != nil {
			h.writeError(w, r, err, started)
			return
		}
		h.writeJSON(w, r, groupedResponse{
			Groups:    toBucketDTOs(page.Groups),
			Total:     page.Total,
			Page:      page.Page,
			PerPage:   page.PerPage,
			Truncated: page.Truncated,
		}, started)
		return
	}

	page, err := h.board.Pivots(r.Context(), query)
	if err != nil {
		h.writeError(w, r, err, started)
		return
	}
	h.writeJSON(w, r, flatResponse{
		Data:      toPivotDTOs(page.Data),
		Total:     page.Total,
		Page:      page.Page,
		PerPage:   page.PerPage,
		Truncated: page.Truncated,
	}, started)
}

// parseQuery maps URL parameters onto the engine query. Unknown orderKey,
// direction, preferredPhase and view values fall back to defaults so the
// read path stays tolerant of older and newer clients; malformed numerics
// are rejected.
func parseQuery(r *http.Request) (usecase.Query, bool, error) {
	values := r.URL.Query()

	query := usecase.Query{
		Project:          strings.TrimSpace(values.Get("project")),
		Root:             strings.TrimSpace(values.Get("root")),
		OrderKey:         usecase.ParseSortKey(values.Get("orderKey")),
		Direction:        usecase.ParseDirection(values.Get("direction")),
		NameKey:          values.Get("assetNameKey"),
		ApprovalStatuses: splitStatuses(values["approvalStatuses"]),
		WorkStatuses:     splitStatuses(values["workStatuses"]),
	}

	page, err := parsePositiveInt(values.Get("page"), "page")
	if err != nil {
		return usecase.Query{}, false, err
	}
	query.Page = page

	perPage, err := parsePositiveInt(values.Get("perPage"), "perPage")
	if err != nil {
		return usecase.Query{}, false, err
	}
	query.PerPage = perPage

	if raw := strings.TrimSpace(values.Get("preferredPhase")); raw != "" && !strings.EqualFold(raw, "none") {
		if phase, ok := domain.ParsePhase(raw); ok {
			query.PreferredPhase = phase
		}
	}

	grouped := strings.EqualFold(strings.TrimSpace(values.Get("view")), "grouped")
	return query, grouped, nil
}

func parsePositiveInt(raw, field string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &usecase.ValidationError{Field: field, Reason: "must be a positive integer"}
	}
	return n, nil
}

// splitStatuses accepts repeated parameters and comma-separated lists.
func splitStatuses(raw []string) []string {
	var statuses []string
	for _, value := range raw {
		for _, status := range strings.Split(value, ",") {
			status = strings.TrimSpace(status)
			if status != "" {
				statuses = append(statuses, status)
			}
		}
	}
	return statuses
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, body any, started time.Time) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log(r, http.StatusOK, started, "encode response", "error", err)
		return
	}
	h.log(r, http.StatusOK, started, "request served")
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, started time.Time) {
	status := http.StatusInternalServerError
	message := "internal error"

	var invalid *usecase.ValidationError
	switch {
	case errors.As(err, &invalid):
		status = http.StatusBadRequest
		message = invalid.Error()
	case errors.Is(err, context.Canceled):
		status = statusClientClosedRequest
		message = "request canceled"
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		message = "request timed out"
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
	h.log(r, status, started, "request failed", "error", err)
}

func (h *Handler) log(r *http.Request, status int, started time.Time, msg string, args ...any) {
	if h.logger == nil {
		return
	}
	fields := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"duration", time.Since(started).String(),
	}
	h.logger.Info(msg, append(fields, args...)...)
}
