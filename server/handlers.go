package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/helpers"
	"github.com/spektr-org/chartkit/query"
	"github.com/spektr-org/chartkit/render"
	"github.com/spektr-org/chartkit/schema"
)

// MaxBodySize caps request bodies.
const MaxBodySize = 32 << 20 // 32MB

var errMissingRow = errors.New("drill-down needs row or row_index")

// Handler serves chart inference, spec assembly and drill-down over HTTP.
type Handler struct {
	Logger  *logrus.Entry
	Options []engine.Option
}

// NewHandler creates a Handler. Extra engine options apply to every build.
func NewHandler(logger *logrus.Entry, opts ...engine.Option) *Handler {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Handler{Logger: logger, Options: opts}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Post("/api/discover", h.Discover)
	r.Post("/api/chart/guess", h.Guess)
	r.Post("/api/chart/spec", h.Spec)
	r.Post("/api/chart/preview", h.Preview)
	r.Post("/api/chart/drilldown", h.DrillDown)
}

// ============================================================================
// Requests / responses
// ============================================================================

type guessRequest struct {
	Result schema.Result `json:"result"`
}

type guessResponse struct {
	ChartType engine.ChartType `json:"chart_type,omitempty"`
	Found     bool             `json:"found"`
}

type specRequest struct {
	Config engine.ChartConfig `json:"config"`
	Result schema.Result      `json:"result"`
	Query  *query.Query       `json:"query,omitempty"`
	Colors []string           `json:"colors,omitempty"`
}

type specResponse struct {
	ChartType engine.ChartType  `json:"chart_type"`
	Spec      *engine.ChartSpec `json:"spec"`
}

type drillDownRequest struct {
	Query    *query.Query  `json:"query"`
	Result   schema.Result `json:"result"`
	Row      schema.Row    `json:"row,omitempty"`
	RowIndex *int          `json:"row_index,omitempty"`
	Column   string        `json:"column"`
}

type drillDownResponse struct {
	Query *query.Query `json:"query"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ============================================================================
// Handlers
// ============================================================================

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// Discover types a CSV body and returns it as a result.
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	res, err := helpers.ParseCSV(data, helpers.CSVOptions{
		SnakeCaseHeaders: r.URL.Query().Get("snake_case") == "true",
	})
	if err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	h.respond(w, http.StatusOK, res)
}

func (h *Handler) Guess(w http.ResponseWriter, r *http.Request) {
	var req guessRequest
	if !h.decode(w, r, &req) {
		return
	}
	chartType, ok := engine.GuessChart(req.Result.Columns, req.Result.Rows)
	h.respond(w, http.StatusOK, guessResponse{ChartType: chartType, Found: ok})
}

func (h *Handler) Spec(w http.ResponseWriter, r *http.Request) {
	var req specRequest
	if !h.decode(w, r, &req) {
		return
	}
	spec, err := h.build(req)
	if err != nil {
		h.fail(w, statusFor(err), err)
		return
	}
	h.respond(w, http.StatusOK, specResponse{ChartType: spec.Type, Spec: spec})
}

// Preview returns the spec as a standalone HTML page.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req specRequest
	if !h.decode(w, r, &req) {
		return
	}
	spec, err := h.build(req)
	if err != nil {
		h.fail(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Render(w, spec, render.Options{}); err != nil {
		h.Logger.WithError(err).Error("preview render failed")
	}
}

func (h *Handler) DrillDown(w http.ResponseWriter, r *http.Request) {
	var req drillDownRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.RowIndex == nil && req.Row == nil {
		h.fail(w, http.StatusBadRequest, errMissingRow)
		return
	}
	col, ok := req.Result.Column(req.Column)
	if !ok {
		h.fail(w, http.StatusBadRequest, fmt.Errorf("unknown column %q", req.Column))
		return
	}

	opts := append([]engine.Option{engine.WithLogger(h.Logger)}, h.Options...)
	var q *query.Query
	var err error
	if req.RowIndex != nil {
		q, err = engine.BuildDrillDownAt(req.Query, &req.Result, *req.RowIndex, col, opts...)
	} else {
		q, err = engine.BuildDrillDown(req.Query, &req.Result, req.Row, col, opts...)
	}
	if err != nil {
		h.fail(w, statusFor(err), err)
		return
	}
	if q == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.respond(w, http.StatusOK, drillDownResponse{Query: q})
}

// ============================================================================
// Helpers
// ============================================================================

func (h *Handler) build(req specRequest) (*engine.ChartSpec, error) {
	opts := []engine.Option{engine.WithLogger(h.Logger)}
	if req.Query != nil {
		opts = append(opts, engine.WithGranularity(req.Query))
	}
	if len(req.Colors) > 0 {
		opts = append(opts, engine.WithPalette(req.Colors))
	}
	opts = append(opts, h.Options...)
	return engine.BuildChart(req.Config, &req.Result, opts...)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		h.fail(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.WithError(err).Error("failed to write response")
	}
}

func (h *Handler) fail(w http.ResponseWriter, status int, err error) {
	entry := h.Logger.WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}
	h.respond(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrUnsupportedChartType),
		errors.Is(err, engine.ErrNoRecommendation),
		errors.Is(err, engine.ErrMissingMeasureColumn),
		errors.Is(err, engine.ErrMissingDimensionColumn):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrEmptySeries),
		errors.Is(err, engine.ErrMissingXAxis),
		errors.Is(err, engine.ErrRowOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
