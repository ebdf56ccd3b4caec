package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/vanshika/recipenet/internal/config"
	"github.com/vanshika/recipenet/internal/domain"
	"github.com/vanshika/recipenet/internal/network"
	"github.com/vanshika/recipenet/internal/render"
	"github.com/vanshika/recipenet/internal/service"
)

// Handlers serves the dashboard page, its JSON API and the snapshot exports.
type Handlers struct {
	logger  *slog.Logger
	service *service.NetworkService
	pages   *render.PageRenderer
	filter  config.FilterConfig
}

// NewHandlers constructs the dashboard handlers.
func NewHandlers(logger *slog.Logger, svc *service.NetworkService, pages *render.PageRenderer, filter config.FilterConfig) *Handlers {
	return &Handlers{
		logger:  logger,
		service: svc,
		pages:   pages,
		filter:  filter,
	}
}

type categoryResponse struct {
	Label     string `json:"label"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

type nodeResponse struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Title  string `json:"title"`
	Count  int    `json:"count"`
	Degree int    `json:"degree"`
}

type edgeResponse struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
	Color  string  `json:"color"`
	Title  string  `json:"title"`
}

type networkResponse struct {
	Category   categoryResponse `json:"category"`
	MaxEdges   int              `json:"maxEdges"`
	MinCount   int              `json:"minCount"`
	Nodes      []nodeResponse   `json:"nodes"`
	Edges      []edgeResponse   `json:"edges"`
	Components int              `json:"components"`
}

type highlightResponse struct {
	Category categoryResponse                  `json:"category"`
	Hovered  *string                           `json:"hovered"`
	States   map[string]network.HighlightState `json:"states"`
}

func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	params, err := h.parseViewParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.service.View(r.Context(), params)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.pages.Render(&buf, render.PageData{Categories: categories, View: view, Filter: h.filter}); err != nil {
		h.logger.Error("failed to render dashboard", "error", err, "category", view.Label, "request_id", RequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "failed to render dashboard")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handlers) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	keys, err := h.service.Categories(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	items := make([]categoryResponse, 0, len(keys))
	for _, key := range keys {
		items = append(items, toCategoryResponse(key))
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handlers) handleNetwork(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	params, err := h.parseViewParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.service.View(r.Context(), params)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp := networkResponse{
		Category:   toCategoryResponse(view.Key),
		MaxEdges:   view.Params.MaxEdges,
		MinCount:   view.Params.MinNodeCount,
		Nodes:      make([]nodeResponse, 0, len(view.Nodes)),
		Edges:      make([]edgeResponse, 0, len(view.Edges)),
		Components: view.Components,
	}
	for _, n := range view.Nodes {
		resp.Nodes = append(resp.Nodes, nodeResponse{ID: n.ID, Label: n.Label, Title: n.Title, Count: n.Count, Degree: n.Degree})
	}
	for _, e := range view.Edges {
		resp.Edges = append(resp.Edges, edgeResponse{Source: e.Source, Target: e.Target, Weight: e.Weight, Color: e.Color, Title: e.Title})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handlers) handleHighlight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	params, err := h.parseViewParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hovered := r.URL.Query().Get("node")
	projection, err := h.service.Highlight(r.Context(), params, hovered)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp := highlightResponse{
		Category: toCategoryResponse(projection.View.Key),
		States:   projection.States,
	}
	if projection.Hover.Active {
		resp.Hovered = &projection.Hover.Node
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handlers) handleSnapshot(format string) http.HandlerFunc {
	contentType := "image/svg+xml"
	if format == "png" {
		contentType = "image/png"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}

		params, err := h.parseViewParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		opts, err := parseSnapshotOptions(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		view, err := h.service.View(r.Context(), params)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		var buf bytes.Buffer
		if err := render.NewSnapshot(view, opts).Write(&buf, format); err != nil {
			h.logger.Error("failed to render snapshot", "error", err, "format", format, "request_id", RequestID(r.Context()))
			writeError(w, http.StatusInternalServerError, "failed to render snapshot")
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownCategory):
		writeError(w, http.StatusNotFound, "unknown category")
	case errors.Is(err, service.ErrNoCategories):
		writeError(w, http.StatusNotFound, "no categories available")
	default:
		h.logger.Error("request failed", "error", err, "path", r.URL.Path, "request_id", RequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "failed to load category")
	}
}

// parseViewParams reads category, maxEdges and minCount. Missing values take the
// configured defaults; malformed ones are rejected.
func (h *Handlers) parseViewParams(r *http.Request) (service.ViewParams, error) {
	q := r.URL.Query()
	params := service.ViewParams{MinNodeCount: h.filter.DefaultMinNodeCount}

	params.Label = strings.TrimSpace(q.Get("category"))

	var err error
	if params.MaxEdges, err = parseIntParam(q.Get("maxEdges"), 0); err != nil {
		return service.ViewParams{}, fmt.Errorf("maxEdges: %w", err)
	}
	if params.MinNodeCount, err = parseIntParam(q.Get("minCount"), params.MinNodeCount); err != nil {
		return service.ViewParams{}, fmt.Errorf("minCount: %w", err)
	}
	return params, nil
}

func parseSnapshotOptions(r *http.Request) (render.SnapshotOptions, error) {
	q := r.URL.Query()
	opts := render.SnapshotOptions{Hovered: q.Get("node")}

	var err error
	if opts.Width, err = parseIntParam(q.Get("width"), 0); err != nil {
		return opts, fmt.Errorf("width: %w", err)
	}
	if opts.Height, err = parseIntParam(q.Get("height"), 0); err != nil {
		return opts, fmt.Errorf("height: %w", err)
	}
	if opts.Width > 4096 || opts.Height > 4096 {
		return opts, errors.New("snapshot dimensions must not exceed 4096")
	}
	if seed := q.Get("seed"); seed != "" {
		if opts.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			return opts, fmt.Errorf("seed: %w", err)
		}
	}
	return opts, nil
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", value)
	}
	return v, nil
}

func toCategoryResponse(key domain.CategoryKey) categoryResponse {
	return categoryResponse{Label: key.Label(), Primary: key.Primary, Secondary: key.Secondary}
}
