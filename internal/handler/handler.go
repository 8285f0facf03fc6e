package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"noctopo/internal/domain"
	"noctopo/internal/i18n"
	"noctopo/internal/service"
)

// PanelHandler handles panel API requests
type PanelHandler struct {
	svc    *service.PanelService
	tr     *i18n.Translator
	logger *zap.Logger
}

// NewPanelHandler creates a new panel handler
func NewPanelHandler(svc *service.PanelService, tr *i18n.Translator, logger *zap.Logger) *PanelHandler {
	return &PanelHandler{svc: svc, tr: tr, logger: logger}
}

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Register adds the API routes to mux
func (h *PanelHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/topology", h.GetTopology)
	mux.HandleFunc("POST /api/undo", h.Undo)
	mux.HandleFunc("POST /api/redo", h.Redo)

	// Devices
	mux.HandleFunc("POST /api/devices", h.AddDevice)
	mux.HandleFunc("PUT /api/devices/{id}", h.EditDevice)
	mux.HandleFunc("DELETE /api/devices/{id}", h.DeleteDevice)
	mux.HandleFunc("GET /api/devices/{id}/impact", h.RekeyImpact)
	mux.HandleFunc("GET /api/devices/{id}/interfaces", h.Interfaces)
	mux.HandleFunc("GET /api/devices/{id}/items", h.Items)
	mux.HandleFunc("PUT /api/nodes/{id}/position", h.MoveNode)

	// Edges and anchors
	mux.HandleFunc("POST /api/edges", h.AddEdge)
	mux.HandleFunc("PUT /api/edges/{id}", h.EditEdge)
	mux.HandleFunc("DELETE /api/edges/{id}", h.RemoveEdge)
	mux.HandleFunc("GET /api/edges/{id}/endpoints", h.ResolveEndpoints)
	mux.HandleFunc("GET /api/edges/{id}/traffic", h.TrafficHistory)
	mux.HandleFunc("POST /api/edges/{id}/anchors", h.InsertAnchor)
	mux.HandleFunc("DELETE /api/anchors/{id}", h.RemoveAnchor)
	mux.HandleFunc("DELETE /api/elements/{id}", h.RemoveElement)
	mux.HandleFunc("POST /api/edge-metrics", h.SuggestEdgeMetrics)

	// Link creation
	mux.HandleFunc("GET /api/link", h.GetLink)
	mux.HandleFunc("GET /api/link/draft", h.LinkDraft)
	mux.HandleFunc("POST /api/link/enter", h.EnterLinkMode)
	mux.HandleFunc("POST /api/link/exit", h.ExitLinkMode)
	mux.HandleFunc("POST /api/link/pick", h.PickNode)
	mux.HandleFunc("POST /api/link/cancel", h.CancelLink)
	mux.HandleFunc("POST /api/link/confirm", h.ConfirmLink)

	// Panel
	mux.HandleFunc("POST /api/series", h.PushSeries)
	mux.HandleFunc("GET /api/metrics", h.GetMetrics)
	mux.HandleFunc("GET /api/theme", h.GetTheme)
	mux.HandleFunc("PUT /api/theme", h.SetTheme)
	mux.HandleFunc("POST /api/save", h.Save)
	mux.HandleFunc("GET /api/revisions", h.ListRevisions)
	mux.HandleFunc("POST /api/revisions/{id}/restore", h.RestoreRevision)
	mux.HandleFunc("GET /api/export/{format}", h.Export)
	mux.HandleFunc("POST /api/import/{format}", h.Import)
}

// Helper methods

func (h *PanelHandler) writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON", zap.Error(err))
	}
}

func (h *PanelHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	h.writeJSON(w, ErrorResponse{Error: error, Details: details}, statusCode)
}

// writeServiceError maps a rejection to its status code and a localized
// message
func (h *PanelHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	h.writeError(w, h.tr.Message(h.language(r), err), err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateDevice),
		errors.Is(err, domain.ErrDuplicateConnection),
		errors.Is(err, domain.ErrDuplicateID),
		errors.Is(err, domain.ErrLinkState):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSelfLink),
		errors.Is(err, domain.ErrNotAnchor),
		errors.Is(err, domain.ErrNotDevice),
		errors.Is(err, domain.ErrAnchorDegree),
		errors.Is(err, domain.ErrInvalidElement),
		errors.Is(err, domain.ErrInvalidBackup):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *PanelHandler) language(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return h.tr.Language(lang)
	}
	if lang := r.Header.Get("Accept-Language"); lang != "" {
		return h.tr.Language(lang)
	}
	return h.svc.Language()
}

// decode reads a JSON body, answering 400 itself when it cannot
func (h *PanelHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeView answers an edit with the resulting topology
func (h *PanelHandler) writeView(w http.ResponseWriter, statusCode int) {
	h.writeJSON(w, h.svc.View(), statusCode)
}
