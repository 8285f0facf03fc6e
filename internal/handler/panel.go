package handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"noctopo/internal/domain"
	"noctopo/internal/metrics"
)

// GetLink returns the link creation progress
func (h *PanelHandler) GetLink(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.LinkSession(), http.StatusOK)
}

// LinkDraft returns the attributes the link form starts from
func (h *PanelHandler) LinkDraft(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.LinkDraft(), http.StatusOK)
}

// EnterLinkMode starts link creation
func (h *PanelHandler) EnterLinkMode(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.EnterLinkMode(), http.StatusOK)
}

// ExitLinkMode leaves link creation
func (h *PanelHandler) ExitLinkMode(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.ExitLinkMode(), http.StatusOK)
}

// CancelLink drops the picked pair
func (h *PanelHandler) CancelLink(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.CancelLink(), http.StatusOK)
}

// PickNode selects the source or target of the link being drawn
func (h *PanelHandler) PickNode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	session, err := h.svc.PickNode(req.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, session, http.StatusOK)
}

// ConfirmLink creates the link between the picked devices
func (h *PanelHandler) ConfirmLink(w http.ResponseWriter, r *http.Request) {
	var attrs domain.EdgeAttrs
	if !h.decode(w, r, &attrs) {
		return
	}
	if _, err := h.svc.ConfirmLink(attrs); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusCreated)
}

// PushSeries accepts a metrics refresh
func (h *PanelHandler) PushSeries(w http.ResponseWriter, r *http.Request) {
	var frames []metrics.Frame
	if !h.decode(w, r, &frames) {
		return
	}
	hosts := h.svc.PushSeries(frames)
	h.writeJSON(w, map[string]int{"hosts": len(hosts)}, http.StatusAccepted)
}

// GetMetrics returns the latest parsed metrics
func (h *PanelHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Metrics(), http.StatusOK)
}

// GetTheme returns the panel theme
func (h *PanelHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Theme(), http.StatusOK)
}

// SetTheme replaces the panel theme
func (h *PanelHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var theme domain.ThemeSettings
	if !h.decode(w, r, &theme) {
		return
	}
	updated, err := h.svc.SetTheme(theme)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, updated, http.StatusOK)
}

// Save persists the panel
func (h *PanelHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Save(r.Context()); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK)
}

// ListRevisions lists earlier saves, newest first
func (h *PanelHandler) ListRevisions(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			h.writeError(w, "Invalid limit", err.Error(), http.StatusBadRequest)
			return
		}
		limit = n
	}
	revs, err := h.svc.Revisions(r.Context(), limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, revs, http.StatusOK)
}

// RestoreRevision loads an earlier save
func (h *PanelHandler) RestoreRevision(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeError(w, "Invalid revision ID", err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.svc.RestoreRevision(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK)
}

// Export downloads the topology as a backup
func (h *PanelHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=topology-backup.json")
	case "yaml":
		w.Header().Set("Content-Type", "application/x-yaml")
		w.Header().Set("Content-Disposition", "attachment; filename=topology-backup.yml")
	default:
		h.writeError(w, "Unsupported format", format, http.StatusBadRequest)
		return
	}

	if err := h.svc.Export(w, format); err != nil {
		// Can't write error response as we already set headers
		h.logger.Error("failed to export", zap.String("format", format), zap.Error(err))
	}
}

// Import replaces the topology with an uploaded backup
func (h *PanelHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Import(r.Body, r.PathValue("format")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK)
}
