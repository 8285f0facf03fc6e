package handler

import (
	"net/http"

	"noctopo/internal/domain"
	"noctopo/internal/topology"
)

// GetTopology returns the topology with derived display fields
func (h *PanelHandler) GetTopology(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, http.StatusOK)
}

// Undo reverts the last edit
func (h *PanelHandler) Undo(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Undo(); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK)
}

// Redo reapplies the last undone edit
func (h *PanelHandler) Redo(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Redo(); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK)
}

// AddDevice creates a device
func (h *PanelHandler) AddDevice(w http.ResponseWriter, r *http.Request) {
	var spec topology.DeviceSpec
	if !h.decode(w, r, &spec) {
		return
	}
	if _, err := h.svc.AddDevice(spec); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusCreated)
}

// EditDevice updates a device; a different newId re-keys it
func (h *PanelHandler) EditDevice(w http.ResponseWriter, r *http.Request) {
	var edit topology.DeviceEdit
	if !h.decode(w, r, &edit) {
		return
	}
	if _, err := h.svc.EditDevice(r.PathValue("id"), edit); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK)
}

// DeleteDevice removes a device and its anchor chains
func (h *PanelHandler) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteDevice(r.PathValue("id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK)
}

// RekeyImpact lists what re-keying a device would remove
func (h *PanelHandler) RekeyImpact(w http.ResponseWriter, r *http.Request) {
	impact, err := h.svc.RekeyImpact(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, impact, http.StatusOK)
}

// Interfaces lists the interfaces reported for a device
func (h *PanelHandler) Interfaces(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Interfaces(r.PathValue("id")), http.StatusOK)
}

// Items lists the metric items reported for a device
func (h *PanelHandler) Items(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Items(r.PathValue("id")), http.StatusOK)
}

// MoveNode records the end of a drag
func (h *PanelHandler) MoveNode(w http.ResponseWriter, r *http.Request) {
	var pos domain.Position
	if !h.decode(w, r, &pos) {
		return
	}
	if err := h.svc.MoveNode(r.PathValue("id"), pos); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK)
}

type addEdgeRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
	domain.EdgeAttrs
}

// AddEdge links two devices
func (h *PanelHandler) AddEdge(w http.ResponseWriter, r *http.Request) {
	var req addEdgeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if _, err := h.svc.AddEdge(req.Source, req.Target, req.EdgeAttrs); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusCreated)
}

// EditEdge patches every segment of a link
func (h *PanelHandler) EditEdge(w http.ResponseWriter, r *http.Request) {
	var patch domain.EdgePatch
	if !h.decode(w, r, &patch) {
		return
	}
	if err := h.svc.EditEdge(r.PathValue("id"), patch); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK)
}

// RemoveEdge removes a segment
func (h *PanelHandler) RemoveEdge(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveEdge(r.PathValue("id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK)
}

// ResolveEndpoints returns the devices a segment logically joins
func (h *PanelHandler) ResolveEndpoints(w http.ResponseWriter, r *http.Request) {
	source, target, err := h.svc.ResolveEndpoints(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, map[string]string{"source": source, "target": target}, http.StatusOK)
}

// TrafficHistory returns the rx/tx history of a monitored link and its
// chart scale
func (h *PanelHandler) TrafficHistory(w http.ResponseWriter, r *http.Request) {
	traffic, err := h.svc.TrafficHistory(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, traffic, http.StatusOK)
}

// InsertAnchor splits a segment around a new anchor
func (h *PanelHandler) InsertAnchor(w http.ResponseWriter, r *http.Request) {
	var pos domain.Position
	if !h.decode(w, r, &pos) {
		return
	}
	if _, err := h.svc.InsertAnchor(r.PathValue("id"), pos); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusCreated)
}

// RemoveAnchor merges the segments around an anchor
func (h *PanelHandler) RemoveAnchor(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.RemoveAnchor(r.PathValue("id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK)
}

// RemoveElement removes whatever element the id names
func (h *PanelHandler) RemoveElement(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveElement(r.PathValue("id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK)
}

type suggestRequest struct {
	Device    string              `json:"device"`
	Interface string              `json:"interface"`
	Existing  []domain.EdgeMetric `json:"existing"`
}

// SuggestEdgeMetrics returns the metric list for an interface binding
func (h *PanelHandler) SuggestEdgeMetrics(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.writeJSON(w, h.svc.SuggestEdgeMetrics(req.Device, req.Interface, req.Existing), http.StatusOK)
}
