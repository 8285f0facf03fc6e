package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"noctopo/internal/i18n"
	"noctopo/internal/projection"
	"noctopo/internal/repository/sqlite"
	"noctopo/internal/service"
	"noctopo/internal/topology"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	n := 0
	tr := i18n.New()
	engine := topology.New(projection.New(nil, tr), topology.Config{
		NewID: func(prefix string) string {
			n++
			return fmt.Sprintf("%s_%d", prefix, n)
		},
	})
	logger := zap.NewNop()
	svc := service.NewPanelService(engine, repo, service.NewEventBus(), logger, service.Options{PanelID: "test"})
	require.NoError(t, svc.Load(context.Background()))

	mux := http.NewServeMux()
	NewPanelHandler(svc, tr, logger).Register(mux)
	return Chain(mux, Recover(logger), CORS, Logger(logger))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestDeviceEndpoints(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, "POST", "/api/devices", `{"id": "sw", "alias": "Core"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	view := decodeBody[topology.View](t, rec)
	require.Len(t, view.Nodes, 1)
	assert.Equal(t, "Core", view.Nodes[0].Device.Alias)

	t.Run("duplicate device is a conflict with a localized message", func(t *testing.T) {
		rec := do(t, h, "POST", "/api/devices?lang=en", `{"id": "sw"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		body := decodeBody[ErrorResponse](t, rec)
		assert.Equal(t, i18n.New().T("en", "deviceExists"), body.Error)
		assert.NotEmpty(t, body.Details)
	})

	t.Run("missing id is unprocessable", func(t *testing.T) {
		rec := do(t, h, "POST", "/api/devices", `{"alias": "x"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		rec := do(t, h, "POST", "/api/devices", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown device is not found", func(t *testing.T) {
		rec := do(t, h, "DELETE", "/api/devices/ghost", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rekey through PUT", func(t *testing.T) {
		rec := do(t, h, "PUT", "/api/devices/sw", `{"newId": "core"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		view := decodeBody[topology.View](t, rec)
		assert.Equal(t, "core", view.Nodes[0].ID)
	})
}

func TestEdgeEndpoints(t *testing.T) {
	h := newTestServer(t)
	do(t, h, "POST", "/api/devices", `{"id": "a"}`)
	do(t, h, "POST", "/api/devices", `{"id": "b"}`)

	rec := do(t, h, "POST", "/api/edges", `{"source": "a", "target": "b", "eColor": "#ff0000"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	view := decodeBody[topology.View](t, rec)
	require.Len(t, view.Edges, 1)
	edgeID := view.Edges[0].ID

	t.Run("second link is a conflict", func(t *testing.T) {
		rec := do(t, h, "POST", "/api/edges", `{"source": "b", "target": "a"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("self link is unprocessable", func(t *testing.T) {
		rec := do(t, h, "POST", "/api/edges", `{"source": "a", "target": "a"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("anchor insert and endpoint resolution", func(t *testing.T) {
		rec := do(t, h, "POST", "/api/edges/"+edgeID+"/anchors", `{"x": 5, "y": 5}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		view := decodeBody[topology.View](t, rec)
		require.Len(t, view.Edges, 2)

		rec = do(t, h, "GET", "/api/edges/"+view.Edges[0].ID+"/endpoints", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]string{"source": "a", "target": "b"}, decodeBody[map[string]string](t, rec))
	})

	t.Run("removing a device is not an anchor removal", func(t *testing.T) {
		rec := do(t, h, "DELETE", "/api/anchors/a", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("undo and redo", func(t *testing.T) {
		rec := do(t, h, "POST", "/api/undo", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeBody[topology.View](t, rec).Edges, 1)

		rec = do(t, h, "POST", "/api/redo", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeBody[topology.View](t, rec).Edges, 2)
	})
}

func TestLinkEndpoints(t *testing.T) {
	h := newTestServer(t)
	do(t, h, "POST", "/api/devices", `{"id": "a"}`)
	do(t, h, "POST", "/api/devices", `{"id": "b"}`)

	rec := do(t, h, "POST", "/api/link/pick", `{"id": "a"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, "POST", "/api/link/enter", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, topology.LinkAwaitingSource, decodeBody[topology.LinkSession](t, rec).State)

	do(t, h, "POST", "/api/link/pick", `{"id": "a"}`)
	rec = do(t, h, "POST", "/api/link/pick", `{"id": "b"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, topology.LinkAttributeEntry, decodeBody[topology.LinkSession](t, rec).State)

	draft := do(t, h, "GET", "/api/link/draft", "")
	rec = do(t, h, "POST", "/api/link/confirm", draft.Body.String())
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, decodeBody[topology.View](t, rec).Edges, 1)
}

func TestPanelEndpoints(t *testing.T) {
	h := newTestServer(t)
	do(t, h, "POST", "/api/devices", `{"id": "sw"}`)

	t.Run("series push reprojects", func(t *testing.T) {
		series := `[{"fields": [{"name": "Value", "type": "number", "labels": {"host": "sw", "item": "ICMP ping"}, "config": {}, "values": [1]}]}]`
		rec := do(t, h, "POST", "/api/series", series)
		require.Equal(t, http.StatusAccepted, rec.Code)

		rec = do(t, h, "GET", "/api/topology", "")
		view := decodeBody[topology.View](t, rec)
		assert.Equal(t, projection.ColorUp, view.Nodes[0].Derived.StatusColor)
	})

	t.Run("save clears the dirty flag", func(t *testing.T) {
		rec := do(t, h, "POST", "/api/save", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, decodeBody[topology.View](t, rec).History.Dirty)

		rec = do(t, h, "GET", "/api/revisions?limit=5", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"nodes":1`)
	})

	t.Run("theme validation", func(t *testing.T) {
		rec := do(t, h, "PUT", "/api/theme", `{"bgColor": "black"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		rec = do(t, h, "PUT", "/api/theme", `{"bgColor": "#000000"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("export then import", func(t *testing.T) {
		rec := do(t, h, "GET", "/api/export/json", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "topology-backup.json")

		rec = do(t, h, "POST", "/api/import/json", rec.Body.String())
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("broken import is unprocessable", func(t *testing.T) {
		rec := do(t, h, "POST", "/api/import/json", `{"nope": true}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown export format", func(t *testing.T) {
		rec := do(t, h, "GET", "/api/export/csv", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMiddleware(t *testing.T) {
	logger := zap.NewNop()
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	h := Chain(panicky, Recover(logger), CORS, Logger(logger))

	rec := do(t, h, "GET", "/", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, h, "OPTIONS", "/", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMetricsLookupEndpoints(t *testing.T) {
	h := newTestServer(t)
	do(t, h, "POST", "/api/devices", `{"id": "sw"}`)
	do(t, h, "POST", "/api/devices", `{"id": "r1"}`)
	rec := do(t, h, "POST", "/api/edges", `{"source": "sw", "target": "r1", "eMonitored": true, "eMainDevice": "sw", "eInterface": "eth0"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	edgeID := decodeBody[topology.View](t, rec).Edges[0].ID

	series := `[{"fields": [
		{"name": "Time", "type": "time", "config": {}, "values": [1000, 2000]},
		{"name": "Value", "type": "number", "labels": {"host": "sw", "item": "Interface eth0: Bits recebidos"}, "config": {"unit": "bps"}, "values": [300, 500]},
		{"name": "Value", "type": "number", "labels": {"host": "sw", "item": "ICMP ping"}, "config": {}, "values": [1, 1]}
	]}]`
	require.Equal(t, http.StatusAccepted, do(t, h, "POST", "/api/series", series).Code)

	t.Run("device items", func(t *testing.T) {
		rec := do(t, h, "GET", "/api/devices/sw/items", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"ICMP ping", "Interface eth0: Bits recebidos"}, decodeBody[[]string](t, rec))
	})

	t.Run("traffic history carries the chart scale", func(t *testing.T) {
		rec := do(t, h, "GET", "/api/edges/"+edgeID+"/traffic", "")
		require.Equal(t, http.StatusOK, rec.Code)
		traffic := decodeBody[service.Traffic](t, rec)
		assert.Len(t, traffic.Points, 2)
		assert.Equal(t, 500.0, traffic.Max)
	})
}
