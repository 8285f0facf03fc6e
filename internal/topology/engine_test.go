package topology

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noctopo/internal/domain"
	"noctopo/internal/i18n"
	"noctopo/internal/metrics"
	"noctopo/internal/projection"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	n := 0
	return New(projection.New(nil, i18n.New()), Config{
		Center:   domain.Position{X: 400, Y: 300},
		Language: i18n.English,
		NewID: func(prefix string) string {
			n++
			return fmt.Sprintf("%s_%d", prefix, n)
		},
	})
}

func addDevices(t *testing.T, e *Engine, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := e.AddDevice(DeviceSpec{ID: id})
		require.NoError(t, err)
	}
}

// chain builds a-wp1-wp2-b as one logical link and returns the anchors
func chain(t *testing.T, e *Engine, a, b string) (string, string) {
	t.Helper()
	ed, err := e.AddEdge(a, b, domain.EdgeAttrs{Color: "#ff0000"})
	require.NoError(t, err)
	wp1, err := e.InsertAnchor(ed.ID, domain.Position{X: 1, Y: 1})
	require.NoError(t, err)
	tail := segment(t, e, wp1.ID, b)
	wp2, err := e.InsertAnchor(tail.ID, domain.Position{X: 2, Y: 2})
	require.NoError(t, err)
	return wp1.ID, wp2.ID
}

func segment(t *testing.T, e *Engine, source, target string) *domain.Edge {
	t.Helper()
	for _, ed := range e.Graph().Edges() {
		if ed.Source == source && ed.Target == target {
			return ed
		}
	}
	t.Fatalf("no segment %s -> %s", source, target)
	return nil
}

func loadDefs(t *testing.T, e *Engine, defs ...domain.ElementDefinition) {
	t.Helper()
	require.NoError(t, e.Load(defs))
}

func deviceDef(id string) domain.ElementDefinition {
	return domain.ElementDefinition{Group: domain.GroupNodes, Data: domain.ElementData{ID: id}, Position: &domain.Position{}}
}

func anchorDef(id string) domain.ElementDefinition {
	d := deviceDef(id)
	d.Classes = domain.ClassAnchor
	return d
}

func edgeDef(id, source, target string) domain.ElementDefinition {
	return domain.ElementDefinition{Group: domain.GroupEdges, Data: domain.ElementData{ID: id, Source: source, Target: target, LinkID: "l1"}}
}

func TestAddDevice(t *testing.T) {
	t.Run("places the device at the centre with medium size", func(t *testing.T) {
		e := newTestEngine(t)

		n, err := e.AddDevice(DeviceSpec{ID: "router"})
		require.NoError(t, err)

		assert.Equal(t, domain.Position{X: 400, Y: 300}, n.Position)
		assert.Equal(t, domain.NodeSizeMedium, n.Device.NodeSize)
		assert.Equal(t, projection.ColorNoData, n.Derived.StatusColor)
		assert.Equal(t, 2, e.History().Length)
		assert.True(t, e.History().Dirty)
	})

	t.Run("uses the given position", func(t *testing.T) {
		e := newTestEngine(t)

		n, err := e.AddDevice(DeviceSpec{ID: "r1", Position: &domain.Position{X: 10, Y: 20}})
		require.NoError(t, err)
		assert.Equal(t, domain.Position{X: 10, Y: 20}, n.Position)
	})

	t.Run("rejects duplicates without recording history", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "r1")
		before := e.History()

		_, err := e.AddDevice(DeviceSpec{ID: "r1"})
		assert.ErrorIs(t, err, domain.ErrDuplicateDevice)
		assert.Equal(t, before, e.History())
	})

	t.Run("rejects invalid specs", func(t *testing.T) {
		e := newTestEngine(t)

		_, err := e.AddDevice(DeviceSpec{})
		assert.ErrorIs(t, err, domain.ErrInvalidElement)

		_, err = e.AddDevice(DeviceSpec{ID: "r1", DeviceAttrs: domain.DeviceAttrs{NodeSize: "huge"}})
		assert.ErrorIs(t, err, domain.ErrInvalidElement)
	})
}

func TestAddEdge(t *testing.T) {
	t.Run("creates a single segment link", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "a", "b")

		ed, err := e.AddEdge("a", "b", domain.EdgeAttrs{Width: 3})
		require.NoError(t, err)

		assert.Equal(t, "a", ed.Source)
		assert.Equal(t, "b", ed.Target)
		assert.NotEmpty(t, ed.LinkID)
		assert.NotEqual(t, ed.ID, ed.LinkID)
		assert.Equal(t, 3.0, ed.Derived.Width)
	})

	t.Run("rejects self links", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "a")

		_, err := e.AddEdge("a", "a", domain.EdgeAttrs{})
		assert.ErrorIs(t, err, domain.ErrSelfLink)
	})

	t.Run("rejects missing endpoints", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "a")

		_, err := e.AddEdge("a", "ghost", domain.EdgeAttrs{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("rejects a second link in either direction", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "a", "b")
		_, err := e.AddEdge("a", "b", domain.EdgeAttrs{})
		require.NoError(t, err)

		_, err = e.AddEdge("a", "b", domain.EdgeAttrs{})
		assert.ErrorIs(t, err, domain.ErrDuplicateConnection)
		_, err = e.AddEdge("b", "a", domain.EdgeAttrs{})
		assert.ErrorIs(t, err, domain.ErrDuplicateConnection)
	})

	t.Run("sees through anchor chains", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "a", "b")
		chain(t, e, "a", "b")
		before := e.History()

		_, err := e.AddEdge("b", "a", domain.EdgeAttrs{})
		assert.ErrorIs(t, err, domain.ErrDuplicateConnection)
		assert.Equal(t, before, e.History())
	})

	t.Run("anchors cannot be endpoints", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "a", "b", "c")
		wp1, _ := chain(t, e, "a", "b")

		_, err := e.AddEdge("c", wp1, domain.EdgeAttrs{})
		assert.ErrorIs(t, err, domain.ErrNotDevice)
	})

	t.Run("validates attributes", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "a", "b")

		_, err := e.AddEdge("a", "b", domain.EdgeAttrs{Style: "wavy"})
		assert.ErrorIs(t, err, domain.ErrInvalidElement)
	})
}

func TestTerminals(t *testing.T) {
	e := newTestEngine(t)
	addDevices(t, e, "a", "b", "c")
	chain(t, e, "a", "b")
	_, err := e.AddEdge("a", "c", domain.EdgeAttrs{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"b", "c"}, e.Terminals("a"))
	assert.Equal(t, []string{"a"}, e.Terminals("b"))
}

func TestInsertAnchor(t *testing.T) {
	e := newTestEngine(t)
	addDevices(t, e, "a", "b")
	ed, err := e.AddEdge("a", "b", domain.EdgeAttrs{Color: "#00ff00", Monitored: true, MainDevice: "a", Interface: "eth0"})
	require.NoError(t, err)

	wp, err := e.InsertAnchor(ed.ID, domain.Position{X: 5, Y: 5})
	require.NoError(t, err)

	assert.True(t, wp.IsAnchor())
	assert.False(t, e.Graph().HasEdge(ed.ID))

	first := segment(t, e, "a", wp.ID)
	second := segment(t, e, wp.ID, "b")
	assert.Equal(t, ed.LinkID, first.LinkID)
	assert.Equal(t, ed.LinkID, second.LinkID)
	assert.Equal(t, ed.Attrs, first.Attrs)
	assert.Equal(t, ed.Attrs, second.Attrs)

	t.Run("edges without a link id use their own id", func(t *testing.T) {
		e := newTestEngine(t)
		loadDefs(t, e, deviceDef("a"), deviceDef("b"), domain.ElementDefinition{
			Group: domain.GroupEdges,
			Data:  domain.ElementData{ID: "old", Source: "a", Target: "b"},
		})

		wp, err := e.InsertAnchor("old", domain.Position{})
		require.NoError(t, err)
		assert.Equal(t, "old", segment(t, e, "a", wp.ID).LinkID)
	})
}

func TestRemoveAnchor(t *testing.T) {
	t.Run("merges the two segments keeping orientation", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "a", "b")
		wp1, wp2 := chain(t, e, "a", "b")
		linkID := segment(t, e, "a", wp1).LinkID

		merged, err := e.RemoveAnchor(wp1)
		require.NoError(t, err)

		assert.Equal(t, "a", merged.Source)
		assert.Equal(t, wp2, merged.Target)
		assert.Equal(t, linkID, merged.LinkID)
		assert.Equal(t, "#ff0000", merged.Attrs.Color)
		assert.False(t, e.Graph().HasNode(wp1))

		merged, err = e.RemoveAnchor(wp2)
		require.NoError(t, err)
		assert.Equal(t, "a", merged.Source)
		assert.Equal(t, "b", merged.Target)
		assert.Len(t, e.Graph().Edges(), 1)
	})

	t.Run("refuses anchors with one connection", func(t *testing.T) {
		e := newTestEngine(t)
		loadDefs(t, e, deviceDef("a"), anchorDef("wp"), edgeDef("e1", "a", "wp"))

		_, err := e.RemoveAnchor("wp")
		assert.ErrorIs(t, err, domain.ErrAnchorDegree)
		assert.True(t, e.Graph().HasNode("wp"))
		assert.True(t, e.Graph().HasEdge("e1"))
	})

	t.Run("refuses anchors with three connections", func(t *testing.T) {
		e := newTestEngine(t)
		loadDefs(t, e,
			deviceDef("a"), deviceDef("b"), deviceDef("c"), anchorDef("wp"),
			edgeDef("e1", "a", "wp"), edgeDef("e2", "wp", "b"), edgeDef("e3", "wp", "c"))

		_, err := e.RemoveAnchor("wp")
		assert.ErrorIs(t, err, domain.ErrAnchorDegree)
		assert.Len(t, e.Graph().Edges(), 3)
	})

	t.Run("refuses devices", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "anchor-gateway")

		_, err := e.RemoveAnchor("anchor-gateway")
		assert.ErrorIs(t, err, domain.ErrNotAnchor)
	})
}

func TestRemoveEdge(t *testing.T) {
	t.Run("removes a plain segment", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "a", "b")
		ed, err := e.AddEdge("a", "b", domain.EdgeAttrs{})
		require.NoError(t, err)

		require.NoError(t, e.RemoveEdge(ed.ID))
		assert.Empty(t, e.Graph().Edges())
		assert.Len(t, e.Graph().Nodes(), 2)
	})

	t.Run("cascades through orphaned anchors", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "a", "b")
		wp1, wp2 := chain(t, e, "a", "b")

		require.NoError(t, e.RemoveEdge(segment(t, e, wp1, wp2).ID))

		assert.Empty(t, e.Graph().Edges())
		assert.False(t, e.Graph().HasNode(wp1))
		assert.False(t, e.Graph().HasNode(wp2))
		assert.True(t, e.Graph().HasNode("a"))
		assert.True(t, e.Graph().HasNode("b"))
	})

	t.Run("unknown edge", func(t *testing.T) {
		e := newTestEngine(t)
		assert.ErrorIs(t, e.RemoveEdge("nope"), domain.ErrNotFound)
	})
}

func TestRemoveElement(t *testing.T) {
	e := newTestEngine(t)
	addDevices(t, e, "a", "b", "c")
	wp1, _ := chain(t, e, "a", "b")
	direct, err := e.AddEdge("a", "c", domain.EdgeAttrs{})
	require.NoError(t, err)

	require.NoError(t, e.RemoveElement(direct.ID))
	assert.False(t, e.Graph().HasEdge(direct.ID))

	require.NoError(t, e.RemoveElement(wp1))
	assert.False(t, e.Graph().HasNode(wp1))

	require.NoError(t, e.RemoveElement("c"))
	assert.False(t, e.Graph().HasNode("c"))

	assert.ErrorIs(t, e.RemoveElement("ghost"), domain.ErrNotFound)
}

func TestEditEdge(t *testing.T) {
	e := newTestEngine(t)
	addDevices(t, e, "a", "b")
	wp1, wp2 := chain(t, e, "a", "b")

	color := "#0000ff"
	require.NoError(t, e.EditEdge(segment(t, e, "a", wp1).ID, domain.EdgePatch{Color: &color}))

	for _, ed := range e.Graph().Edges() {
		assert.Equal(t, color, ed.Attrs.Color)
	}
	assert.Equal(t, color, segment(t, e, wp2, "b").Derived.Color)

	bad := "blue-ish"
	err := e.EditEdge(segment(t, e, "a", wp1).ID, domain.EdgePatch{Color: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidElement)
}

func TestEditDevice(t *testing.T) {
	t.Run("edits in place", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "a")
		alias := "Core"

		n, err := e.EditDevice("a", DeviceEdit{DevicePatch: domain.DevicePatch{Alias: &alias}})
		require.NoError(t, err)
		assert.Equal(t, "Core", n.Device.Alias)
		assert.Equal(t, "Core\n\nNo data available", n.Derived.Label)
	})

	t.Run("rekey drops anchor chains and keeps the position", func(t *testing.T) {
		e := newTestEngine(t)
		_, err := e.AddDevice(DeviceSpec{ID: "a", Position: &domain.Position{X: 7, Y: 8}, DeviceAttrs: domain.DeviceAttrs{IconType: "router"}})
		require.NoError(t, err)
		addDevices(t, e, "b", "c")
		wp1, wp2 := chain(t, e, "a", "b")
		_, err = e.AddEdge("c", "a", domain.EdgeAttrs{})
		require.NoError(t, err)

		impact, err := e.RekeyImpact("a")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{wp1, wp2}, impact.Anchors)
		assert.Len(t, impact.Edges, 4)

		n, err := e.EditDevice("a", DeviceEdit{NewID: "a2"})
		require.NoError(t, err)

		assert.Equal(t, "a2", n.ID)
		assert.Equal(t, domain.Position{X: 7, Y: 8}, n.Position)
		assert.Equal(t, "router", n.Device.IconType)
		assert.False(t, e.Graph().HasNode("a"))
		assert.False(t, e.Graph().HasNode(wp1))
		assert.False(t, e.Graph().HasNode(wp2))
		assert.Empty(t, e.Graph().Edges())
		assert.True(t, e.Graph().HasNode("b"))
		assert.True(t, e.Graph().HasNode("c"))
	})

	t.Run("rekey collision changes nothing", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "a", "b")
		_, err := e.AddEdge("a", "b", domain.EdgeAttrs{})
		require.NoError(t, err)
		before := e.Elements()

		_, err = e.EditDevice("a", DeviceEdit{NewID: "b"})
		assert.ErrorIs(t, err, domain.ErrDuplicateDevice)
		assert.Equal(t, before, e.Elements())
	})

	t.Run("anchors are not devices", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "a", "b")
		wp1, _ := chain(t, e, "a", "b")

		_, err := e.EditDevice(wp1, DeviceEdit{NewID: "x"})
		assert.ErrorIs(t, err, domain.ErrNotDevice)
	})
}

func TestDeleteDevice(t *testing.T) {
	e := newTestEngine(t)
	addDevices(t, e, "a", "b", "c")
	chain(t, e, "a", "b")
	_, err := e.AddEdge("b", "c", domain.EdgeAttrs{})
	require.NoError(t, err)

	require.NoError(t, e.DeleteDevice("a"))

	nodes, edges := e.Graph().Len()
	assert.Equal(t, 2, nodes)
	assert.Equal(t, 1, edges)
}

func TestMoveNode(t *testing.T) {
	e := newTestEngine(t)
	addDevices(t, e, "a")
	length := e.History().Length

	require.NoError(t, e.MoveNode("a", domain.Position{X: 400, Y: 300}))
	assert.Equal(t, length, e.History().Length)

	require.NoError(t, e.MoveNode("a", domain.Position{X: 1, Y: 2}))
	assert.Equal(t, length+1, e.History().Length)

	assert.ErrorIs(t, e.MoveNode("ghost", domain.Position{}), domain.ErrNotFound)
}

func TestUndoRedo(t *testing.T) {
	e := newTestEngine(t)
	addDevices(t, e, "a", "b")
	_, err := e.AddEdge("a", "b", domain.EdgeAttrs{})
	require.NoError(t, err)
	withEdge := e.Elements()

	ok, err := e.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, e.Graph().Edges())

	ok, err = e.Redo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, withEdge, e.Elements())
	for _, n := range e.Graph().Nodes() {
		assert.Equal(t, projection.ColorNoData, n.Derived.StatusColor)
	}

	ok, err = e.Redo()
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("a new edit drops the redo branch", func(t *testing.T) {
		_, err := e.Undo()
		require.NoError(t, err)
		addDevices(t, e, "c")

		assert.False(t, e.History().CanRedo)
		assert.Empty(t, e.Graph().Edges())
	})

	t.Run("undo stops at the first snapshot", func(t *testing.T) {
		for e.History().CanUndo {
			_, err := e.Undo()
			require.NoError(t, err)
		}
		ok, err := e.Undo()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, e.Graph().Nodes())
	})
}

func TestLinkMode(t *testing.T) {
	setup := func(t *testing.T) *Engine {
		e := newTestEngine(t)
		addDevices(t, e, "a", "b", "c")
		e.EnterLinkMode()
		return e
	}

	t.Run("walks the states and creates the link", func(t *testing.T) {
		e := setup(t)
		assert.Equal(t, LinkAwaitingSource, e.LinkSession().State)

		s, err := e.PickNode("a")
		require.NoError(t, err)
		assert.Equal(t, LinkAwaitingTarget, s.State)
		assert.True(t, e.Graph().HasClass("a", domain.ClassSelected))

		s, err = e.PickNode("b")
		require.NoError(t, err)
		assert.Equal(t, LinkSession{State: LinkAttributeEntry, Source: "a", Target: "b"}, s)

		ed, err := e.ConfirmLink(LinkDraft(domain.DefaultTheme()))
		require.NoError(t, err)
		assert.Equal(t, "a", ed.Source)
		assert.Equal(t, "b", ed.Target)
		assert.Equal(t, domain.DefaultTheme().EdgeColor, ed.Attrs.Color)
		assert.Equal(t, LinkIdle, e.LinkSession().State)
		assert.False(t, e.Graph().HasClass("a", domain.ClassSelected))
		assert.False(t, e.Graph().HasClass("b", domain.ClassSelected))
	})

	t.Run("picking the source again deselects it", func(t *testing.T) {
		e := setup(t)
		_, err := e.PickNode("a")
		require.NoError(t, err)

		s, err := e.PickNode("a")
		require.NoError(t, err)
		assert.Equal(t, LinkAwaitingSource, s.State)
		assert.False(t, e.Graph().HasClass("a", domain.ClassSelected))
	})

	t.Run("a duplicate target ends link mode", func(t *testing.T) {
		e := setup(t)
		_, err := e.AddEdge("a", "b", domain.EdgeAttrs{})
		require.NoError(t, err)
		_, err = e.PickNode("a")
		require.NoError(t, err)

		s, err := e.PickNode("b")
		assert.ErrorIs(t, err, domain.ErrDuplicateConnection)
		assert.Equal(t, LinkIdle, s.State)
		assert.False(t, e.Graph().HasClass("a", domain.ClassSelected))
	})

	t.Run("a failed confirm keeps the form open", func(t *testing.T) {
		e := setup(t)
		_, err := e.PickNode("a")
		require.NoError(t, err)
		_, err = e.PickNode("c")
		require.NoError(t, err)

		_, err = e.ConfirmLink(domain.EdgeAttrs{Color: "not a colour"})
		assert.ErrorIs(t, err, domain.ErrInvalidElement)
		assert.Equal(t, LinkAttributeEntry, e.LinkSession().State)
	})

	t.Run("cancel returns to source selection", func(t *testing.T) {
		e := setup(t)
		_, err := e.PickNode("a")
		require.NoError(t, err)
		_, err = e.PickNode("c")
		require.NoError(t, err)

		e.CancelLink()
		assert.Equal(t, LinkSession{State: LinkAwaitingSource}, e.LinkSession())
		assert.False(t, e.Graph().HasClass("c", domain.ClassSelected))
	})

	t.Run("picking outside link mode fails", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "a")

		_, err := e.PickNode("a")
		assert.ErrorIs(t, err, domain.ErrLinkState)
		_, err = e.ConfirmLink(domain.EdgeAttrs{})
		assert.ErrorIs(t, err, domain.ErrLinkState)
	})

	t.Run("exit clears the session", func(t *testing.T) {
		e := setup(t)
		_, err := e.PickNode("a")
		require.NoError(t, err)

		e.ExitLinkMode()
		assert.Equal(t, LinkSession{State: LinkIdle}, e.LinkSession())
		assert.False(t, e.Graph().HasClass("a", domain.ClassSelected))
	})
}

func TestResolveEndpoints(t *testing.T) {
	e := newTestEngine(t)
	addDevices(t, e, "a", "b")
	wp1, wp2 := chain(t, e, "a", "b")

	src, dst, err := e.ResolveEndpoints(segment(t, e, wp1, wp2).ID)
	require.NoError(t, err)
	assert.Equal(t, "a", src)
	assert.Equal(t, "b", dst)

	_, _, err = e.ResolveEndpoints("ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyBackup(t *testing.T) {
	t.Run("replaces the graph and resets history", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "old")

		err := e.ApplyBackup(domain.Backup{Elements: []domain.ElementDefinition{
			deviceDef("a"), deviceDef("b"), edgeDef("e1", "a", "b"),
		}})
		require.NoError(t, err)

		assert.False(t, e.Graph().HasNode("old"))
		assert.True(t, e.Graph().HasEdge("e1"))
		assert.Equal(t, 1, e.History().Length)
		assert.False(t, e.History().CanUndo)
	})

	t.Run("invalid backups change nothing", func(t *testing.T) {
		e := newTestEngine(t)
		addDevices(t, e, "keep")
		before := e.Elements()
		history := e.History()

		err := e.ApplyBackup(domain.Backup{Elements: []domain.ElementDefinition{
			deviceDef("a"), edgeDef("e1", "a", "missing"),
		}})
		assert.ErrorIs(t, err, domain.ErrInvalidBackup)

		err = e.ApplyBackup(domain.Backup{})
		assert.ErrorIs(t, err, domain.ErrInvalidBackup)

		assert.Equal(t, before, e.Elements())
		assert.Equal(t, history, e.History())
	})
}

func TestSetMetrics(t *testing.T) {
	e := newTestEngine(t)
	addDevices(t, e, "r1")

	rec := metrics.NewHostRecord("r1")
	rec.Ping = metrics.Number(1)
	e.SetMetrics(metrics.HostMap{"r1": rec})

	n, err := e.Graph().Node("r1")
	require.NoError(t, err)
	assert.Equal(t, projection.ColorUp, n.Derived.StatusColor)

	e.SetMetrics(nil)
	assert.Equal(t, projection.ColorNoData, n.Derived.StatusColor)
	assert.NotNil(t, e.Metrics())
}

func TestSuggestEdgeMetrics(t *testing.T) {
	e := newTestEngine(t)
	rec := metrics.NewHostRecord("sw")
	rec.Interfaces["eth0"] = metrics.InterfaceData{
		"Bits recebidos":     {Value: metrics.Number(1)},
		"Bits enviados":      {Value: metrics.Number(1)},
		"Erros":              {Value: metrics.Number(0)},
		"Status operacional": {Value: metrics.Number(1)},
		"Tipo de interface":  {Value: metrics.Number(6)},
	}
	e.SetMetrics(metrics.HostMap{"sw": rec})

	got := e.SuggestEdgeMetrics("sw", "eth0", []domain.EdgeMetric{
		{Name: "Bits enviados", Icon: "🚀", Enabled: false},
		{Name: "Gone", Icon: "📊", Enabled: true},
	})

	assert.Equal(t, []domain.EdgeMetric{
		{Name: "Bits enviados", Icon: "🚀", Enabled: false},
		{Name: "Bits recebidos", Icon: "⬇️", Enabled: true},
		{Name: "Erros", Icon: "📊", Enabled: false},
	}, got)

	assert.Empty(t, e.SuggestEdgeMetrics("sw", "eth9", nil))
	assert.Equal(t, []string{"eth0"}, e.Interfaces("sw"))
	assert.Empty(t, e.Interfaces("ghost"))
}

func TestView(t *testing.T) {
	e := newTestEngine(t)
	addDevices(t, e, "a")

	v := e.View()
	require.Len(t, v.Nodes, 1)
	v.Nodes[0].Position = domain.Position{X: -1, Y: -1}

	n, err := e.Graph().Node("a")
	require.NoError(t, err)
	assert.Equal(t, domain.Position{X: 400, Y: 300}, n.Position)
	assert.Equal(t, 2, v.History.Length)
}
