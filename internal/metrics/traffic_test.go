package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func trafficFrame(clocks []any, fields ...Field) Frame {
	return Frame{Fields: append([]Field{{Name: "Time", Type: FieldTypeTime, Values: clocks}}, fields...)}
}

func TestExtractTrafficHistory(t *testing.T) {
	withItem := func(item string) map[string]string {
		return map[string]string{"host": "core-sw-1", "item": item}
	}

	t.Run("merges rx and tx by clock in ascending order", func(t *testing.T) {
		frames := []Frame{
			trafficFrame([]any{2000.0, 1000.0},
				numberField(withItem("eth0: Bits recebidos"), "", "bps", 20.0, 10.0)),
			trafficFrame([]any{1000.0, 3000.0},
				numberField(withItem("eth0: Bits enviados"), "", "bps", 5.0, 7.0)),
		}

		points := ExtractTrafficHistory(frames, "core-sw-1", "eth0")

		assert.Equal(t, []TrafficPoint{
			{Clock: 1000, Rx: 10, Tx: 5},
			{Clock: 2000, Rx: 20},
			{Clock: 3000, Tx: 7},
		}, points)
	})

	t.Run("an item matching both directions sets both", func(t *testing.T) {
		frames := []Frame{
			trafficFrame([]any{1000.0},
				numberField(withItem("eth0 in/out"), "", "bps", 9.0)),
		}

		points := ExtractTrafficHistory(frames, "core-sw-1", "eth0")

		assert.Equal(t, []TrafficPoint{{Clock: 1000, Rx: 9, Tx: 9}}, points)
	})

	t.Run("skips frames without a time field and foreign fields", func(t *testing.T) {
		frames := []Frame{
			{Fields: []Field{numberField(withItem("Interface eth0: Bits recebidos"), "", "bps", 1.0)}},
			trafficFrame([]any{1000.0},
				numberField(map[string]string{"host": "other", "item": "Interface eth0: Bits recebidos"}, "", "bps", 1.0),
				numberField(withItem("Interface eth1: Bits recebidos"), "", "bps", 1.0),
				numberField(withItem("eth0 errors"), "", "", 1.0)),
		}

		assert.Empty(t, ExtractTrafficHistory(frames, "core-sw-1", "eth0"))
	})

	t.Run("interface prefixed items also read as received", func(t *testing.T) {
		frames := []Frame{
			trafficFrame([]any{1000.0},
				numberField(withItem("Interface eth0: Bits sent"), "", "bps", 4.0)),
		}

		assert.Equal(t, []TrafficPoint{{Clock: 1000, Rx: 4, Tx: 4}}, ExtractTrafficHistory(frames, "core-sw-1", "eth0"))
	})

	t.Run("zips to the shorter column and skips nulls", func(t *testing.T) {
		frames := []Frame{
			trafficFrame([]any{1000.0, nil, 3000.0, 4000.0},
				numberField(withItem("Interface eth0: Bits recebidos"), "", "bps", 1.0, 2.0, nil)),
		}

		assert.Equal(t, []TrafficPoint{{Clock: 1000, Rx: 1}}, ExtractTrafficHistory(frames, "core-sw-1", "eth0"))
	})
}

func TestHistoryMax(t *testing.T) {
	assert.Equal(t, 0.0, HistoryMax(nil))
	assert.Equal(t, 1.0, HistoryMax([]TrafficPoint{{Clock: 1}}))
	assert.Equal(t, 40.0, HistoryMax([]TrafficPoint{{Rx: 10, Tx: 40}, {Rx: 30}}))
}
