package metrics

import (
	"math"
	"sort"
	"strings"
)

// TrafficPoint is the rx/tx rate of an interface at one instant
type TrafficPoint struct {
	Clock int64   `json:"clock"`
	Tx    float64 `json:"tx"`
	Rx    float64 `json:"rx"`
}

var (
	rxKeywords = []string{"recebid", "in", "received"}
	txKeywords = []string{"enviad", "out", "sent"}
)

// ExtractTrafficHistory collects the rx/tx series of one device interface.
// Fields are matched when their item contains iface. A field whose item
// reads as both directions feeds both.
func ExtractTrafficHistory(frames []Frame, host, iface string) []TrafficPoint {
	points := make(map[int64]*TrafficPoint)

	for _, frame := range frames {
		timeField, ok := findTimeField(frame)
		if !ok {
			continue
		}

		for _, field := range frame.Fields {
			if field.Type != FieldTypeNumber {
				continue
			}
			fieldHost, item := resolveField(field)
			if fieldHost != host || !strings.Contains(item, iface) {
				continue
			}

			lower := strings.ToLower(item)
			isRx := containsAny(lower, rxKeywords)
			isTx := containsAny(lower, txKeywords)
			if !isRx && !isTx {
				continue
			}

			n := min(len(timeField.Values), len(field.Values))
			for i := 0; i < n; i++ {
				clock, ok := toValue(timeField.Values[i])
				if !ok {
					continue
				}
				val, ok := toValue(field.Values[i])
				if !ok {
					continue
				}

				key := int64(clock.Float())
				p, ok := points[key]
				if !ok {
					p = &TrafficPoint{Clock: key}
					points[key] = p
				}
				if isRx {
					p.Rx = val.Float()
				}
				if isTx {
					p.Tx = val.Float()
				}
			}
		}
	}

	out := make([]TrafficPoint, 0, len(points))
	for _, p := range points {
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Clock < out[j].Clock })
	return out
}

func findTimeField(frame Frame) (Field, bool) {
	for _, f := range frame.Fields {
		if f.Type == FieldTypeTime {
			return f, true
		}
	}
	return Field{}, false
}

// HistoryMax returns the chart scale for points: the largest rx or tx
// value, 1 when all are zero, 0 when there are no points.
func HistoryMax(points []TrafficPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	peak := 0.0
	for _, p := range points {
		peak = math.Max(peak, math.Max(p.Rx, p.Tx))
	}
	if peak == 0 {
		return 1
	}
	return peak
}
