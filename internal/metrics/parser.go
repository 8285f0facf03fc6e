package metrics

import (
	"regexp"
	"strings"
)

const (
	defaultInterface = "Default"
	unknownMetric    = "Unknown Metric"
)

var interfacePattern = regexp.MustCompile(`(?i)Interface\s+([a-zA-Z0-9\-./]+):\s+(.*)`)

var (
	lossKeywords    = []string{"loss", "perda"}
	pingKeywords    = []string{"ping", "icmp ping"}
	latencyKeywords = []string{"latency", "latência", "response time", "tempo de resposta"}
)

// Parse normalizes a series payload into per-device records. It never
// fails: samples without host information land under UnknownDevice, which
// is dropped when nothing in it resolved to an interface.
func Parse(frames []Frame) HostMap {
	hosts := make(HostMap)

	for _, frame := range frames {
		for _, field := range frame.Fields {
			if field.Type != FieldTypeNumber {
				continue
			}

			host, item := resolveField(field)
			rec, ok := hosts[host]
			if !ok {
				rec = NewHostRecord(host)
				if ip := field.Labels["ip"]; ip != "" {
					rec.IP = ip
				}
				hosts[host] = rec
			}

			val, ok := field.lastValue()
			if !ok {
				val = Number(0)
			}
			rec.Items[item] = val

			switch lower := strings.ToLower(item); {
			case containsAny(lower, lossKeywords):
				rec.Loss = val
			case containsAny(lower, pingKeywords):
				rec.Ping = val
			case containsAny(lower, latencyKeywords):
				rec.Latency = val
			}

			iface, metric := splitInterface(item)
			if rec.Interfaces[iface] == nil {
				rec.Interfaces[iface] = make(InterfaceData)
			}
			rec.Interfaces[iface][metric] = InterfaceMetric{
				Value: val,
				Units: normalizeUnit(field.Config.Unit),
			}
		}
	}

	pruneUnknown(hosts)
	return hosts
}

// resolveField finds the device and item a numeric field belongs to.
// Without a host label the display name is read as "host: item".
func resolveField(f Field) (host, item string) {
	host = f.Labels["host"]
	if host == "" {
		host = f.Labels["hostname"]
	}
	item = f.Labels["item"]
	name := f.displayName()

	if host == "" {
		parts := splitTrim(name)
		if len(parts) >= 2 {
			host = parts[0]
			item = strings.Join(parts[1:], ": ")
		}
	}

	if host == "" {
		host = UnknownDevice
	}
	if item == "" {
		item = name
	}
	if item == "" {
		item = unknownMetric
	}
	return host, item
}

// splitInterface separates the interface name from the metric name
func splitInterface(item string) (iface, metric string) {
	if m := interfacePattern.FindStringSubmatch(item); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if strings.Contains(item, ":") {
		parts := splitTrim(item)
		return parts[0], strings.Join(parts[1:], ": ")
	}
	return defaultInterface, item
}

func splitTrim(s string) []string {
	parts := strings.Split(s, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func normalizeUnit(unit string) string {
	switch unit {
	case "bps", "binbps":
		return "bps"
	default:
		return unit
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// pruneUnknown drops the catch-all record when it resolved no interfaces
func pruneUnknown(hosts HostMap) {
	if rec, ok := hosts[UnknownDevice]; ok && len(rec.Interfaces) == 0 {
		delete(hosts, UnknownDevice)
	}
}
