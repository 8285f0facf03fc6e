package projection

import "fmt"

var trafficUnits = []string{"bps", "Kbps", "Mbps", "Gbps"}

// FormatTraffic renders a bit rate with two decimals on the
// bps, Kbps, Mbps, Gbps ladder
func FormatTraffic(bps float64) string {
	if bps == 0 {
		return "0 bps"
	}
	i := 0
	for bps >= 1000 && i < len(trafficUnits)-1 {
		bps /= 1000
		i++
	}
	return fmt.Sprintf("%.2f %s", bps, trafficUnits[i])
}
