// Package metrics turns the series payload pushed by the host application
// into per-device records.
//
// Parse reads every numeric field, works out which device and item it
// belongs to from its labels or its display name, keeps the last non-null
// sample, and files it three ways: under the raw item label, as the
// device's ping, loss or latency when the label says so, and under an
// interface name split out of the label. Parse is total. Unexpected shapes
// degrade to defaults instead of errors.
//
// ExtractTrafficHistory rebuilds the rx/tx time series of one interface for
// the link detail chart.
package metrics
