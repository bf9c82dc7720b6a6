// Package units provides byte count conversion helpers.
package units

import "math"

const (
	bytesPerMB = 1024 * 1024
	bytesPerGB = 1024 * 1024 * 1024
)

// BytesToMB converts a byte count to megabytes, rounded to two decimals.
func BytesToMB(b uint64) float64 {
	return round2(float64(b) / bytesPerMB)
}

// BytesToGB converts a byte count to gigabytes, rounded to two decimals.
func BytesToGB(b uint64) float64 {
	return round2(float64(b) / bytesPerGB)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
