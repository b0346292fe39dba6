package calculator

// volumeBaselineWindow is fixed regardless of the analysis mode.
const volumeBaselineWindow = 20

// CalculateVolumeBaseline returns the simple mean of the most recent
// volumeBaselineWindow volumes. ok is false when fewer bars are available.
func CalculateVolumeBaseline(volumes []float64) (float64, bool) {
	if len(volumes) < volumeBaselineWindow {
		return 0, false
	}
	sum := 0.0
	for i := len(volumes) - volumeBaselineWindow; i < len(volumes); i++ {
		sum += volumes[i]
	}
	return sum / float64(volumeBaselineWindow), true
}
