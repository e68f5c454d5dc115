package priority

// EfficiencyStatus buckets estimated-vs-actual time.
type EfficiencyStatus string

const (
	EfficiencyUnder   EfficiencyStatus = "UNDER"
	EfficiencyOnTrack EfficiencyStatus = "ON_TRACK"
	EfficiencyOver    EfficiencyStatus = "OVER"
)

// Efficiency compares the canonical estimate for a duration code with
// the time actually logged.
type Efficiency struct {
	Ratio  float64          `json:"ratio"`
	Status EfficiencyStatus `json:"status"`
	Label  string           `json:"label"`
}

// CalculateEfficiency returns the estimate/actual ratio for a task.
// Unknown duration codes assume the medium estimate of 6 hours.
func CalculateEfficiency(estimatedDuration string, actualMinutes int) Efficiency {
	estimatedHours, ok := DurationHours[estimatedDuration]
	if !ok {
		estimatedHours = 6
	}
	actualHours := float64(actualMinutes) / 60

	if actualHours == 0 {
		return Efficiency{Ratio: 0, Status: EfficiencyUnder, Label: "no time logged"}
	}

	ratio := estimatedHours / actualHours
	switch {
	case ratio >= 1.2:
		return Efficiency{Ratio: ratio, Status: EfficiencyUnder, Label: "faster than estimated"}
	case ratio >= 0.8:
		return Efficiency{Ratio: ratio, Status: EfficiencyOnTrack, Label: "on estimate"}
	default:
		return Efficiency{Ratio: ratio, Status: EfficiencyOver, Label: "slower than estimated"}
	}
}
