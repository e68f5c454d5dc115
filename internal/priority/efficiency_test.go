package priority

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateEfficiency(t *testing.T) {
	tests := []struct {
		name       string
		duration   string
		minutes    int
		wantStatus EfficiencyStatus
	}{
		{"no time logged", "M", 0, EfficiencyUnder},
		{"faster than estimate", "M", 120, EfficiencyUnder},   // 6h est / 2h actual = 3.0
		{"on estimate", "S", 120, EfficiencyOnTrack},          // 2h est / 2h actual = 1.0
		{"slower than estimate", "XS", 120, EfficiencyOver},   // 0.5h est / 2h actual = 0.25
		{"unknown code uses medium", "??", 360, EfficiencyOnTrack}, // 6h default / 6h = 1.0
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateEfficiency(tt.duration, tt.minutes)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestCalculateEfficiency_ZeroMinutes(t *testing.T) {
	got := CalculateEfficiency("L", 0)
	assert.Equal(t, 0.0, got.Ratio)
	assert.Equal(t, "no time logged", got.Label)
}

func TestCalculateEfficiency_RatioBoundaries(t *testing.T) {
	// ratio exactly 1.2 counts as faster
	got := CalculateEfficiency("S", 100) // 2h / (100/60)h = 1.2
	assert.Equal(t, EfficiencyUnder, got.Status)

	// ratio exactly 0.8 counts as on track
	got = CalculateEfficiency("S", 150) // 2h / 2.5h = 0.8
	assert.Equal(t, EfficiencyOnTrack, got.Status)
}
