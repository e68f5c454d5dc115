package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnTimeRate(t *testing.T) {
	assert.Equal(t, 100.0, OnTimeRate(0, 0))
	assert.Equal(t, 100.0, OnTimeRate(4, 4))
	assert.Equal(t, 50.0, OnTimeRate(2, 4))
	assert.Equal(t, 0.0, OnTimeRate(0, 3))
}

func TestDeliveryScore(t *testing.T) {
	assert.Equal(t, 40.0, DeliveryScore(100))
	assert.Equal(t, 20.0, DeliveryScore(50))
	assert.Equal(t, 0.0, DeliveryScore(0))
}

func TestProgressScore_Caps(t *testing.T) {
	assert.Equal(t, 40.0, ProgressScore(10, 10, 100))
	// 2*5 + 1*5 + 20/4 = 20
	assert.Equal(t, 20.0, ProgressScore(2, 1, 20))
	assert.Equal(t, 0.0, ProgressScore(0, 0, 0))
}

func TestImprovementScore(t *testing.T) {
	// no previous month: neutral midpoint
	assert.Equal(t, 10.0, ImprovementScore(80, 0, 5, 0, false))

	// better month: +10 on-time points and +2 tasks -> 10 + 1 + 2 = 13
	assert.Equal(t, 13.0, ImprovementScore(90, 80, 7, 5, true))

	// much worse month clamps at 0
	assert.Equal(t, 0.0, ImprovementScore(0, 100, 0, 10, true))

	// runaway improvement clamps at 20
	assert.Equal(t, 20.0, ImprovementScore(100, 0, 20, 0, true))
}

func TestPerformanceScore_CapsAt100(t *testing.T) {
	assert.Equal(t, 100.0, PerformanceScore(40, 40, 20))
	assert.Equal(t, 70.0, PerformanceScore(30, 30, 10))
}

func TestBonus(t *testing.T) {
	// 10h * $25 * (1 + 100/100) = 500
	assert.Equal(t, 500.0, Bonus(10, 100, 25))
	// zero performance still pays the base rate
	assert.Equal(t, 250.0, Bonus(10, 0, 25))
}

func TestTierFromScore(t *testing.T) {
	assert.Equal(t, "P0", TierFromScore(95))
	assert.Equal(t, "P0", TierFromScore(80))
	assert.Equal(t, "P1", TierFromScore(79))
	assert.Equal(t, "P2", TierFromScore(41))
	assert.Equal(t, "P3", TierFromScore(12))
}
