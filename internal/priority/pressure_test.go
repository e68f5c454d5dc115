package priority

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func tp(t time.Time) *time.Time { return &t }

func TestCalculateDeadlinePressure_NoDeadlines(t *testing.T) {
	got := CalculateDeadlinePressure(nil, nil, testNow)
	assert.Equal(t, 0.0, got.Score)
	assert.Nil(t, got.DaysRemaining)
	assert.False(t, got.IsClientDeadline)
}

func TestCalculateDeadlinePressure_Staircase(t *testing.T) {
	tests := []struct {
		name      string
		offset    time.Duration
		wantScore float64
		wantDays  int
	}{
		{"overdue", -48 * time.Hour, 100, -2},
		{"just past due", -2 * time.Hour, 100, 0},
		{"within 24h", 12 * time.Hour, 95, 1},
		{"within 48h", 36 * time.Hour, 85, 2},
		{"within 3 days", 60 * time.Hour, 70, 3},
		{"within a week", 5 * 24 * time.Hour, 50, 5},
		{"within two weeks", 10 * 24 * time.Hour, 30, 10},
		{"within a month", 20 * 24 * time.Hour, 15, 20},
		{"far out", 60 * 24 * time.Hour, 5, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDeadlinePressure(tp(testNow.Add(tt.offset)), nil, testNow)
			assert.Equal(t, tt.wantScore, got.Score)
			require.NotNil(t, got.DaysRemaining)
			assert.Equal(t, tt.wantDays, *got.DaysRemaining)
			assert.False(t, got.IsClientDeadline)
		})
	}
}

func TestCalculateDeadlinePressure_MonotoneInDays(t *testing.T) {
	prev := 101.0
	for hours := 1; hours <= 24*45; hours += 6 {
		got := CalculateDeadlinePressure(tp(testNow.Add(time.Duration(hours)*time.Hour)), nil, testNow)
		if got.Score > prev {
			t.Fatalf("score jumped up at %dh: %.1f > %.1f", hours, got.Score, prev)
		}
		prev = got.Score
	}
}

func TestCalculateDeadlinePressure_ClientPremium(t *testing.T) {
	// 5 days out: internal 50, client 55
	internal := CalculateDeadlinePressure(tp(testNow.Add(5*24*time.Hour)), nil, testNow)
	client := CalculateDeadlinePressure(nil, tp(testNow.Add(5*24*time.Hour)), testNow)
	assert.Equal(t, 50.0, internal.Score)
	assert.InDelta(t, 55.0, client.Score, 1e-9)
	assert.True(t, client.IsClientDeadline)

	// premium never pushes past 100
	urgent := CalculateDeadlinePressure(nil, tp(testNow.Add(12*time.Hour)), testNow)
	assert.Equal(t, 100.0, urgent.Score)
}

func TestCalculateDeadlinePressure_ClientNeverLower(t *testing.T) {
	for hours := -24; hours <= 24*40; hours += 12 {
		at := tp(testNow.Add(time.Duration(hours) * time.Hour))
		internal := CalculateDeadlinePressure(at, nil, testNow)
		client := CalculateDeadlinePressure(nil, at, testNow)
		if client.Score < internal.Score {
			t.Fatalf("client deadline scored lower at %dh: %.1f < %.1f", hours, client.Score, internal.Score)
		}
	}
}

func TestCalculateDeadlinePressure_NearestWins(t *testing.T) {
	soonInternal := tp(testNow.Add(24 * time.Hour))
	farClient := tp(testNow.Add(10 * 24 * time.Hour))

	got := CalculateDeadlinePressure(soonInternal, farClient, testNow)
	assert.Equal(t, 95.0, got.Score)
	assert.False(t, got.IsClientDeadline)

	got = CalculateDeadlinePressure(farClient, soonInternal, testNow)
	assert.True(t, got.IsClientDeadline)
	assert.InDelta(t, 100.0, got.Score, 1e-9)
}

func TestCalculateDeadlinePressure_TieBreakIsInternal(t *testing.T) {
	// same instant: internal is checked first, so no client premium
	at := testNow.Add(3 * 24 * time.Hour)
	got := CalculateDeadlinePressure(tp(at), tp(at), testNow)
	assert.False(t, got.IsClientDeadline)
	assert.Equal(t, 70.0, got.Score)
}
