package btcfolio

import (
	"math"
	"testing"
)

func TestAnnualizedROI(t *testing.T) {
	tests := []struct {
		name string
		r    float64
		days int
		want Percent
	}{
		{"no days", 0.2, 0, 0},
		{"negative days", 0.2, -3, 0},
		{"one year", 0.2, 365, 20},
		{"two years", 0.21, 730, 10},
		{"half year", 0.1, 182, Percent((math.Pow(1.1, 365.0/182) - 1) * 100)},
		{"flat", 0, 100, 0},
		{"total loss", -1, 100, -100},
		{"beyond total loss", -1.5, 100, 0},
		{"overflow", 1e8, 1, 0},
		{"infinite return", math.Inf(1), 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnnualizedROI(tt.r, tt.days); !got.Equal(tt.want) {
				t.Errorf("AnnualizedROI(%v, %d) = %v, want %v", tt.r, tt.days, got, tt.want)
			}
		})
	}
}

func TestDaysInvested(t *testing.T) {
	if got, want := DaysInvested(day("2024-01-01"), day("2024-06-01")), 152; got != want {
		t.Errorf("DaysInvested() = %d, want %d", got, want)
	}
	if got := DaysInvested(day("2024-06-01"), day("2024-01-01")); got != 0 {
		t.Errorf("DaysInvested(reversed) = %d, want 0", got)
	}
	if got := DaysInvested(day("2024-06-01"), day("2024-06-01").Add(0)); got != 0 {
		t.Errorf("DaysInvested(same day) = %d, want 0", got)
	}
}

func TestDailyAverage(t *testing.T) {
	if got, want := DailyAverage(Q(0.02), 4), Q(0.005); !got.Equal(want) {
		t.Errorf("DailyAverage() = %v, want %v", got, want)
	}
	if got := DailyAverage(Q(0.02), 0); !got.IsZero() {
		t.Errorf("DailyAverage(0 days) = %v, want 0", got)
	}
	if got := DailyAveragePercent(20, 0); got != 0 {
		t.Errorf("DailyAveragePercent(0 days) = %v, want 0", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{-1, "N/A"},
		{0, "Less than 1 day"},
		{1, "1 day"},
		{2, "2 days"},
		{30, "1 month"},
		{31, "1 month 1 day"},
		{65, "2 months 5 days"},
		{365, "1 year"},
		{366, "1 year 1 day"},
		{400, "1 year 1 month 5 days"},
		{1095, "3 years"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.days); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestFormatDurationString(t *testing.T) {
	tests := map[string]string{
		"152":  "5 months 2 days",
		" 0 ":  "Less than 1 day",
		"abc":  "N/A",
		"":     "N/A",
		"-10":  "N/A",
		"12.5": "N/A",
	}
	for in, want := range tests {
		if got := FormatDurationString(in); got != want {
			t.Errorf("FormatDurationString(%q) = %q, want %q", in, got, want)
		}
	}
}
