package btcfolio

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nogvini/btcfolio/date"
)

// DaysInvested returns the number of days from first to last, never negative.
// It is 0 when either date is missing.
func DaysInvested(first, last date.Date) int {
	if first.IsZero() || last.IsZero() {
		return 0
	}
	return max(0, last.Sub(first))
}

// AnnualizedROI annualizes a simple return r (0.2 for 20%) earned over days.
//
// It is 0 when days is 0, -100 for a total loss, and 0 when 1+r is not
// positive but r is not a total loss. A result too large to represent
// is also 0, so the figure always stays finite.
func AnnualizedROI(r float64, days int) Percent {
	switch {
	case days <= 0:
		return 0
	case 1+r > 0:
		v := (math.Pow(1+r, 365/float64(days)) - 1) * 100
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return 0
		}
		return Percent(v)
	case r == -1:
		return -100
	default:
		return 0
	}
}

// DailyAverage divides q by days, 0 when days is 0.
func DailyAverage(q Quantity, days int) Quantity {
	if days <= 0 {
		return Quantity{}
	}
	return q.Div(Q(days))
}

// DailyAveragePercent divides p by days, 0 when days is 0.
func DailyAveragePercent(p Percent, days int) Percent {
	if days <= 0 {
		return 0
	}
	return p / Percent(days)
}

// FormatDuration renders a number of days as "X years Y months Z days".
// A year counts 365 days and a month 30. Zero parts are omitted.
func FormatDuration(days int) string {
	switch {
	case days < 0:
		return "N/A"
	case days == 0:
		return "Less than 1 day"
	}
	years := days / 365
	months := (days % 365) / 30
	rest := (days % 365) % 30

	var parts []string
	for _, p := range []struct {
		n                int
		singular, plural string
	}{
		{years, "year", "years"},
		{months, "month", "months"},
		{rest, "day", "days"},
	} {
		switch {
		case p.n == 1:
			parts = append(parts, fmt.Sprintf("1 %s", p.singular))
		case p.n > 1:
			parts = append(parts, fmt.Sprintf("%d %s", p.n, p.plural))
		}
	}
	return strings.Join(parts, " ")
}

// FormatDurationString is FormatDuration for a textual number of days.
// Anything that is not an integer gives "N/A".
func FormatDurationString(s string) string {
	days, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return "N/A"
	}
	return FormatDuration(days)
}
