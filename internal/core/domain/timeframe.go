package domain

import "time"

type Timeframe string

const (
	Daily   Timeframe = "daily"
	Weekly  Timeframe = "weekly"
	Monthly Timeframe = "monthly"
	Yearly  Timeframe = "yearly"
)

var lookback = map[Timeframe]time.Duration{
	Daily:   24 * time.Hour,
	Weekly:  7 * 24 * time.Hour,
	Monthly: 30 * 24 * time.Hour,
	Yearly:  365 * 24 * time.Hour,
}

// ParseTimeframe maps a label to a [Timeframe]. An empty label means [Daily].
func ParseTimeframe(s string) (Timeframe, error) {
	if s == "" {
		return Daily, nil
	}
	t := Timeframe(s)
	if _, ok := lookback[t]; !ok {
		return "", NewValidationError(
			"invalid timeframe",
			Violations{"timeframe": "one_of=daily weekly monthly yearly"},
		)
	}
	return t, nil
}

// Since returns the first instant covered by the timeframe ending at now.
func (t Timeframe) Since(now time.Time) time.Time {
	return now.Add(-lookback[t])
}
