package domain_test

import (
	"testing"
	"time"

	"github.com/niksmo/inventory/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeframe(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		for _, s := range []string{"daily", "weekly", "monthly", "yearly"} {
			tf, err := domain.ParseTimeframe(s)
			require.NoError(t, err)
			assert.Equal(t, domain.Timeframe(s), tf)
		}
	})

	t.Run("EmptyIsDaily", func(t *testing.T) {
		tf, err := domain.ParseTimeframe("")
		require.NoError(t, err)
		assert.Equal(t, domain.Daily, tf)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := domain.ParseTimeframe("hourly")
		require.Error(t, err)

		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Violations, "timeframe")
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		_, err := domain.ParseTimeframe("Daily")
		require.Error(t, err)
	})
}

func TestTimeframeSince(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		tf   domain.Timeframe
		want time.Time
	}{
		{domain.Daily, time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)},
		{domain.Weekly, time.Date(2026, 2, 22, 12, 0, 0, 0, time.UTC)},
		{domain.Monthly, time.Date(2026, 1, 30, 12, 0, 0, 0, time.UTC)},
		{domain.Yearly, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.tf), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tf.Since(now))
		})
	}
}
