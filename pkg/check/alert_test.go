package check

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func okResult(domain string, days int) Result {
	expiresAt := time.Now().AddDate(0, 0, days)
	return Result{
		Domain:        domain,
		ExpiresAt:     &expiresAt,
		DaysRemaining: &days,
		Status:        ClassifyDays(days),
	}
}

func TestShouldAlert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		result    Result
		threshold int
		want      bool
	}{
		{
			name:      "below threshold",
			result:    okResult("a.com", 15),
			threshold: 30,
			want:      true,
		},
		{
			name:      "above threshold",
			result:    okResult("a.com", 60),
			threshold: 30,
			want:      false,
		},
		{
			name:      "exactly at threshold does not alert",
			result:    okResult("a.com", 30),
			threshold: 30,
			want:      false,
		},
		{
			name:      "one below threshold alerts",
			result:    okResult("a.com", 29),
			threshold: 30,
			want:      true,
		},
		{
			name: "error status always alerts",
			result: func() Result {
				days := 365
				return Result{Domain: "a.com", Status: StatusError, Error: "connection failed", DaysRemaining: &days}
			}(),
			threshold: 30,
			want:      true,
		},
		{
			name:      "missing day count alerts",
			result:    Result{Domain: "a.com", Status: StatusOK},
			threshold: 30,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ShouldAlert(tt.result, tt.threshold))
		})
	}
}

func TestBuildAlertBatch(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("all healthy yields nil, not an empty batch", func(t *testing.T) {
		results := []Result{okResult("a.com", 100), okResult("b.com", 50)}
		require.Nil(t, BuildAlertBatch(results, 30, now))
	})

	t.Run("alerting subset preserves input order", func(t *testing.T) {
		results := []Result{
			okResult("a.com", 100),
			okResult("b.com", 5),
			ErrorResult(Target{Host: "c.com"}, errTimeout),
			okResult("d.com", 10),
		}

		batch := BuildAlertBatch(results, 30, now)
		require.NotNil(t, batch)
		require.Equal(t, 30, batch.ThresholdDays)
		require.Equal(t, now, batch.CheckedAt)

		domains := make([]string, 0, len(batch.Results))
		for _, r := range batch.Results {
			domains = append(domains, r.Domain)
		}
		require.Equal(t, []string{"b.com", "c.com", "d.com"}, domains)
	})
}
