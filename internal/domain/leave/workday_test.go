package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountWorkingDays(t *testing.T) {
	tests := []struct {
		name            string
		start, end      string
		excludeWeekends bool
		want            int
	}{
		{"monday to friday excluding weekends", "2024-01-01", "2024-01-05", true, 5},
		{"monday to friday including weekends", "2024-01-01", "2024-01-05", false, 5},
		{"weekend only excluding weekends", "2024-01-06", "2024-01-07", true, 0},
		{"weekend only including weekends", "2024-01-06", "2024-01-07", false, 2},
		{"single weekday", "2024-01-03", "2024-01-03", true, 1},
		{"single saturday excluded", "2024-01-06", "2024-01-06", true, 0},
		{"two full weeks", "2024-01-01", "2024-01-14", true, 10},
		{"across month end", "2024-01-31", "2024-02-01", true, 2},
		{"leap day", "2024-02-28", "2024-03-01", false, 3},
		{"across year end", "2023-12-29", "2024-01-02", true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := ParseDate(tt.start)
			require.NoError(t, err)
			end, err := ParseDate(tt.end)
			require.NoError(t, err)

			got, err := CountWorkingDays(start, end, tt.excludeWeekends)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountWorkingDays_InvalidRange(t *testing.T) {
	start := NewDate(2024, time.January, 10)
	end := NewDate(2024, time.January, 9)

	_, err := CountWorkingDays(start, end, true)

	var rangeErr *InvalidRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, start, rangeErr.Start)
	assert.Equal(t, end, rangeErr.End)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCountWorkingDays_Bounds(t *testing.T) {
	start := NewDate(2024, time.March, 1)
	for span := 0; span < 60; span++ {
		end := start.AddDays(span)

		withWeekends, err := CountWorkingDays(start, end, false)
		require.NoError(t, err)
		withoutWeekends, err := CountWorkingDays(start, end, true)
		require.NoError(t, err)

		assert.Equal(t, span+1, withWeekends)
		assert.LessOrEqual(t, withoutWeekends, withWeekends)
		assert.GreaterOrEqual(t, withoutWeekends, 0)
	}
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)

	assert.Equal(t, "2024-02-29", d.String())
	assert.Equal(t, time.Thursday, d.Weekday())
	assert.Equal(t, NewDate(2024, time.March, 1), d.AddDays(1))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.After(d.AddDays(-1)))
	assert.Zero(t, d.Compare(NewDate(2024, time.February, 29)))

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)

	// A late-evening timestamp west of UTC keeps its local calendar day.
	loc := time.FixedZone("UTC-8", -8*60*60)
	assert.Equal(t, NewDate(2024, time.January, 5), DateOf(time.Date(2024, time.January, 5, 23, 30, 0, 0, loc)))
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalJSON([]byte(`"2024-07-15"`)))
	assert.Equal(t, NewDate(2024, time.July, 15), d)

	b, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-07-15"`, string(b))

	assert.Error(t, d.UnmarshalJSON([]byte(`"15.07.2024"`)))
}
