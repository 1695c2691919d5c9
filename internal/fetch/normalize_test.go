package fetch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/jackpot/internal/model"
	"github.com/verte-zerg/jackpot/internal/stats"
)

func strPtr(s string) *string {
	return &s
}

func TestNormalizeMapsFields(t *testing.T) {
	raw := []RawDraw{
		{Date: strPtr("2024-01-02"), Numbers: []int{1, 2, 3, 4, 5}, EuroNumbers: []int{1, 2}},
		{Date: strPtr("2024-01-05"), Numbers: []int{1, 2, 3, 4, 6}, EuroNumbers: []int{1, 3}},
	}
	draws, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, draws, 2)
	require.Equal(t, "2024-01-02", draws[0].Date)
	require.Equal(t, []int{1, 2, 3, 4, 5}, draws[0].Main)
	require.Equal(t, []int{1, 3}, draws[1].Stars)

	raw[0].Numbers[0] = 50
	require.Equal(t, 1, draws[0].Main[0], "normalized draw must not alias the raw slice")
}

func TestNormalizeRejectsMalformed(t *testing.T) {
	cases := map[string]RawDraw{
		"missing date":  {Numbers: []int{1, 2, 3, 4, 5}, EuroNumbers: []int{1, 2}},
		"bad date":      {Date: strPtr("02.01.2024"), Numbers: []int{1, 2, 3, 4, 5}, EuroNumbers: []int{1, 2}},
		"missing main":  {Date: strPtr("2024-01-02"), EuroNumbers: []int{1, 2}},
		"missing stars": {Date: strPtr("2024-01-02"), Numbers: []int{1, 2, 3, 4, 5}},
		"too many main": {Date: strPtr("2024-01-02"), Numbers: []int{1, 2, 3, 4, 5, 6}, EuroNumbers: []int{1, 2}},
		"too few main":  {Date: strPtr("2024-01-02"), Numbers: []int{1, 2, 3, 4}, EuroNumbers: []int{1, 2}},
		"one star":      {Date: strPtr("2024-01-02"), Numbers: []int{1, 2, 3, 4, 5}, EuroNumbers: []int{3}},
		"three stars":   {Date: strPtr("2024-01-02"), Numbers: []int{1, 2, 3, 4, 5}, EuroNumbers: []int{1, 2, 3}},
		"repeated main": {Date: strPtr("2024-01-02"), Numbers: []int{1, 1, 2, 3, 4}, EuroNumbers: []int{1, 2}},
		"repeated star": {Date: strPtr("2024-01-02"), Numbers: []int{1, 2, 3, 4, 5}, EuroNumbers: []int{7, 7}},
		"oversized and repeated": {
			Date:        strPtr("2024-01-02"),
			Numbers:     []int{1, 1, 2, 3, 4, 5, 6},
			EuroNumbers: []int{3},
		},
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize([]RawDraw{r})
			require.ErrorIs(t, err, ErrMalformedRecord)
			var recErr *RecordError
			require.True(t, errors.As(err, &recErr))
			require.Equal(t, 0, recErr.Index)
		})
	}
}

func TestNormalizeRejectsOutOfDomain(t *testing.T) {
	raw := []RawDraw{
		{Date: strPtr("2024-01-02"), Numbers: []int{1, 2, 3, 4, 5}, EuroNumbers: []int{1, 2}},
		{Date: strPtr("2024-01-05"), Numbers: []int{1, 2, 3, 4, 51}, EuroNumbers: []int{1, 2}},
	}
	_, err := Normalize(raw)
	require.ErrorIs(t, err, ErrOutOfDomain)
	var recErr *RecordError
	require.ErrorAs(t, err, &recErr)
	require.Equal(t, 1, recErr.Index)
	require.Equal(t, "2024-01-05", recErr.Date)

	_, err = Normalize([]RawDraw{{Date: strPtr("2024-01-02"), Numbers: []int{1, 2, 3, 4, 5}, EuroNumbers: []int{0, 13}}})
	require.ErrorIs(t, err, ErrOutOfDomain)
}

func TestNormalizedDrawsKeepFrequencyTotals(t *testing.T) {
	raw := []RawDraw{
		{Date: strPtr("2024-01-02"), Numbers: []int{1, 2, 3, 4, 5}, EuroNumbers: []int{1, 2}},
		{Date: strPtr("2024-01-05"), Numbers: []int{5, 10, 20, 30, 40}, EuroNumbers: []int{2, 12}},
		{Date: strPtr("2024-01-09"), Numbers: []int{1, 1, 2, 3, 4, 5, 6}, EuroNumbers: []int{3}},
	}
	_, err := Normalize(raw)
	var recErr *RecordError
	require.ErrorAs(t, err, &recErr)
	require.Equal(t, 2, recErr.Index)

	draws, err := Normalize(raw[:2])
	require.NoError(t, err)
	freq, err := stats.Aggregate(draws)
	require.NoError(t, err)
	require.Equal(t, len(draws)*model.MainPerDraw, freq.Main.Total())
	require.Equal(t, len(draws)*model.StarsPerDraw, freq.Stars.Total())
}
