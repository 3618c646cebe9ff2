package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeThresholds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		winRate float64
		trades  int
		want    string
	}{
		{100, 9, GradeNA},
		{0, 0, GradeNA},
		{75, 10, "A*"},
		{80, 10, "A*"},
		{74.9, 10, "A"},
		{65, 10, "A"},
		{64.9, 10, "B"},
		{55, 10, "B"},
		{54.9, 10, "C"},
		{45, 10, "C"},
		{44.9, 10, "D"},
		{35, 10, "D"},
		{34.9, 10, "F"},
		{0, 10, "F"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Grade(tc.winRate, tc.trades), "winRate=%.1f trades=%d", tc.winRate, tc.trades)
	}
}

func TestGradeMonotonicInWinRate(t *testing.T) {
	t.Parallel()

	// Higher win rate never produces a worse grade.
	rank := map[string]int{"F": 0, "D": 1, "C": 2, "B": 3, "A": 4, "A*": 5}

	prev := -1
	for rate := 0.0; rate <= 100; rate += 0.5 {
		r := rank[Grade(rate, 20)]
		assert.GreaterOrEqual(t, r, prev, "winRate=%.1f", rate)
		prev = r
	}
}
