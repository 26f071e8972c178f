package leitner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOrdinalDay(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		date     time.Time
		expected int
	}{
		{
			name:     "unix epoch",
			date:     date(1970, time.January, 1),
			expected: 719163,
		},
		{
			name:     "day after unix epoch",
			date:     date(1970, time.January, 2),
			expected: 719164,
		},
		{
			name:     "2024-01-01",
			date:     date(2024, time.January, 1),
			expected: 738886,
		},
		{
			name:     "time of day is ignored",
			date:     time.Date(2024, time.January, 1, 23, 59, 59, 0, time.UTC),
			expected: 738886,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, OrdinalDay(tc.date))
		})
	}
}

func TestOrdinalDayStrictlyMonotonic(t *testing.T) {
	t.Parallel()

	d := date(2023, time.December, 25)
	prev := OrdinalDay(d)
	for i := 1; i <= 30; i++ {
		cur := OrdinalDay(d.AddDate(0, 0, i))
		assert.Equal(t, prev+1, cur, "ordinal must increase by exactly 1 per day")
		prev = cur
	}
}

func TestIsEligibleBoxOne(t *testing.T) {
	t.Parallel()

	// Box 1 is due every single day.
	d := date(2024, time.January, 1)
	for i := 0; i < 10; i++ {
		assert.True(t, IsEligible(1, d.AddDate(0, 0, i)))
	}
}

func TestIsEligibleBoxTwoAlternates(t *testing.T) {
	t.Parallel()

	// 2024-01-01 has an even ordinal day number.
	d := date(2024, time.January, 1)
	for i := 0; i < 10; i++ {
		got := IsEligible(2, d.AddDate(0, 0, i))
		assert.Equal(t, i%2 == 0, got, "day offset %d", i)
	}
}

func TestIsEligibleBoxThreeEveryThirdDay(t *testing.T) {
	t.Parallel()

	// 2024-01-03 has an ordinal divisible by 3.
	d := date(2024, time.January, 3)
	for i := 0; i < 12; i++ {
		got := IsEligible(3, d.AddDate(0, 0, i))
		assert.Equal(t, i%3 == 0, got, "day offset %d", i)
	}
}

func TestIsEligibleUnknownBoxNeverEligible(t *testing.T) {
	t.Parallel()

	d := date(2024, time.January, 1)
	for _, box := range []int{-1, 0, 4, 5, 100} {
		for i := 0; i < 6; i++ {
			assert.False(t, IsEligible(box, d.AddDate(0, 0, i)), "box %d", box)
		}
	}
}
