package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		hour      int
		minute    int
		expectErr bool
	}{
		{
			name:   "Morning time",
			raw:    "08:00",
			hour:   8,
			minute: 0,
		},
		{
			name:   "Evening time",
			raw:    "20:45",
			hour:   20,
			minute: 45,
		},
		{
			name:   "Midnight",
			raw:    "00:00",
			hour:   0,
			minute: 0,
		},
		{
			name:   "Last minute of day",
			raw:    "23:59",
			hour:   23,
			minute: 59,
		},
		{
			name:      "Missing zero padding",
			raw:       "8:00",
			expectErr: true,
		},
		{
			name:      "Hour out of range",
			raw:       "24:00",
			expectErr: true,
		},
		{
			name:      "Minute out of range",
			raw:       "12:60",
			expectErr: true,
		},
		{
			name:      "Trailing seconds",
			raw:       "08:00:00",
			expectErr: true,
		},
		{
			name:      "Empty string",
			raw:       "",
			expectErr: true,
		},
		{
			name:      "Garbage",
			raw:       "noon",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hour, minute, err := Clock(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.hour, hour)
			assert.Equal(t, tc.minute, minute)
		})
	}
}

func TestWeekdays(t *testing.T) {
	assert.NoError(t, Weekdays(nil))
	assert.NoError(t, Weekdays([]int{}))
	assert.NoError(t, Weekdays([]int{0, 1, 2, 3, 4, 5, 6}))
	assert.NoError(t, Weekdays([]int{1, 3, 5}))

	assert.Error(t, Weekdays([]int{7}))
	assert.Error(t, Weekdays([]int{-1}))
	assert.Error(t, Weekdays([]int{1, 1}))
}
