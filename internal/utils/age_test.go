package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(PlantingDateLayout, value)
	require.NoError(t, err)
	return d.Add(15 * time.Hour)
}

func TestComputeVegetableAge(t *testing.T) {
	tests := []struct {
		name    string
		planted string
		now     string
		wantAge int
		wantOK  bool
	}{
		{name: "same month", planted: "2024-03-05", now: "2024-03-20", wantAge: 15, wantOK: true},
		{name: "same day", planted: "2024-06-09", now: "2024-06-09", wantAge: 0, wantOK: true},
		{name: "same month a year apart", planted: "2023-03-05", now: "2024-03-05", wantAge: 366, wantOK: true},
		{name: "october to november", planted: "2024-10-20", now: "2024-11-05", wantAge: 16, wantOK: true},
		{name: "november to december", planted: "2024-11-25", now: "2024-12-03", wantAge: 8, wantOK: true},
		{name: "october to december", planted: "2024-10-15", now: "2024-12-01", wantAge: 47, wantOK: true},
		// Only the Oct/Nov/Dec transitions are computed; every other gap reports zero.
		{name: "january to march is not computed", planted: "2024-01-10", now: "2024-03-10", wantAge: 0, wantOK: true},
		{name: "september to october is not computed", planted: "2024-09-28", now: "2024-10-02", wantAge: 0, wantOK: true},
		// Year rollover is not handled.
		{name: "december viewed in january", planted: "2024-12-20", now: "2025-01-05", wantAge: 0, wantOK: true},
		{name: "planted later in the same month", planted: "2024-03-20", now: "2024-03-05", wantAge: -15, wantOK: false},
		{name: "same month next year in the future", planted: "2025-05-01", now: "2024-05-01", wantAge: -365, wantOK: false},
		{name: "october day 31 into november", planted: "2024-10-31", now: "2024-11-01", wantAge: 1, wantOK: true},
		{name: "same month centuries apart", planted: "1700-10-05", now: "2026-10-14", wantAge: 119078, wantOK: true},
		{name: "same month centuries in the future", planted: "2400-03-05", now: "2024-03-05", wantAge: -137331, wantOK: false},
		{name: "month and day without leading zeros", planted: "2024-3-5", now: "2024-03-20", wantAge: 15, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age, ok, err := ComputeVegetableAge(tt.planted, day(t, tt.now))
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantAge, age)
		})
	}
}

func TestComputeVegetableAge_EmptyDate(t *testing.T) {
	age, ok, err := ComputeVegetableAge("", time.Now())
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, age)
}

func TestComputeVegetableAge_InvalidDate(t *testing.T) {
	for _, value := range []string{"2024/03/05", "not-a-date", "2024-13-01", "2024-02-30", "24-03-05", "2024-03-05x", "2024-003-05"} {
		_, ok, err := ComputeVegetableAge(value, time.Now())
		assert.ErrorIs(t, err, ErrInvalidPlantingDate, value)
		assert.False(t, ok)
	}
}

func TestComputeVegetableAge_UsesUTCDate(t *testing.T) {
	// 2024-03-20 23:30 at UTC-5 is already 2024-03-21 in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2024, time.March, 20, 23, 30, 0, 0, loc)

	age, ok, err := ComputeVegetableAge("2024-03-05", now)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 16, age)
}
