package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/piste-boss/piste-reserve/pkg/types"
)

func TestDefaultBusinessHours_Windows(t *testing.T) {
	hours := DefaultBusinessHours()

	windows := hours.Windows()
	assert.Equal(t, []TimeRange{
		{Start: types.TimeString("09:00"), End: types.TimeString("12:00")},
		{Start: types.TimeString("13:00"), End: types.TimeString("20:00")},
	}, windows)
	assert.Equal(t, 20, hours.StepMinutes)
}

func TestBusinessHours_IsClosedWeekday(t *testing.T) {
	hours := DefaultBusinessHours()

	assert.True(t, hours.IsClosedWeekday(time.Sunday))
	assert.True(t, hours.IsClosedWeekday(time.Monday))
	assert.False(t, hours.IsClosedWeekday(time.Tuesday))
	assert.False(t, hours.IsClosedWeekday(time.Saturday))
}
