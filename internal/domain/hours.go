package domain

import (
	"time"

	"github.com/piste-boss/piste-reserve/pkg/types"
)

// BusinessHours describes the fixed daily operating windows of the gym.
// Candidate slot times are generated within the morning and afternoon
// windows at StepMinutes granularity.
type BusinessHours struct {
	MorningStart   types.TimeString
	MorningEnd     types.TimeString
	AfternoonStart types.TimeString
	AfternoonEnd   types.TimeString
	StepMinutes    int
	ClosedWeekdays []time.Weekday
}

// DefaultBusinessHours returns the gym's default schedule:
// 09:00-12:00 and 13:00-20:00 with a 20 minute step, closed Sunday and Monday.
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		MorningStart:   DefaultMorningStart,
		MorningEnd:     DefaultMorningEnd,
		AfternoonStart: DefaultAfternoonStart,
		AfternoonEnd:   DefaultAfternoonEnd,
		StepMinutes:    DefaultStepMinutes,
		ClosedWeekdays: []time.Weekday{time.Sunday, time.Monday},
	}
}

// Windows returns the operating windows in ascending order
func (h BusinessHours) Windows() []TimeRange {
	return []TimeRange{
		{Start: h.MorningStart, End: h.MorningEnd},
		{Start: h.AfternoonStart, End: h.AfternoonEnd},
	}
}

// IsClosedWeekday reports whether the gym is closed every week on the given weekday
func (h BusinessHours) IsClosedWeekday(d time.Weekday) bool {
	for _, wd := range h.ClosedWeekdays {
		if wd == d {
			return true
		}
	}
	return false
}
