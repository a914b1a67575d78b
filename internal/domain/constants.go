package domain

import "github.com/piste-boss/piste-reserve/pkg/types"

// Default operating hours configuration
const (
	DefaultMorningStart   types.TimeString = "09:00"
	DefaultMorningEnd     types.TimeString = "12:00"
	DefaultAfternoonStart types.TimeString = "13:00"
	DefaultAfternoonEnd   types.TimeString = "20:00"
	DefaultStepMinutes                     = 20
)

// Business validation constants
const (
	MinMenuDurationMinutes = 1
	MaxMenuDurationMinutes = 480 // 8 hours
	MaxCancelReasonLength  = 500
	MaxCustomerNameLength  = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
