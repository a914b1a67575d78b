package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piste-boss/piste-reserve/pkg/types"
)

func tr(start, end string) TimeRange {
	return TimeRange{Start: types.TimeString(start), End: types.TimeString(end)}
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeRange
		b    TimeRange
		want bool
	}{
		{name: "partial overlap", a: tr("11:30", "12:00"), b: tr("11:20", "11:40"), want: true},
		{name: "contained", a: tr("10:00", "12:00"), b: tr("10:30", "11:00"), want: true},
		{name: "identical", a: tr("10:00", "11:00"), b: tr("10:00", "11:00"), want: true},
		{name: "touching end to start", a: tr("09:00", "10:00"), b: tr("10:00", "11:00"), want: false},
		{name: "touching start to end", a: tr("10:00", "11:00"), b: tr("09:00", "10:00"), want: false},
		{name: "disjoint", a: tr("09:00", "10:00"), b: tr("13:00", "14:00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestReservation_StatusTransitions(t *testing.T) {
	active := &Reservation{Status: StatusActive}
	assert.True(t, active.IsActive())
	assert.True(t, active.CanBeCancelled())
	assert.False(t, active.IsCancelled())

	cancelled := &Reservation{Status: StatusCancelled}
	assert.True(t, cancelled.IsCancelled())
	assert.False(t, cancelled.CanBeCancelled())
	assert.False(t, cancelled.IsActive())
}

func TestIsValidSource(t *testing.T) {
	assert.True(t, IsValidSource(SourceWeb))
	assert.True(t, IsValidSource(SourceChat))
	assert.True(t, IsValidSource(SourceAdmin))
	assert.True(t, IsValidSource(SourceCalendarSync))
	assert.False(t, IsValidSource("sms"))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusActive))
	assert.True(t, IsValidStatus(StatusCancelled))
	assert.False(t, IsValidStatus("pending"))
}
