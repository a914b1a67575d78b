package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piste-boss/piste-reserve/internal/domain"
	"github.com/piste-boss/piste-reserve/pkg/types"
)

func ts(t *testing.T, value string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return v
}

func timeRange(t *testing.T, start, end string) domain.TimeRange {
	t.Helper()
	return domain.TimeRange{Start: ts(t, start), End: ts(t, end)}
}

func TestGenerateCandidateTimes_FutureDateCoversBothWindows(t *testing.T) {
	hours := domain.DefaultBusinessHours()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local) // вторник
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)

	candidates, err := generateCandidateTimes(hours, date, now)
	require.NoError(t, err)

	// Утро 09:00-12:00 с шагом 20: 9 кандидатов, вечер 13:00-20:00: 21
	require.Len(t, candidates, 30)
	assert.Equal(t, "09:00", candidates[0].String())
	assert.Equal(t, "11:40", candidates[8].String())
	assert.Equal(t, "13:00", candidates[9].String())
	assert.Equal(t, "19:40", candidates[29].String())
}

func TestGenerateCandidateTimes_Deterministic(t *testing.T) {
	hours := domain.DefaultBusinessHours()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)

	first, err := generateCandidateTimes(hours, date, now)
	require.NoError(t, err)
	second, err := generateCandidateTimes(hours, date, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateCandidateTimes_SameDayCutoff(t *testing.T) {
	hours := domain.DefaultBusinessHours()
	// Сегодня, 15:05: все времена до 15:00 включительно отбрасываются
	now := time.Date(2026, 9, 15, 15, 5, 0, 0, time.Local)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)

	candidates, err := generateCandidateTimes(hours, date, now)
	require.NoError(t, err)

	require.NotEmpty(t, candidates)
	assert.Equal(t, "15:20", candidates[0].String())
	for _, c := range candidates {
		assert.False(t, c.IsBefore(ts(t, "15:20")), "candidate %s before cutoff", c)
	}
}

func TestGenerateCandidateTimes_SameDayExactBoundaryKept(t *testing.T) {
	hours := domain.DefaultBusinessHours()
	// Ровно 15:00: слот 15:00 еще доступен
	now := time.Date(2026, 9, 15, 15, 0, 0, 0, time.Local)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)

	candidates, err := generateCandidateTimes(hours, date, now)
	require.NoError(t, err)

	require.NotEmpty(t, candidates)
	assert.Equal(t, "15:00", candidates[0].String())
}

func TestGenerateCandidateTimes_PastDateEmpty(t *testing.T) {
	hours := domain.DefaultBusinessHours()
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.Local)
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local)

	candidates, err := generateCandidateTimes(hours, date, now)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestFilterAdmissible_OverlapRejected(t *testing.T) {
	existing := []domain.TimeRange{timeRange(t, "09:00", "10:00")}
	candidates := []types.TimeString{ts(t, "09:30"), ts(t, "10:00")}

	result := filterAdmissible(candidates, 60, existing)

	// 09:30-10:30 пересекается с 09:00-10:00, 10:00-11:00 граничит и допустим
	require.Len(t, result, 1)
	assert.Equal(t, "10:00", result[0].String())
}

func TestFilterAdmissible_TouchingBoundariesDoNotConflict(t *testing.T) {
	existing := []domain.TimeRange{timeRange(t, "10:00", "11:00")}

	// Кандидат заканчивается ровно в начале занятого интервала
	before := filterAdmissible([]types.TimeString{ts(t, "09:00")}, 60, existing)
	require.Len(t, before, 1)

	// Кандидат начинается ровно в конце занятого интервала
	after := filterAdmissible([]types.TimeString{ts(t, "11:00")}, 60, existing)
	require.Len(t, after, 1)
}

func TestFilterAdmissible_PreservesOrder(t *testing.T) {
	existing := []domain.TimeRange{timeRange(t, "13:00", "14:00")}
	candidates := []types.TimeString{
		ts(t, "09:00"), ts(t, "12:40"), ts(t, "14:00"), ts(t, "15:00"),
	}

	result := filterAdmissible(candidates, 20, existing)

	require.Len(t, result, 3)
	assert.Equal(t, "09:00", result[0].String())
	assert.Equal(t, "14:00", result[1].String())
	assert.Equal(t, "15:00", result[2].String())
}

func TestFilterAdmissible_NoExistingKeepsAll(t *testing.T) {
	candidates := []types.TimeString{ts(t, "09:00"), ts(t, "09:20")}

	result := filterAdmissible(candidates, 60, nil)

	assert.Equal(t, candidates, result)
}

func TestActiveRanges_SkipsCancelled(t *testing.T) {
	reservations := []*domain.Reservation{
		{Status: domain.StatusActive, Start: ts(t, "09:00"), End: ts(t, "10:00")},
		{Status: domain.StatusCancelled, Start: ts(t, "10:00"), End: ts(t, "11:00")},
	}

	ranges := activeRanges(reservations)

	require.Len(t, ranges, 1)
	assert.Equal(t, "09:00", ranges[0].Start.String())
}
