package get_available_slots

import (
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
	"github.com/piste-boss/piste-reserve/pkg/types"
)

// generateCandidateTimes генерирует все возможные времена начала на день.
// Кандидаты идут с фиксированным шагом внутри каждого рабочего окна
// (утреннего и вечернего). Для сегодняшней даты времена строго раньше
// текущего отбрасываются.
func generateCandidateTimes(
	hours domain.BusinessHours,
	requestDate time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	candidates := make([]types.TimeString, 0)

	for _, window := range hours.Windows() {
		current := window.Start
		// Кандидат генерируется, пока его начало внутри окна; влезает ли
		// вся услуга до конца окна - решает клиент при записи, исторически
		// последние слоты дня могут выходить за закрытие
		for current.IsBefore(window.End) {
			candidates = append(candidates, current)

			next, err := current.AddMinutes(hours.StepMinutes)
			if err != nil {
				// Шаг вышел за полночь, окно исчерпано
				break
			}
			current = next
		}
	}

	if !isSameDay(requestDate, now) {
		return candidates, nil
	}

	// Сегодняшняя дата: времена строго раньше текущего уже не доступны
	currentTime := types.NewTimeString(now)
	admissible := make([]types.TimeString, 0, len(candidates))
	for _, candidate := range candidates {
		if !candidate.IsBefore(currentTime) {
			admissible = append(admissible, candidate)
		}
	}

	return admissible, nil
}

// filterAdmissible оставляет только кандидатов, чей интервал
// [start, start+duration) не пересекается ни с одним занятым интервалом.
// Порядок кандидатов сохраняется.
func filterAdmissible(
	candidates []types.TimeString,
	durationMinutes int,
	existing []domain.TimeRange,
) []types.TimeString {
	result := make([]types.TimeString, 0, len(candidates))

	for _, start := range candidates {
		if isAdmissible(start, durationMinutes, existing) {
			result = append(result, start)
		}
	}

	return result
}

// isAdmissible проверяет один кандидат по правилу полуоткрытых интервалов:
// конфликт есть только при реальном наложении, соприкосновение границ
// конфликтом не считается
func isAdmissible(start types.TimeString, durationMinutes int, existing []domain.TimeRange) bool {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		// Услуга не помещается до полуночи
		return false
	}

	candidate := domain.TimeRange{Start: start, End: end}
	for _, r := range existing {
		if candidate.Overlaps(r) {
			return false
		}
	}

	return true
}

// activeRanges собирает занятые интервалы активных бронирований
func activeRanges(reservations []*domain.Reservation) []domain.TimeRange {
	ranges := make([]domain.TimeRange, 0, len(reservations))
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		ranges = append(ranges, r.Range())
	}
	return ranges
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
