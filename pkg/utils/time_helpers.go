package utils

import "time"

// StartOfDay возвращает полночь дня t в его локации.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfNextDay возвращает полночь следующего дня.
func StartOfNextDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// AddDays сдвигает время на n календарных дней.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DayRange возвращает полуинтервал [полночь дня t, полночь следующего дня).
// Сравнения дат по таким полуинтервалам не дают двойного счёта:
// запись попадает ровно в один интервал.
func DayRange(t time.Time) (from, to time.Time) {
	from = StartOfDay(t)
	to = from.AddDate(0, 0, 1)
	return from, to
}
