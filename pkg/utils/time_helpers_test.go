package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2026, 3, 10, 23, 59, 59, 999999999, loc)

	got := StartOfDay(in)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestStartOfNextDay(t *testing.T) {
	in := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), StartOfNextDay(in))

	// Переход через конец месяца.
	in = time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), StartOfNextDay(in))
}

func TestDayRange(t *testing.T) {
	in := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	from, to := DayRange(in)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), to)

	// Полуинтервал: сам момент `in` внутри, граница `to` — уже нет.
	assert.True(t, !in.Before(from) && in.Before(to))
	assert.False(t, to.Before(to))
}

func TestDayRangesDoNotOverlap(t *testing.T) {
	day := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	_, toToday := DayRange(day)
	fromTomorrow, _ := DayRange(day.AddDate(0, 0, 1))

	assert.Equal(t, toToday, fromTomorrow)
}
