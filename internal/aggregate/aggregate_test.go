// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/smart-notes/models"
)

func ptr[T any](v T) *T { return &v }

func note(id string, ts int64, events ...models.Event) models.SmartNote {
	return models.SmartNote{ID: id, Ts: ts, Events: events}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, 10, 14, 23, 59, 59, 999, loc)

	got := StartOfDay(now)
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestFilterToday(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.Local)
	midnight := StartOfDay(now).UnixMilli()

	notes := []models.SmartNote{
		note("noon", now.UnixMilli()),
		note("midnight", midnight),
		note("yesterday", midnight-1),
	}

	today := FilterToday(notes, now)
	require.Len(t, today, 2)
	assert.Equal(t, "noon", today[0].ID)
	assert.Equal(t, "midnight", today[1].ID, "the boundary itself is inclusive")
}

func TestFilterToday_DayRollover(t *testing.T) {
	day1 := time.Date(2026, 10, 14, 23, 0, 0, 0, time.Local)
	day2 := day1.Add(2 * time.Hour)
	notes := []models.SmartNote{note("late", day1.UnixMilli())}

	assert.Len(t, FilterToday(notes, day1), 1)
	assert.Empty(t, FilterToday(notes, day2))
}

func TestSumEvents_EveryKind(t *testing.T) {
	notes := []models.SmartNote{
		note("a", 1,
			models.NewDrinkEvent(500, 0.9),
			models.NewDrinkEvent(250, 0.5),
			models.NewProteinEvent(30, 0.8),
			models.NewFoodEvent(ptr(12.5), 0.7),
			models.NewFoodEvent(nil, 0.9),
		),
		note("b", 2,
			models.NewPushupsEvent(20, 1),
			models.NewPushupsEvent(15, 0.6),
			models.NewWorkoutEvent("running", 0.9),
			models.NewWorkoutEvent("running", 0.9),
			models.NewWorkoutEvent("hiit", 0.9),
			models.NewRestEvent(0.9),
			models.NewWeightEvent(80.5, 0.9),
			models.NewBodyFatEvent(18, 0.9),
		),
	}

	agg := SumEvents(notes, OrderAsGiven)

	assert.InDelta(t, 750, agg.WaterMl, 1e-9)
	assert.InDelta(t, 42.5, agg.ProteinG, 1e-9)
	assert.Equal(t, 35, agg.Pushups)
	assert.Equal(t, map[models.Sport]int{"running": 2, "hiit": 1}, agg.WorkoutsBySport)
	assert.True(t, agg.IsRestDay)
	require.NotNil(t, agg.LastWeightKg)
	assert.InDelta(t, 80.5, *agg.LastWeightKg, 1e-9)
	require.NotNil(t, agg.LastBfpPercent)
	assert.InDelta(t, 18, *agg.LastBfpPercent, 1e-9)
}

func TestSumEvents_Empty(t *testing.T) {
	agg := SumEvents(nil, OrderChronological)

	assert.Equal(t, models.NewAggregate(), agg)
	assert.NotNil(t, agg.WorkoutsBySport)
	assert.Nil(t, agg.LastWeightKg)
	assert.Nil(t, agg.LastBfpPercent)
	assert.False(t, agg.IsRestDay)
}

func TestSumEvents_LowConfidenceExcluded(t *testing.T) {
	agg := SumEvents([]models.SmartNote{
		note("a", 1,
			models.NewDrinkEvent(500, 0.4),
			models.NewRestEvent(0.49),
			models.NewWeightEvent(90, 0.1),
		),
	}, OrderAsGiven)

	assert.Zero(t, agg.WaterMl)
	assert.False(t, agg.IsRestDay)
	assert.Nil(t, agg.LastWeightKg)
}

func TestSumEvents_PendingNotesExcluded(t *testing.T) {
	pending := note("p", 1, models.NewDrinkEvent(1000, 1), models.NewRestEvent(1))
	pending.Pending = true

	agg := SumEvents([]models.SmartNote{pending, note("a", 2, models.NewDrinkEvent(200, 1))}, OrderAsGiven)

	assert.InDelta(t, 200, agg.WaterMl, 1e-9)
	assert.False(t, agg.IsRestDay)
}

func TestSumEvents_UnknownKindIgnored(t *testing.T) {
	agg := SumEvents([]models.SmartNote{
		note("a", 1, models.Event{Kind: "sleep", Confidence: 1}),
	}, OrderAsGiven)

	assert.Equal(t, models.NewAggregate(), agg)
}

func TestSumEvents_LastWinsOrder(t *testing.T) {
	// newest first, as the store returns them
	notes := []models.SmartNote{
		note("new", 300, models.NewWeightEvent(79, 1), models.NewBodyFatEvent(17, 1)),
		note("mid", 200, models.NewWeightEvent(80, 1)),
		note("old", 100, models.NewWeightEvent(81, 1), models.NewBodyFatEvent(19, 1)),
	}

	asGiven := SumEvents(notes, OrderAsGiven)
	assert.InDelta(t, 81, *asGiven.LastWeightKg, 1e-9)
	assert.InDelta(t, 19, *asGiven.LastBfpPercent, 1e-9)

	chrono := SumEvents(notes, OrderChronological)
	assert.InDelta(t, 79, *chrono.LastWeightKg, 1e-9)
	assert.InDelta(t, 17, *chrono.LastBfpPercent, 1e-9)

	assert.Equal(t, "new", notes[0].ID, "input is not reordered")
}

func TestSumEvents_ChronologicalIsStableOnEqualTs(t *testing.T) {
	notes := []models.SmartNote{
		note("first", 100, models.NewWeightEvent(70, 1)),
		note("second", 100, models.NewWeightEvent(71, 1)),
	}

	agg := SumEvents(notes, OrderChronological)
	assert.InDelta(t, 71, *agg.LastWeightKg, 1e-9)
}

func TestSumEvents_ScalarsAreNotAliased(t *testing.T) {
	notes := []models.SmartNote{note("a", 1, models.NewWeightEvent(80, 1))}

	agg := SumEvents(notes, OrderAsGiven)
	*agg.LastWeightKg = 1

	assert.InDelta(t, 80, notes[0].Events[0].Kg, 1e-9)
}
