// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package aggregate folds smart notes into daily summary counters.
//
// Only non-pending notes count, and within them only events whose confidence
// reaches [models.ConfidenceThreshold]. Scalar measurements (weight, body
// fat) are "last wins", so the caller picks the iteration order explicitly.
package aggregate

import (
	"sort"
	"time"

	"github.com/MKhiriev/smart-notes/models"
)

// Order selects how [SumEvents] iterates over the notes.
type Order int

const (
	// OrderAsGiven folds the notes in slice order.
	OrderAsGiven Order = iota
	// OrderChronological folds the notes by ascending ts, so the last
	// weight/bfp value is the chronologically latest one. Notes with equal
	// ts keep their relative order.
	OrderChronological
)

// StartOfDay returns local midnight of now, in now's location.
func StartOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// FilterToday returns the notes whose ts is not before the start of now's
// day. The boundary is computed on every call.
func FilterToday(notes []models.SmartNote, now time.Time) []models.SmartNote {
	boundary := StartOfDay(now).UnixMilli()

	today := make([]models.SmartNote, 0, len(notes))
	for _, n := range notes {
		if n.Ts >= boundary {
			today = append(today, n)
		}
	}

	return today
}

// SumEvents folds the qualifying events of notes into an [models.Aggregate].
// notes is never modified.
func SumEvents(notes []models.SmartNote, order Order) models.Aggregate {
	if order == OrderChronological {
		sorted := make([]models.SmartNote, len(notes))
		copy(sorted, notes)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Ts < sorted[j].Ts })
		notes = sorted
	}

	agg := models.NewAggregate()
	for _, n := range notes {
		if n.Pending {
			continue
		}
		for _, e := range n.Events {
			if !e.Confident() {
				continue
			}
			fold(&agg, e)
		}
	}

	return agg
}

func fold(agg *models.Aggregate, e models.Event) {
	switch e.Kind {
	case models.EventDrink:
		agg.WaterMl += e.VolumeMl
	case models.EventProtein:
		agg.ProteinG += e.Grams
	case models.EventPushups:
		agg.Pushups += e.Count
	case models.EventWorkout:
		agg.WorkoutsBySport[e.Sport]++
	case models.EventRest:
		agg.IsRestDay = true
	case models.EventWeight:
		kg := e.Kg
		agg.LastWeightKg = &kg
	case models.EventBodyFat:
		percent := e.Percent
		agg.LastBfpPercent = &percent
	case models.EventFood:
		if e.ProteinG != nil {
			agg.ProteinG += *e.ProteinG
		}
	}
}
