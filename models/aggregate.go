// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Aggregate is the fold of qualifying events of a set of notes into daily
// summary counters. It is derived on demand and never persisted.
type Aggregate struct {
	WaterMl  float64 `json:"waterMl"`
	ProteinG float64 `json:"proteinG"`
	Pushups  int     `json:"pushups"`

	// WorkoutsBySport counts workout events per sport.
	WorkoutsBySport map[Sport]int `json:"workoutsBySport"`

	// IsRestDay is true when any rest event was folded.
	IsRestDay bool `json:"isRestDay"`

	// LastWeightKg and LastBfpPercent hold the last value folded, nil when
	// no such event qualified.
	LastWeightKg   *float64 `json:"lastWeightKg,omitempty"`
	LastBfpPercent *float64 `json:"lastBfpPercent,omitempty"`
}

// NewAggregate returns an empty aggregate ready for folding.
func NewAggregate() Aggregate {
	return Aggregate{WorkoutsBySport: make(map[Sport]int)}
}
