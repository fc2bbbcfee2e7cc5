// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EventKind identifies the variant of an [Event] extracted from a smart note.
type EventKind string

const (
	// EventDrink is a drink intake measured in millilitres.
	EventDrink EventKind = "drink"

	// EventProtein is a protein intake measured in grams.
	EventProtein EventKind = "protein"

	// EventPushups is a set of pushups.
	EventPushups EventKind = "pushups"

	// EventWorkout is a single workout session of some sport.
	EventWorkout EventKind = "workout"

	// EventRest marks the day as a rest day.
	EventRest EventKind = "rest"

	// EventWeight is a body weight measurement in kilograms.
	EventWeight EventKind = "weight"

	// EventBodyFat is a body-fat percentage measurement.
	EventBodyFat EventKind = "bfp"

	// EventFood is a meal, optionally carrying its protein content.
	EventFood EventKind = "food"
)

// ConfidenceThreshold is the minimal confidence an event needs to be counted
// in aggregates. Events below it stay stored as an audit trail.
const ConfidenceThreshold = 0.5

// knownEventKinds lists every kind the aggregation engine understands.
var knownEventKinds = map[EventKind]struct{}{
	EventDrink:   {},
	EventProtein: {},
	EventPushups: {},
	EventWorkout: {},
	EventRest:    {},
	EventWeight:  {},
	EventBodyFat: {},
	EventFood:    {},
}

// Known reports whether k is one of the supported event kinds.
func (k EventKind) Known() bool {
	_, ok := knownEventKinds[k]
	return ok
}

// Sport names the discipline of a workout event (e.g. "running", "hiit").
type Sport string

// Event is a typed, confidence-scored fact extracted from a note.
//
// Only the fields belonging to Kind are meaningful; the rest stay zero and are
// omitted from JSON. Use the NewXxxEvent constructors to build valid values.
type Event struct {
	// Kind selects the variant.
	Kind EventKind `json:"kind"`

	// Confidence is the extractor's certainty in [0,1].
	Confidence float64 `json:"confidence"`

	// VolumeMl is set for drink events.
	VolumeMl float64 `json:"volumeMl,omitempty"`

	// Grams is set for protein events.
	Grams float64 `json:"grams,omitempty"`

	// Count is set for pushups events.
	Count int `json:"count,omitempty"`

	// Sport is set for workout events.
	Sport Sport `json:"sport,omitempty"`

	// Kg is set for weight events.
	Kg float64 `json:"kg,omitempty"`

	// Percent is set for bfp events.
	Percent float64 `json:"percent,omitempty"`

	// ProteinG is optionally set for food events.
	ProteinG *float64 `json:"proteinG,omitempty"`
}

// Confident reports whether the event passes [ConfidenceThreshold].
func (e Event) Confident() bool {
	return e.Confidence >= ConfidenceThreshold
}

func NewDrinkEvent(volumeMl, confidence float64) Event {
	return Event{Kind: EventDrink, VolumeMl: volumeMl, Confidence: confidence}
}

func NewProteinEvent(grams, confidence float64) Event {
	return Event{Kind: EventProtein, Grams: grams, Confidence: confidence}
}

func NewPushupsEvent(count int, confidence float64) Event {
	return Event{Kind: EventPushups, Count: count, Confidence: confidence}
}

func NewWorkoutEvent(sport Sport, confidence float64) Event {
	return Event{Kind: EventWorkout, Sport: sport, Confidence: confidence}
}

func NewRestEvent(confidence float64) Event {
	return Event{Kind: EventRest, Confidence: confidence}
}

func NewWeightEvent(kg, confidence float64) Event {
	return Event{Kind: EventWeight, Kg: kg, Confidence: confidence}
}

func NewBodyFatEvent(percent, confidence float64) Event {
	return Event{Kind: EventBodyFat, Percent: percent, Confidence: confidence}
}

// NewFoodEvent builds a food event. proteinG may be nil when the protein
// content of the meal is unknown.
func NewFoodEvent(proteinG *float64, confidence float64) Event {
	e := Event{Kind: EventFood, Confidence: confidence}
	if proteinG != nil {
		v := *proteinG
		e.ProteinG = &v
	}
	return e
}
