// Package models - API request types and input validation.
// This file defines the incoming translate request and its validation.
//
// Validation Philosophy:
// - Fail fast with clear error messages for invalid input
// - Normalize input before validating (lowercase enums, trimmed strings)
// - Provide sensible defaults for omitted selectors, the way the UI does
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Bark count selectors
const (
	CountOne  = "one"
	CountTwo  = "two"
	CountMany = "many"
)

// Pitch selectors
const (
	PitchHigh = "high"
	PitchMid  = "mid"
	PitchLow  = "low"
)

// Urgency selectors
const (
	UrgencyChill     = "chill"
	UrgencyWant      = "want"
	UrgencyEmergency = "emergency"
)

const (
	// MaxBreedLength bounds the free-text breed field.
	MaxBreedLength = 64
	// MaxZoomies is the top of the zoomies scale.
	MaxZoomies = 10
)

// TranslateRequest describes one bark to translate. Zero values are replaced
// by Normalize with the same defaults the browser UI preselects.
type TranslateRequest struct {
	Breed    string `json:"breed,omitempty"` // Free-text breed tag (optional)
	Count    string `json:"count"`           // one, two, many
	Pitch    string `json:"pitch"`           // high, mid, low
	Urgency  string `json:"urgency"`         // chill, want, emergency
	Squirrel *int   `json:"squirrel"`        // 0, 50 or 100 percent
	Zoomies  *int   `json:"zoomies"`         // 0..10
}

// Normalize trims and lowercases selectors and fills in defaults.
func (r *TranslateRequest) Normalize() {
	r.Breed = strings.TrimSpace(r.Breed)
	r.Count = normalizeSelector(r.Count, CountTwo)
	r.Pitch = normalizeSelector(r.Pitch, PitchMid)
	r.Urgency = normalizeSelector(r.Urgency, UrgencyChill)
	if r.Squirrel == nil {
		v := 50
		r.Squirrel = &v
	}
	if r.Zoomies == nil {
		v := 5
		r.Zoomies = &v
	}
}

// Validate checks a normalized request.
func (r *TranslateRequest) Validate() error {
	if len(r.Breed) > MaxBreedLength {
		return fmt.Errorf("breed must be at most %d characters", MaxBreedLength)
	}
	if err := validateOneOf("count", r.Count, CountOne, CountTwo, CountMany); err != nil {
		return err
	}
	if err := validateOneOf("pitch", r.Pitch, PitchHigh, PitchMid, PitchLow); err != nil {
		return err
	}
	if err := validateOneOf("urgency", r.Urgency, UrgencyChill, UrgencyWant, UrgencyEmergency); err != nil {
		return err
	}
	if r.Squirrel == nil || (*r.Squirrel != 0 && *r.Squirrel != 50 && *r.Squirrel != 100) {
		return errors.New("squirrel must be one of 0, 50, 100")
	}
	if r.Zoomies == nil || *r.Zoomies < 0 || *r.Zoomies > MaxZoomies {
		return fmt.Errorf("zoomies must be between 0 and %d", MaxZoomies)
	}
	return nil
}

// SquirrelLevel returns the squirrel percentage, or 50 when unset.
func (r *TranslateRequest) SquirrelLevel() int {
	if r.Squirrel == nil {
		return 50
	}
	return *r.Squirrel
}

// ZoomiesLevel returns the zoomies score, or 5 when unset.
func (r *TranslateRequest) ZoomiesLevel() int {
	if r.Zoomies == nil {
		return 5
	}
	return *r.Zoomies
}

func normalizeSelector(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}

func validateOneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s", field, strings.Join(allowed, ", "))
}
