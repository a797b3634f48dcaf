package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestTranslateRequest_Normalize(t *testing.T) {
	req := TranslateRequest{
		Breed: "  Corgi ",
		Count: " MANY ",
	}
	req.Normalize()

	assert.Equal(t, "Corgi", req.Breed)
	assert.Equal(t, CountMany, req.Count)
	assert.Equal(t, PitchMid, req.Pitch)
	assert.Equal(t, UrgencyChill, req.Urgency)
	require.NotNil(t, req.Squirrel)
	assert.Equal(t, 50, *req.Squirrel)
	require.NotNil(t, req.Zoomies)
	assert.Equal(t, 5, *req.Zoomies)
}

func TestTranslateRequest_NormalizeKeepsExplicitZero(t *testing.T) {
	req := TranslateRequest{Squirrel: intPtr(0), Zoomies: intPtr(0)}
	req.Normalize()

	assert.Equal(t, 0, req.SquirrelLevel())
	assert.Equal(t, 0, req.ZoomiesLevel())
}

func TestTranslateRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		request  TranslateRequest
		errorMsg string
	}{
		{
			name:    "valid request",
			request: TranslateRequest{Breed: "Beagle", Count: CountOne, Pitch: PitchHigh, Urgency: UrgencyEmergency, Squirrel: intPtr(100), Zoomies: intPtr(10)},
		},
		{
			name:     "unknown count",
			request:  TranslateRequest{Count: "seven", Pitch: PitchMid, Urgency: UrgencyChill, Squirrel: intPtr(50), Zoomies: intPtr(5)},
			errorMsg: "count must be one of one, two, many",
		},
		{
			name:     "unknown pitch",
			request:  TranslateRequest{Count: CountTwo, Pitch: "ultrasonic", Urgency: UrgencyChill, Squirrel: intPtr(50), Zoomies: intPtr(5)},
			errorMsg: "pitch must be one of",
		},
		{
			name:     "unknown urgency",
			request:  TranslateRequest{Count: CountTwo, Pitch: PitchMid, Urgency: "meh", Squirrel: intPtr(50), Zoomies: intPtr(5)},
			errorMsg: "urgency must be one of",
		},
		{
			name:     "squirrel off scale",
			request:  TranslateRequest{Count: CountTwo, Pitch: PitchMid, Urgency: UrgencyChill, Squirrel: intPtr(75), Zoomies: intPtr(5)},
			errorMsg: "squirrel must be one of 0, 50, 100",
		},
		{
			name:     "zoomies too high",
			request:  TranslateRequest{Count: CountTwo, Pitch: PitchMid, Urgency: UrgencyChill, Squirrel: intPtr(50), Zoomies: intPtr(11)},
			errorMsg: "zoomies must be between 0 and 10",
		},
		{
			name:     "zoomies negative",
			request:  TranslateRequest{Count: CountTwo, Pitch: PitchMid, Urgency: UrgencyChill, Squirrel: intPtr(50), Zoomies: intPtr(-1)},
			errorMsg: "zoomies must be between 0 and 10",
		},
		{
			name:     "breed too long",
			request:  TranslateRequest{Breed: strings.Repeat("x", MaxBreedLength+1), Count: CountTwo, Pitch: PitchMid, Urgency: UrgencyChill, Squirrel: intPtr(50), Zoomies: intPtr(5)},
			errorMsg: "breed must be at most",
		},
		{
			name:     "missing squirrel",
			request:  TranslateRequest{Count: CountTwo, Pitch: PitchMid, Urgency: UrgencyChill, Zoomies: intPtr(5)},
			errorMsg: "squirrel must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestTranslateRequest_DefaultsAreValid(t *testing.T) {
	var req TranslateRequest
	req.Normalize()
	assert.NoError(t, req.Validate())
}
