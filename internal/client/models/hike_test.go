package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHikeFilter_Values(t *testing.T) {
	f := HikeFilter{Name: "Ben", Difficulty: DifficultyHard, MinLength: 5, MaxLength: 12.5}

	q := f.Values()

	assert.Equal(t, "Ben", q.Get("name"))
	assert.Equal(t, "hard", q.Get("difficulty"))
	assert.Equal(t, "5", q.Get("minLength"))
	assert.Equal(t, "12.5", q.Get("maxLength"))
	assert.False(t, q.Has("location"))
	assert.False(t, q.Has("date"))
}

func TestHikeFilter_ZeroValueIsEmpty(t *testing.T) {
	assert.Empty(t, HikeFilter{}.Values())
}

func TestHikePatch_Empty(t *testing.T) {
	assert.True(t, HikePatch{}.Empty())

	name := "x"
	assert.False(t, HikePatch{Name: &name}.Empty())

	parking := false
	assert.False(t, HikePatch{ParkingAvailable: &parking}.Empty())
}

func TestObservationPatch_Empty(t *testing.T) {
	assert.True(t, ObservationPatch{}.Empty())
	assert.False(t, ObservationPatch{DeletePhoto: true}.Empty())

	lat := 0.0
	assert.False(t, ObservationPatch{Latitude: &lat}.Empty())
}
