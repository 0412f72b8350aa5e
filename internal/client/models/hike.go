package models

import (
	"net/url"
	"strconv"
)

// Difficulty levels accepted by the backend.
const (
	DifficultyEasy     = "easy"
	DifficultyModerate = "moderate"
	DifficultyHard     = "hard"
)

// Hike is a trail record. Date is YYYY-MM-DD, Length is in kilometres.
type Hike struct {
	ID                int64   `json:"id"`
	UserID            int64   `json:"userId"`
	Username          string  `json:"username,omitempty"`
	Name              string  `json:"name"`
	Location          string  `json:"location"`
	Date              string  `json:"date"`
	ParkingAvailable  bool    `json:"parkingAvailable"`
	Length            float64 `json:"length"`
	Difficulty        string  `json:"difficulty"`
	Description       string  `json:"description,omitempty"`
	EstimatedDuration string  `json:"estimatedDuration,omitempty"`
	ElevationGain     float64 `json:"elevationGain,omitempty"`
	CreatedAt         string  `json:"createdAt,omitempty"`
	UpdatedAt         string  `json:"updatedAt,omitempty"`
}

type HikeInput struct {
	Name              string  `json:"name" validate:"required,max=100"`
	Location          string  `json:"location" validate:"required,max=100"`
	Date              string  `json:"date" validate:"required,datetime=2006-01-02"`
	ParkingAvailable  bool    `json:"parkingAvailable"`
	Length            float64 `json:"length" validate:"gt=0,lte=10000"`
	Difficulty        string  `json:"difficulty" validate:"required,oneof=easy moderate hard"`
	Description       string  `json:"description,omitempty" validate:"max=1000"`
	EstimatedDuration string  `json:"estimatedDuration,omitempty" validate:"max=50"`
	ElevationGain     float64 `json:"elevationGain,omitempty" validate:"gte=0"`
}

// HikePatch is a partial update; nil fields are left untouched.
type HikePatch struct {
	Name              *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Location          *string  `json:"location,omitempty" validate:"omitempty,min=1,max=100"`
	Date              *string  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ParkingAvailable  *bool    `json:"parkingAvailable,omitempty"`
	Length            *float64 `json:"length,omitempty" validate:"omitempty,gt=0,lte=10000"`
	Difficulty        *string  `json:"difficulty,omitempty" validate:"omitempty,oneof=easy moderate hard"`
	Description       *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	EstimatedDuration *string  `json:"estimatedDuration,omitempty" validate:"omitempty,max=50"`
	ElevationGain     *float64 `json:"elevationGain,omitempty" validate:"omitempty,gte=0"`
}

// Empty reports whether the patch changes nothing.
func (p HikePatch) Empty() bool {
	return p.Name == nil && p.Location == nil && p.Date == nil && p.ParkingAvailable == nil &&
		p.Length == nil && p.Difficulty == nil && p.Description == nil &&
		p.EstimatedDuration == nil && p.ElevationGain == nil
}

// HikeFilter narrows GET /hikes/all. Zero values are not sent.
type HikeFilter struct {
	Name       string
	Location   string
	Difficulty string  `validate:"omitempty,oneof=easy moderate hard"`
	Date       string  `validate:"omitempty,datetime=2006-01-02"`
	MinLength  float64 `validate:"gte=0"`
	MaxLength  float64 `validate:"omitempty,gtefield=MinLength"`
}

// Values encodes the filter as query parameters.
func (f HikeFilter) Values() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("name", f.Name)
	set("location", f.Location)
	set("difficulty", f.Difficulty)
	set("date", f.Date)
	if f.MinLength > 0 {
		q.Set("minLength", strconv.FormatFloat(f.MinLength, 'f', -1, 64))
	}
	if f.MaxLength > 0 {
		q.Set("maxLength", strconv.FormatFloat(f.MaxLength, 'f', -1, 64))
	}
	return q
}

type HikeList struct {
	Count int    `json:"count"`
	Hikes []Hike `json:"hikes"`
}

type CreateHikeResponse struct {
	Message string `json:"message"`
	HikeID  int64  `json:"hikeId"`
	Hike    *Hike  `json:"hike"`
}
