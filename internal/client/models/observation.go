package models

// Observation is a note attached to a hike, optionally with a photo and a
// GPS fix.
type Observation struct {
	ID          int64    `json:"id"`
	HikeID      int64    `json:"hikeId"`
	Observation string   `json:"observation"`
	Time        string   `json:"time,omitempty"`
	Comments    string   `json:"comments,omitempty"`
	Type        string   `json:"type,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	PhotoPath   string   `json:"photoPath,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

type ObservationInput struct {
	Observation string   `validate:"required,max=500"`
	Time        string   `validate:"max=50"`
	Comments    string   `validate:"max=1000"`
	Type        string   `validate:"max=50"`
	Latitude    *float64 `validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `validate:"omitempty,min=-180,max=180"`
	Photo       *File
}

// ObservationPatch is a partial update. DeletePhoto removes the stored photo
// and cannot be combined with a new one.
type ObservationPatch struct {
	Observation *string  `validate:"omitempty,min=1,max=500"`
	Time        *string  `validate:"omitempty,max=50"`
	Comments    *string  `validate:"omitempty,max=1000"`
	Type        *string  `validate:"omitempty,max=50"`
	Latitude    *float64 `validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `validate:"omitempty,min=-180,max=180"`
	Photo       *File    `validate:"excluded_with=DeletePhoto"`
	DeletePhoto bool
}

type ObservationList struct {
	Count        int           `json:"count"`
	Observations []Observation `json:"observations"`
}

type CreateObservationResponse struct {
	Message       string       `json:"message"`
	ObservationID int64        `json:"observationId"`
	Observation   *Observation `json:"observation"`
}

// Empty reports whether the patch changes nothing.
func (p ObservationPatch) Empty() bool {
	return p.Observation == nil && p.Time == nil && p.Comments == nil && p.Type == nil &&
		p.Latitude == nil && p.Longitude == nil && p.Photo == nil && !p.DeletePhoto
}
