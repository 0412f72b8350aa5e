package fakeapi

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/dmitrijs2005/hikelog/internal/client/models"
	"github.com/gin-gonic/gin"
)

// formFloat reads an optional numeric form field.
func formFloat(c *gin.Context, name string) (*float64, bool) {
	raw, present := c.GetPostForm(name)
	if !present || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		invalid(c, field(name, "Must be a number"))
		return nil, false
	}
	return &v, true
}

func (s *Server) createObservation(c *gin.Context) {
	hikeID, ok := paramID(c)
	if !ok {
		return
	}
	text := c.PostForm("observation")
	if text == "" {
		invalid(c, field("observation", "Observation is required"))
		return
	}
	lat, ok := formFloat(c, "latitude")
	if !ok {
		return
	}
	lon, ok := formFloat(c, "longitude")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ownedHike(c, hikeID); !ok {
		return
	}
	o := &models.Observation{
		ID:          s.id(),
		HikeID:      hikeID,
		Observation: text,
		Time:        c.PostForm("time"),
		Comments:    c.PostForm("comments"),
		Type:        c.PostForm("type"),
		Latitude:    lat,
		Longitude:   lon,
		PhotoPath:   upload(c, "photo"),
		CreatedAt:   s.timestamp(),
	}
	s.observations[o.ID] = o
	c.JSON(http.StatusCreated, gin.H{"message": "Observation added successfully", "observationId": o.ID, "observation": o})
}

func (s *Server) listObservations(c *gin.Context) {
	hikeID, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.hikes[hikeID]; !exists {
		abort(c, http.StatusNotFound, "Hike not found")
		return
	}
	out := []models.Observation{}
	for _, o := range s.observations {
		if o.HikeID == hikeID {
			out = append(out, *o)
		}
	}
	slices.SortFunc(out, func(a, b models.Observation) int { return int(a.ID - b.ID) })
	c.JSON(http.StatusOK, models.ObservationList{Count: len(out), Observations: out})
}

func (s *Server) getObservation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, exists := s.observations[id]
	if !exists {
		abort(c, http.StatusNotFound, "Observation not found")
		return
	}
	c.JSON(http.StatusOK, o)
}

// ownedObservation looks up an observation on one of the caller's hikes.
// s.mu must be held.
func (s *Server) ownedObservation(c *gin.Context, id int64) (*models.Observation, bool) {
	o, exists := s.observations[id]
	if !exists {
		abort(c, http.StatusNotFound, "Observation not found")
		return nil, false
	}
	if _, ok := s.ownedHike(c, o.HikeID); !ok {
		return nil, false
	}
	return o, true
}

func (s *Server) updateObservation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	lat, ok := formFloat(c, "latitude")
	if !ok {
		return
	}
	lon, ok := formFloat(c, "longitude")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.ownedObservation(c, id)
	if !ok {
		return
	}
	for name, dst := range map[string]*string{
		"observation": &o.Observation,
		"time":        &o.Time,
		"comments":    &o.Comments,
		"type":        &o.Type,
	} {
		if v, present := c.GetPostForm(name); present {
			*dst = v
		}
	}
	if lat != nil {
		o.Latitude = lat
	}
	if lon != nil {
		o.Longitude = lon
	}
	if c.PostForm("deletePhoto") == "true" {
		o.PhotoPath = ""
	}
	if p := upload(c, "photo"); p != "" {
		o.PhotoPath = p
	}
	c.JSON(http.StatusOK, gin.H{"message": "Observation updated successfully"})
}

func (s *Server) deleteObservation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ownedObservation(c, id); !ok {
		return
	}
	delete(s.observations, id)
	c.JSON(http.StatusOK, gin.H{"message": "Observation deleted successfully"})
}
