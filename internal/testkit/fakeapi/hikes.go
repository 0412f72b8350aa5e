package fakeapi

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/hikelog/internal/client/models"
	"github.com/gin-gonic/gin"
)

type hikeBody struct {
	Name              string  `json:"name" binding:"required"`
	Location          string  `json:"location" binding:"required"`
	Date              string  `json:"date" binding:"required"`
	ParkingAvailable  bool    `json:"parkingAvailable"`
	Length            float64 `json:"length" binding:"required,gt=0"`
	Difficulty        string  `json:"difficulty" binding:"required,oneof=easy moderate hard"`
	Description       string  `json:"description"`
	EstimatedDuration string  `json:"estimatedDuration"`
	ElevationGain     float64 `json:"elevationGain"`
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abort(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func (s *Server) createHike(c *gin.Context) {
	var body hikeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	owner := s.users[currentUserID(c)]
	ts := s.timestamp()
	h := &models.Hike{
		ID:                s.id(),
		UserID:            owner.ID,
		Username:          owner.Username,
		Name:              body.Name,
		Location:          body.Location,
		Date:              body.Date,
		ParkingAvailable:  body.ParkingAvailable,
		Length:            body.Length,
		Difficulty:        body.Difficulty,
		Description:       body.Description,
		EstimatedDuration: body.EstimatedDuration,
		ElevationGain:     body.ElevationGain,
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}
	s.hikes[h.ID] = h
	c.JSON(http.StatusCreated, gin.H{"message": "Hike created successfully", "hikeId": h.ID, "hike": h})
}

// selectHikes returns copies of the matching hikes ordered by id.
func (s *Server) selectHikes(match func(*models.Hike) bool) models.HikeList {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Hike{}
	for _, h := range s.hikes {
		if match(h) {
			out = append(out, *h)
		}
	}
	slices.SortFunc(out, func(a, b models.Hike) int { return int(a.ID - b.ID) })
	return models.HikeList{Count: len(out), Hikes: out}
}

func (s *Server) listHikes(c *gin.Context) {
	uid := currentUserID(c)
	c.JSON(http.StatusOK, s.selectHikes(func(h *models.Hike) bool { return h.UserID == uid }))
}

func (s *Server) listAllHikes(c *gin.Context) {
	name := strings.ToLower(c.Query("name"))
	location := strings.ToLower(c.Query("location"))
	difficulty := c.Query("difficulty")
	date := c.Query("date")
	minLength, _ := strconv.ParseFloat(c.Query("minLength"), 64)
	maxLength, _ := strconv.ParseFloat(c.Query("maxLength"), 64)

	c.JSON(http.StatusOK, s.selectHikes(func(h *models.Hike) bool {
		switch {
		case name != "" && !strings.Contains(strings.ToLower(h.Name), name):
			return false
		case location != "" && !strings.Contains(strings.ToLower(h.Location), location):
			return false
		case difficulty != "" && h.Difficulty != difficulty:
			return false
		case date != "" && h.Date != date:
			return false
		case minLength > 0 && h.Length < minLength:
			return false
		case maxLength > 0 && h.Length > maxLength:
			return false
		}
		return true
	}))
}

func (s *Server) search(c *gin.Context, ownOnly bool) {
	name := strings.ToLower(c.Query("name"))
	if name == "" {
		abort(c, http.StatusBadRequest, "Name query parameter is required")
		return
	}
	uid := currentUserID(c)
	c.JSON(http.StatusOK, s.selectHikes(func(h *models.Hike) bool {
		return (!ownOnly || h.UserID == uid) && strings.Contains(strings.ToLower(h.Name), name)
	}))
}

func (s *Server) searchHikes(c *gin.Context)    { s.search(c, true) }
func (s *Server) searchAllHikes(c *gin.Context) { s.search(c, false) }

func (s *Server) getHike(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h, exists := s.hikes[id]
	if !exists {
		abort(c, http.StatusNotFound, "Hike not found")
		return
	}
	c.JSON(http.StatusOK, h)
}

// ownedHike looks up a hike the caller may modify. s.mu must be held.
func (s *Server) ownedHike(c *gin.Context, id int64) (*models.Hike, bool) {
	h, exists := s.hikes[id]
	if !exists {
		abort(c, http.StatusNotFound, "Hike not found")
		return nil, false
	}
	if h.UserID != currentUserID(c) {
		abort(c, http.StatusForbidden, "Not authorized to modify this hike")
		return nil, false
	}
	return h, true
}

func (s *Server) updateHike(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var p models.HikePatch
	if err := c.ShouldBindJSON(&p); err != nil {
		bindError(c, err)
		return
	}
	if p.Difficulty != nil && !slices.Contains([]string{"easy", "moderate", "hard"}, *p.Difficulty) {
		invalid(c, field("difficulty", "Difficulty must be easy, moderate or hard"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.ownedHike(c, id)
	if !ok {
		return
	}
	set(&h.Name, p.Name)
	set(&h.Location, p.Location)
	set(&h.Date, p.Date)
	set(&h.ParkingAvailable, p.ParkingAvailable)
	set(&h.Length, p.Length)
	set(&h.Difficulty, p.Difficulty)
	set(&h.Description, p.Description)
	set(&h.EstimatedDuration, p.EstimatedDuration)
	set(&h.ElevationGain, p.ElevationGain)
	h.UpdatedAt = s.timestamp()
	c.JSON(http.StatusOK, gin.H{"message": "Hike updated successfully"})
}

func (s *Server) deleteHike(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ownedHike(c, id); !ok {
		return
	}
	delete(s.hikes, id)
	for oid, o := range s.observations {
		if o.HikeID == id {
			delete(s.observations, oid)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hike deleted successfully"})
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
