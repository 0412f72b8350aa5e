package services

import (
	"context"

	"github.com/dmitrijs2005/hikelog/internal/client/client"
	"github.com/dmitrijs2005/hikelog/internal/client/models"
	"github.com/dmitrijs2005/hikelog/internal/client/validate"
)

type ObservationService interface {
	Create(ctx context.Context, hikeID int64, in models.ObservationInput) (int64, error)
	List(ctx context.Context, hikeID int64) (*models.ObservationList, error)
	Get(ctx context.Context, id int64) (*models.Observation, error)
	Update(ctx context.Context, id int64, p models.ObservationPatch) (string, error)
	Delete(ctx context.Context, id int64) (string, error)
}

type observationService struct {
	client client.Client
}

func NewObservationService(client client.Client) ObservationService {
	return &observationService{client: client}
}

// Create returns the id of the new observation.
func (s *observationService) Create(ctx context.Context, hikeID int64, in models.ObservationInput) (int64, error) {
	if err := validate.Struct(hikeIDParam{HikeID: hikeID}); err != nil {
		return 0, err
	}
	if err := validate.Struct(in); err != nil {
		return 0, err
	}
	resp, err := s.client.CreateObservation(ctx, hikeID, in)
	if err != nil {
		return 0, err
	}
	if resp.ObservationID == 0 && resp.Observation != nil {
		return resp.Observation.ID, nil
	}
	return resp.ObservationID, nil
}

func (s *observationService) List(ctx context.Context, hikeID int64) (*models.ObservationList, error) {
	if err := validate.Struct(hikeIDParam{HikeID: hikeID}); err != nil {
		return nil, err
	}
	return s.client.ListObservations(ctx, hikeID)
}

func (s *observationService) Get(ctx context.Context, id int64) (*models.Observation, error) {
	if err := validate.Struct(idParam{ID: id}); err != nil {
		return nil, err
	}
	return s.client.GetObservation(ctx, id)
}

func (s *observationService) Update(ctx context.Context, id int64, p models.ObservationPatch) (string, error) {
	if err := validate.Struct(idParam{ID: id}); err != nil {
		return "", err
	}
	if p.Empty() {
		return "", nothingToUpdate()
	}
	if err := validate.Struct(p); err != nil {
		return "", err
	}
	resp, err := s.client.UpdateObservation(ctx, id, p)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (s *observationService) Delete(ctx context.Context, id int64) (string, error) {
	if err := validate.Struct(idParam{ID: id}); err != nil {
		return "", err
	}
	resp, err := s.client.DeleteObservation(ctx, id)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
