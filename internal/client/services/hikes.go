package services

import (
	"context"

	"github.com/dmitrijs2005/hikelog/internal/client/client"
	"github.com/dmitrijs2005/hikelog/internal/client/models"
	"github.com/dmitrijs2005/hikelog/internal/client/validate"
)

type HikeService interface {
	Create(ctx context.Context, in models.HikeInput) (*models.Hike, error)
	List(ctx context.Context) (*models.HikeList, error)
	ListAll(ctx context.Context, f models.HikeFilter) (*models.HikeList, error)
	Get(ctx context.Context, id int64) (*models.Hike, error)
	Update(ctx context.Context, id int64, p models.HikePatch) (string, error)
	Delete(ctx context.Context, id int64) (string, error)
	Search(ctx context.Context, name string) (*models.HikeList, error)
	SearchAll(ctx context.Context, name string) (*models.HikeList, error)
}

type hikeService struct {
	client client.Client
}

func NewHikeService(client client.Client) HikeService {
	return &hikeService{client: client}
}

// Create returns the stored hike, falling back to the input echoed with the
// new id when the backend omits it.
func (s *hikeService) Create(ctx context.Context, in models.HikeInput) (*models.Hike, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	resp, err := s.client.CreateHike(ctx, in)
	if err != nil {
		return nil, err
	}
	if resp.Hike != nil {
		return resp.Hike, nil
	}
	return &models.Hike{
		ID:                resp.HikeID,
		Name:              in.Name,
		Location:          in.Location,
		Date:              in.Date,
		ParkingAvailable:  in.ParkingAvailable,
		Length:            in.Length,
		Difficulty:        in.Difficulty,
		Description:       in.Description,
		EstimatedDuration: in.EstimatedDuration,
		ElevationGain:     in.ElevationGain,
	}, nil
}

func (s *hikeService) List(ctx context.Context) (*models.HikeList, error) {
	return s.client.ListHikes(ctx)
}

func (s *hikeService) ListAll(ctx context.Context, f models.HikeFilter) (*models.HikeList, error) {
	if err := validate.Struct(f); err != nil {
		return nil, err
	}
	return s.client.ListAllHikes(ctx, f)
}

func (s *hikeService) Get(ctx context.Context, id int64) (*models.Hike, error) {
	if err := validate.Struct(idParam{ID: id}); err != nil {
		return nil, err
	}
	return s.client.GetHike(ctx, id)
}

func (s *hikeService) Update(ctx context.Context, id int64, p models.HikePatch) (string, error) {
	if err := validate.Struct(idParam{ID: id}); err != nil {
		return "", err
	}
	if p.Empty() {
		return "", nothingToUpdate()
	}
	if err := validate.Struct(p); err != nil {
		return "", err
	}
	resp, err := s.client.UpdateHike(ctx, id, p)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (s *hikeService) Delete(ctx context.Context, id int64) (string, error) {
	if err := validate.Struct(idParam{ID: id}); err != nil {
		return "", err
	}
	resp, err := s.client.DeleteHike(ctx, id)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (s *hikeService) Search(ctx context.Context, name string) (*models.HikeList, error) {
	if err := validate.Struct(nameParam{Name: name}); err != nil {
		return nil, err
	}
	return s.client.SearchHikes(ctx, name)
}

func (s *hikeService) SearchAll(ctx context.Context, name string) (*models.HikeList, error) {
	if err := validate.Struct(nameParam{Name: name}); err != nil {
		return nil, err
	}
	return s.client.SearchAllHikes(ctx, name)
}
