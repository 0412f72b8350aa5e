package client

import (
	"context"

	"github.com/dmitrijs2005/hikelog/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Profile(ctx context.Context) (*models.User, error)
	PublicProfile(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.MessageResponse, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error)

	CreateHike(ctx context.Context, in models.HikeInput) (*models.CreateHikeResponse, error)
	ListHikes(ctx context.Context) (*models.HikeList, error)
	ListAllHikes(ctx context.Context, f models.HikeFilter) (*models.HikeList, error)
	GetHike(ctx context.Context, id int64) (*models.Hike, error)
	UpdateHike(ctx context.Context, id int64, p models.HikePatch) (*models.MessageResponse, error)
	DeleteHike(ctx context.Context, id int64) (*models.MessageResponse, error)
	SearchHikes(ctx context.Context, name string) (*models.HikeList, error)
	SearchAllHikes(ctx context.Context, name string) (*models.HikeList, error)

	CreateObservation(ctx context.Context, hikeID int64, in models.ObservationInput) (*models.CreateObservationResponse, error)
	ListObservations(ctx context.Context, hikeID int64) (*models.ObservationList, error)
	GetObservation(ctx context.Context, id int64) (*models.Observation, error)
	UpdateObservation(ctx context.Context, id int64, p models.ObservationPatch) (*models.MessageResponse, error)
	DeleteObservation(ctx context.Context, id int64) (*models.MessageResponse, error)
}
