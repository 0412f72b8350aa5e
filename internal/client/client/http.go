package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/hikelog/internal/client/gateway"
	"github.com/dmitrijs2005/hikelog/internal/client/models"
)

// Doer issues one normalized request. *gateway.Client implements it.
type Doer interface {
	Do(ctx context.Context, r *gateway.Request, out any) error
}

// HTTPClient is the REST implementation of Client.
type HTTPClient struct {
	gw Doer
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(gw Doer) *HTTPClient {
	return &HTTPClient{gw: gw}
}

func call[T any](ctx context.Context, gw Doer, r *gateway.Request) (*T, error) {
	out := new(T)
	if err := gw.Do(ctx, r, out); err != nil {
		return nil, err
	}
	return out, nil
}

// upload sends a multipart form. Errors building the body are normalized
// before anything goes on the wire.
func upload[T any](ctx context.Context, gw Doer, method, path string, f *form) (*T, error) {
	body, contentType, err := f.finish()
	if err != nil {
		return nil, gateway.Normalize(err)
	}
	return call[T](ctx, gw, &gateway.Request{Method: method, Path: path, Body: body, ContentType: contentType})
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	f := newForm()
	f.field("username", req.Username)
	f.field("email", req.Email)
	f.field("password", req.Password)
	f.field("phone", req.Phone)
	f.file("avatar", req.Avatar)
	return upload[models.AuthResponse](ctx, c.gw, http.MethodPost, "/auth/register", f)
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	return call[models.AuthResponse](ctx, c.gw, &gateway.Request{Method: http.MethodPost, Path: "/auth/login", Body: req})
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	return call[models.User](ctx, c.gw, &gateway.Request{Method: http.MethodGet, Path: "/auth/profile"})
}

func (c *HTTPClient) PublicProfile(ctx context.Context, username string) (*models.User, error) {
	return call[models.User](ctx, c.gw, &gateway.Request{Method: http.MethodGet, Path: "/auth/users/" + url.PathEscape(username)})
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.MessageResponse, error) {
	f := newForm()
	f.field("email", req.Email)
	f.field("phone", req.Phone)
	f.file("avatar", req.Avatar)
	return upload[models.MessageResponse](ctx, c.gw, http.MethodPut, "/auth/profile", f)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error) {
	return call[models.MessageResponse](ctx, c.gw, &gateway.Request{Method: http.MethodPost, Path: "/auth/change-password", Body: req})
}

func (c *HTTPClient) CreateHike(ctx context.Context, in models.HikeInput) (*models.CreateHikeResponse, error) {
	return call[models.CreateHikeResponse](ctx, c.gw, &gateway.Request{Method: http.MethodPost, Path: "/hikes", Body: in})
}

func (c *HTTPClient) ListHikes(ctx context.Context) (*models.HikeList, error) {
	return call[models.HikeList](ctx, c.gw, &gateway.Request{Method: http.MethodGet, Path: "/hikes"})
}

func (c *HTTPClient) ListAllHikes(ctx context.Context, f models.HikeFilter) (*models.HikeList, error) {
	return call[models.HikeList](ctx, c.gw, &gateway.Request{Method: http.MethodGet, Path: "/hikes/all", Query: f.Values()})
}

func (c *HTTPClient) GetHike(ctx context.Context, hikeID int64) (*models.Hike, error) {
	return call[models.Hike](ctx, c.gw, &gateway.Request{Method: http.MethodGet, Path: "/hikes/" + id(hikeID)})
}

func (c *HTTPClient) UpdateHike(ctx context.Context, hikeID int64, p models.HikePatch) (*models.MessageResponse, error) {
	return call[models.MessageResponse](ctx, c.gw, &gateway.Request{Method: http.MethodPut, Path: "/hikes/" + id(hikeID), Body: p})
}

func (c *HTTPClient) DeleteHike(ctx context.Context, hikeID int64) (*models.MessageResponse, error) {
	return call[models.MessageResponse](ctx, c.gw, &gateway.Request{Method: http.MethodDelete, Path: "/hikes/" + id(hikeID)})
}

func (c *HTTPClient) SearchHikes(ctx context.Context, name string) (*models.HikeList, error) {
	return call[models.HikeList](ctx, c.gw, &gateway.Request{Method: http.MethodGet, Path: "/hikes/search/name", Query: url.Values{"name": {name}}})
}

func (c *HTTPClient) SearchAllHikes(ctx context.Context, name string) (*models.HikeList, error) {
	return call[models.HikeList](ctx, c.gw, &gateway.Request{Method: http.MethodGet, Path: "/hikes/search/all/name", Query: url.Values{"name": {name}}})
}

func (c *HTTPClient) CreateObservation(ctx context.Context, hikeID int64, in models.ObservationInput) (*models.CreateObservationResponse, error) {
	f := newForm()
	f.field("observation", in.Observation)
	f.field("time", in.Time)
	f.field("comments", in.Comments)
	f.field("type", in.Type)
	f.float("latitude", in.Latitude)
	f.float("longitude", in.Longitude)
	f.file("photo", in.Photo)
	return upload[models.CreateObservationResponse](ctx, c.gw, http.MethodPost, "/hikes/"+id(hikeID)+"/observations", f)
}

func (c *HTTPClient) ListObservations(ctx context.Context, hikeID int64) (*models.ObservationList, error) {
	return call[models.ObservationList](ctx, c.gw, &gateway.Request{Method: http.MethodGet, Path: "/hikes/" + id(hikeID) + "/observations"})
}

func (c *HTTPClient) GetObservation(ctx context.Context, obsID int64) (*models.Observation, error) {
	return call[models.Observation](ctx, c.gw, &gateway.Request{Method: http.MethodGet, Path: "/hikes/observations/" + id(obsID)})
}

func (c *HTTPClient) UpdateObservation(ctx context.Context, obsID int64, p models.ObservationPatch) (*models.MessageResponse, error) {
	f := newForm()
	f.set("observation", p.Observation)
	f.set("time", p.Time)
	f.set("comments", p.Comments)
	f.set("type", p.Type)
	f.float("latitude", p.Latitude)
	f.float("longitude", p.Longitude)
	if p.DeletePhoto {
		f.field("deletePhoto", "true")
	}
	f.file("photo", p.Photo)
	return upload[models.MessageResponse](ctx, c.gw, http.MethodPut, "/hikes/observations/"+id(obsID), f)
}

func (c *HTTPClient) DeleteObservation(ctx context.Context, obsID int64) (*models.MessageResponse, error) {
	return call[models.MessageResponse](ctx, c.gw, &gateway.Request{Method: http.MethodDelete, Path: "/hikes/observations/" + id(obsID)})
}
