package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/hikelog/internal/client/client"
	"github.com/dmitrijs2005/hikelog/internal/client/models"
	"github.com/dmitrijs2005/hikelog/internal/client/session"
	"github.com/dmitrijs2005/hikelog/internal/client/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "hikelog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sealer, err := storage.NewSealer(ctx, db, []byte("device-secret"))
	require.NoError(t, err)
	return session.NewStore(db, sealer, nil)
}

func tokenExpiringIn(t *testing.T, d time.Duration) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": 1,
		"exp":    time.Now().Add(d).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

var alice = &models.User{ID: 1, Username: "alice", Email: "alice@example.com"}

// fakeClient implements client.Client. Methods a test does not set panic
// through the nil embedded interface.
type fakeClient struct {
	client.Client

	calls int

	login          func(models.LoginRequest) (*models.AuthResponse, error)
	register       func(models.RegisterRequest) (*models.AuthResponse, error)
	profile        func() (*models.User, error)
	updateProfile  func(models.UpdateProfileRequest) (*models.MessageResponse, error)
	changePassword func(models.ChangePasswordRequest) (*models.MessageResponse, error)
	createHike     func(models.HikeInput) (*models.CreateHikeResponse, error)
	updateHike     func(int64, models.HikePatch) (*models.MessageResponse, error)
	deleteHike     func(int64) (*models.MessageResponse, error)
	searchHikes    func(string) (*models.HikeList, error)
	createObs      func(int64, models.ObservationInput) (*models.CreateObservationResponse, error)
	updateObs      func(int64, models.ObservationPatch) (*models.MessageResponse, error)
}

func (f *fakeClient) Login(_ context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	f.calls++
	return f.login(req)
}

func (f *fakeClient) Register(_ context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	f.calls++
	return f.register(req)
}

func (f *fakeClient) Profile(context.Context) (*models.User, error) {
	f.calls++
	return f.profile()
}

func (f *fakeClient) UpdateProfile(_ context.Context, req models.UpdateProfileRequest) (*models.MessageResponse, error) {
	f.calls++
	return f.updateProfile(req)
}

func (f *fakeClient) ChangePassword(_ context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error) {
	f.calls++
	return f.changePassword(req)
}

func (f *fakeClient) CreateHike(_ context.Context, in models.HikeInput) (*models.CreateHikeResponse, error) {
	f.calls++
	return f.createHike(in)
}

func (f *fakeClient) UpdateHike(_ context.Context, id int64, p models.HikePatch) (*models.MessageResponse, error) {
	f.calls++
	return f.updateHike(id, p)
}

func (f *fakeClient) DeleteHike(_ context.Context, id int64) (*models.MessageResponse, error) {
	f.calls++
	return f.deleteHike(id)
}

func (f *fakeClient) SearchHikes(_ context.Context, name string) (*models.HikeList, error) {
	f.calls++
	return f.searchHikes(name)
}

func (f *fakeClient) CreateObservation(_ context.Context, hikeID int64, in models.ObservationInput) (*models.CreateObservationResponse, error) {
	f.calls++
	return f.createObs(hikeID, in)
}

func (f *fakeClient) UpdateObservation(_ context.Context, id int64, p models.ObservationPatch) (*models.MessageResponse, error) {
	f.calls++
	return f.updateObs(id, p)
}
