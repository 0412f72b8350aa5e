package services

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/hikelog/internal/client/client"
	"github.com/dmitrijs2005/hikelog/internal/client/gateway"
	"github.com/dmitrijs2005/hikelog/internal/client/models"
	"github.com/dmitrijs2005/hikelog/internal/client/session"
	"github.com/dmitrijs2005/hikelog/internal/testkit/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stack struct {
	api    *fakeapi.Server
	store  *session.Store
	client *client.HTTPClient
	auth   AuthService
	hikes  HikeService
	obs    ObservationService
}

func newStack(t *testing.T) *stack {
	t.Helper()
	api := fakeapi.New()
	srv, baseURL := api.Start()
	t.Cleanup(srv.Close)

	store := newStore(t)
	c := client.NewHTTPClient(gateway.New(gateway.Config{BaseURL: baseURL, Timeout: 5 * time.Second}, store))
	return &stack{
		api:    api,
		store:  store,
		client: c,
		auth:   NewAuthService(c, store),
		hikes:  NewHikeService(c),
		obs:    NewObservationService(c),
	}
}

func TestE2E_LoginThenRequestsCarryBearer(t *testing.T) {
	ctx := context.Background()
	st := newStack(t)
	st.api.SeedUser("alice", "alice@example.com", "secret123")

	u, err := st.auth.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	sess := st.store.Session(ctx)
	require.NotEmpty(t, sess.Token)
	require.NotNil(t, sess.User)
	assert.Equal(t, "alice@example.com", sess.User.Email)
	assert.False(t, st.store.IsExpired(sess.Token))

	_, err = st.hikes.List(ctx)
	require.NoError(t, err)

	reqs := st.api.Requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, "/api/hikes", last.Path)
	assert.Equal(t, "Bearer "+sess.Token, last.Authorization)
	assert.NotEmpty(t, last.RequestID)
	assert.Empty(t, reqs[0].Authorization)
}

func TestE2E_ExpiredTokenAtStartupIsCleared(t *testing.T) {
	ctx := context.Background()
	st := newStack(t)
	bob := st.api.SeedUser("bob", "bob@example.com", "secret123")

	token, err := st.api.IssueToken(bob.ID, -10*time.Second)
	require.NoError(t, err)
	require.NoError(t, st.store.Save(ctx, token, &bob))

	_, err = st.auth.RestoreSession(ctx)
	assert.ErrorIs(t, err, ErrNotSignedIn)
	assert.Equal(t, session.Session{}, st.store.Session(ctx))
	assert.Empty(t, st.api.Requests())
}

func TestE2E_UnauthorizedClearsSession(t *testing.T) {
	ctx := context.Background()
	st := newStack(t)
	st.api.SeedUser("alice", "alice@example.com", "secret123")

	_, err := st.auth.Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.True(t, st.store.IsAuthenticated(ctx))

	st.api.RotateSecret("rotated")

	_, err = st.hikes.List(ctx)
	require.ErrorIs(t, err, gateway.ErrUnauthorized)
	assert.False(t, st.store.IsAuthenticated(ctx))
	_, ok := st.store.GetUser(ctx)
	assert.False(t, ok)

	_, err = st.hikes.List(ctx)
	gerr, ok := gateway.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Access denied. No token provided.", gerr.Message)
}

func TestE2E_RegisterAndProfile(t *testing.T) {
	ctx := context.Background()
	st := newStack(t)
	avatar := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(avatar, []byte("\x89PNG\r\n\x1a\n0000"), 0o600))

	u, err := st.auth.Register(ctx, models.RegisterRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "secret123",
		Avatar:   &models.File{URI: "file://" + filepath.ToSlash(avatar)},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.AvatarPath)

	_, err = st.auth.Register(ctx, models.RegisterRequest{Username: "carol", Email: "carol@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, gateway.ErrApplication)
	assert.EqualError(t, err, "User already exists")

	updated, err := st.auth.UpdateProfile(ctx, models.UpdateProfileRequest{Phone: "+447700900123"})
	require.NoError(t, err)
	assert.Equal(t, "+447700900123", updated.Phone)

	pub, err := st.auth.PublicProfile(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, pub.Email)

	_, err = st.auth.PublicProfile(ctx, "nobody")
	gerr, _ := gateway.AsError(err)
	require.NotNil(t, gerr)
	assert.Equal(t, http.StatusNotFound, gerr.Status)

	_, err = st.auth.ChangePassword(ctx, models.ChangePasswordRequest{OldPassword: "wrong-one", NewPassword: "secret456", ConfirmPassword: "secret456"})
	assert.EqualError(t, err, "Current password is incorrect")
}

func TestE2E_HikesAndObservations(t *testing.T) {
	ctx := context.Background()
	st := newStack(t)
	st.api.SeedUser("alice", "alice@example.com", "secret123")
	_, err := st.auth.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	hike, err := st.hikes.Create(ctx, hikeInput())
	require.NoError(t, err)
	require.NotZero(t, hike.ID)
	assert.Equal(t, "alice", hike.Username)

	found, err := st.hikes.Search(ctx, "nevis")
	require.NoError(t, err)
	assert.Equal(t, 1, found.Count)

	all, err := st.hikes.ListAll(ctx, models.HikeFilter{Difficulty: models.DifficultyEasy})
	require.NoError(t, err)
	assert.Zero(t, all.Count)

	moderate := models.DifficultyModerate
	_, err = st.hikes.Update(ctx, hike.ID, models.HikePatch{Difficulty: &moderate})
	require.NoError(t, err)
	got, err := st.hikes.Get(ctx, hike.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DifficultyModerate, got.Difficulty)

	photo := filepath.Join(t.TempDir(), "eagle.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("\xff\xd8\xff\xe0jpeg"), 0o600))
	lat, lon := 56.7969, -5.0036
	obsID, err := st.obs.Create(ctx, hike.ID, models.ObservationInput{
		Observation: "Golden eagle",
		Comments:    "A pair, circling",
		Latitude:    &lat,
		Longitude:   &lon,
		Photo:       &models.File{URI: photo},
	})
	require.NoError(t, err)

	obs, err := st.obs.Get(ctx, obsID)
	require.NoError(t, err)
	assert.NotEmpty(t, obs.PhotoPath)
	require.NotNil(t, obs.Latitude)
	assert.Equal(t, lat, *obs.Latitude)

	assert.Equal(t, "A pair, circling", obs.Comments)

	cleared := ""
	_, err = st.obs.Update(ctx, obsID, models.ObservationPatch{DeletePhoto: true, Comments: &cleared})
	require.NoError(t, err)
	obs, err = st.obs.Get(ctx, obsID)
	require.NoError(t, err)
	assert.Empty(t, obs.PhotoPath)
	assert.Empty(t, obs.Comments)
	assert.Equal(t, "Golden eagle", obs.Observation)

	list, err := st.obs.List(ctx, hike.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)

	_, err = st.hikes.Delete(ctx, hike.ID)
	require.NoError(t, err)
	_, err = st.obs.Get(ctx, obsID)
	assert.EqualError(t, err, "Observation not found")
	_, err = st.hikes.Get(ctx, hike.ID)
	assert.EqualError(t, err, "Hike not found")
}

func TestE2E_BackendValidationShapePassesThrough(t *testing.T) {
	ctx := context.Background()
	st := newStack(t)
	st.api.SeedUser("alice", "alice@example.com", "secret123")
	_, err := st.auth.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	// straight to the client so local validation does not run
	_, err = st.client.CreateHike(ctx, models.HikeInput{Location: "Skye"})
	require.ErrorIs(t, err, gateway.ErrValidation)

	gerr, _ := gateway.AsError(err)
	fields := map[string]string{}
	for _, f := range gerr.Fields {
		fields[f.Field] = f.Msg
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "difficulty")
	assert.True(t, st.store.IsAuthenticated(ctx))
}
