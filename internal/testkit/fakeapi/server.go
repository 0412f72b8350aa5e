// Package fakeapi is an in-memory hikelog backend for tests. It serves the
// REST routes under /api with the same response and error shapes as the real
// service, and signs HS256 JWTs so clients can exercise expiry and 401
// handling end to end.
package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/dmitrijs2005/hikelog/internal/client/models"
	"github.com/gin-gonic/gin"
)

const (
	DefaultSecret   = "fakeapi-secret"
	DefaultTokenTTL = 24 * time.Hour
)

// Recorded is one request as seen by the server.
type Recorded struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

type account struct {
	models.User
	password string
}

type Server struct {
	mu sync.Mutex

	secret []byte
	ttl    time.Duration
	now    func() time.Time

	nextID       int64
	users        map[int64]*account
	hikes        map[int64]*models.Hike
	observations map[int64]*models.Observation
	requests     []Recorded

	engine *gin.Engine
}

type Option func(*Server)

func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.ttl = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(opts ...Option) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		secret:       []byte(DefaultSecret),
		ttl:          DefaultTokenTTL,
		now:          time.Now,
		users:        map[int64]*account{},
		hikes:        map[int64]*models.Hike{},
		observations: map[int64]*models.Observation{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.record)
	s.routes(s.engine.Group("/api"))
	return s
}

// Start serves s on a local port. The returned base URL includes /api.
func (s *Server) Start() (*httptest.Server, string) {
	srv := httptest.NewServer(s.engine)
	return srv, srv.URL + "/api"
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)
	auth.GET("/users/:username", s.publicProfile)
	auth.GET("/profile", s.authenticate, s.profile)
	auth.PUT("/profile", s.authenticate, s.updateProfile)
	auth.POST("/change-password", s.authenticate, s.changePassword)

	hikes := api.Group("/hikes", s.authenticate)
	hikes.POST("", s.createHike)
	hikes.GET("", s.listHikes)
	hikes.GET("/all", s.listAllHikes)
	hikes.GET("/search/name", s.searchHikes)
	hikes.GET("/search/all/name", s.searchAllHikes)
	hikes.GET("/:id", s.getHike)
	hikes.PUT("/:id", s.updateHike)
	hikes.DELETE("/:id", s.deleteHike)

	hikes.POST("/:id/observations", s.createObservation)
	hikes.GET("/:id/observations", s.listObservations)
	hikes.GET("/observations/:id", s.getObservation)
	hikes.PUT("/observations/:id", s.updateObservation)
	hikes.DELETE("/observations/:id", s.deleteObservation)
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, Recorded{
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		Authorization: c.GetHeader("Authorization"),
		RequestID:     c.GetHeader("X-Request-ID"),
	})
	s.mu.Unlock()
	c.Next()
}

// Requests returns a copy of every request served so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// SeedUser creates an account directly.
func (s *Server) SeedUser(username, email, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUser(username, email, "", password).User
}

// RotateSecret invalidates every token issued so far.
func (s *Server) RotateSecret(secret string) {
	s.mu.Lock()
	s.secret = []byte(secret)
	s.mu.Unlock()
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Server) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func (s *Server) addUser(username, email, phone, password string) *account {
	a := &account{
		User: models.User{
			ID:        s.id(),
			Username:  username,
			Email:     email,
			Phone:     phone,
			CreatedAt: s.timestamp(),
		},
		password: password,
	}
	s.users[a.ID] = a
	return a
}

func (s *Server) findUser(match func(*account) bool) *account {
	for _, a := range s.users {
		if match(a) {
			return a
		}
	}
	return nil
}
