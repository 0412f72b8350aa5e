package fakeapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "userId"

var errInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"userId"`
}

// IssueToken signs a token for userID that expires after ttl; a negative
// ttl yields an already expired token.
func (s *Server) IssueToken(userID int64, ttl time.Duration) (string, error) {
	s.mu.Lock()
	secret, now := s.secret, s.now()
	s.mu.Unlock()
	return issue(userID, secret, now, ttl)
}

func issue(userID int64, secret []byte, now time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(secret)
}

func (s *Server) userIDFromToken(tokenString string) (int64, error) {
	s.mu.Lock()
	secret, now := s.secret, s.now
	s.mu.Unlock()

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(now))
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errInvalidToken
	}
	return claims.UserID, nil
}

// authenticate rejects requests without a valid bearer token.
func (s *Server) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		abort(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	userID, err := s.userIDFromToken(tokenString)
	if err != nil {
		abort(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	s.mu.Lock()
	_, exists := s.users[userID]
	s.mu.Unlock()
	if !exists {
		abort(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
