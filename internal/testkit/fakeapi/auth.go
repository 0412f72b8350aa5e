package fakeapi

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type loginBody struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

type changePasswordBody struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	var errs []fieldError
	if username == "" {
		errs = append(errs, field("username", "Username is required"))
	}
	if !strings.Contains(email, "@") {
		errs = append(errs, field("email", "Valid email is required"))
	}
	if len(password) < 6 {
		errs = append(errs, field("password", "Password must be at least 6 characters"))
	}
	if len(errs) > 0 {
		invalid(c, errs...)
		return
	}

	s.mu.Lock()
	if s.findUser(func(a *account) bool { return a.Username == username || a.Email == email }) != nil {
		s.mu.Unlock()
		abort(c, http.StatusBadRequest, "User already exists")
		return
	}
	a := s.addUser(username, email, c.PostForm("phone"), password)
	a.AvatarPath = upload(c, "avatar")
	user, secret, now := a.User, s.secret, s.now()
	s.mu.Unlock()

	token, err := issue(user.ID, secret, now, s.ttl)
	if err != nil {
		abort(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user, "token": token})
}

func (s *Server) login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	if body.Email == "" && body.Username == "" {
		invalid(c, field("email", "Email or username is required"))
		return
	}

	s.mu.Lock()
	a := s.findUser(func(a *account) bool {
		return (body.Email != "" && a.Email == body.Email) || (body.Username != "" && a.Username == body.Username)
	})
	if a == nil || a.password != body.Password {
		s.mu.Unlock()
		abort(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	user, secret, now := a.User, s.secret, s.now()
	s.mu.Unlock()

	token, err := issue(user.ID, secret, now, s.ttl)
	if err != nil {
		abort(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user, "token": token})
}

func (s *Server) profile(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.users[currentUserID(c)].User)
}

func (s *Server) publicProfile(c *gin.Context) {
	username := c.Param("username")

	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.findUser(func(a *account) bool { return a.Username == username })
	if a == nil {
		abort(c, http.StatusNotFound, "User not found")
		return
	}
	pub := a.User
	pub.Email, pub.Phone = "", ""
	c.JSON(http.StatusOK, pub)
}

func (s *Server) updateProfile(c *gin.Context) {
	email := c.PostForm("email")
	if email != "" && !strings.Contains(email, "@") {
		invalid(c, field("email", "Valid email is required"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.users[currentUserID(c)]
	if email != "" {
		a.Email = email
	}
	if phone := c.PostForm("phone"); phone != "" {
		a.Phone = phone
	}
	if p := upload(c, "avatar"); p != "" {
		a.AvatarPath = p
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

func (s *Server) changePassword(c *gin.Context) {
	var body changePasswordBody
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	if body.NewPassword != body.ConfirmPassword {
		invalid(c, field("confirmPassword", "Passwords do not match"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.users[currentUserID(c)]
	if a.password != body.OldPassword {
		abort(c, http.StatusBadRequest, "Current password is incorrect")
		return
	}
	a.password = body.NewPassword
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// upload stores nothing; it returns the path the backend would assign to
// the named file part, or "" when the part is absent.
func upload(c *gin.Context, name string) string {
	fh, err := c.FormFile(name)
	if err != nil {
		return ""
	}
	return path.Join("uploads", uuid.NewString()+"-"+path.Base(fh.Filename))
}
