// Package models defines the hikelog client data model: the signed-in user,
// hikes, observations, request payloads and the response envelopes returned
// by the backend.
package models

// User is the profile of a hikelog account. Phone and AvatarPath are
// optional.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	AvatarPath string `json:"avatarPath,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,phone"`
	Avatar   *File  `json:"-"`
}

// LoginRequest identifies the account by email or by username.
type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required_without=Username,omitempty,email"`
	Username string `json:"username,omitempty" validate:"required_without=Email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest changes only the fields that are set.
type UpdateProfileRequest struct {
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  string `json:"phone,omitempty" validate:"omitempty,phone"`
	Avatar *File  `json:"-"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=128,nefield=OldPassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
