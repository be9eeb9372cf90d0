package dto

import "vidtube/domain/model"

// RegisterRequest is bound from multipart form fields; files travel separately.
type RegisterRequest struct {
	Fullname string `form:"fullname"`
	Email    string `form:"email"`
	Username string `form:"username"`
	Password string `form:"password"`
}

type RegisterInput struct {
	RegisterRequest
	AvatarPath     string
	CoverImagePath string
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdateAccountRequest updates only the fields that are non-empty.
type UpdateAccountRequest struct {
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
