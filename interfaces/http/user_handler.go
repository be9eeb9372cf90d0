package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/infrastructure/logger"
	"vidtube/interfaces/middleware"
	"vidtube/usecase"
)

const refreshTokenCookie = "refreshToken"

type IUserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	RefreshAccessToken(c *gin.Context)
	ChangePassword(c *gin.Context)
	GetCurrentUser(c *gin.Context)
	UpdateAccountDetails(c *gin.Context)
	UpdateAvatar(c *gin.Context)
	UpdateCoverImage(c *gin.Context)
	GetUserChannelProfile(c *gin.Context)
	GetWatchHistory(c *gin.Context)
}

// CookieConfig controls the auth cookies set on login and refresh.
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type UserHandler struct {
	userUsecase usecase.IUserUsecase
	uploadDir   string
	cookies     CookieConfig
}

func NewUserHandler(userUsecase usecase.IUserUsecase, uploadDir string, cookies CookieConfig) IUserHandler {
	return &UserHandler{userUsecase: userUsecase, uploadDir: uploadDir, cookies: cookies}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		respond(c, http.StatusBadRequest, nil, "Invalid registration form")
		return
	}

	files := newUploads(h.uploadDir)
	defer files.cleanup()
	avatar, err := files.save(c, "avatar")
	if err != nil {
		respondError(c, err)
		return
	}
	cover, err := files.save(c, "coverImage")
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userUsecase.Register(c.Request.Context(), dto.RegisterInput{
		RegisterRequest: req,
		AvatarPath:      avatar,
		CoverImagePath:  cover,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, user, "User registered successfully")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		respond(c, http.StatusBadRequest, nil, ErrorUnmarshal)
		return
	}
	res, err := h.userUsecase.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setAuthCookies(c, res.AccessToken, res.RefreshToken)
	respond(c, http.StatusOK, res, "User logged in successfully")
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.userUsecase.Logout(c.Request.Context(), actor(c), middleware.Claims(c)); err != nil {
		respondError(c, err)
		return
	}
	h.clearAuthCookies(c)
	respond(c, http.StatusOK, gin.H{}, "User logged out")
}

func (h *UserHandler) RefreshAccessToken(c *gin.Context) {
	token, _ := c.Cookie(refreshTokenCookie)
	if token == "" {
		var req dto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}
	pair, err := h.userUsecase.RefreshAccessToken(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setAuthCookies(c, pair.AccessToken, pair.RefreshToken)
	respond(c, http.StatusOK, pair, "Access token refreshed")
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, ErrorUnmarshal)
		return
	}
	if err := h.userUsecase.ChangePassword(c.Request.Context(), actor(c), req); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.userUsecase.GetCurrentUser(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "Current user fetched successfully")
}

func (h *UserHandler) UpdateAccountDetails(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, ErrorUnmarshal)
		return
	}
	user, err := h.userUsecase.UpdateAccountDetails(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "Account details updated successfully")
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.replaceImage(c, "avatar", h.userUsecase.UpdateAvatar, "Avatar updated successfully")
}

func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.replaceImage(c, "coverImage", h.userUsecase.UpdateCoverImage, "Cover image updated successfully")
}

func (h *UserHandler) GetUserChannelProfile(c *gin.Context) {
	profile, err := h.userUsecase.GetUserChannelProfile(c.Request.Context(), c.Param("username"), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, profile, "User channel fetched successfully")
}

func (h *UserHandler) GetWatchHistory(c *gin.Context) {
	videos, err := h.userUsecase.GetWatchHistory(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, videos, "Watch history fetched successfully")
}

func (h *UserHandler) replaceImage(
	c *gin.Context,
	field string,
	update func(ctx context.Context, actorID, localPath string) (*model.User, usecase.CleanupReport, error),
	message string,
) {
	files := newUploads(h.uploadDir)
	defer files.cleanup()
	path, err := files.save(c, field)
	if err != nil {
		respondError(c, err)
		return
	}
	user, _, err := update(c.Request.Context(), actor(c), path)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, message)
}

func (h *UserHandler) setAuthCookies(c *gin.Context, access, refresh string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, access, int(h.cookies.AccessTTL.Seconds()), "/", "", h.cookies.Secure, true)
	c.SetCookie(refreshTokenCookie, refresh, int(h.cookies.RefreshTTL.Seconds()), "/", "", h.cookies.Secure, true)
}

func (h *UserHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.cookies.Secure, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", h.cookies.Secure, true)
}
