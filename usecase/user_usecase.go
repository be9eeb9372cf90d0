package usecase

import (
	"context"
	"strings"
	"time"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/utils"
)

// TokenConfig holds the signing keys and lifetimes of issued tokens.
type TokenConfig struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

type IUserUsecase interface {
	Register(ctx context.Context, in dto.RegisterInput) (*model.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, actorID string, claims *model.UserClaims) error
	RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	ChangePassword(ctx context.Context, actorID string, req dto.ChangePasswordRequest) error
	GetCurrentUser(ctx context.Context, actorID string) (*model.User, error)
	UpdateAccountDetails(ctx context.Context, actorID string, req dto.UpdateAccountRequest) (*model.User, error)
	UpdateAvatar(ctx context.Context, actorID, localPath string) (*model.User, CleanupReport, error)
	UpdateCoverImage(ctx context.Context, actorID, localPath string) (*model.User, CleanupReport, error)
	GetUserChannelProfile(ctx context.Context, username, viewerID string) (*model.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, actorID string) ([]model.VideoView, error)
}

type userUsecase struct {
	users    repository.IUser
	assets   repository.IAssetStore
	denylist repository.ITokenDenylist
	events   repository.IEventPublisher
	tokens   TokenConfig
	cleaner  assetCleaner
}

// NewUserUsecase builds the account flows. denylist may be nil, in which case
// logout only clears the refresh token.
func NewUserUsecase(
	users repository.IUser,
	assets repository.IAssetStore,
	denylist repository.ITokenDenylist,
	events repository.IEventPublisher,
	tokens TokenConfig,
) IUserUsecase {
	return &userUsecase{
		users:    users,
		assets:   assets,
		denylist: denylist,
		events:   events,
		tokens:   tokens,
		cleaner:  assetCleaner{assets: assets, events: events},
	}
}

func (u *userUsecase) Register(ctx context.Context, in dto.RegisterInput) (*model.User, error) {
	fullname := strings.TrimSpace(in.Fullname)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if fullname == "" || email == "" || username == "" || strings.TrimSpace(in.Password) == "" {
		return nil, apperror.NewInvalidInput("All fields are required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperror.NewInvalidInput("Email is invalid")
	}

	existing, err := u.users.FindByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil && existing.Email == email:
		return nil, apperror.NewConflict("User with email already exists")
	case err == nil:
		return nil, apperror.NewConflict("User with username already exists")
	case !apperror.Is(err, apperror.NotFound):
		return nil, err
	}

	if in.AvatarPath == "" {
		return nil, apperror.NewInvalidInput("Avatar file is required")
	}
	avatar, err := u.assets.Upload(ctx, in.AvatarPath)
	if err != nil {
		return nil, apperror.NewUpstream("Failed to upload avatar", err)
	}
	var cover string
	if in.CoverImagePath != "" {
		cover, err = u.assets.Upload(ctx, in.CoverImagePath)
		if err != nil {
			u.cleaner.cleanup(ctx, "cover upload failed", avatar)
			return nil, apperror.NewUpstream("Failed to upload cover image", err)
		}
	}

	// Hashed as typed; Login and ChangePassword compare the raw input too.
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		u.cleaner.cleanup(ctx, "password hashing failed", avatar, cover)
		return nil, apperror.NewInternal("Something went wrong while registering the user", err)
	}
	user := &model.User{
		Username:   username,
		Email:      email,
		Fullname:   fullname,
		Avatar:     avatar,
		CoverImage: cover,
		Password:   hash,
	}
	if err := u.users.Create(ctx, user); err != nil {
		u.cleaner.cleanup(ctx, "user not created", avatar, cover)
		return nil, err
	}

	notify(ctx, u.events, model.NewEvent(model.EventUserRegistered, map[string]interface{}{
		"userId":   user.ID.Hex(),
		"username": user.Username,
	}))
	return user, nil
}

func (u *userUsecase) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" && email == "" {
		return nil, apperror.NewInvalidInput("Username or email is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, apperror.NewInvalidInput("Password is required")
	}

	user, err := u.users.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if apperror.Is(err, apperror.NotFound) {
			return nil, apperror.NewUnauthorized("Invalid user credentials")
		}
		return nil, err
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		return nil, apperror.NewUnauthorized("Invalid user credentials")
	}

	pair, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	logger.GetLogger().WithField("userId", user.ID.Hex()).Info("User logged in")
	return &dto.AuthResponse{User: user, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Logout clears the stored refresh token and, when a denylist is configured,
// revokes the presented access token for the rest of its lifetime.
func (u *userUsecase) Logout(ctx context.Context, actorID string, claims *model.UserClaims) error {
	actor, err := parseActor(actorID)
	if err != nil {
		return err
	}
	if err := u.users.SetRefreshToken(ctx, actor, ""); err != nil {
		return err
	}
	if u.denylist == nil || claims == nil || claims.Id == "" {
		return nil
	}
	if ttl := utils.Remaining(claims); ttl > 0 {
		if err := u.denylist.Revoke(ctx, claims.Id, ttl); err != nil {
			logger.GetLogger().WithFields(map[string]interface{}{"error": err, "userId": actorID}).Warn("Failed to revoke access token")
		}
	}
	return nil
}

func (u *userUsecase) RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	if refreshToken == "" {
		return nil, apperror.NewUnauthorized("Unauthorized request")
	}
	claims, err := utils.ParseToken(refreshToken, u.tokens.RefreshSecret)
	if err != nil {
		return nil, apperror.Wrap(apperror.Unauthorized, "Invalid refresh token", err)
	}
	actor, err := parseActor(claims.Subject)
	if err != nil {
		return nil, err
	}
	user, err := u.users.FindByID(ctx, actor)
	if err != nil {
		if apperror.Is(err, apperror.NotFound) {
			return nil, apperror.NewUnauthorized("Invalid refresh token")
		}
		return nil, err
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, apperror.NewUnauthorized("Refresh token is expired or used")
	}
	return u.issueTokens(ctx, user)
}

func (u *userUsecase) ChangePassword(ctx context.Context, actorID string, req dto.ChangePasswordRequest) error {
	actor, err := parseActor(actorID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.OldPassword) == "" || strings.TrimSpace(req.NewPassword) == "" {
		return apperror.NewInvalidInput("Old and new password are required")
	}
	if req.OldPassword == req.NewPassword {
		return apperror.NewInvalidInput("New password must differ from the old one")
	}
	user, err := u.users.FindByID(ctx, actor)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(user.Password, req.OldPassword) {
		return apperror.NewInvalidInput("Invalid old password")
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperror.NewInternal("Failed to change password", err)
	}
	_, err = u.users.Update(ctx, actor, map[string]interface{}{"password": hash})
	return err
}

func (u *userUsecase) GetCurrentUser(ctx context.Context, actorID string) (*model.User, error) {
	actor, err := parseActor(actorID)
	if err != nil {
		return nil, err
	}
	return u.users.FindByID(ctx, actor)
}

func (u *userUsecase) UpdateAccountDetails(ctx context.Context, actorID string, req dto.UpdateAccountRequest) (*model.User, error) {
	actor, err := parseActor(actorID)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if v := strings.TrimSpace(req.Fullname); v != "" {
		fields["fullname"] = v
	}
	if v := strings.ToLower(strings.TrimSpace(req.Username)); v != "" {
		fields["username"] = v
	}
	if v := strings.ToLower(strings.TrimSpace(req.Email)); v != "" {
		if !strings.Contains(v, "@") {
			return nil, apperror.NewInvalidInput("Email is invalid")
		}
		fields["email"] = v
	}
	if len(fields) == 0 {
		return nil, apperror.NewInvalidInput("Provide fullname, username or email to update")
	}
	return u.users.Update(ctx, actor, fields)
}

func (u *userUsecase) UpdateAvatar(ctx context.Context, actorID, localPath string) (*model.User, CleanupReport, error) {
	return u.replaceImage(ctx, actorID, localPath, "avatar", func(user *model.User) string { return user.Avatar })
}

func (u *userUsecase) UpdateCoverImage(ctx context.Context, actorID, localPath string) (*model.User, CleanupReport, error) {
	return u.replaceImage(ctx, actorID, localPath, "coverImage", func(user *model.User) string { return user.CoverImage })
}

func (u *userUsecase) GetUserChannelProfile(ctx context.Context, username, viewerID string) (*model.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperror.NewInvalidInput("Username is missing")
	}
	return u.users.ChannelProfile(ctx, username, parseViewer(viewerID))
}

func (u *userUsecase) GetWatchHistory(ctx context.Context, actorID string) ([]model.VideoView, error) {
	actor, err := parseActor(actorID)
	if err != nil {
		return nil, err
	}
	videos, err := u.users.WatchHistory(ctx, actor)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []model.VideoView{}
	}
	return videos, nil
}

// replaceImage uploads the new file, persists its URL under field, then
// deletes the previous asset on a best-effort basis.
func (u *userUsecase) replaceImage(
	ctx context.Context,
	actorID, localPath, field string,
	current func(*model.User) string,
) (*model.User, CleanupReport, error) {
	var report CleanupReport
	actor, err := parseActor(actorID)
	if err != nil {
		return nil, report, err
	}
	if localPath == "" {
		return nil, report, apperror.NewInvalidInput("File is missing")
	}
	user, err := u.users.FindByID(ctx, actor)
	if err != nil {
		return nil, report, err
	}
	url, err := u.assets.Upload(ctx, localPath)
	if err != nil {
		return nil, report, apperror.NewUpstream("Error while uploading "+field, err)
	}
	updated, err := u.users.Update(ctx, actor, map[string]interface{}{field: url})
	if err != nil {
		u.cleaner.cleanup(ctx, field+" update failed", url)
		return nil, report, err
	}
	if old := current(user); old != "" && old != url {
		report = u.cleaner.cleanup(ctx, field+" replaced", old)
	}
	return updated, report, nil
}

func (u *userUsecase) issueTokens(ctx context.Context, user *model.User) (*dto.TokenPair, error) {
	access, _, err := utils.GenerateToken(user, u.tokens.AccessSecret, u.tokens.AccessTTL)
	if err != nil {
		return nil, apperror.NewInternal("Something went wrong while generating tokens", err)
	}
	refresh, _, err := utils.GenerateToken(user, u.tokens.RefreshSecret, u.tokens.RefreshTTL)
	if err != nil {
		return nil, apperror.NewInternal("Something went wrong while generating tokens", err)
	}
	if err := u.users.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, err
	}
	user.RefreshToken = refresh
	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
