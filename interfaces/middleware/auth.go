package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/utils"
)

const (
	UserIDKey         = "user_id"
	ClaimsKey         = "claims"
	AccessTokenCookie = "accessToken"
)

// Auth rejects requests without a valid, unrevoked access token whose
// subject still exists. denylist may be nil.
func Auth(secretKey string, users repository.IUser, denylist repository.ITokenDenylist) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := authenticate(ctx, secretKey, users, denylist)
		if err != nil {
			res := dto.Res{Status: http.StatusUnauthorized, Message: apperror.PublicMessage(err)}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}
		ctx.Set(UserIDKey, claims.Subject)
		ctx.Set(ClaimsKey, claims)
		ctx.Next()
	}
}

// OptionalAuth resolves the principal when a valid token is presented and
// lets the request through anonymously otherwise.
func OptionalAuth(secretKey string, users repository.IUser, denylist repository.ITokenDenylist) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if bearerToken(ctx) == "" {
			ctx.Next()
			return
		}
		if claims, err := authenticate(ctx, secretKey, users, denylist); err == nil {
			ctx.Set(UserIDKey, claims.Subject)
			ctx.Set(ClaimsKey, claims)
		}
		ctx.Next()
	}
}

// UserID returns the authenticated principal, or empty for anonymous calls.
func UserID(ctx *gin.Context) string {
	return ctx.GetString(UserIDKey)
}

func Claims(ctx *gin.Context) *model.UserClaims {
	v, ok := ctx.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*model.UserClaims)
	return claims
}

func authenticate(ctx *gin.Context, secretKey string, users repository.IUser, denylist repository.ITokenDenylist) (*model.UserClaims, error) {
	token := bearerToken(ctx)
	if token == "" {
		return nil, apperror.NewUnauthorized("Unauthorized request")
	}
	claims, err := utils.ParseToken(token, secretKey)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrTokenMalformed), errors.Is(err, utils.ErrTokenExpired):
			return nil, apperror.Wrap(apperror.Unauthorized, err.Error(), err)
		}
		return nil, apperror.Wrap(apperror.Unauthorized, "Invalid access token", err)
	}

	if denylist != nil && claims.Id != "" {
		revoked, err := denylist.IsRevoked(ctx.Request.Context(), claims.Id)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Token denylist unavailable")
		} else if revoked {
			return nil, apperror.NewUnauthorized("Token has been revoked")
		}
	}

	id, ok := utils.ParseObjectID(claims.Subject)
	if !ok {
		return nil, apperror.NewUnauthorized("Invalid access token")
	}
	if users != nil {
		if _, err := users.FindByID(ctx.Request.Context(), id); err != nil {
			logger.GetLogger().WithField("userId", claims.Subject).Info("Token subject not found")
			return nil, apperror.NewUnauthorized("Invalid access token")
		}
	}
	return claims, nil
}

// bearerToken reads the access token from the Authorization header, falling
// back to the cookie. An explicit header wins over a stale browser cookie.
func bearerToken(ctx *gin.Context) string {
	authorization := ctx.GetHeader("Authorization")
	if token, found := strings.CutPrefix(authorization, "Bearer "); found {
		if token = strings.TrimSpace(token); token != "" {
			return token
		}
	}
	if cookie, err := ctx.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	return ""
}
