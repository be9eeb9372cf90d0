package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"vidtube/domain/model"
	"vidtube/infrastructure/logger"
)

var (
	ErrTokenMalformed = errors.New("That's not even a token")
	ErrTokenExpired   = errors.New("Timing is everything")
	ErrTokenInvalid   = errors.New("Invalid token")
	ErrEmptySecretKey = errors.New("token secret key is empty")
)

// GenerateToken signs claims for user with an HS256 key. Every token gets a
// fresh ID so it can be revoked individually.
func GenerateToken(user *model.User, secretKey string, ttl time.Duration) (string, *model.UserClaims, error) {
	if secretKey == "" {
		return "", nil, ErrEmptySecretKey
	}
	now := GetCurrentTime()
	claims := &model.UserClaims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   user.ID.Hex(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		Username: user.Username,
		Email:    user.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while generate token")
		return "", nil, err
	}
	return tokenString, claims, nil
}

// ParseToken verifies signature and expiry and returns the claims.
func ParseToken(tokenString, secretKey string) (*model.UserClaims, error) {
	if secretKey == "" {
		return nil, ErrEmptySecretKey
	}
	var claims model.UserClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, ErrTokenMalformed
			case ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0:
				return nil, ErrTokenExpired
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}

// Remaining is how long the token stays valid from now.
func Remaining(claims *model.UserClaims) time.Duration {
	return time.Until(time.Unix(claims.ExpiresAt, 0))
}
