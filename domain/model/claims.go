package model

import "github.com/golang-jwt/jwt"

// UserClaims is the JWT payload for both access and refresh tokens. The
// standard Id is the token ID used for revocation; Subject is the user ID.
type UserClaims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}
