// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec verifies identity tokens issued by the external identity provider.
//
// # Architecture
//
// Kahani does not own accounts or passwords. Users sign in with the hosted
// identity provider, which hands the browser an HS256-signed JWT. This package
// only checks that signature (plus issuer and audience) and exposes the subject
// as the engagement user id. [TokenService.IssueToken] exists for local
// development and tests, where no provider is running.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSecret is returned when token verification is attempted without a configured secret.
var ErrNoSecret = errors.New("sec: identity token secret is not configured")

// AuthClaims represents the payload of an identity provider access token.
//
// # Why custom claims?
//
// The provider embeds email and role next to the registered claims, so the
// [middleware.Authenticate] can build the request identity without a round-trip
// to the provider on every request.
type AuthClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`

	// UserID mirrors the "sub" claim after verification.
	UserID string `json:"-"`
}

// TokenService verifies (and, for development, issues) HS256 identity tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
}

// NewTokenService creates a new TokenService.
//
// # Parameters
//   - secret: The shared HS256 secret of the identity provider.
//   - issuer: Expected "iss" claim; empty disables the check.
//   - audience: Expected "aud" claim; empty disables the check.
func NewTokenService(secret, issuer, audience string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}, nil
}

// IssueToken creates a signed token for userID. Intended for development only.
func (service *TokenService) IssueToken(userID, email string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Email: email,
		Role:  "authenticated",
	}

	if service.audience != "" {
		claims.Audience = jwt.ClaimStrings{service.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if service.issuer != "" {
		options = append(options, jwt.WithIssuer(service.issuer))
	}
	if service.audience != "" {
		options = append(options, jwt.WithAudience(service.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return service.secret, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	if claims.Subject == "" {
		return nil, errors.New("sec: token has no subject")
	}
	claims.UserID = claims.Subject

	return claims, nil
}
