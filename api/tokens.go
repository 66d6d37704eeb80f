package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const tokenDuration = 24 * time.Hour

type tokenClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

func (c *tokenClaims) userID() (int, error) {
	return strconv.Atoi(c.Subject)
}

func issueToken(u *user, cfg jwtConfig) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Name: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(u.ID),
			Issuer:    cfg.issuer,
			Audience:  jwt.ClaimStrings{cfg.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString([]byte(cfg.secret))
}

// validateToken reports failure through its error return; invalid tokens are
// routine and must never escape as anything else.
func validateToken(tokenStr string, cfg jwtConfig) (*tokenClaims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.VerifyIssuer(cfg.issuer, true) {
		return nil, errors.New("invalid token issuer")
	}
	if !claims.VerifyAudience(cfg.audience, true) {
		return nil, errors.New("invalid token audience")
	}
	return &claims, nil
}
