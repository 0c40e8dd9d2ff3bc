package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/mitchellh/mapstructure"
)

var ErrInvalidToken = errors.New("invalid token")

type Engine interface {
	// Generate creates a signed token carrying obj which expires after
	// expiration.
	Generate(expiration time.Duration, obj any) (string, error)

	// Verify fails if the token is invalid or expired, otherwise decodes the
	// carried object into obj. The obj parameter must be a pointer.
	Verify(token string, obj any) error
}

type standardClaims struct {
	jwt.RegisteredClaims
	Object any `json:"obj"`
}

type jwtEngine struct {
	issuer string
	secret []byte
}

func NewEngine(issuer, secret string) *jwtEngine {
	return &jwtEngine{issuer: issuer, secret: []byte(secret)}
}

func (e *jwtEngine) Generate(expiration time.Duration, obj any) (string, error) {
	now := time.Now()
	claims := standardClaims{
		Object: obj,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    e.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(e.secret)
}

func (e *jwtEngine) Verify(token string, obj any) error {
	var claims standardClaims
	_, err := jwt.ParseWithClaims(
		token, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return e.secret, nil
		},
	)
	if err != nil {
		return err
	}

	if !claims.VerifyIssuer(e.issuer, true) {
		return ErrInvalidToken
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  obj,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(claims.Object)
}
