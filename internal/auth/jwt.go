package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Role is the part a session plays in the card workflow.
type Role string

const (
	RoleCompany  Role = "company"
	RoleDesigner Role = "designer"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee" // acts as one card
)

func (r Role) Valid() bool {
	switch r {
	case RoleCompany, RoleDesigner, RoleHR, RoleEmployee:
		return true
	}
	return false
}

// Claims identify the viewer of a session. CardID is set for employee
// sessions only.
type Claims struct {
	Role   Role  `json:"role"`
	CardID int64 `json:"card_id,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

func (s *JWTService) GenerateToken(role Role, cardID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:   role,
		CardID: cardID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "cardlink",
			Subject:   subject(role, cardID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func subject(role Role, cardID int64) string {
	if cardID != 0 {
		return "card:" + strconv.FormatInt(cardID, 10)
	}
	return string(role)
}
