package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/teame/hospital-api/internal/model"
	apperr "github.com/teame/hospital-api/pkg/errors"
)

// TokenService issues and validates opaque identity tokens bound to an
// account id and role. Callers never inspect token internals.
type TokenService interface {
	Generate(account *model.Account) (string, error)
	Validate(token string) (*model.Actor, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) TokenService {
	if expiry == 0 {
		expiry = 24 * time.Hour
	}
	return &jwtService{secret: []byte(secret), expiry: expiry}
}

func (s *jwtService) Generate(account *model.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"account_id": account.ID.String(),
		"role":       string(account.Role),
		"iat":        now.Unix(),
		"exp":        now.Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) Validate(tokenStr string) (*model.Actor, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperr.InvalidToken(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperr.InvalidToken(fmt.Errorf("malformed claims"))
	}

	rawID, ok := claims["account_id"].(string)
	if !ok {
		return nil, apperr.InvalidToken(fmt.Errorf("missing account_id claim"))
	}
	accountID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apperr.InvalidToken(fmt.Errorf("malformed account_id claim"))
	}

	rawRole, ok := claims["role"].(string)
	if !ok {
		return nil, apperr.InvalidToken(fmt.Errorf("missing role claim"))
	}
	role := model.Role(rawRole)
	if !role.Valid() {
		return nil, apperr.InvalidToken(fmt.Errorf("unknown role %q", rawRole))
	}

	return &model.Actor{AccountID: accountID, Role: role}, nil
}
