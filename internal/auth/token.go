package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuerName = "secretsanta"

var ErrInvalidToken = errors.New("invalid token")

// Claims reveal token 中携带的身份：哪个活动里的哪位参与者
type Claims struct {
	GroupID     string `json:"gid"`
	Participant string `json:"name"`
	jwt.RegisteredClaims
}

// Issuer 签发/校验 reveal token（HS256）
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

func (i *Issuer) Issue(groupID, participant string) (string, error) {
	now := time.Now()
	claims := &Claims{
		GroupID:     groupID,
		Participant: participant,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  participant,
			Issuer:   issuerName,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if i.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerName),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.GroupID == "" || claims.Participant == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
