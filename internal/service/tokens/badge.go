// Package tokens подписанные доказательства владения бейджем (JWT, HS256). Предъявленное
// доказательство превращается в идентификатор ресурса для проверки прав.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// BadgeClaims содержимое доказательства: ресурс бейджа и, для бейджей персонала, локальный номер.
type BadgeClaims struct {
	jwt.RegisteredClaims
	Resource domain.ResourceID `json:"resource"`
	LocalID  uint64            `json:"local_id,omitempty"`
}

// Badge бейдж, для которого выпускается доказательство.
type Badge struct {
	Resource domain.ResourceID
	LocalID  uint64
	Holder   string
}

// GenerateBadgeJWT подписывает доказательство владения бейджем. expire == 0 означает бессрочное
// доказательство.
func GenerateBadgeJWT(badge Badge, expire time.Duration, key []byte) (string, error) {
	if badge.Resource == "" {
		return "", fmt.Errorf("generating badge jwt token: %w: empty resource", ErrInvalidClaims)
	}
	claims := BadgeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  badge.Holder,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Resource: badge.Resource,
		LocalID:  badge.LocalID,
	}
	if expire > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(expire))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("generating badge jwt token: %w", err)
	}
	return token, nil
}

// ValidateBadgeJWT проверяет подпись и срок действия доказательства.
func ValidateBadgeJWT(tokenString string, key []byte) (*BadgeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, new(BadgeClaims), func(_ *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("validating badge jwt token: %w", err)
	}

	claims, ok := token.Claims.(*BadgeClaims)
	if !ok || claims.Resource == "" {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
