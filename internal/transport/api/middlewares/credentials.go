package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/fsdevblog/gumball-machine/internal/access"
	"github.com/fsdevblog/gumball-machine/internal/service/tokens"
	"github.com/gin-gonic/gin"
)

const (
	CredentialsKey   = "credentials"
	BadgeProofHeader = "X-Badge-Proof"
	bearerPrefix     = "Bearer "
)

// Credentials собирает доказательства владения бейджами из заголовка Authorization (Bearer) и
// заголовков X-Badge-Proof и кладет в контекст (поле CredentialsKey) множество ресурсов бейджей.
// Любое недействительное доказательство отклоняет запрос с 401.
func Credentials(badgeSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		proofs := c.Request.Header.Values(BadgeProofHeader)
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, bearerPrefix) {
			proofs = append(proofs, strings.TrimPrefix(auth, bearerPrefix))
		}

		creds := access.NewCredentials()
		for _, proof := range proofs {
			claims, err := tokens.ValidateBadgeJWT(strings.TrimSpace(proof), badgeSecret)
			if err != nil {
				_ = c.AbortWithError(http.StatusUnauthorized, fmt.Errorf("check badge proof: %w", err)).
					SetType(gin.ErrorTypePrivate)
				return
			}
			creds.Add(claims.Resource)
		}

		c.Set(CredentialsKey, creds)
		c.Next()
	}
}

// CredentialsFromContext возвращает бейджи, предъявленные в запросе.
func CredentialsFromContext(c *gin.Context) access.Credentials {
	v, ok := c.Get(CredentialsKey)
	if !ok {
		return access.NewCredentials()
	}
	creds, ok := v.(access.Credentials)
	if !ok {
		return access.NewCredentials()
	}
	return creds
}
