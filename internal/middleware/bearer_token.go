package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/adlift/marketing-ops-backend/internal/config"
)

// BearerTokenMiddleware validates JWT bearer tokens issued by the upstream
// SSO and exposes the caller's identity to handlers. There is no local user
// store; the token is the identity.
type BearerTokenMiddleware struct {
	secret []byte
}

func NewBearerTokenMiddleware() *BearerTokenMiddleware {
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		logrus.Error("JWT_SECRET is not set; all protected routes will reject requests")
	}
	return &BearerTokenMiddleware{
		secret: []byte(secret),
	}
}

type ssoClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// BearerTokenAuthMiddleware validates the JWT and sets user info in context
func (m *BearerTokenMiddleware) BearerTokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Without a configured secret every HMAC verifies against an empty
		// key, so a forged token would pass. Fail closed instead.
		if len(m.secret) == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication is not configured"})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims := &ssoClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		userName := claims.Name
		if userName == "" {
			userName = claims.Subject
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_name", userName)

		c.Next()
	}
}
