package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"math_solver/internal/api"
)

// EnvKeyJWTSecret is the environment variable holding the HMAC secret.
const EnvKeyJWTSecret = "JWT_SECRET"

const ContextSubject = "jwtSubject"

// AuthRequired returns a Gin middleware function that validates bearer tokens
// signed with secret and restricts access to authenticated clients only.
func AuthRequired(secret string) gin.HandlerFunc {
	key := []byte(secret)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)

	return func(c *gin.Context) {
		// 1. Authorizationヘッダを取得
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if len(key) == 0 {
			// サーバー設定ミス（JWT_SECRET未設定）
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server misconfigured"})
			return
		}

		// 2. 署名と登録クレームを検証
		claims := &jwt.RegisteredClaims{}
		token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
			return
		}

		// 3. subjectをコンテキストに保存
		c.Set(ContextSubject, claims.Subject)
		c.Next()
	}
}
