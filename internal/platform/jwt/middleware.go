package jwtmw

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// gin.Context に格納するキー
const (
	ContextUserID    = "userID"
	ContextEmail     = "email"
	ContextExpiresAt = "expiresAt"
)

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorizationヘッダーを取得
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		// 2. 署名鍵の設定漏れはサーバー側の問題
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 3. 署名とクレームを検証してコンテキストに格納
		if !authenticate(c, strings.TrimPrefix(auth, "Bearer "), secret) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Next()
	}
}

// OptionalAuth populates the user context when a valid bearer token is present
// and lets the request through as anonymous otherwise.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if secret != "" && strings.HasPrefix(auth, "Bearer ") {
			authenticate(c, strings.TrimPrefix(auth, "Bearer "), secret)
		}
		c.Next()
	}
}

// UserID returns the authenticated user ID stored by the middleware.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// authenticate parses tokenStr and, when valid, stores its claims on the context.
func authenticate(c *gin.Context, tokenStr, secret string) bool {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// HMAC以外の署名アルゴリズムは拒否
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	sub, ok := claims["sub"].(float64) // JWTの数値はfloat64としてデコードされる
	if !ok {
		return false
	}
	c.Set(ContextUserID, uint(sub))
	if email, ok := claims["email"].(string); ok {
		c.Set(ContextEmail, email)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		c.Set(ContextExpiresAt, exp.Time.UTC().Truncate(time.Second))
	}
	return true
}
