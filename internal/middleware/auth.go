package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"flashfit_back_end/internal/models"
	"flashfit_back_end/internal/store"
	"flashfit_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/golang-jwt/jwt/v5"
)

// authFailed sends the uniform rejection. Callers never learn whether the
// token was missing, malformed, expired, or pointed at a deleted brand.
func authFailed(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
	c.Abort()
}

// AuthRequired resolves the Bearer token to an account id and role and puts
// both in the gin context. Brand identities are re-checked against the
// directory on every request; customers and riders are trusted from the
// token alone until it expires.
func AuthRequired(accounts store.AccountStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			authFailed(c)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			authFailed(c)
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return utils.JWTSecret(), nil
		})
		if err != nil || !token.Valid {
			log.Printf("❌ JWT rejected: %v", err)
			authFailed(c)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			authFailed(c)
			return
		}

		if exp, ok := claims["exp"].(float64); ok && time.Now().Unix() > int64(exp) {
			authFailed(c)
			return
		}

		idStr, _ := claims["id"].(string)
		role, _ := claims["role"].(string)
		accountID, err := gocql.ParseUUID(idStr)
		if err != nil || role == "" {
			authFailed(c)
			return
		}

		if role == models.RoleBrand {
			if _, err := accounts.GetByID(c.Request.Context(), models.RoleBrand, accountID); err != nil {
				log.Printf("❌ Brand %s from token no longer exists", accountID)
				authFailed(c)
				return
			}
			c.Set("brand_id", accountID)
		}

		c.Set("account_id", accountID)
		c.Set("role", role)
		c.Next()
	}
}

// RequireRoles rejects callers whose resolved role is not in the allowed
// set. Runs after AuthRequired.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to perform this action"})
		c.Abort()
	}
}
