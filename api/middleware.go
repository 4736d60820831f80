package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/auth"
)

const (
	ctxWallet = "wallet"
	ctxRole   = "role"
)

// authRequired validates the Bearer token and stores the caller's
// wallet and role in the request context.
func authRequired(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"title": "Token requerido."})
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"title": "Token inválido o expirado."})
			return
		}

		c.Set(ctxWallet, claims.Wallet)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// requireRole gates a route on the caller's role. Must run after
// authRequired.
func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"title": "No tiene permisos para esta operación."})
			return
		}
		c.Next()
	}
}
