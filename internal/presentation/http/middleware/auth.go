package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopdesk-pos/internal/infrastructure/upstream"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/shopdesk-pos/pkg/utils"
)

// AuthMiddleware authenticates the operator from the backend-issued bearer
// token and forwards that token to upstream calls made for the request.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("operator_id", claims.OperatorID)
		c.Set("operator_email", claims.Email)
		c.Set("operator_role", claims.Role)
		c.Request = c.Request.WithContext(upstream.WithToken(c.Request.Context(), tokenString))

		c.Next()
	}
}
