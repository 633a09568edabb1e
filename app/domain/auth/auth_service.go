package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"larpmanager.app/larp-gateway/app/interfaces/http/responses"
	"larpmanager.app/larp-gateway/config/environment_variables"
)

type AuthService struct{}

func NewAuthService() *AuthService {
	return &AuthService{}
}

// AdminAuthMiddleware guards the admin routes with a bearer JWT signed by
// ADMIN_JWT_SECRET. The whole admin group is additionally disabled unless
// ENABLE_ADMIN_API is set.
func (s *AuthService) AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !environment_variables.EnvironmentVariables.ENABLE_ADMIN_API {
			c.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
				Code: "3f6a5c01-94d1-4c8e-9a0b-1d2f51a7e210",
			})
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "55312c8d-4fa4-4ecf-a0a2-6fee16c8d7e0",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "c6d6bafd-b9f3-4ebb-9c90-a21b07308ebc",
			})
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &AdminClaim{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(environment_variables.EnvironmentVariables.ADMIN_JWT_SECRET), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "9d7a21c4-d94c-4451-841b-4d9333f86942",
			})
			return
		}

		claims, ok := token.Claims.(*AdminClaim)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "6cc0aa26-148d-4b8d-8f53-9d47b2a00ef1",
			})
			return
		}

		c.Set(ContextAdminClaim, claims)
		c.Next()
	}
}
