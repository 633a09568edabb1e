package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"larpmanager.app/larp-gateway/config/environment_variables"
)

const ContextAdminClaim = "context_admin_claim"

// AdminClaim is the JWT payload of an operator allowed to hit the admin API.
type AdminClaim struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

func CreateJwtSignedString(c AdminClaim) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString([]byte(environment_variables.EnvironmentVariables.ADMIN_JWT_SECRET))
}
