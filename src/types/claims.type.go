package types

import "github.com/golang-jwt/jwt/v5"

// Claims issued by the external identity provider. Subject carries the user id.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

const (
	ROLE_CUSTOMER = "customer"
	ROLE_ADMIN    = "admin"
)
