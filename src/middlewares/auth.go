package middlewares

import (
	"bookify/src/config"
	"bookify/src/db"
	"bookify/src/models"
	"bookify/src/types"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm/clause"
)

var errMissingToken = errors.New("missing bearer token")

func bearerToken(ctx *gin.Context) (string, error) {
	header := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}

// ParseToken validates a signed token and returns its claims.
func ParseToken(reqToken string) (*types.Claims, error) {
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return config.JWTSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// syncUser stores the identity carried by the token so bookings and reviews
// can reference it.
func syncUser(claims *types.Claims) (*models.User, error) {
	uid, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || uid == 0 {
		return nil, jwt.ErrTokenInvalidSubject
	}
	role := claims.Role
	if role != types.ROLE_ADMIN {
		role = types.ROLE_CUSTOMER
	}
	user := models.User{ID: uint(uid), Email: claims.Email, Name: claims.Name, Role: role}
	db := db.GetDb()
	err = db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "name", "role", "updated_at"}),
		}).
		Create(&user).
		Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func authenticate(ctx *gin.Context, reqToken string) bool {
	claims, err := ParseToken(reqToken)
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return false
	}
	user, err := syncUser(claims)
	if err != nil {
		log.Printf("Error syncing user %s: %s\n", claims.Subject, err.Error())
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return false
	}
	ctx.Set("id", user.ID)
	ctx.Set("email", user.Email)
	ctx.Set("role", user.Role)
	return true
}

func AuthMiddleware(ctx *gin.Context) {
	reqToken, err := bearerToken(ctx)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	authenticate(ctx, reqToken)
}

// OptionalAuth identifies the caller when a token is sent and lets
// anonymous requests through.
func OptionalAuth(ctx *gin.Context) {
	reqToken, err := bearerToken(ctx)
	if err != nil {
		return
	}
	authenticate(ctx, reqToken)
}

func AdminOnly(ctx *gin.Context) {
	if ctx.GetString("role") != types.ROLE_ADMIN {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
}
