package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/ashish4bollam/Anveshak/models"
)

const (
	UserIDKey   = "userID"
	UsernameKey = "username"
	PoliceIDKey = "policeId"
)

// AuthMiddleware validates the Bearer token and loads the caller's identity
// into the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, asString(claims["user_id"]))
		c.Set(UsernameKey, asString(claims["username"]))
		c.Set(PoliceIDKey, asString(claims["policeId"]))
		c.Next()
	}
}

// GetUserID extracts the caller's user ID from the Gin context.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	val, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	id, err := uuid.Parse(asString(val))
	if err != nil {
		return uuid.Nil, errors.New("invalid user ID in context")
	}
	return id, nil
}

// CurrentUser builds the caller's identity from the token claims. The
// profile is not reloaded from the store; the claims carry what the camera
// endpoints need (username for ownership, policeId for import defaulting).
func CurrentUser(c *gin.Context) *models.User {
	user := &models.User{
		Username: c.GetString(UsernameKey),
		PoliceID: c.GetString(PoliceIDKey),
	}
	if id, err := GetUserID(c); err == nil {
		user.ID = id
	}
	return user
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
