package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/formforge/formbuilder-server/config"
	"github.com/formforge/formbuilder-server/form"
	"github.com/formforge/formbuilder-server/models"
	"github.com/formforge/formbuilder-server/utils"
)

const (
	CtxUser = "user"
	CtxForm = "formObj" // form preloaded by CheckFormOwner
)

// AuthJWT checks Authorization: Bearer <token>, validates the JWT, loads
// the user and injects it into the context.
func AuthJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := userFromHeader(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
			return
		}
		c.Set(CtxUser, user)
		c.Next()
	}
}

// OptionalAuth injects the user when a valid token is present but lets
// anonymous requests through. Submissions use it: they are always
// anonymous-eligible.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := userFromHeader(c); ok {
			c.Set(CtxUser, user)
		}
		c.Next()
	}
}

func userFromHeader(c *gin.Context) (models.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return models.User{}, false
	}
	rawToken := strings.TrimSpace(authHeader[7:])

	claims, err := utils.VerifyToken(rawToken)
	if err != nil {
		return models.User{}, false
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return models.User{}, false
	}
	return user, true
}

// ActorFrom resolves the engine actor for the current request.
func ActorFrom(c *gin.Context) form.Actor {
	if v, ok := c.Get(CtxUser); ok {
		if u, ok2 := v.(models.User); ok2 {
			return form.Actor{ID: u.ID, Authenticated: true}
		}
	}
	return form.Anonymous
}
