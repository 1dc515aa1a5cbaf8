package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/formforge/formbuilder-server/config"
	"github.com/formforge/formbuilder-server/form"
	"github.com/formforge/formbuilder-server/models"
)

// CheckFormOwner loads the form into the context and verifies ownership.
// A form owned by someone else answers exactly like a missing one, so
// foreign ids cannot be probed for existence.
func CheckFormOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := c.MustGet(CtxUser).(models.User)

		id := c.Param("id")
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid form id"})
			return
		}

		var f models.Form
		if err := config.DB.First(&f, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Form not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Could not load form"})
			return
		}

		actor := form.Actor{ID: u.ID, Authenticated: true}
		if !form.CanMutate(form.Schema{OwnerID: f.OwnerID}, actor) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Form not found"})
			return
		}

		c.Set(CtxForm, f)
		c.Next()
	}
}
