package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/formforge/formbuilder-server/config"
	"github.com/formforge/formbuilder-server/form"
	"github.com/formforge/formbuilder-server/middleware"
	"github.com/formforge/formbuilder-server/models"
)

/* ========== Create form ========== */

func CreateForm(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	var req form.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	schema, err := form.Create(req, u.ID, time.Now())
	if err != nil {
		var se *form.StructuralError
		if errors.As(err, &se) {
			c.JSON(http.StatusBadRequest, gin.H{"message": se.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create form"})
		return
	}

	var f models.Form
	if err := f.SetSchema(schema); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create form"})
		return
	}
	if err := config.DB.Create(&f).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create form"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": formJSON(f), "message": "Form created successfully"})
}

/* ========== List own forms ========== */

func ListMyForms(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if !form.CanList(actor) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var forms []models.Form
	if err := config.DB.
		Where("owner_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&forms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch forms"})
		return
	}

	out := make([]gin.H, 0, len(forms))
	for _, f := range forms {
		out = append(out, formJSON(f))
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "message": "Forms fetched successfully"})
}

/* ========== Get form by id (public, used for rendering) ========== */

func GetForm(c *gin.Context) {
	id := c.Param("id")

	var f models.Form
	if err := config.DB.First(&f, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Form not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch form"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": formJSON(f), "message": "Form fetched successfully"})
}

/* ========== Update form (owner-only, field-level merge) ========== */

func UpdateForm(c *gin.Context) {
	f := c.MustGet(middleware.CtxForm).(models.Form)

	var patch form.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	schema, err := f.Schema()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not read form"})
		return
	}

	updated, err := schema.Apply(patch, time.Now())
	if err != nil {
		var se *form.StructuralError
		if errors.As(err, &se) {
			c.JSON(http.StatusBadRequest, gin.H{"message": se.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		return
	}

	if err := f.SetSchema(updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		return
	}
	if err := config.DB.Save(&f).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": formJSON(f), "message": "Form updated successfully"})
}

/* ========== Delete form (owner-only) ========== */

// Responses keep the form id as a weak reference and survive the delete.
func DeleteForm(c *gin.Context) {
	f := c.MustGet(middleware.CtxForm).(models.Form)

	if err := config.DB.Delete(&models.Form{}, "id = ?", f.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Form deleted successfully"})
}

/* ========== Duplicate form (owner-only) ========== */

func DuplicateForm(c *gin.Context) {
	f := c.MustGet(middleware.CtxForm).(models.Form)

	schema, err := f.Schema()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not read form"})
		return
	}

	clone := schema.Duplicate(time.Now())

	var cf models.Form
	if err := cf.SetSchema(clone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Duplicate failed"})
		return
	}
	if err := config.DB.Create(&cf).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Duplicate failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": formJSON(cf), "message": "Form duplicated successfully"})
}

// formJSON expands the stored fields column into the wire shape.
func formJSON(f models.Form) gin.H {
	fields := []form.Field{}
	if f.FieldsJSON != "" {
		_ = json.Unmarshal([]byte(f.FieldsJSON), &fields)
	}
	return gin.H{
		"id":              f.ID,
		"title":           f.Title,
		"description":     f.Description,
		"fields":          fields,
		"owner_id":        f.OwnerID,
		"is_active":       f.IsActive,
		"backgroundColor": f.BackgroundColor,
		"textColor":       f.TextColor,
		"fontFamily":      f.FontFamily,
		"created_at":      f.CreatedAt,
		"updated_at":      f.UpdatedAt,
	}
}
