package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/formforge/formbuilder-server/config"
	"github.com/formforge/formbuilder-server/form"
	"github.com/formforge/formbuilder-server/middleware"
	"github.com/formforge/formbuilder-server/models"
)

/* ========== Submit a response (anonymous-eligible) ========== */

func SubmitForm(c *gin.Context) {
	id := c.Param("id")

	var f models.Form
	if err := config.DB.First(&f, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Form not found or inactive"})
		return
	}

	schema, err := f.Schema()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not read form"})
		return
	}

	// Inactive forms answer like missing ones for submitters.
	if !form.CanSubmit(schema) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Form not found or inactive"})
		return
	}

	var raw form.RawSubmission
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	info := form.SubmitterInfo{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}

	record, err := form.Submit(schema, raw, info, time.Now())
	if err != nil {
		var ve *form.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"message": ve.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save response"})
		return
	}

	var row models.FormResponse
	if err := row.SetRecord(record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save response"})
		return
	}
	if err := config.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record, "message": "Form submitted successfully"})
}

/* ========== List responses (owner-only) ========== */

// GET /api/forms/:id/responses?start_date=2025-09-01&end_date=2025-09-21
func GetResponses(c *gin.Context) {
	f := c.MustGet(middleware.CtxForm).(models.Form)

	rows, err := queryResponses(c, f.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch responses"})
		return
	}

	out := make([]form.Response, 0, len(rows))
	for _, r := range rows {
		rec, err := r.Record()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not read responses"})
			return
		}
		out = append(out, rec)
	}

	c.JSON(http.StatusOK, gin.H{"data": out, "message": "Responses fetched successfully"})
}

/* ========== Projected table (owner-only) ========== */

// GET /api/forms/:id/responses/table — the aggregation the response
// dashboard renders: current labels as headers, snapshot answers joined
// by field id, explicit markers for missing cells.
func GetResponsesTable(c *gin.Context) {
	f := c.MustGet(middleware.CtxForm).(models.Form)

	schema, err := f.Schema()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not read form"})
		return
	}

	rows, err := queryResponses(c, f.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch responses"})
		return
	}

	records := make([]form.Response, 0, len(rows))
	for _, r := range rows {
		rec, err := r.Record()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not read responses"})
			return
		}
		records = append(records, rec)
	}

	c.JSON(http.StatusOK, gin.H{"data": form.Project(schema, records)})
}

func queryResponses(c *gin.Context, formID string) ([]models.FormResponse, error) {
	query := config.DB.Model(&models.FormResponse{}).
		Where("form_id = ?", formID)

	if s := c.Query("start_date"); s != "" {
		if startDate, err := time.Parse("2006-01-02", s); err == nil {
			query = query.Where("submitted_at >= ?", startDate)
		}
	}
	if e := c.Query("end_date"); e != "" {
		if endDate, err := time.Parse("2006-01-02", e); err == nil {
			// end date + 1 day, inclusive
			query = query.Where("submitted_at < ?", endDate.Add(24*time.Hour))
		}
	}

	var rows []models.FormResponse
	err := query.Order("submitted_at DESC").Find(&rows).Error
	return rows, err
}
