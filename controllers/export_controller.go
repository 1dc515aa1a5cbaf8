package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/formforge/formbuilder-server/config"
	"github.com/formforge/formbuilder-server/form"
	"github.com/formforge/formbuilder-server/middleware"
	"github.com/formforge/formbuilder-server/models"
)

type ExportRequest struct {
	Format    string  `json:"format"`
	RangeFrom *string `json:"range_from,omitempty"`
	RangeTo   *string `json:"range_to,omitempty"`
}

// POST /api/forms/:id/export
func CreateExport(c *gin.Context) {
	f := c.MustGet(middleware.CtxForm).(models.Form)

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}
	if req.Format == "" {
		req.Format = "csv"
	}
	if req.Format != "csv" && req.Format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unsupported format"})
		return
	}

	var fromPtr, toPtr *time.Time
	if req.RangeFrom != nil {
		if t, err := time.Parse(time.RFC3339, *req.RangeFrom); err == nil {
			fromPtr = &t
		}
	}
	if req.RangeTo != nil {
		if t, err := time.Parse(time.RFC3339, *req.RangeTo); err == nil {
			toPtr = &t
		}
	}

	jobID := uuid.NewString()
	job := models.ExportJob{
		JobID:     jobID,
		FormID:    f.ID,
		Format:    req.Format,
		RangeFrom: fromPtr,
		RangeTo:   toPtr,
		Status:    "queued",
	}
	config.DB.Create(&job)

	go processExportJob(jobID)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": jobID,
		"status": "queued",
	})
}

// GET /api/forms/:id/export/:job_id
//
// Runs behind CheckFormOwner; a job belonging to someone else's form is
// indistinguishable from a missing one.
func GetExport(c *gin.Context) {
	f := c.MustGet(middleware.CtxForm).(models.Form)

	jobID := c.Param("job_id")
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ? AND form_id = ?", jobID, f.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "DB error"})
		return
	}

	if job.Status == "done" && job.FilePath != nil {
		c.FileAttachment(*job.FilePath, path.Base(*job.FilePath))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id": job.JobID,
		"status": job.Status,
		"error":  job.ErrorMsg,
	})
}

func processExportJob(jobID string) {
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		return
	}
	config.DB.Model(&job).Update("status", "processing")

	fail := func(err error) {
		em := err.Error()
		config.DB.Model(&job).Updates(map[string]interface{}{"status": "failed", "error_msg": em})
	}

	var f models.Form
	if err := config.DB.First(&f, "id = ?", job.FormID).Error; err != nil {
		fail(err)
		return
	}
	schema, err := f.Schema()
	if err != nil {
		fail(err)
		return
	}

	q := config.DB.Where("form_id = ?", job.FormID)
	if job.RangeFrom != nil {
		q = q.Where("submitted_at >= ?", job.RangeFrom)
	}
	if job.RangeTo != nil {
		q = q.Where("submitted_at <= ?", job.RangeTo)
	}
	var rows []models.FormResponse
	if err := q.Find(&rows).Error; err != nil {
		fail(err)
		return
	}

	records := make([]form.Response, 0, len(rows))
	for _, r := range rows {
		rec, err := r.Record()
		if err != nil {
			fail(err)
			return
		}
		records = append(records, rec)
	}

	table := form.Project(schema, records)

	outDir := "./exports"
	os.MkdirAll(outDir, 0755)
	outPath := path.Join(outDir, fmt.Sprintf("export_%s.%s", job.JobID, job.Format))

	switch job.Format {
	case "xlsx":
		err = writeXLSX(outPath, table)
	default:
		err = os.WriteFile(outPath, []byte(table.CSV()), 0644)
	}
	if err != nil {
		fail(err)
		return
	}

	fp := outPath
	config.DB.Model(&job).Updates(map[string]interface{}{"status": "done", "file_path": fp})
}

func writeXLSX(outPath string, table form.Table) error {
	wb := excelize.NewFile()
	defer wb.Close()

	const sheet = "Responses"
	idx, err := wb.NewSheet(sheet)
	if err != nil {
		return err
	}
	wb.SetActiveSheet(idx)
	wb.DeleteSheet("Sheet1")

	header := make([]interface{}, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for rowIdx, row := range table.Rows {
		cells := make([]interface{}, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, cell.Text)
		}
		addr, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(sheet, addr, &cells); err != nil {
			return err
		}
	}

	return wb.SaveAs(outPath)
}
