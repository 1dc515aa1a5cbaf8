package models

import (
	"encoding/json"
	"time"

	"github.com/formforge/formbuilder-server/form"
)

// FormResponse is an immutable submission record. FormID is a weak
// reference: the row survives deletion of its form, and form_title plus
// the per-answer label/type snapshots keep it meaningful after schema
// edits.
type FormResponse struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	FormID             string    `gorm:"column:form_id;size:36;not null;index" json:"form_id"`
	FormTitle          string    `gorm:"column:form_title;size:200;not null" json:"form_title"`
	AnswersJSON        string    `gorm:"column:answers_json;type:text;not null" json:"-"`
	SubmitterIP        string    `gorm:"column:submitter_ip;size:64" json:"-"`
	SubmitterUserAgent string    `gorm:"column:submitter_user_agent;size:500" json:"-"`
	SubmittedAt        time.Time `gorm:"column:submitted_at;autoCreateTime;index" json:"submitted_at"`
}

func (FormResponse) TableName() string {
	return "form_responses"
}

// Record rebuilds the engine response from the stored row.
func (r *FormResponse) Record() (form.Response, error) {
	var answers []form.Answer
	if r.AnswersJSON != "" {
		if err := json.Unmarshal([]byte(r.AnswersJSON), &answers); err != nil {
			return form.Response{}, err
		}
	}
	return form.Response{
		ID:        r.ID,
		FormID:    r.FormID,
		FormTitle: r.FormTitle,
		Answers:   answers,
		SubmitterInfo: form.SubmitterInfo{
			IP:        r.SubmitterIP,
			UserAgent: r.SubmitterUserAgent,
		},
		SubmittedAt: r.SubmittedAt,
	}, nil
}

// SetRecord copies an engine response into the row.
func (r *FormResponse) SetRecord(resp form.Response) error {
	b, err := json.Marshal(resp.Answers)
	if err != nil {
		return err
	}
	r.ID = resp.ID
	r.FormID = resp.FormID
	r.FormTitle = resp.FormTitle
	r.AnswersJSON = string(b)
	r.SubmitterIP = resp.SubmitterInfo.IP
	r.SubmitterUserAgent = resp.SubmitterInfo.UserAgent
	r.SubmittedAt = resp.SubmittedAt
	return nil
}
