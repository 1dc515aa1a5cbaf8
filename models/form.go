package models

import (
	"encoding/json"
	"time"

	"github.com/formforge/formbuilder-server/form"
)

// Form is the persisted shape of a form schema. The ordered field list is
// stored as one JSON column; fields are subdocuments of the schema, not
// rows of their own.
type Form struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Description     string    `gorm:"size:500" json:"description"`
	FieldsJSON      string    `gorm:"column:fields_json;type:text;not null" json:"-"`
	OwnerID         string    `gorm:"column:owner_id;size:36;not null;index" json:"owner_id"`
	IsActive        bool      `gorm:"column:is_active;default:true" json:"is_active"`
	BackgroundColor string    `gorm:"size:50" json:"background_color"`
	TextColor       string    `gorm:"size:50" json:"text_color"`
	FontFamily      string    `gorm:"size:100" json:"font_family"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Responses []FormResponse `gorm:"foreignKey:FormID;references:ID" json:"-"`
}

func (Form) TableName() string {
	return "forms"
}

// Schema rebuilds the engine schema from the stored row.
func (f *Form) Schema() (form.Schema, error) {
	var fields []form.Field
	if f.FieldsJSON != "" {
		if err := json.Unmarshal([]byte(f.FieldsJSON), &fields); err != nil {
			return form.Schema{}, err
		}
	}
	return form.Schema{
		ID:              f.ID,
		Title:           f.Title,
		Description:     f.Description,
		Fields:          fields,
		OwnerID:         f.OwnerID,
		IsActive:        f.IsActive,
		BackgroundColor: f.BackgroundColor,
		TextColor:       f.TextColor,
		FontFamily:      f.FontFamily,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}, nil
}

// SetSchema copies an engine schema into the row.
func (f *Form) SetSchema(s form.Schema) error {
	fields := s.Fields
	if fields == nil {
		fields = []form.Field{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	f.ID = s.ID
	f.Title = s.Title
	f.Description = s.Description
	f.FieldsJSON = string(b)
	f.OwnerID = s.OwnerID
	f.IsActive = s.IsActive
	f.BackgroundColor = s.BackgroundColor
	f.TextColor = s.TextColor
	f.FontFamily = s.FontFamily
	f.CreatedAt = s.CreatedAt
	f.UpdatedAt = s.UpdatedAt
	return nil
}
