package form

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Presentation defaults, matching the builder UI.
const (
	DefaultBackgroundColor = "#ffffff"
	DefaultTextColor       = "#000000"
	DefaultFontFamily      = "Arial"
)

// CopySuffix is appended to the title of a duplicated form.
const CopySuffix = " (Copy)"

// Schema is a complete form definition. Field order is significant: it is
// the display order and the export column order.
type Schema struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Fields          []Field   `json:"fields"`
	OwnerID         string    `json:"owner_id"`
	IsActive        bool      `json:"is_active"`
	BackgroundColor string    `json:"backgroundColor"`
	TextColor       string    `json:"textColor"`
	FontFamily      string    `json:"fontFamily"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateInput carries the caller-supplied attributes for a new schema.
// Fields must be non-nil; an empty list is a valid draft.
type CreateInput struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Fields          []Field `json:"fields"`
	BackgroundColor string  `json:"backgroundColor"`
	TextColor       string  `json:"textColor"`
	FontFamily      string  `json:"fontFamily"`
}

// Create validates the input and builds a new schema owned by ownerID.
// On the first invalid field the whole operation fails; the caller
// persists nothing.
func Create(in CreateInput, ownerID string, now time.Time) (Schema, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Schema{}, structuralf("form title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return Schema{}, structuralf("title exceeds %d characters", MaxTitleLen)
	}
	desc := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(desc) > MaxDescriptionLen {
		return Schema{}, structuralf("description exceeds %d characters", MaxDescriptionLen)
	}
	if in.Fields == nil {
		return Schema{}, structuralf("form fields are required")
	}

	fields, err := cleanFields(in.Fields)
	if err != nil {
		return Schema{}, err
	}

	s := Schema{
		ID:              uuid.NewString(),
		Title:           title,
		Description:     desc,
		Fields:          fields,
		OwnerID:         ownerID,
		IsActive:        true,
		BackgroundColor: in.BackgroundColor,
		TextColor:       in.TextColor,
		FontFamily:      in.FontFamily,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if s.BackgroundColor == "" {
		s.BackgroundColor = DefaultBackgroundColor
	}
	if s.TextColor == "" {
		s.TextColor = DefaultTextColor
	}
	if s.FontFamily == "" {
		s.FontFamily = DefaultFontFamily
	}
	return s, nil
}

// Patch is a partial update. Nil means "leave unchanged"; IsActive in
// particular needs the pointer so an explicit false survives the merge.
type Patch struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Fields          *[]Field `json:"fields"`
	BackgroundColor *string  `json:"backgroundColor"`
	TextColor       *string  `json:"textColor"`
	FontFamily      *string  `json:"fontFamily"`
	IsActive        *bool    `json:"is_active"`
}

// Apply merges a patch into the schema and returns the result. ID,
// OwnerID and CreatedAt never change.
func (s Schema) Apply(p Patch, now time.Time) (Schema, error) {
	out := s
	out.Fields = copyFields(s.Fields)

	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return Schema{}, structuralf("form title is required")
		}
		if utf8.RuneCountInString(t) > MaxTitleLen {
			return Schema{}, structuralf("title exceeds %d characters", MaxTitleLen)
		}
		out.Title = t
	}
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		if utf8.RuneCountInString(d) > MaxDescriptionLen {
			return Schema{}, structuralf("description exceeds %d characters", MaxDescriptionLen)
		}
		out.Description = d
	}
	if p.Fields != nil {
		fields, err := cleanFields(*p.Fields)
		if err != nil {
			return Schema{}, err
		}
		out.Fields = fields
	}
	if p.BackgroundColor != nil {
		out.BackgroundColor = *p.BackgroundColor
	}
	if p.TextColor != nil {
		out.TextColor = *p.TextColor
	}
	if p.FontFamily != nil {
		out.FontFamily = *p.FontFamily
	}
	if p.IsActive != nil {
		out.IsActive = *p.IsActive
	}
	out.UpdatedAt = now
	return out, nil
}

// Duplicate deep-copies the schema under a new id with the copy suffix on
// the title. The clone starts active and is fully independent of the
// source.
func (s Schema) Duplicate(now time.Time) Schema {
	out := s
	out.ID = uuid.NewString()
	out.Title = s.Title + CopySuffix
	out.Fields = copyFields(s.Fields)
	out.IsActive = true
	out.CreatedAt = now
	out.UpdatedAt = now
	return out
}

// Field returns the field with the given id, if present.
func (s Schema) Field(id string) (Field, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// cleanFields validates every field, assigns ids where the builder left
// them blank, and rejects duplicate ids.
func cleanFields(in []Field) ([]Field, error) {
	out := make([]Field, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, f := range in {
		cf, err := cleanField(f)
		if err != nil {
			return nil, err
		}
		if cf.ID == "" {
			cf.ID = uuid.NewString()
		}
		if seen[cf.ID] {
			return nil, structuralf("duplicate field id %q", cf.ID)
		}
		seen[cf.ID] = true
		out = append(out, cf)
	}
	return out, nil
}

func copyFields(in []Field) []Field {
	if in == nil {
		return nil
	}
	out := make([]Field, len(in))
	copy(out, in)
	for i := range out {
		if out[i].Options != nil {
			opts := make([]string, len(out[i].Options))
			copy(opts, out[i].Options)
			out[i].Options = opts
		}
	}
	return out
}
