package form

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind is the closed set of field types a form may declare.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindNumber   Kind = "number"
	KindTextarea Kind = "textarea"
	KindDropdown Kind = "dropdown"
	KindCheckbox Kind = "checkbox"
	KindRadio    Kind = "radio"
)

// Kinds lists every valid field kind in a stable order.
var Kinds = []Kind{
	KindText, KindEmail, KindNumber, KindTextarea,
	KindDropdown, KindCheckbox, KindRadio,
}

// Length bounds enforced on field definitions and schema metadata,
// counted in runes.
const (
	MaxLabelLen       = 200
	MaxPlaceholderLen = 200
	MaxOptionLen      = 100
	MaxTitleLen       = 200
	MaxDescriptionLen = 500
)

func (k Kind) Valid() bool {
	switch k {
	case KindText, KindEmail, KindNumber, KindTextarea,
		KindDropdown, KindCheckbox, KindRadio:
		return true
	}
	return false
}

// OptionBearing reports whether answers for this kind are drawn from a
// fixed option list.
func (k Kind) OptionBearing() bool {
	switch k {
	case KindDropdown, KindCheckbox, KindRadio:
		return true
	}
	return false
}

// Field is one input slot of a form schema. The JSON names match the
// builder wire format.
type Field struct {
	ID          string   `json:"id"`
	Kind        Kind     `json:"type"`
	Label       string   `json:"label"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
}

// ValidateField checks a single field definition against the structural
// rules. It has no side effects; schema creation and update run every
// field through it before anything is persisted.
func ValidateField(f Field) error {
	_, err := cleanField(f)
	return err
}

// cleanField validates and returns the canonical stored shape: label,
// placeholder and options trimmed, blank options dropped, options removed
// entirely for kinds that do not use them.
func cleanField(f Field) (Field, error) {
	if !f.Kind.Valid() {
		return Field{}, structuralf("field %q: unknown type %q", f.ID, f.Kind)
	}

	f.Label = strings.TrimSpace(f.Label)
	if f.Label == "" {
		return Field{}, structuralf("field %q: label is required", f.ID)
	}
	if utf8.RuneCountInString(f.Label) > MaxLabelLen {
		return Field{}, structuralf("field %q: label exceeds %d characters", f.ID, MaxLabelLen)
	}

	f.Placeholder = strings.TrimSpace(f.Placeholder)
	if utf8.RuneCountInString(f.Placeholder) > MaxPlaceholderLen {
		return Field{}, structuralf("field %q: placeholder exceeds %d characters", f.ID, MaxPlaceholderLen)
	}

	if !f.Kind.OptionBearing() {
		f.Options = nil
		return f, nil
	}

	opts := make([]string, 0, len(f.Options))
	for _, o := range f.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if utf8.RuneCountInString(o) > MaxOptionLen {
			return Field{}, structuralf("field %q: option exceeds %d characters", f.ID, MaxOptionLen)
		}
		opts = append(opts, o)
	}
	if len(opts) == 0 {
		return Field{}, structuralf("field %q: %s fields need at least one option", f.ID, f.Kind)
	}
	f.Options = opts
	return f, nil
}

func structuralf(format string, args ...any) *StructuralError {
	return &StructuralError{Reason: fmt.Sprintf(format, args...)}
}
