package form

import (
	"errors"
	"strings"
	"testing"
)

func TestKindValid(t *testing.T) {
	for _, k := range Kinds {
		if !k.Valid() {
			t.Errorf("Kind(%q).Valid() = false, want true", k)
		}
	}
	for _, k := range []Kind{"", "date", "TEXT", "select"} {
		if k.Valid() {
			t.Errorf("Kind(%q).Valid() = true, want false", k)
		}
	}
}

func TestKindOptionBearing(t *testing.T) {
	want := map[Kind]bool{
		KindText:     false,
		KindEmail:    false,
		KindNumber:   false,
		KindTextarea: false,
		KindDropdown: true,
		KindCheckbox: true,
		KindRadio:    true,
	}
	for k, w := range want {
		if got := k.OptionBearing(); got != w {
			t.Errorf("Kind(%q).OptionBearing() = %v, want %v", k, got, w)
		}
	}
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		wantErr string
	}{
		{
			name:  "plain text field",
			field: Field{ID: "f1", Kind: KindText, Label: "Name"},
		},
		{
			name:  "options ignored for text",
			field: Field{ID: "f1", Kind: KindText, Label: "Name", Options: []string{"x"}},
		},
		{
			name:  "dropdown with options",
			field: Field{ID: "f1", Kind: KindDropdown, Label: "Color", Options: []string{"Red", "Blue"}},
		},
		{
			name:    "unknown kind",
			field:   Field{ID: "f1", Kind: "date", Label: "When"},
			wantErr: "unknown type",
		},
		{
			name:    "empty label",
			field:   Field{ID: "f1", Kind: KindText, Label: "   "},
			wantErr: "label is required",
		},
		{
			name:    "label too long",
			field:   Field{ID: "f1", Kind: KindText, Label: strings.Repeat("a", MaxLabelLen+1)},
			wantErr: "label exceeds",
		},
		{
			// Bounds count runes, not bytes.
			name:  "multibyte label at the limit",
			field: Field{ID: "f1", Kind: KindText, Label: strings.Repeat("é", MaxLabelLen)},
		},
		{
			name:    "multibyte label over the limit",
			field:   Field{ID: "f1", Kind: KindText, Label: strings.Repeat("é", MaxLabelLen+1)},
			wantErr: "label exceeds",
		},
		{
			name:    "placeholder too long",
			field:   Field{ID: "f1", Kind: KindText, Label: "Name", Placeholder: strings.Repeat("a", MaxPlaceholderLen+1)},
			wantErr: "placeholder exceeds",
		},
		{
			name:    "dropdown without options",
			field:   Field{ID: "f1", Kind: KindDropdown, Label: "Color"},
			wantErr: "at least one option",
		},
		{
			name:    "checkbox with only blank options",
			field:   Field{ID: "f1", Kind: KindCheckbox, Label: "Color", Options: []string{"  ", ""}},
			wantErr: "at least one option",
		},
		{
			name:    "option too long",
			field:   Field{ID: "f1", Kind: KindRadio, Label: "Color", Options: []string{strings.Repeat("a", MaxOptionLen+1)}},
			wantErr: "option exceeds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateField(tt.field)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateField() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateField() = nil, want error containing %q", tt.wantErr)
			}
			var se *StructuralError
			if !errors.As(err, &se) {
				t.Fatalf("ValidateField() error type = %T, want *StructuralError", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateField() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}
