package form

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var testNow = time.Date(2025, 9, 12, 10, 30, 0, 0, time.UTC)

func testInput() CreateInput {
	return CreateInput{
		Title: "Customer Survey",
		Fields: []Field{
			{ID: "f1", Kind: KindText, Label: "Name", Required: true},
			{ID: "f2", Kind: KindCheckbox, Label: "Colors", Options: []string{"Red", "Blue"}},
		},
	}
}

func TestCreate(t *testing.T) {
	s, err := Create(testInput(), "owner-1", testNow)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if s.ID == "" {
		t.Error("Create() assigned no id")
	}
	if s.OwnerID != "owner-1" {
		t.Errorf("OwnerID = %q, want owner-1", s.OwnerID)
	}
	if !s.IsActive {
		t.Error("new schema should start active")
	}
	if s.BackgroundColor != DefaultBackgroundColor || s.TextColor != DefaultTextColor || s.FontFamily != DefaultFontFamily {
		t.Errorf("presentation defaults not applied: %q %q %q", s.BackgroundColor, s.TextColor, s.FontFamily)
	}
	if !s.CreatedAt.Equal(testNow) || !s.UpdatedAt.Equal(testNow) {
		t.Error("timestamps not set from now")
	}

	// Option-bearing fields always end up with at least one option.
	for _, f := range s.Fields {
		if f.Kind.OptionBearing() && len(f.Options) == 0 {
			t.Errorf("field %q: option-bearing with no options", f.ID)
		}
	}
}

func TestCreateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateInput)
		wantErr string
	}{
		{"missing title", func(in *CreateInput) { in.Title = " " }, "title is required"},
		{"title too long", func(in *CreateInput) { in.Title = strings.Repeat("a", MaxTitleLen+1) }, "title exceeds"},
		{"description too long", func(in *CreateInput) { in.Description = strings.Repeat("a", MaxDescriptionLen+1) }, "description exceeds"},
		{"nil fields", func(in *CreateInput) { in.Fields = nil }, "fields are required"},
		{"bad field fails whole create", func(in *CreateInput) { in.Fields[1].Options = nil }, "at least one option"},
		{"duplicate field ids", func(in *CreateInput) { in.Fields[1].ID = "f1"; in.Fields[1].Options = []string{"x"} }, "duplicate field id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := testInput()
			tt.mutate(&in)
			_, err := Create(in, "owner-1", testNow)
			var se *StructuralError
			if !errors.As(err, &se) {
				t.Fatalf("Create() error = %v, want *StructuralError", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Create() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestCreateAcceptsMultibyteTitle(t *testing.T) {
	in := testInput()
	in.Title = strings.Repeat("ü", 150)
	s, err := Create(in, "owner-1", testNow)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.Title != in.Title {
		t.Errorf("Title = %q, want %q", s.Title, in.Title)
	}
}

func TestCreateGeneratesFieldIDs(t *testing.T) {
	in := testInput()
	in.Fields[0].ID = ""
	s, err := Create(in, "owner-1", testNow)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.Fields[0].ID == "" {
		t.Error("blank field id was not assigned")
	}
}

func TestApplyMergesFieldLevel(t *testing.T) {
	s, err := Create(testInput(), "owner-1", testNow)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	later := testNow.Add(time.Hour)
	title := "Renamed Survey"
	got, err := s.Apply(Patch{Title: &title}, later)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if got.Title != title {
		t.Errorf("Title = %q, want %q", got.Title, title)
	}
	// Everything omitted from the patch keeps its previous value.
	want := s
	want.Title = title
	want.UpdatedAt = later
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyExplicitFalseIsActive(t *testing.T) {
	s, _ := Create(testInput(), "owner-1", testNow)
	if !s.IsActive {
		t.Fatal("precondition: schema active")
	}

	inactive := false
	got, err := s.Apply(Patch{IsActive: &inactive}, testNow.Add(time.Minute))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got.IsActive {
		t.Error("explicit false was dropped by the merge")
	}
	if got.Title != s.Title || len(got.Fields) != len(s.Fields) {
		t.Error("unrelated attributes changed")
	}
}

func TestApplyNeverChangesIdentity(t *testing.T) {
	s, _ := Create(testInput(), "owner-1", testNow)

	title := "New"
	desc := "d"
	fields := []Field{{ID: "f9", Kind: KindEmail, Label: "Email"}}
	active := false
	got, err := s.Apply(Patch{
		Title:       &title,
		Description: &desc,
		Fields:      &fields,
		IsActive:    &active,
	}, testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if got.ID != s.ID || got.OwnerID != s.OwnerID || !got.CreatedAt.Equal(s.CreatedAt) {
		t.Error("Apply() changed id, owner or createdAt")
	}
}

func TestApplyValidatesReplacementFields(t *testing.T) {
	s, _ := Create(testInput(), "owner-1", testNow)

	bad := []Field{{ID: "fx", Kind: KindDropdown, Label: "Pick"}}
	_, err := s.Apply(Patch{Fields: &bad}, testNow)
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("Apply() error = %v, want *StructuralError", err)
	}
}

func TestPresentationKeysRoundTrip(t *testing.T) {
	// Presentation attributes travel as camelCase in both directions, so a
	// schema body read back from the API keeps them when fed to an update.
	body := []byte(`{"backgroundColor":"#123456","textColor":"#654321","fontFamily":"Georgia"}`)

	var p Patch
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("Unmarshal() into Patch error = %v", err)
	}
	if p.BackgroundColor == nil || *p.BackgroundColor != "#123456" {
		t.Error("backgroundColor not bound by Patch")
	}
	if p.TextColor == nil || *p.TextColor != "#654321" {
		t.Error("textColor not bound by Patch")
	}
	if p.FontFamily == nil || *p.FontFamily != "Georgia" {
		t.Error("fontFamily not bound by Patch")
	}

	var in CreateInput
	if err := json.Unmarshal(body, &in); err != nil {
		t.Fatalf("Unmarshal() into CreateInput error = %v", err)
	}
	if in.BackgroundColor != "#123456" || in.TextColor != "#654321" || in.FontFamily != "Georgia" {
		t.Errorf("CreateInput presentation binding = %q %q %q", in.BackgroundColor, in.TextColor, in.FontFamily)
	}

	s, err := Create(testInput(), "owner-1", testNow)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, key := range []string{`"backgroundColor"`, `"textColor"`, `"fontFamily"`} {
		if !strings.Contains(string(out), key) {
			t.Errorf("schema JSON missing %s:\n%s", key, out)
		}
	}
}

func TestDuplicate(t *testing.T) {
	s, _ := Create(testInput(), "owner-1", testNow)
	later := testNow.Add(time.Hour)

	c1 := s.Duplicate(later)
	c2 := s.Duplicate(later)

	if c1.Title != s.Title+CopySuffix {
		t.Errorf("Title = %q, want %q", c1.Title, s.Title+CopySuffix)
	}
	if c1.ID == s.ID || c2.ID == s.ID || c1.ID == c2.ID {
		t.Error("duplicates must get fresh ids")
	}
	if c1.OwnerID != s.OwnerID {
		t.Error("duplicate changed owner")
	}

	// Two clones of the same source are structurally equal apart from id.
	if diff := cmp.Diff(c1, c2, cmpopts.IgnoreFields(Schema{}, "ID")); diff != "" {
		t.Errorf("clones differ (-c1 +c2):\n%s", diff)
	}

	// Deep copy: mutating the clone's options must not touch the source.
	c1.Fields[1].Options[0] = "Green"
	if s.Fields[1].Options[0] != "Red" {
		t.Error("duplicate shares option storage with the source")
	}
}
