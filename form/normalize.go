package form

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Value is a normalized answer value: either a single scalar string or an
// ordered list of selected option labels. It is never null on the wire —
// an unanswered field carries "" or [].
type Value struct {
	Multi      bool
	Text       string
	Selections []string
}

func ScalarValue(s string) Value { return Value{Text: s} }

func ListValue(ss []string) Value {
	if ss == nil {
		ss = []string{}
	}
	return Value{Multi: true, Selections: ss}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Multi {
		if v.Selections == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Selections)
	}
	return json.Marshal(v.Text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) > 0 && data[0] == '[' {
		var ss []string
		if err := json.Unmarshal(data, &ss); err != nil {
			return err
		}
		*v = ListValue(ss)
		return nil
	}
	*v = ScalarValue(scalarText(data))
	return nil
}

// Answer is one normalized per-field answer. Label and type are snapshots
// of the schema field at submission time, so later schema edits cannot
// rewrite historical records.
type Answer struct {
	FieldID    string `json:"fieldId"`
	FieldLabel string `json:"fieldLabel"`
	FieldType  Kind   `json:"fieldType"`
	Value      Value  `json:"value"`
}

// RawAnswer is one entry of an incoming payload. Checkbox selections may
// arrive either as per-option entries keyed "<fieldId>.<optionIndex>"
// with a truthy value, or as a single entry holding an array of option
// labels under the field id.
type RawAnswer struct {
	FieldID string          `json:"fieldId"`
	Value   json.RawMessage `json:"value"`
}

// RawSubmission is the loose wire shape of a submission.
type RawSubmission struct {
	Responses []RawAnswer `json:"responses"`
}

// SubmitterInfo is best-effort request metadata, opaque to the engine.
type SubmitterInfo struct {
	IP        string `json:"ip"`
	UserAgent string `json:"userAgent"`
}

// Response is one normalized, immutable submission record.
type Response struct {
	ID            string        `json:"id"`
	FormID        string        `json:"formId"`
	FormTitle     string        `json:"formTitle"`
	Answers       []Answer      `json:"responses"`
	SubmitterInfo SubmitterInfo `json:"submitterInfo"`
	SubmittedAt   time.Time     `json:"submittedAt"`
}

// Submit normalizes a raw payload against the schema. The output carries
// exactly one answer per schema field, in schema order: unanswered fields
// yield "" (or [] for checkboxes), never an omitted entry. Required is
// deliberately not enforced here; that stays a presentation concern.
func Submit(s Schema, raw RawSubmission, info SubmitterInfo, now time.Time) (Response, error) {
	if !s.IsActive {
		return Response{}, &ValidationError{Reason: "form is not accepting submissions"}
	}
	if raw.Responses == nil {
		return Response{}, &ValidationError{Reason: "responses are required"}
	}

	answers := make([]Answer, 0, len(s.Fields))
	for _, f := range s.Fields {
		answers = append(answers, Answer{
			FieldID:    f.ID,
			FieldLabel: f.Label,
			FieldType:  f.Kind,
			Value:      normalizeValue(f, raw.Responses),
		})
	}

	return Response{
		ID:            uuid.NewString(),
		FormID:        s.ID,
		FormTitle:     s.Title,
		Answers:       answers,
		SubmitterInfo: info,
		SubmittedAt:   now,
	}, nil
}

func normalizeValue(f Field, responses []RawAnswer) Value {
	if f.Kind == KindCheckbox {
		return normalizeCheckbox(f, responses)
	}
	for _, r := range responses {
		if r.FieldID == f.ID {
			return ScalarValue(scalarText(r.Value))
		}
	}
	return ScalarValue("")
}

// normalizeCheckbox reconstructs the selected option labels in schema
// option order, regardless of the order or shape the client sent.
func normalizeCheckbox(f Field, responses []RawAnswer) Value {
	selected := make(map[string]bool, len(f.Options))

	for _, r := range responses {
		if r.FieldID == f.ID {
			var labels []string
			if err := json.Unmarshal(r.Value, &labels); err == nil {
				for _, l := range labels {
					selected[l] = true
				}
			}
			continue
		}
		// Per-option entry: "<fieldId>.<index>" with a truthy value.
		rest, ok := strings.CutPrefix(r.FieldID, f.ID+".")
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(rest)
		if err != nil || idx < 0 || idx >= len(f.Options) {
			continue
		}
		if truthy(r.Value) {
			selected[f.Options[idx]] = true
		}
	}

	out := []string{}
	for _, opt := range f.Options {
		if selected[opt] {
			out = append(out, opt)
		}
	}
	return ListValue(out)
}

// scalarText renders an arbitrary JSON value as the stored scalar string.
func scalarText(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return strings.TrimSpace(string(data))
	}
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			b, _ := json.Marshal(e)
			parts = append(parts, scalarText(b))
		}
		return strings.Join(parts, ", ")
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// truthy mirrors what browser form state produces for a ticked box.
func truthy(data []byte) bool {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(t) {
		case "true", "on", "1", "checked":
			return true
		}
		return false
	case float64:
		return t != 0
	}
	return false
}
