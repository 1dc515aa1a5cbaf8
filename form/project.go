package form

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Markers rendered for cells that have no usable value. Both are distinct
// from an empty string, which means "answered with nothing".
const (
	NoResponseMarker  = "No response"
	NoSelectionMarker = "No selection"
)

// MultiValueSeparator joins multi-valued answers in flat/export contexts.
const MultiValueSeparator = "; "

// Fixed leading columns of every projection.
var metaColumns = []string{"Submission Date", "Submission Time"}

// Export date/time layouts (en-US short forms, kept stable for exports).
const (
	dateLayout = "1/2/2006"
	timeLayout = "3:04:05 PM"
)

type CellKind int

const (
	CellValue CellKind = iota
	CellNoResponse
	CellNoSelection
)

func (k CellKind) String() string {
	switch k {
	case CellNoResponse:
		return "no_response"
	case CellNoSelection:
		return "no_selection"
	default:
		return "value"
	}
}

func (k CellKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Cell is one resolved table cell. Text is the flat rendering; Tokens
// carries the discrete values of a multi-valued answer for interactive
// contexts.
type Cell struct {
	Kind   CellKind `json:"kind"`
	Text   string   `json:"text"`
	Tokens []string `json:"tokens,omitempty"`
}

// Row is one response projected against the current schema.
type Row struct {
	SubmittedAt time.Time `json:"submitted_at"`
	Cells       []Cell    `json:"cells"`
}

// Table is the projector output: header in schema field order, rows in
// reverse-chronological order.
type Table struct {
	Header []string `json:"header"`
	Rows   []Row    `json:"rows"`
}

// Project builds a tabular view of responses against the schema. Column
// headers use the schema's current labels — late renames show up
// retroactively — while cells join on the response's fieldId snapshot.
func Project(s Schema, responses []Response) Table {
	header := make([]string, 0, len(metaColumns)+len(s.Fields))
	header = append(header, metaColumns...)
	for _, f := range s.Fields {
		header = append(header, f.Label)
	}

	ordered := make([]Response, len(responses))
	copy(ordered, responses)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SubmittedAt.After(ordered[j].SubmittedAt)
	})

	rows := make([]Row, 0, len(ordered))
	for _, r := range ordered {
		// Cells line up with the header, meta columns included.
		cells := make([]Cell, 0, len(metaColumns)+len(s.Fields))
		cells = append(cells,
			Cell{Kind: CellValue, Text: r.SubmittedAt.Format(dateLayout)},
			Cell{Kind: CellValue, Text: r.SubmittedAt.Format(timeLayout)},
		)
		for _, f := range s.Fields {
			cells = append(cells, resolveCell(f, r))
		}
		rows = append(rows, Row{SubmittedAt: r.SubmittedAt, Cells: cells})
	}
	return Table{Header: header, Rows: rows}
}

func resolveCell(f Field, r Response) Cell {
	for _, a := range r.Answers {
		if a.FieldID != f.ID {
			continue
		}
		if a.Value.Multi {
			if len(a.Value.Selections) == 0 {
				return Cell{Kind: CellNoSelection, Text: NoSelectionMarker}
			}
			return Cell{
				Kind:   CellValue,
				Text:   strings.Join(a.Value.Selections, MultiValueSeparator),
				Tokens: a.Value.Selections,
			}
		}
		return Cell{Kind: CellValue, Text: a.Value.Text}
	}
	// Field added to the schema after this response was submitted.
	return Cell{Kind: CellNoResponse, Text: NoResponseMarker}
}

// CSV serializes the table. Cells containing a comma or double quote are
// wrapped in double quotes with inner quotes doubled; everything else is
// emitted bare, matching the original export format.
func (t Table) CSV() string {
	var b strings.Builder
	writeCSVRow(&b, t.Header)
	for _, r := range t.Rows {
		b.WriteString("\n")
		cells := make([]string, 0, len(r.Cells))
		for _, c := range r.Cells {
			cells = append(cells, c.Text)
		}
		writeCSVRow(&b, cells)
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(csvEscape(c))
	}
}

func csvEscape(s string) string {
	if !strings.ContainsAny(s, `,"`) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
