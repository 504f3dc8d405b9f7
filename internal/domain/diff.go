package domain

// Granularity is the token unit used when comparing output
type Granularity string

const (
	GranularityChar Granularity = "char"
	GranularityLine Granularity = "line"
)

// RecordKind tells how a token relates expected to actual output
type RecordKind int

const (
	RecordContext RecordKind = iota // unchanged token shown for readability
	RecordRemoved                   // present in expected, missing from actual
	RecordAdded                     // present in actual, missing from expected
)

func (k RecordKind) String() string {
	switch k {
	case RecordRemoved:
		return "removed"
	case RecordAdded:
		return "added"
	default:
		return "context"
	}
}

// DiffRecord is one token of a diff hunk. Positions and lines are 1-based; 0 means absent.
type DiffRecord struct {
	Kind         RecordKind `json:"kind"`
	Text         string     `json:"text"`
	ExpectedPos  int        `json:"expected_pos,omitempty"`
	ActualPos    int        `json:"actual_pos,omitempty"`
	ExpectedLine int        `json:"expected_line,omitempty"`
	ActualLine   int        `json:"actual_line,omitempty"`
}

// IsChange reports whether the record is an insertion or deletion.
func (r DiffRecord) IsChange() bool {
	return r.Kind != RecordContext
}

// DiffHunk groups nearby changes with their surrounding context.
type DiffHunk struct {
	ExpectedStart int          `json:"expected_start"`
	ExpectedCount int          `json:"expected_count"`
	ActualStart   int          `json:"actual_start"`
	ActualCount   int          `json:"actual_count"`
	Records       []DiffRecord `json:"records"`
}

// DiffReport is the comparison of one case's actual output against its golden file
type DiffReport struct {
	Granularity Granularity `json:"granularity"`
	Hunks       []DiffHunk  `json:"hunks,omitempty"`
}

// Changes returns the number of added and removed records.
func (r DiffReport) Changes() int {
	n := 0
	for _, h := range r.Hunks {
		for _, rec := range h.Records {
			if rec.IsChange() {
				n++
			}
		}
	}
	return n
}

// Empty reports whether the report contains no change records.
func (r DiffReport) Empty() bool {
	return r.Changes() == 0
}
