package query

import "strings"

// SortField names a view field and its direction.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses a comma separated list of fields.
// A leading "-" marks a field as descending. Blank entries are skipped.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "-" {
			continue
		}
		if name, ok := strings.CutPrefix(part, "-"); ok {
			fields = append(fields, SortField{Field: name, Descending: true})
			continue
		}
		fields = append(fields, SortField{Field: part})
	}
	return fields
}
