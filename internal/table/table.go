// Package table turns the sheet API's header-plus-rows payload into keyed
// records.
//
// The read API returns spreadsheet data as a JSON object of the form
//
//	{"success": true, "data": [["Staff ID", "Name"], ["BK-101", "John"]]}
//
// where the first row is the header. Normalize converts every following row
// into a Record keyed by the normalized header cell. Values are never
// converted; numeric columns such as salary are parsed by the consumer.
package table

import "strings"

// RawTable is the tabular payload returned by the sheet read API.
type RawTable struct {
	Success bool       `json:"success"`
	Data    [][]string `json:"data"`
}

// Record maps a normalized header name to the cell value of one row.
type Record map[string]string

// Get returns the value for field, or "" when the field is absent.
func (r Record) Get(field string) string {
	return r[field]
}

// Normalize converts a RawTable into one Record per value row.
// A table without a header row yields an empty, non-nil slice.
func Normalize(raw RawTable) []Record {
	if len(raw.Data) == 0 {
		return []Record{}
	}

	headers := NormalizeHeaders(raw.Data[0])
	records := make([]Record, 0, len(raw.Data)-1)
	for _, row := range raw.Data[1:] {
		rec := make(Record, len(headers))
		for j, h := range headers {
			if j < len(row) {
				rec[h] = row[j]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

// NormalizeHeaders normalizes every cell of a header row.
func NormalizeHeaders(row []string) []string {
	headers := make([]string, len(row))
	for i, cell := range row {
		headers[i] = NormalizeHeader(cell)
	}
	return headers
}

// NormalizeHeader trims a header cell and replaces every character outside
// [A-Za-z0-9_] with an underscore, so "Staff ID" becomes "Staff_ID".
func NormalizeHeader(cell string) string {
	cell = strings.TrimSpace(cell)

	var b strings.Builder
	b.Grow(len(cell))
	for _, r := range cell {
		if isFieldChar(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

func isFieldChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}
