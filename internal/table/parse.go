package table

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by Parse when the body is not valid JSON.
var ErrInvalidJSON = errors.New("table: invalid JSON payload")

// Parse decodes a read API body into a RawTable.
//
// Decoding is lenient about shape: a missing or non-array "data" member
// produces an empty table, a row that is not an array becomes an empty row,
// and scalar cells that are not strings keep their JSON text ("12000",
// "true"). A null cell becomes "". Only syntactically invalid JSON is an
// error.
func Parse(body []byte) (RawTable, error) {
	if !gjson.ValidBytes(body) {
		return RawTable{}, ErrInvalidJSON
	}

	doc := gjson.ParseBytes(body)
	raw := RawTable{Success: doc.Get("success").Bool()}

	data := doc.Get("data")
	if !data.IsArray() {
		return raw, nil
	}

	rows := data.Array()
	raw.Data = make([][]string, 0, len(rows))
	for _, row := range rows {
		raw.Data = append(raw.Data, parseRow(row))
	}
	return raw, nil
}

// Message returns the first non-empty "message" or "error" member of a read
// API body. Used to explain a success=false payload.
func Message(body []byte) string {
	for _, path := range []string{"message", "error"} {
		if v := gjson.GetBytes(body, path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// ReportedFailure reports whether a read API body carries an explicit
// "success": false. A missing success member is not a failure.
func ReportedFailure(body []byte) bool {
	v := gjson.GetBytes(body, "success")
	return v.Exists() && v.Type == gjson.False
}

func parseRow(row gjson.Result) []string {
	if !row.IsArray() {
		return []string{}
	}

	cells := row.Array()
	out := make([]string, len(cells))
	for i, cell := range cells {
		switch cell.Type {
		case gjson.Null:
			out[i] = ""
		case gjson.String:
			out[i] = cell.Str
		default:
			out[i] = cell.Raw
		}
	}
	return out
}
