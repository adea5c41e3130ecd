package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/JonMunkholm/graphtool/internal/dataset"
	"github.com/spf13/cast"
)

// member is one key/value pair of a JSON object, kept in document order.
type member struct {
	key   string
	value json.RawMessage
}

// parseJSON accepts three layouts:
//
//	[{"a": 1, "b": 2}, {"a": 3, "c": 4}]   records; keys are unioned in first-seen order
//	[[1, 2], [3, 4]]                       rows; columns are named "0", "1", ...
//	{"a": [1, 3], "b": [2, 4]}             columns; values may also be {"0": 1, "1": 3}
func parseJSON(data []byte) (*dataset.Dataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, dataset.ErrNoColumns
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := strictUnmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return parseJSONRows(items)
	case '{':
		members, err := decodeObject(trimmed)
		if err != nil {
			return nil, err
		}
		return parseJSONColumns(members)
	default:
		return nil, errors.New("expected a JSON array or object at top level")
	}
}

func parseJSONRows(items []json.RawMessage) (*dataset.Dataset, error) {
	if len(items) == 0 {
		return nil, dataset.ErrNoColumns
	}

	switch firstByte(items[0]) {
	case '{':
		var header []string
		seen := make(map[string]int)
		rows := make([]map[string]string, len(items))

		for i, item := range items {
			if firstByte(item) != '{' {
				return nil, fmt.Errorf("record %d: expected an object", i+1)
			}
			members, err := decodeObject(item)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i+1, err)
			}
			row := make(map[string]string, len(members))
			for _, m := range members {
				if _, ok := seen[m.key]; !ok {
					seen[m.key] = len(header)
					header = append(header, m.key)
				}
				cell, err := cellText(m.value)
				if err != nil {
					return nil, fmt.Errorf("record %d, key %q: %w", i+1, m.key, err)
				}
				row[m.key] = cell
			}
			rows[i] = row
		}

		records := make([][]string, len(rows))
		for i, row := range rows {
			rec := make([]string, len(header))
			for c, key := range header {
				rec[c] = row[key]
			}
			records[i] = rec
		}
		return dataset.New(header, records)

	case '[':
		width := 0
		records := make([][]string, len(items))
		for i, item := range items {
			var values []json.RawMessage
			if firstByte(item) != '[' {
				return nil, fmt.Errorf("row %d: expected an array", i+1)
			}
			if err := json.Unmarshal(item, &values); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			rec := make([]string, len(values))
			for c, v := range values {
				cell, err := cellText(v)
				if err != nil {
					return nil, fmt.Errorf("row %d: %w", i+1, err)
				}
				rec[c] = cell
			}
			width = max(width, len(rec))
			records[i] = rec
		}
		header := make([]string, width)
		for c := range header {
			header[c] = strconv.Itoa(c)
		}
		return dataset.New(header, records)

	default:
		return nil, errors.New("expected an array of objects or arrays")
	}
}

func parseJSONColumns(members []member) (*dataset.Dataset, error) {
	if len(members) == 0 {
		return nil, dataset.ErrNoColumns
	}

	header := make([]string, len(members))
	for i, m := range members {
		header[i] = m.key
	}

	switch firstByte(members[0].value) {
	case '[':
		var columns [][]string
		for _, m := range members {
			var values []json.RawMessage
			if firstByte(m.value) != '[' {
				return nil, fmt.Errorf("column %q: mixed columnar layouts", m.key)
			}
			if err := json.Unmarshal(m.value, &values); err != nil {
				return nil, fmt.Errorf("column %q: %w", m.key, err)
			}
			if len(columns) > 0 && len(values) != len(columns[0]) {
				return nil, fmt.Errorf("column %q: all arrays must be of the same length", m.key)
			}
			col := make([]string, len(values))
			for r, v := range values {
				cell, err := cellText(v)
				if err != nil {
					return nil, fmt.Errorf("column %q: %w", m.key, err)
				}
				col[r] = cell
			}
			columns = append(columns, col)
		}
		return dataset.New(header, transpose(columns, len(columns[0])))

	case '{':
		var index []string
		position := make(map[string]int)
		cells := make([]map[string]string, len(members))

		for i, m := range members {
			if firstByte(m.value) != '{' {
				return nil, fmt.Errorf("column %q: mixed columnar layouts", m.key)
			}
			entries, err := decodeObject(m.value)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", m.key, err)
			}
			cells[i] = make(map[string]string, len(entries))
			for _, e := range entries {
				if _, ok := position[e.key]; !ok {
					position[e.key] = len(index)
					index = append(index, e.key)
				}
				cell, err := cellText(e.value)
				if err != nil {
					return nil, fmt.Errorf("column %q: %w", m.key, err)
				}
				cells[i][e.key] = cell
			}
		}

		records := make([][]string, len(index))
		for r, key := range index {
			rec := make([]string, len(members))
			for c := range members {
				rec[c] = cells[c][key]
			}
			records[r] = rec
		}
		return dataset.New(header, records)

	default:
		return nil, errors.New("if using all scalar values, an index is required")
	}
}

// decodeObject reads a JSON object while preserving key order.
func decodeObject(raw []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("expected an object")
	}

	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		members = append(members, member{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return members, nil
}

// cellText converts a JSON scalar to raw cell text. Null becomes the empty
// (missing) cell; nested objects and arrays keep their compact JSON form.
func cellText(raw json.RawMessage) (string, error) {
	switch firstByte(raw) {
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case json.Number:
		return t.String(), nil
	case string:
		return t, nil
	default:
		return cast.ToStringE(t)
	}
}

// strictUnmarshal decodes a single JSON value and rejects trailing data.
func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}

func firstByte(raw []byte) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}

func transpose(columns [][]string, rows int) [][]string {
	records := make([][]string, rows)
	for r := range records {
		rec := make([]string, len(columns))
		for c, col := range columns {
			rec[c] = col[r]
		}
		records[r] = rec
	}
	return records
}
