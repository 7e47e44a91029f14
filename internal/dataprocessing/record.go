package dataprocessing

import (
	"fmt"
	"math"

	apperrors "spectrumloader/internal/errors"
	"spectrumloader/pkg/contracts/domain"
)

// record is a dict node of the raw dump together with its path from the
// root, used to name the field in errors.
type record struct {
	path   string
	fields map[string]any
}

func rootRecord(data domain.RawRecord) record {
	return record{fields: data}
}

func (r record) child(key string) string {
	if r.path == "" {
		return key
	}
	return r.path + "." + key
}

func (r record) lookup(key string) (any, error) {
	v, ok := r.fields[key]
	if !ok {
		return nil, apperrors.NewMissingFieldError(r.child(key))
	}
	return v, nil
}

func (r record) String(key string) (string, error) {
	v, err := r.lookup(key)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	}
	return "", apperrors.NewMalformedFieldError(r.child(key), "string", v)
}

func (r record) Int(key string) (int, error) {
	v, err := r.lookup(key)
	if err != nil {
		return 0, err
	}
	if n, ok := toInt(v); ok {
		return n, nil
	}
	return 0, apperrors.NewMalformedFieldError(r.child(key), "integer", v)
}

func (r record) Float(key string) (float64, error) {
	v, err := r.lookup(key)
	if err != nil {
		return 0, err
	}
	if f, ok := toFloat(v); ok {
		return f, nil
	}
	return 0, apperrors.NewMalformedFieldError(r.child(key), "number", v)
}

// Bytes reads a byte group. Python 2 dumps store them as str.
func (r record) Bytes(key string) ([]byte, error) {
	v, err := r.lookup(key)
	if err != nil {
		return nil, err
	}
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	}
	return nil, apperrors.NewMalformedFieldError(r.child(key), "bytes", v)
}

// Records reads a sequence of dicts.
func (r record) Records(key string) ([]record, error) {
	v, err := r.lookup(key)
	if err != nil {
		return nil, err
	}
	return r.records(key, v)
}

// OptionalRecords is Records for a key that may be absent or None.
func (r record) OptionalRecords(key string) ([]record, error) {
	v, ok := r.fields[key]
	if !ok || v == nil {
		return nil, nil
	}
	return r.records(key, v)
}

func (r record) records(key string, v any) ([]record, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, apperrors.NewMalformedFieldError(r.child(key), "sequence", v)
	}
	out := make([]record, len(items))
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", r.child(key), i)
		fields, ok := toMap(item)
		if !ok {
			return nil, apperrors.NewMalformedFieldError(path, "mapping", item)
		}
		out[i] = record{path: path, fields: fields}
	}
	return out, nil
}

func toMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case domain.RawRecord:
		return m, true
	}
	return nil, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case int16:
		return int(n), true
	case int8:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n <= math.MaxInt64 {
			return int(n), true
		}
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if i, ok := toInt(v); ok {
		return float64(i), true
	}
	return 0, false
}
