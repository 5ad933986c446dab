package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

// Field is one column/value pair supplied by a caller.
type Field struct {
	Column string
	Value  any
}

// Fields is an ordered column/value mapping. The order of the slice is the
// order in which placeholders are emitted and values are bound.
type Fields []Field

// FieldsFromMap converts a map into Fields sorted by column name, so the
// generated statement is the same for the same input.
func FieldsFromMap(m map[string]any) Fields {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make(Fields, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, Field{Column: k, Value: m[k]})
	}
	return fields
}

// Columns returns the column names in order.
func (f Fields) Columns() []string {
	cols := make([]string, len(f))
	for i, field := range f {
		cols[i] = field.Column
	}
	return cols
}

// Values returns the values in order.
func (f Fields) Values() []any {
	vals := make([]any, len(f))
	for i, field := range f {
		vals[i] = field.Value
	}
	return vals
}

// UnmarshalJSON decodes a JSON object keeping the key order of the input.
// A JSON null decodes into empty Fields.
func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*f = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("fields must be a JSON object")
	}

	fields := Fields{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		fields = append(fields, Field{Column: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*f = fields
	return nil
}

// MarshalJSON encodes Fields as a JSON object in order.
func (f Fields) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Column)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// normalizeValue turns a loosely typed argument into something the engine
// can bind. Integral numbers bind as integers.
func normalizeValue(v any) (any, error) {
	switch val := v.(type) {
	case nil, string, bool, int64, []byte:
		return val, nil
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case float32:
		return normalizeFloat(float64(val)), nil
	case float64:
		return normalizeFloat(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		fl, err := val.Float64()
		if err != nil {
			return nil, err
		}
		return fl, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// maxExactFloatInt is the largest magnitude below which every integer is
// exactly representable as a float64.
const maxExactFloatInt = 1 << 53

// normalizeFloat binds integral floats as integers while the value is
// exact. Larger magnitudes may already have been rounded by a JSON decoder,
// so they keep binding as REAL instead of posing as a precise integer.
func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) <= maxExactFloatInt {
		return int64(f)
	}
	return f
}

// normalizeValues applies normalizeValue to every element.
func normalizeValues(values []any) ([]any, error) {
	out := make([]any, len(values))
	for i, v := range values {
		nv, err := normalizeValue(v)
		if err != nil {
			return nil, invalidArgumentf("parameter %d: %v", i+1, err)
		}
		out[i] = nv
	}
	return out, nil
}
