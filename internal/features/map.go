package features

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Value is one feature: a number or a string. Undefined numbers are NaN.
type Value struct {
	Num    float64
	Text   string
	IsText bool
}

// Num wraps a number.
func Num(f float64) Value { return Value{Num: f} }

// Text wraps a string.
func Text(s string) Value { return Value{Text: s, IsText: true} }

// Undefined is the missing value.
func Undefined() Value { return Value{Num: math.NaN()} }

// IsUndefined reports a NaN number.
func (v Value) IsUndefined() bool { return !v.IsText && math.IsNaN(v.Num) }

func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.IsText:
		return json.Marshal(v.Text)
	case math.IsNaN(v.Num):
		return []byte("null"), nil
	case math.IsInf(v.Num, 1):
		return []byte(`"inf"`), nil
	case math.IsInf(v.Num, -1):
		return []byte(`"-inf"`), nil
	default:
		return []byte(strconv.FormatFloat(v.Num, 'f', -1, 64)), nil
	}
}

// Map is a flat feature map that keeps insertion order. Setting an existing
// key replaces its value in place.
type Map struct {
	keys []string
	vals map[string]Value
}

func NewMap() *Map {
	return &Map{vals: make(map[string]Value)}
}

func (m *Map) Set(key string, v Value) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// SetNum is Set(key, Num(f)).
func (m *Map) SetNum(key string, f float64) { m.Set(key, Num(f)) }

// SetInt stores a count.
func (m *Map) SetInt(key string, n int) { m.Set(key, Num(float64(n))) }

// SetBool stores 1 or 0.
func (m *Map) SetBool(key string, b bool) {
	if b {
		m.SetNum(key, 1)
		return
	}
	m.SetNum(key, 0)
}

func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Map) Len() int { return len(m.keys) }

// Merge copies every entry of o into m; o wins on collisions.
func (m *Map) Merge(o *Map) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		m.Set(k, o.vals[k])
	}
}

// Each calls fn for every entry in order.
func (m *Map) Each(fn func(key string, v Value)) {
	for _, k := range m.keys {
		fn(k, m.vals[k])
	}
}

// MarshalJSON writes the entries as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := m.vals[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
