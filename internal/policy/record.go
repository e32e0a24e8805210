package policy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Well-known field names.
const (
	FieldNumero     = "numero"
	FieldID         = "id"
	FieldCliente    = "cliente"
	FieldVencimento = "vencimento"
	FieldStatus     = "status"
	FieldCoberturas = "coberturas"
	FieldDetails    = "details"
)

// Record is one insurance-policy entry as returned by the backend. It keeps the
// field order of the original JSON object so unknown fields can be listed in the
// order the backend sent them.
type Record struct {
	keys   []string
	values map[string]any
}

// ResultSet is the ordered collection of records from one successful search.
type ResultSet []Record

// Set stores value under key. A new key is appended to the field order; an
// existing key keeps its position.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the raw value stored under key.
func (r Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the field names in their original order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len reports the number of fields.
func (r Record) Len() int {
	return len(r.keys)
}

// Details returns the nested details record, when present.
func (r Record) Details() (Record, bool) {
	v, ok := r.values[FieldDetails]
	if !ok {
		return Record{}, false
	}
	d, ok := v.(Record)
	return d, ok
}

// Lookup resolves a field name on the record, falling back to the details
// record. A "details." prefix restricts the lookup to the details record.
func (r Record) Lookup(name string) (any, bool) {
	if rest, ok := strings.CutPrefix(name, FieldDetails+"."); ok {
		d, ok := r.Details()
		if !ok {
			return nil, false
		}
		return d.Get(rest)
	}
	if v, ok := r.Get(name); ok {
		return v, true
	}
	if d, ok := r.Details(); ok {
		return d.Get(name)
	}
	return nil, false
}

// Key returns the stable identifying key of the record: numero, falling back
// to id. Empty means the record carries no usable identity.
func (r Record) Key() string {
	for _, name := range []string{FieldNumero, FieldID} {
		v, ok := r.values[name]
		if !ok {
			continue
		}
		if s, ok := scalarString(v); ok && s != "" {
			return s
		}
	}
	return ""
}

// Cliente returns the client name, or empty when absent.
func (r Record) Cliente() string {
	v, ok := r.values[FieldCliente]
	if !ok {
		return ""
	}
	s, _ := scalarString(v)
	return s
}

// UnmarshalJSON decodes a JSON object while preserving its key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return err
	}
	rec, ok := v.(Record)
	if !ok {
		return errors.New("policy record must be a JSON object")
	}
	*r = rec
	return nil
}

// MarshalJSON encodes the record with its original key order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeResultSet parses a JSON array of objects into a ResultSet.
func DecodeResultSet(data []byte) (ResultSet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after result array")
	}
	list, ok := v.([]any)
	if !ok {
		return nil, errors.New("result must be a JSON array")
	}
	set := make(ResultSet, 0, len(list))
	for i, item := range list {
		rec, ok := item.(Record)
		if !ok {
			return nil, fmt.Errorf("result item %d is not an object", i)
		}
		set = append(set, rec)
	}
	return set, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		var rec Record
		rec.values = make(map[string]any)
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", kt)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			rec.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return rec, nil
	case '[':
		list := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return list, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}
