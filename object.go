package folio

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// object is a JSON object that keeps its members in document order along
// with their original encoding. Members this program does not interpret are
// written back exactly as they were read.
type object struct {
	keys   []string
	values map[string]json.RawMessage
}

var null = []byte("null")

func isNull(raw json.RawMessage) bool { return len(raw) == 0 || bytes.Equal(raw, null) }

// UnmarshalJSON walks the object token by token to record member order.
func (o *object) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected a JSON object, got %v", tok)
	}

	o.keys, o.values = nil, make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("member %q: %w", key, err)
		}
		o.put(key, raw)
	}
	// consume the closing brace
	_, err = dec.Token()
	return err
}

func (o object) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, k := range o.keys {
		w.Append(k, o.values[k])
	}
	return w.MarshalJSON()
}

// put replaces the member in place, or appends it if it is new.
func (o *object) put(key string, raw json.RawMessage) {
	if o.values == nil {
		o.values = make(map[string]json.RawMessage)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = raw
}

// set encodes v and stores it under key.
func (o *object) set(key string, v any) error {
	raw, err := marshal(v)
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", key, err)
	}
	o.put(key, raw)
	return nil
}

// get returns the raw member, absent and null members are reported as missing.
func (o object) get(key string) (json.RawMessage, bool) {
	raw, ok := o.values[key]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

// number returns the member as a float64 if it is a JSON number.
func (o object) number(key string) (float64, bool) {
	raw, ok := o.get(key)
	if !ok {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

// text returns the member as a string if it is a JSON string.
func (o object) text(key string) (string, bool) {
	raw, ok := o.get(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func (o object) len() int { return len(o.keys) }
