package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// encode marshals v without escaping <, > and &.
// json.Marshal re-escapes whatever a MarshalJSON returns; only an encoder with
// SetEscapeHTML(false) at the top level keeps the HTML as written here.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// splitUnknown returns the members of the JSON object in data whose keys are
// not in known, and the set of known keys that data does contain.
func splitUnknown(data []byte, known []string) (map[string]json.RawMessage, map[string]struct{}, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, nil, err
	}

	present := make(map[string]struct{}, len(known))

	for _, k := range known {
		if _, ok := all[k]; ok {
			present[k] = struct{}{}
			delete(all, k)
		}
	}

	if len(all) == 0 {
		return nil, present, nil
	}

	return all, present, nil
}

// appendUnknown splices extra members into the encoded object obj, in key order.
func appendUnknown(obj []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return obj, nil
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var buf bytes.Buffer

	buf.Write(obj[:len(obj)-1])

	for _, k := range keys {
		if buf.Bytes()[buf.Len()-1] != '{' {
			buf.WriteByte(',')
		}

		if err := writeMember(&buf, k, extra[k]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// writeMember appends "key":value to buf.
func writeMember(buf *bytes.Buffer, key string, value any) error {
	name, err := encode(key)
	if err != nil {
		return err
	}

	raw, err := encode(value)
	if err != nil {
		return err
	}

	buf.Write(name)
	buf.WriteByte(':')
	buf.Write(raw)

	return nil
}
