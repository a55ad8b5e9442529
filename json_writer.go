package btcfolio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObject builds a JSON object whose keys keep their insertion order.
// The zero value is an empty object. The first marshaling error is kept and
// returned by MarshalJSON.
type jsonObject struct {
	buf bytes.Buffer
	err error
}

// Append adds a key and its json.Marshal encoded value.
func (o *jsonObject) Append(key string, value any) *jsonObject {
	if o.err != nil {
		return o
	}
	v, err := json.Marshal(value)
	if err != nil {
		o.err = fmt.Errorf("cannot encode field %q: %w", key, err)
		return o
	}
	if o.buf.Len() > 0 {
		o.buf.WriteByte(',')
	}
	k, _ := json.Marshal(key)
	o.buf.Write(k)
	o.buf.WriteByte(':')
	o.buf.Write(v)
	return o
}

// Optional is Append, except that zero values are left out.
func (o *jsonObject) Optional(key string, value any) *jsonObject {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return o
	}
	return o.Append(key, value)
}

func (o *jsonObject) MarshalJSON() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	b := make([]byte, 0, o.buf.Len()+2)
	b = append(b, '{')
	b = append(b, o.buf.Bytes()...)
	return append(b, '}'), nil
}
