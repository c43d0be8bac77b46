package models

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// MarshalMsgpack encodes v as MessagePack using the json struct tags, so the
// binary export carries the same keys as the JSON document.
func MarshalMsgpack(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalMsgpack decodes data written by MarshalMsgpack into v.
func UnmarshalMsgpack(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
