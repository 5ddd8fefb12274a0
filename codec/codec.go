// Package codec provides the serialization layer for the JSON documents
// embedded inside protocol-level string fields: status.StatusResponse's
// server-list ping payload and login.Disconnect's chat-component reason
// (see mcproto/message).
//
// These documents are not an interchangeable envelope format — they are
// specific wire-visible strings a real Minecraft client parses — so
// encoding/json is the only serialization that applies here.
package codec

import "encoding/json"

// Encode serializes v to JSON, the format status/login string payloads use.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode deserializes JSON data into v.
func Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
