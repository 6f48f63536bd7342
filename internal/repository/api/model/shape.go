package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// listPayload returns the JSON array held by data. The API answers list endpoints either
// with a bare array or with an object wrapping the array under one of keys.
func listPayload(data []byte, keys ...string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		return trimmed, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, err
	}
	for _, key := range keys {
		if raw, ok := obj[key]; ok {
			return raw, nil
		}
	}
	return nil, fmt.Errorf("unexpected list shape, none of %v present", keys)
}

// objectPayload unwraps {key: {...}} envelopes and passes bare objects through.
func objectPayload(data []byte, key string) json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return data
	}
	if raw, ok := obj[key]; ok && len(raw) > 0 && raw[0] == '{' {
		return raw
	}
	return data
}

// ErrorBody is the JSON error payload of the API.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Text prefers message over error.
func (e ErrorBody) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}
