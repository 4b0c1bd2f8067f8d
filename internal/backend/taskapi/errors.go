package taskapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxMessageLen caps plain-text error bodies, in bytes.
const maxMessageLen = 200

// ErrRequestFailed matches every failed call: transport errors and non-2xx
// responses alike. Callers are not expected to tell them apart.
var ErrRequestFailed = errors.New("request failed")

// RequestError describes a non-2xx response.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int

	// Message is the server's error text, when the body carried one.
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.Path, e.StatusCode)
}

// Is makes errors.Is(err, ErrRequestFailed) hold.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

// errorMessage extracts the message from the two body shapes the backend
// uses: {"error": "text"} and {"error": {"message": "text"}}. It falls back
// to "message" at the top level and then to the trimmed body.
func errorMessage(body []byte) string {
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if len(envelope.Error) > 0 {
			var text string
			if json.Unmarshal(envelope.Error, &text) == nil && text != "" {
				return text
			}
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(envelope.Error, &nested) == nil && nested.Message != "" {
				return nested.Message
			}
		}
		if envelope.Message != "" {
			return envelope.Message
		}
		return ""
	}

	text := strings.TrimSpace(string(body))
	if len(text) > maxMessageLen {
		cut := maxMessageLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}
