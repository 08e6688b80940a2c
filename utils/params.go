package utils

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
)

// Truthy reports whether a decoded JSON value counts as present: nil, false,
// 0 and "" do not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}

// MaxBodyBytes mirrors the default JSON body limit of the original service.
const MaxBodyBytes = 100 << 10

var ErrNotObject = errors.New("request body must be a JSON object")

// DecodeObject reads a JSON object body. An empty body, or one sent with a
// non-JSON content type, decodes to an empty map.
func DecodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	if !isJSON(r) {
		return map[string]any{}, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	var raw any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// BodyErrorStatus maps a DecodeObject error to 413 or 400.
func BodyErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
