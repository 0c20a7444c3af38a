package rescale

import (
	"bytes"
	"encoding/json"

	"github.com/go-openapi/runtime"
)

// Response is a successful (status < 300) API response.
//
// The body is kept as received. Most endpoints return JSON, which
// [Response.Decode] unmarshals; bodies that are not valid JSON are
// still available through [Response.Text].
type Response struct {
	// Status is the HTTP status code.
	Status int

	// Body is the raw response body.
	Body []byte
}

// IsJSON reports whether the body is a valid JSON document.
func (r *Response) IsJSON() bool {
	return len(r.Body) > 0 && json.Valid(r.Body)
}

// Text returns the raw body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if !r.IsJSON() {
		return newError(CodeRequest, "response body is not JSON", r.Status, nil)
	}
	if err := runtime.JSONConsumer().Consume(bytes.NewReader(r.Body), v); err != nil {
		return newError(CodeRequest, "failed to decode response", r.Status, err)
	}
	return nil
}

// Value returns the body parsed as JSON, or the raw text when the body is
// not JSON.
func (r *Response) Value() any {
	if r.IsJSON() {
		var v any
		if err := json.Unmarshal(r.Body, &v); err == nil {
			return v
		}
	}
	return r.Text()
}
