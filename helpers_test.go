package rescale_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-openapi/runtime"

	"github.com/abhimamg/rescale-go"
)

const testAPIKey = "test-key"

// mustEncode encodes v as JSON and writes it to w.
// Panics on error - safe in tests since errors indicate test bugs.
func mustEncode(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("failed to encode response: " + err.Error())
	}
}

// mustDecode decodes JSON from r.Body into v.
// Panics on error - safe in tests since errors indicate test bugs.
func mustDecode(r *http.Request, v interface{}) {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		panic("failed to decode request: " + err.Error())
	}
}

// newTestClient starts a mock server and returns a client pointed at its
// /api/v2/ root. The server is closed when the test ends.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...rescale.Option) *rescale.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	opts = append([]rescale.Option{rescale.WithBaseURL(server.URL + "/api/v2/")}, opts...)
	return rescale.NewClient(testAPIKey, opts...)
}

// stubCall records one request made through stubTransport.
type stubCall struct {
	Method   string
	Path     string
	Body     any
	Field    string
	Filename string
	Content  []byte
}

// stubTransport answers requests from canned replies keyed by
// "METHOD path". A reply may be a value, which is JSON-encoded, or a
// func() any called per request. Unknown keys answer 404.
type stubTransport struct {
	calls   []stubCall
	replies map[string]any
	errors  map[string]error
}

var _ rescale.Transport = (*stubTransport)(nil)

func newStubTransport() *stubTransport {
	return &stubTransport{
		replies: map[string]any{},
		errors:  map[string]error{},
	}
}

func (s *stubTransport) reply(method, path string) (*rescale.Response, error) {
	key := method + " " + path
	if err, ok := s.errors[key]; ok {
		return nil, err
	}
	v, ok := s.replies[key]
	if !ok {
		return nil, &rescale.Error{Code: rescale.CodeRequest, Message: "no stub for " + key, Status: 404}
	}
	if f, ok := v.(func() any); ok {
		v = f()
	}
	if v == nil {
		return &rescale.Response{Status: http.StatusNoContent}, nil
	}
	body, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return &rescale.Response{Status: http.StatusOK, Body: body}, nil
}

func (s *stubTransport) Get(_ context.Context, path string) (*rescale.Response, error) {
	s.calls = append(s.calls, stubCall{Method: http.MethodGet, Path: path})
	return s.reply(http.MethodGet, path)
}

func (s *stubTransport) Post(_ context.Context, path string, body any) (*rescale.Response, error) {
	s.calls = append(s.calls, stubCall{Method: http.MethodPost, Path: path, Body: body})
	return s.reply(http.MethodPost, path)
}

func (s *stubTransport) Patch(_ context.Context, path string, body any) (*rescale.Response, error) {
	s.calls = append(s.calls, stubCall{Method: http.MethodPatch, Path: path, Body: body})
	return s.reply(http.MethodPatch, path)
}

func (s *stubTransport) PostMultipart(_ context.Context, path, field string, file runtime.NamedReadCloser) (*rescale.Response, error) {
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	s.calls = append(s.calls, stubCall{
		Method:   http.MethodPost,
		Path:     path,
		Field:    field,
		Filename: file.Name(),
		Content:  content,
	})
	return s.reply(http.MethodPost, path)
}

// find returns the calls made to method and path.
func (s *stubTransport) find(method, path string) []stubCall {
	var out []stubCall
	for _, c := range s.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// sequentialIDs returns a reply func yielding {"id": prefix+N, "name": ...}.
func sequentialIDs(prefix string) func() any {
	n := 0
	return func() any {
		n++
		return map[string]any{"id": fmt.Sprintf("%s%d", prefix, n), "name": fmt.Sprintf("file-%d", n)}
	}
}
