package rescale

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-openapi/runtime"
	httptransport "github.com/go-openapi/runtime/client"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the versioned REST root of the Rescale platform.
	DefaultBaseURL = "https://platform.rescale.com/api/v2/"

	defaultTimeout = 60 * time.Second
)

// maxErrorBodySize limits how much of an error response body is kept.
const maxErrorBodySize = 4096

// Transport issues authenticated requests against the Rescale API.
//
// Paths are relative to the base URL and may carry a query string, for
// example "coretypes/?page=2". [*Client] is the production implementation;
// entity operations such as [File.Upload] and [Job.Create] accept any
// Transport so they can be driven against a stub.
type Transport interface {
	Get(ctx context.Context, path string) (*Response, error)
	Post(ctx context.Context, path string, body any) (*Response, error)
	PostMultipart(ctx context.Context, path, field string, file runtime.NamedReadCloser) (*Response, error)
	Patch(ctx context.Context, path string, body any) (*Response, error)
}

// Client is the Rescale API client.
//
// The API key is sent as "Authorization: Token <key>" on every request.
// Client does not read the environment; see the config package for that.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     zerolog.Logger

	rt      *httptransport.Runtime
	initErr error
}

var _ Transport = (*Client)(nil)

// NewClient creates a new Rescale client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		timeout:    defaultTimeout,
		userAgent:  "rescale-go/" + Version,
		logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.rt, c.initErr = c.newRuntime()

	if v, err := c.APIVersion(); err == nil {
		if res := CheckCompatibility(v); !res.IsCompatible() {
			c.logger.Warn().
				Str("base_url", c.baseURL).
				Str("supported", APIVersionRange).
				Msg(res.Message)
		}
	}

	return c
}

func (c *Client) newRuntime() (*httptransport.Runtime, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, newError(CodeTransport, "invalid base URL", 0, err)
	}
	if u.Host == "" || u.Scheme == "" {
		return nil, newError(CodeTransport, fmt.Sprintf("invalid base URL %q", c.baseURL), 0, nil)
	}

	rt := httptransport.NewWithClient(u.Host, u.Path, []string{u.Scheme}, c.httpClient)
	// Error pages are not always JSON; the response reader only needs the bytes.
	rt.Consumers["*/*"] = runtime.ByteStreamConsumer()
	rt.SetLogger(runtimeLogger{log: c.logger})
	// The runtime debug dump includes the Authorization header; keep it off.
	rt.SetDebug(false)
	return rt, nil
}

var apiVersionSegment = regexp.MustCompile(`/v(\d+(?:\.\d+){0,2})/?`)

// APIVersion returns the API version targeted by the base URL, derived from
// its "/vN/" path segment and normalized to semantic form ("2.0.0").
func (c *Client) APIVersion() (string, error) {
	m := apiVersionSegment.FindStringSubmatch(c.baseURL)
	if m == nil {
		return "", fmt.Errorf("no API version segment in %q", c.baseURL)
	}
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, func(r runtime.ClientRequest) error { return nil }, runtime.JSONMime)
}

// Post issues a POST request. A nil body sends no payload.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, jsonBody(body), runtime.JSONMime)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, jsonBody(body), runtime.JSONMime)
}

// PostMultipart uploads file as the form field named field.
//
// The file is closed before PostMultipart returns, on success or failure.
func (c *Client) PostMultipart(ctx context.Context, path, field string, file runtime.NamedReadCloser) (*Response, error) {
	defer func() { _ = file.Close() }()
	return c.do(ctx, http.MethodPost, path, func(r runtime.ClientRequest) error {
		return r.SetFileParam(field, file)
	}, runtime.MultipartFormMime)
}

func jsonBody(body any) func(runtime.ClientRequest) error {
	return func(r runtime.ClientRequest) error {
		if body == nil {
			return nil
		}
		return r.SetBodyParam(body)
	}
}

// do executes a single request through the go-openapi runtime and
// classifies the response.
func (c *Client) do(ctx context.Context, method, rawPath string, params func(runtime.ClientRequest) error, mediaType string) (*Response, error) {
	if c.initErr != nil {
		return nil, c.initErr
	}
	if c.apiKey == "" {
		return nil, newError(CodeAuthentication, "API key is not set", 0, nil)
	}

	ref, err := url.Parse(rawPath)
	if err != nil {
		return nil, newError(CodeRequest, fmt.Sprintf("invalid path %q", rawPath), 0, err)
	}

	requestID := uuid.NewString()
	start := time.Now()

	op := &runtime.ClientOperation{
		ID:                 method + " " + ref.Path,
		Method:             method,
		PathPattern:        ref.Path,
		ProducesMediaTypes: []string{runtime.JSONMime},
		ConsumesMediaTypes: []string{mediaType},
		AuthInfo: runtime.ClientAuthInfoWriterFunc(func(r runtime.ClientRequest, _ strfmt.Registry) error {
			return r.SetHeaderParam("Authorization", "Token "+c.apiKey)
		}),
		Params: runtime.ClientRequestWriterFunc(func(r runtime.ClientRequest, _ strfmt.Registry) error {
			if err := r.SetTimeout(c.timeout); err != nil {
				return err
			}
			if err := r.SetHeaderParam("User-Agent", c.userAgent); err != nil {
				return err
			}
			if err := r.SetHeaderParam("X-Request-ID", requestID); err != nil {
				return err
			}
			for k, vs := range ref.Query() {
				if err := r.SetQueryParam(k, vs...); err != nil {
					return err
				}
			}
			return params(r)
		}),
		Reader: runtime.ClientResponseReaderFunc(func(resp runtime.ClientResponse, _ runtime.Consumer) (interface{}, error) {
			return readResponse(resp)
		}),
		Context: ctx,
	}

	result, err := c.rt.Submit(op)

	event := c.logger.Debug().
		Str("method", method).
		Str("path", rawPath).
		Str("request_id", requestID).
		Dur("duration", time.Since(start))
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			event.Int("status", apiErr.Status).Str("error", apiErr.Code).Msg("request failed")
			return nil, apiErr
		}
		event.Err(err).Msg("request failed")
		return nil, c.handleError(ctx, err)
	}

	resp, ok := result.(*Response)
	if !ok {
		return nil, newError(CodeTransport, fmt.Sprintf("unexpected response type %T", result), 0, nil)
	}
	event.Int("status", resp.Status).Msg("request completed")
	return resp, nil
}

// handleError converts a transport-level failure into an *Error.
func (c *Client) handleError(ctx context.Context, err error) error {
	if ctx != nil && ctx.Err() != nil {
		return newError(CodeTransport, "request cancelled", 0, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(CodeTransport, fmt.Sprintf("request timed out after %s", c.timeout), 0, err)
	}
	return newError(CodeTransport, "request failed", 0, err)
}

// readResponse classifies a response by status code.
func readResponse(resp runtime.ClientResponse) (*Response, error) {
	status := resp.Code()
	if status >= http.StatusMultipleChoices {
		body, err := io.ReadAll(io.LimitReader(resp.Body(), maxErrorBodySize))
		if err != nil {
			err = fmt.Errorf("read error body: %w", err)
		}
		if status == http.StatusUnauthorized {
			return nil, &Error{
				Code:    CodeAuthentication,
				Message: "invalid API key",
				Status:  status,
				Body:    string(body),
				Cause:   err,
			}
		}
		return nil, &Error{
			Code:    CodeRequest,
			Message: fmt.Sprintf("request failed with status %d", status),
			Status:  status,
			Body:    string(body),
			Cause:   err,
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, newError(CodeTransport, "failed to read response body", status, err)
	}
	return &Response{Status: status, Body: body}, nil
}

// runtimeLogger routes go-openapi runtime logging through zerolog.
type runtimeLogger struct {
	log zerolog.Logger
}

func (l runtimeLogger) Printf(format string, args ...interface{}) {
	l.log.Info().Msgf(format, args...)
}

func (l runtimeLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(format, args...)
}
