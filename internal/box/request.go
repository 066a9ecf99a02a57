package box

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BaseURL is the Box Content API base. Tests point it at a local server.
const defaultBaseURL = "https://api.box.com/2.0"

// RequestOption customizes a single resource request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	headers http.Header
}

// WithHeader attaches an extra header to the request, e.g. If-Match.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = http.Header{}
		}
		o.headers.Set(key, value)
	}
}

// request builds and dispatches one API call. It waits for the session to
// become ready, attaches the bearer token, and on an expired-token response
// performs exactly one refresh followed by one retry; a second failure is
// surfaced unmodified.
func (conn *Connection) request(ctx context.Context, method string, segments []string, query url.Values, body any, out any, opts ...RequestOption) error {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	start := time.Now()
	err := conn.dispatch(ctx, method, segments, query, body, ro.headers, out)
	conn.client.metrics.RecordAPIOperation(ctx, operationLabel(method, segments),
		conn.session.Account(), time.Since(start), err)
	return err
}

func (conn *Connection) dispatch(ctx context.Context, method string, segments []string, query url.Values, body any, headers http.Header, out any) error {
	if err := conn.session.Ready(ctx); err != nil {
		return err
	}

	err := conn.do(ctx, method, segments, query, body, headers, out)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.authExpired() {
		if refreshErr := conn.refreshAndWait(ctx); refreshErr != nil {
			return refreshErr
		}
		return conn.do(ctx, method, segments, query, body, headers, out)
	}
	return err
}

// operationLabel names the operation by method and resource collection.
// Item ids are excluded to keep the metric cardinality bounded.
func operationLabel(method string, segments []string) string {
	if len(segments) == 0 {
		return method
	}
	return method + " " + segments[0]
}

// do performs a single HTTP round trip against the API.
func (conn *Connection) do(ctx context.Context, method string, segments []string, query url.Values, body any, headers http.Header, out any) error {
	u, err := conn.buildURL(segments, query)
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		data, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal request body: %w", marshalErr)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+conn.session.AccessToken())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := conn.client.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + strings.Join(segments, "/"), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (conn *Connection) buildURL(segments []string, query url.Values) (string, error) {
	var sb strings.Builder
	sb.WriteString(conn.client.baseURL)
	for _, seg := range segments {
		if seg == "" {
			return "", fmt.Errorf("empty path segment")
		}
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(seg))
	}
	if len(query) > 0 {
		sb.WriteByte('?')
		sb.WriteString(query.Encode())
	}
	return sb.String(), nil
}

// parseAPIError maps a non-success response to an APIError, preserving the
// provider's context_info for diagnostics.
func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		apiErr.Message = "failed to read error response"
		return apiErr
	}

	var parsed struct {
		Code        string         `json:"code"`
		Message     string         `json:"message"`
		RequestID   string         `json:"request_id"`
		ContextInfo map[string]any `json:"context_info"`
	}
	if jsonErr := json.Unmarshal(body, &parsed); jsonErr == nil && (parsed.Code != "" || parsed.Message != "") {
		apiErr.Code = parsed.Code
		apiErr.Message = parsed.Message
		apiErr.RequestID = parsed.RequestID
		apiErr.ContextInfo = parsed.ContextInfo
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}

// validateItemID checks that an id parameter looks like a Box item id
// (a decimal string). Violations surface synchronously, before any request
// is issued.
func validateItemID(field, id string) error {
	if id == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("must be numeric, got %q", id)}
		}
	}
	return nil
}
