package pepay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pepay-io/pepay-go/plugin"
)

// errorBody is the failure payload returned by the API.
type errorBody struct {
	Error string    `json:"error"`
	Code  ErrorCode `json:"code"`
}

// request describes one API call.
type request struct {
	operation string
	method    string
	path      string      // relative, query included
	body      []byte      // already JSON-encoded, nil for none
	header    http.Header // operation-specific, wins over defaults
}

// do performs a single round trip and decodes a 2xx body into out.
// Non-2xx responses become *Error; transport failures are returned as is.
func (c *Client) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return fmt.Errorf("pepay: build request: %w", err)
	}

	req.Header.Set(HeaderAPIKey, c.apiKey)
	req.Header.Set(HeaderContentType, "application/json")
	for key, values := range r.header {
		req.Header[http.CanonicalHeaderKey(key)] = values
	}

	info := plugin.RequestInfo{
		Operation:      r.operation,
		Method:         r.method,
		Path:           r.path,
		IdempotencyKey: req.Header.Get(HeaderIdempotencyKey),
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	info.Duration = time.Since(start)
	if err != nil {
		c.logger.Warn("pepay: request failed",
			"operation", r.operation,
			"method", r.method,
			"path", r.path,
			"error", err,
		)
		c.finish(ctx, info, err)
		return err
	}
	defer resp.Body.Close()

	info.StatusCode = resp.StatusCode

	data, err := io.ReadAll(resp.Body)
	info.Duration = time.Since(start)
	if err != nil {
		c.finish(ctx, info, err)
		return err
	}

	c.logger.Debug("pepay: request completed",
		"operation", r.operation,
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"elapsed", info.Duration,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp.StatusCode, data)
		c.logger.Warn("pepay: api error",
			"operation", r.operation,
			"status", apiErr.StatusCode,
			"code", apiErr.Code,
			"message", apiErr.Message,
		)
		c.finish(ctx, info, apiErr)
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		err = fmt.Errorf("pepay: decode response: %w", err)
		c.finish(ctx, info, err)
		return err
	}

	c.finish(ctx, info, nil)
	return nil
}

// decodeError builds an *Error from a failure response body.
func decodeError(status int, data []byte) *Error {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return &Error{
			Message:    http.StatusText(status),
			Code:       ErrCodeMalformedResponse,
			StatusCode: status,
			err:        fmt.Errorf("%w: %w", ErrMalformedResponse, err),
		}
	}

	if body.Error == "" || body.Code == "" {
		msg := body.Error
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &Error{
			Message:    msg,
			Code:       ErrCodeMalformedResponse,
			StatusCode: status,
			err:        fmt.Errorf("%w: missing error or code field", ErrMalformedResponse),
		}
	}

	return &Error{
		Message:    body.Error,
		Code:       body.Code,
		StatusCode: status,
	}
}

// finish emits the request hooks. They run on a context detached from the
// caller's cancellation so an expired request still reports its failure.
func (c *Client) finish(ctx context.Context, info plugin.RequestInfo, err error) {
	ctx = context.WithoutCancel(ctx)
	if err != nil {
		c.plugins.EmitRequestFailed(ctx, info, err)
	}
	c.plugins.EmitRequestCompleted(ctx, info)
}
