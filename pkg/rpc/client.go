package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// ErrConnectivity marks transport-level failures: unreachable endpoint,
// malformed URL, unreadable response body.
var ErrConnectivity = errors.New("rpc endpoint unreachable")

// Error is the typed error for a JSON-RPC error envelope returned by the node.
// Message carries error.message, or the raw error value when the node did not
// send a message field.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Client posts single JSON-RPC 2.0 requests. It performs no retries and no
// timeout beyond the underlying http.Client default.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{httpClient: http.DefaultClient}
}

// NewClientWithHTTP allows injecting a configured http.Client (tests, custom TLS).
func NewClientWithHTTP(h *http.Client) *Client {
	return &Client{httpClient: h}
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// Call sends one request and interprets the reply. Success is governed by the
// presence of a non-null "result" key, not its truthiness: {"result": 0} is a
// success with result 0. An "error" envelope yields *Error. A body carrying
// neither is treated as success with a nil result.
func (c *Client) Call(ctx context.Context, endpoint, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}

	// 1. Build the envelope
	payload, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", method, err)
	}

	// 2. Post it
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	// 3. Inspect the body
	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid response body: %v", ErrConnectivity, err)
	}

	if present(parsed.Result) {
		return parsed.Result, nil
	}
	if present(parsed.Error) {
		return nil, decodeError(parsed.Error)
	}

	// Neither result nor error: success with an empty result.
	return nil, nil
}

// CallString is Call for methods whose result is a JSON string (the common
// case for the eth_ namespace: quantities and data are hex strings).
func (c *Client) CallString(ctx context.Context, endpoint, method string, params ...any) (string, error) {
	raw, err := c.Call(ctx, endpoint, method, params...)
	if err != nil {
		return "", err
	}
	if raw == nil {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%s: result is not a string: %v", method, err)
	}
	return s, nil
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// decodeError extracts error.message, falling back to the raw error value.
func decodeError(raw json.RawMessage) *Error {
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return &Error{Message: obj.Message}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &Error{Message: s}
	}
	return &Error{Message: string(raw)}
}
