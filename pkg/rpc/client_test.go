package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stub(t *testing.T, body string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCallEnvelope(t *testing.T) {
	var captured struct {
		JSONRPC string `json:"jsonrpc"`
		ID      string `json:"id"`
		Method  string `json:"method"`
		Params  []any  `json:"params"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"jsonrpc":"2.0","result":"0x1"}`))
	}))
	defer server.Close()

	raw, err := NewClient().Call(context.Background(), server.URL, "eth_blockNumber")
	require.NoError(t, err)
	assert.Equal(t, `"0x1"`, string(raw))

	assert.Equal(t, "2.0", captured.JSONRPC)
	assert.Equal(t, "eth_blockNumber", captured.Method)
	assert.NotEmpty(t, captured.ID)
	// Omitted params still serialize as an empty array, not null.
	assert.NotNil(t, captured.Params)
	assert.Empty(t, captured.Params)
}

func TestCallFalsyResultIsSuccess(t *testing.T) {
	// Presence of the result key decides success; its value does not.
	server := stub(t, `{"jsonrpc":"2.0","id":1,"result":0}`)

	raw, err := NewClient().Call(context.Background(), server.URL, "eth_getBalance")
	require.NoError(t, err)
	assert.Equal(t, "0", string(raw))
}

func TestCallNullResultFallsThroughToError(t *testing.T) {
	server := stub(t, `{"jsonrpc":"2.0","id":1,"result":null,"error":{"code":-32000,"message":"nonce too low"}}`)

	_, err := NewClient().Call(context.Background(), server.URL, "eth_sendRawTransaction")
	require.Error(t, err)

	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, "nonce too low", rpcErr.Message)
}

func TestCallErrorShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"object with message", `{"error":{"code":3,"message":"execution reverted"}}`, "execution reverted"},
		{"bare string", `{"error":"boom"}`, "boom"},
		{"object without message", `{"error":{"code":-32601}}`, `{"code":-32601}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := stub(t, tt.body)

			_, err := NewClient().Call(context.Background(), server.URL, "eth_call")
			var rpcErr *Error
			require.ErrorAs(t, err, &rpcErr)
			assert.Equal(t, tt.want, rpcErr.Message)
		})
	}
}

func TestCallNeitherResultNorError(t *testing.T) {
	server := stub(t, `{"jsonrpc":"2.0","id":1}`)

	raw, err := NewClient().Call(context.Background(), server.URL, "eth_whatever")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestCallConnectivity(t *testing.T) {
	server := stub(t, `{}`)
	server.Close() // refuse connections

	_, err := NewClient().Call(context.Background(), server.URL, "eth_chainId")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnectivity)
}

func TestCallMalformedBody(t *testing.T) {
	server := stub(t, `not json at all`)

	_, err := NewClient().Call(context.Background(), server.URL, "eth_chainId")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnectivity)
}

func TestCallString(t *testing.T) {
	server := stub(t, `{"jsonrpc":"2.0","id":1,"result":"0x5208"}`)

	s, err := NewClient().CallString(context.Background(), server.URL, "eth_estimateGas")
	require.NoError(t, err)
	assert.Equal(t, "0x5208", s)
}

func TestCallStringRejectsNonString(t *testing.T) {
	server := stub(t, `{"jsonrpc":"2.0","id":1,"result":{"x":1}}`)

	_, err := NewClient().CallString(context.Background(), server.URL, "eth_estimateGas")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConnectivity)
}
