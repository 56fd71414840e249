package errno

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"wallet-gateway/pkg/account"
	"wallet-gateway/pkg/rpc"
	"wallet-gateway/pkg/token"
	"wallet-gateway/pkg/txbuilder"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"nil is OK", nil, 0, "Success"},
		{"errno passes through", ErrBind, ErrBind.Code, ErrBind.Message},
		{"unknown error", errors.New("boom"), InternalServerError.Code, "boom"},
		{
			"wrapped sentinel keeps the full message",
			fmt.Errorf("%w: nonce too low", txbuilder.ErrSubmission),
			ErrSubmission.Code,
			"transaction submission failed: nonce too low",
		},
		{"invalid key", fmt.Errorf("%w: odd length", account.ErrInvalidKey), ErrInvalidKey.Code, "invalid private key: odd length"},
		{"token not found", fmt.Errorf("%w: no contract", token.ErrNotFound), ErrTokenNotFound.Code, "token contract not found: no contract"},
		{"pipeline stage", fmt.Errorf("%w: execution reverted", txbuilder.ErrEstimate), ErrEstimate.Code, "gas estimation failed: execution reverted"},
		{"node error", &rpc.Error{Message: "insufficient funds"}, ErrRPC.Code, "insufficient funds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := Decode(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
