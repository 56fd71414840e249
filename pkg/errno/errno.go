package errno

import (
	"errors"

	"wallet-gateway/pkg/account"
	"wallet-gateway/pkg/chainctx"
	"wallet-gateway/pkg/rpc"
	"wallet-gateway/pkg/token"
	"wallet-gateway/pkg/txbuilder"
)

// Errno is a stable numeric code plus message for the HTTP surface.
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Common errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
)

// Account resolution (20300+)
var (
	ErrInvalidKey      = Errno{Code: 20301, Message: "Invalid private key"}
	ErrInvalidMnemonic = Errno{Code: 20302, Message: "Invalid mnemonic phrase"}
	ErrDecryption      = Errno{Code: 20303, Message: "Keystore decryption failed"}
)

// Chain access (20400+)
var (
	ErrConnectivity  = Errno{Code: 20401, Message: "Chain endpoint unavailable"}
	ErrRPC           = Errno{Code: 20402, Message: "RPC node returned an error"}
	ErrTokenNotFound = Errno{Code: 20403, Message: "Token contract not found"}
)

// Submission pipeline (20500+)
var (
	ErrSubmission = Errno{Code: 20501, Message: "Transaction submission failed"}
	ErrEncode     = Errno{Code: 20502, Message: "Call data encoding failed"}
	ErrEstimate   = Errno{Code: 20503, Message: "Gas estimation failed"}
	ErrNonce      = Errno{Code: 20504, Message: "Nonce fetch failed"}
	ErrSign       = Errno{Code: 20505, Message: "Transaction signing failed"}
	ErrBroadcast  = Errno{Code: 20506, Message: "Transaction broadcast failed"}
)

// sentinelCodes maps the core error taxonomy onto surface codes.
var sentinelCodes = []struct {
	target error
	code   Errno
}{
	{account.ErrInvalidKey, ErrInvalidKey},
	{account.ErrInvalidMnemonic, ErrInvalidMnemonic},
	{account.ErrDecryption, ErrDecryption},
	{chainctx.ErrConnectivity, ErrConnectivity},
	{rpc.ErrConnectivity, ErrConnectivity},
	{token.ErrNotFound, ErrTokenNotFound},
	{txbuilder.ErrSubmission, ErrSubmission},
	{txbuilder.ErrEncode, ErrEncode},
	{txbuilder.ErrEstimate, ErrEstimate},
	{txbuilder.ErrNonce, ErrNonce},
	{txbuilder.ErrSign, ErrSign},
	{txbuilder.ErrBroadcast, ErrBroadcast},
}

// Decode resolves an error to its surface code and a message. The underlying
// message is preserved verbatim: it usually carries the chain node's
// human-readable reason ("insufficient funds", "nonce too low").
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	switch typed := err.(type) {
	case *Errno:
		return typed.Code, typed.Message
	case Errno:
		return typed.Code, typed.Message
	}

	var rpcErr *rpc.Error
	if errors.As(err, &rpcErr) {
		return ErrRPC.Code, rpcErr.Message
	}

	for _, entry := range sentinelCodes {
		if errors.Is(err, entry.target) {
			return entry.code.Code, err.Error()
		}
	}

	return InternalServerError.Code, err.Error()
}
