package txbuilder

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"wallet-gateway/pkg/account"
	"wallet-gateway/pkg/rpc"
	"wallet-gateway/pkg/token"
)

// Pipeline stage errors. Each step of Send wraps its failure in exactly one
// of these, so callers can tell where an aborted call died.
var (
	ErrEncode    = errors.New("call data encoding failed")
	ErrEstimate  = errors.New("gas estimation failed")
	ErrNonce     = errors.New("nonce fetch failed")
	ErrSign      = errors.New("transaction signing failed")
	ErrBroadcast = errors.New("transaction broadcast failed")
)

// ErrSubmission is the transfer-path counterpart of the stage errors above:
// it wraps any network rejection of a built transfer (insufficient funds,
// nonce too low, gas too low), preserving the node's message.
var ErrSubmission = errors.New("transaction submission failed")

// DefaultGasPriceGwei applies when the caller supplies no gas price override.
const DefaultGasPriceGwei = "100"

// Request describes an arbitrary contract invocation to build, sign and
// broadcast over the raw path.
type Request struct {
	RPCURL          string
	ContractAddress string
	Method          string
	Params          []any
	ABI             *abi.ABI // nil selects the standard token ABI
	Value           string   // native units, decimal; empty means no value
	GasPriceGwei    string   // decimal gwei; empty means DefaultGasPriceGwei
	GasLimit        uint64   // 0 means use the estimate
	Nonce           *uint64  // nil means fetch via eth_getTransactionCount
	PrivateKey      string
	ChainID         int64
}

// Send drives the six-step raw pipeline: encode, estimate, fetch nonce,
// build, sign, broadcast. It talks JSON-RPC directly and bypasses the chain
// context resolver. Every step is a hard dependency on the previous one; any
// failure aborts the whole call and nothing is retried or persisted.
func Send(ctx context.Context, client *rpc.Client, req Request) (string, error) {
	// The signature domain is chain-specific; a missing chain id must fail
	// here, never fall back to a default.
	if req.ChainID <= 0 {
		return "", fmt.Errorf("%w: chain id is required", ErrSign)
	}
	signer, err := account.FromPrivateKey(req.PrivateKey)
	if err != nil {
		return "", err
	}
	if !common.IsHexAddress(req.ContractAddress) {
		return "", fmt.Errorf("%w: invalid contract address %q", ErrEncode, req.ContractAddress)
	}
	to := common.HexToAddress(req.ContractAddress)

	contractABI := req.ABI
	if contractABI == nil {
		standard := token.MustStandardABI()
		contractABI = &standard
	}

	// 1. Encode call data against the ABI
	method, ok := contractABI.Methods[req.Method]
	if !ok {
		return "", fmt.Errorf("%w: method %q not in ABI", ErrEncode, req.Method)
	}
	args, err := coerceArgs(method, req.Params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	data, err := contractABI.Pack(req.Method, args...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}

	var value *big.Int
	if req.Value != "" {
		value, err = token.ParseAmount(req.Value, token.NativeDecimals)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrEncode, err)
		}
	}

	// 2. Estimate gas for the encoded call
	callMsg := map[string]any{
		"from": signer.Address.Hex(),
		"to":   to.Hex(),
		"data": hexutil.Encode(data),
	}
	if value != nil {
		callMsg["value"] = hexutil.EncodeBig(value)
	}
	estimateHex, err := client.CallString(ctx, req.RPCURL, "eth_estimateGas", callMsg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEstimate, err)
	}
	estimate, err := hexutil.DecodeUint64(estimateHex)
	if err != nil {
		return "", fmt.Errorf("%w: bad estimate %q: %v", ErrEstimate, estimateHex, err)
	}

	// 3. Fetch the signer's nonce unless the caller pinned one
	var nonce uint64
	if req.Nonce != nil {
		nonce = *req.Nonce
	} else {
		nonceHex, err := client.CallString(ctx, req.RPCURL, "eth_getTransactionCount", signer.Address.Hex(), "latest")
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNonce, err)
		}
		nonce, err = hexutil.DecodeUint64(nonceHex)
		if err != nil {
			return "", fmt.Errorf("%w: bad nonce %q: %v", ErrNonce, nonceHex, err)
		}
	}

	// 4. Build the transaction
	gasPriceGwei := req.GasPriceGwei
	if gasPriceGwei == "" {
		gasPriceGwei = DefaultGasPriceGwei
	}
	gasPrice, err := token.GweiToWei(gasPriceGwei)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSign, err)
	}
	gasLimit := req.GasLimit
	if gasLimit == 0 {
		gasLimit = estimate
	}
	if value == nil {
		value = new(big.Int)
	}
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	// 5. Sign for the request's chain
	signed, err := types.SignTx(tx, types.NewEIP155Signer(big.NewInt(req.ChainID)), signer.Key())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSign, err)
	}

	// 6. Serialize and broadcast
	rawTx, err := signed.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBroadcast, err)
	}
	hash, err := client.CallString(ctx, req.RPCURL, "eth_sendRawTransaction", hexutil.Encode(rawTx))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBroadcast, err)
	}
	return hash, nil
}
