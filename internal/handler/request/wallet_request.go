package request

import "encoding/json"

type Balance struct {
	Address      string `json:"address" binding:"required"`
	Network      string `json:"network"`
	RpcUrl       string `json:"rpcUrl"`
	TokenAddress string `json:"tokenAddress"`
}

type CreateWallet struct {
	DerivationPath string `json:"derivationPath"`
}

type PrivateKey struct {
	PrivateKey string `json:"privateKey" binding:"required"`
}

type Mnemonic struct {
	Mnemonic       string `json:"mnemonic" binding:"required"`
	DerivationPath string `json:"derivationPath"`
}

type Transfer struct {
	RecipientAddress string  `json:"recipientAddress" binding:"required"`
	Amount           string  `json:"amount" binding:"required"`
	Network          string  `json:"network"`
	RpcUrl           string  `json:"rpcUrl"`
	PrivateKey       string  `json:"privateKey" binding:"required"`
	GasPrice         string  `json:"gasPrice"` // gwei, decimal string
	TokenAddress     string  `json:"tokenAddress"`
	Nonce            *uint64 `json:"nonce"`
	Data             string  `json:"data"` // UTF-8 payload, native transfers only
	GasLimit         uint64  `json:"gasLimit"`
}

type Transaction struct {
	Hash   string `json:"hash" binding:"required"`
	RpcUrl string `json:"rpcUrl"`
}

type EncryptKey struct {
	PrivateKey string `json:"privateKey" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type DecryptKeystore struct {
	// Keystore accepts either the V3 JSON object itself or that JSON as an
	// escaped string.
	Keystore json.RawMessage `json:"keystore" binding:"required"`
	Password string          `json:"password" binding:"required"`
}

type TokenInfo struct {
	TokenAddress string `json:"tokenAddress" binding:"required"`
	Network      string `json:"network"`
	RpcUrl       string `json:"rpcUrl"`
}

type ContractSend struct {
	RpcUrl          string          `json:"rpcUrl"`
	ContractAddress string          `json:"contractAddress" binding:"required"`
	Method          string          `json:"method" binding:"required"`
	Params          []any           `json:"params"`
	ContractAbi     json.RawMessage `json:"contractAbi"` // defaults to the standard token ABI
	Value           string          `json:"value"`
	GasPrice        string          `json:"gasPrice"` // gwei, decimal string
	GasLimit        uint64          `json:"gasLimit"`
	Nonce           *uint64         `json:"nonce"`
	PrivateKey      string          `json:"privateKey" binding:"required"`
	ChainId         int64           `json:"chainId" binding:"required"`
}
