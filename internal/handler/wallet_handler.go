package handler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/gin-gonic/gin"

	"wallet-gateway/internal/handler/request"
	"wallet-gateway/internal/handler/response"
	"wallet-gateway/internal/service/wallet"
	"wallet-gateway/pkg/errno"
	"wallet-gateway/pkg/txbuilder"
)

// WalletHandler exposes the operation surface over HTTP. Each operation is
// request-scoped: nothing is cached or shared between calls.
type WalletHandler struct {
	svc        *wallet.Service
	defaultRPC string
}

func NewWalletHandler(svc *wallet.Service, defaultRPC string) *WalletHandler {
	return &WalletHandler{svc: svc, defaultRPC: defaultRPC}
}

// GetBalance returns the native balance, or the token balance when
// tokenAddress is present.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	var req request.Balance
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	balance, err := h.svc.GetBalance(c.Request.Context(), wallet.BalanceRequest{
		Address:      req.Address,
		Network:      req.Network,
		RPCURL:       h.rpcURL(req.RpcUrl),
		TokenAddress: req.TokenAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := gin.H{"balance": balance, "address": req.Address, "network": req.Network}
	if req.TokenAddress != "" {
		payload["tokenAddress"] = req.TokenAddress
	}
	response.Success(c, payload)
}

// CreateWallet generates a new wallet and returns its recovery phrase.
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	var req request.CreateWallet
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	info, err := h.svc.CreateWallet(req.DerivationPath)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"address":    info.Address,
		"privateKey": info.PrivateKey,
		"mnemonic":   info.Mnemonic,
	})
}

// AddressFromKey resolves the address behind a private key.
func (h *WalletHandler) AddressFromKey(c *gin.Context) {
	var req request.PrivateKey
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	address, err := h.svc.AddressFromPrivateKey(req.PrivateKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"address": address})
}

// FromMnemonic re-derives a wallet from a recovery phrase.
func (h *WalletHandler) FromMnemonic(c *gin.Context) {
	var req request.Mnemonic
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	info, err := h.svc.WalletFromMnemonic(req.Mnemonic, req.DerivationPath)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"address":    info.Address,
		"privateKey": info.PrivateKey,
		"mnemonic":   info.Mnemonic,
	})
}

// Transfer submits a native or token transfer.
func (h *WalletHandler) Transfer(c *gin.Context) {
	var req request.Transfer
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	hash, err := h.svc.Transfer(c.Request.Context(), wallet.TransferRequest{
		Recipient:    req.RecipientAddress,
		Amount:       req.Amount,
		Network:      req.Network,
		RPCURL:       h.rpcURL(req.RpcUrl),
		PrivateKey:   req.PrivateKey,
		GasPriceGwei: req.GasPrice,
		TokenAddress: req.TokenAddress,
		Nonce:        req.Nonce,
		Data:         req.Data,
		GasLimit:     req.GasLimit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"transactionHash": hash})
}

// GetTransaction looks a transaction up by hash.
func (h *WalletHandler) GetTransaction(c *gin.Context) {
	var req request.Transaction
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	info, err := h.svc.GetTransaction(c.Request.Context(), h.rpcURL(req.RpcUrl), req.Hash)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"transaction": info})
}

// EncryptKey wraps a private key into a password-protected keystore blob.
func (h *WalletHandler) EncryptKey(c *gin.Context) {
	var req request.EncryptKey
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	blob, err := h.svc.EncryptPrivateKey(req.PrivateKey, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"keystore": json.RawMessage(blob)})
}

// DecryptKeystore recovers a wallet from a keystore blob.
func (h *WalletHandler) DecryptKeystore(c *gin.Context) {
	var req request.DecryptKeystore
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	info, err := h.svc.WalletFromKeystore(keystoreJSON(req.Keystore), req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"address":    info.Address,
		"privateKey": info.PrivateKey,
	})
}

// TokenInfo returns name/symbol/decimals/totalSupply of a token contract.
func (h *WalletHandler) TokenInfo(c *gin.Context) {
	var req request.TokenInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	info, err := h.svc.GetTokenInfo(c.Request.Context(), h.rpcURL(req.RpcUrl), req.TokenAddress)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"token": info})
}

// ContractSend builds, signs and broadcasts an arbitrary contract call.
func (h *WalletHandler) ContractSend(c *gin.Context) {
	var req request.ContractSend
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	var contractABI *abi.ABI
	if len(req.ContractAbi) > 0 {
		parsed, err := parseABI(req.ContractAbi)
		if err != nil {
			response.Error(c, fmt.Errorf("%w: %v", txbuilder.ErrEncode, err))
			return
		}
		contractABI = parsed
	}

	hash, err := h.svc.SmartContractSend(c.Request.Context(), txbuilder.Request{
		RPCURL:          h.rpcURL(req.RpcUrl),
		ContractAddress: req.ContractAddress,
		Method:          req.Method,
		Params:          req.Params,
		ABI:             contractABI,
		Value:           req.Value,
		GasPriceGwei:    req.GasPrice,
		GasLimit:        req.GasLimit,
		Nonce:           req.Nonce,
		PrivateKey:      req.PrivateKey,
		ChainID:         req.ChainId,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"transactionHash": hash})
}

func (h *WalletHandler) rpcURL(fromRequest string) string {
	if fromRequest != "" {
		return fromRequest
	}
	return h.defaultRPC
}

// keystoreJSON tolerates the blob arriving as an escaped JSON string.
func keystoreJSON(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// parseABI tolerates the ABI arriving either as a JSON array or as that
// array escaped into a string.
func parseABI(raw json.RawMessage) (*abi.ABI, error) {
	text := raw
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		text = []byte(s)
	}
	parsed, err := abi.JSON(bytes.NewReader(text))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
