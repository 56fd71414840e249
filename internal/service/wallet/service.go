package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wallet-gateway/pkg/account"
	"wallet-gateway/pkg/chainctx"
	"wallet-gateway/pkg/logger"
	"wallet-gateway/pkg/monitor"
	"wallet-gateway/pkg/rpc"
	"wallet-gateway/pkg/token"
	"wallet-gateway/pkg/txbuilder"
)

// Config is the service's explicit configuration; defaults are injected, not
// read from package globals.
type Config struct {
	DefaultABI          abi.ABI
	DerivationPath      string
	DefaultGasPriceGwei string
}

// Service orchestrates account resolution, balance/metadata queries and
// transaction submission. Every operation resolves its own chain context and
// fetches its own nonce; two concurrent transfers from the same account may
// race on nonce and one will be rejected by the network. Serializing
// per-account submissions is the caller's responsibility.
type Service struct {
	cfg      Config
	rpc      *rpc.Client
	resolver *chainctx.Resolver
}

func New(cfg Config) *Service {
	if cfg.DerivationPath == "" {
		cfg.DerivationPath = account.DefaultDerivationPath
	}
	if cfg.DefaultGasPriceGwei == "" {
		cfg.DefaultGasPriceGwei = txbuilder.DefaultGasPriceGwei
	}
	return &Service{
		cfg:      cfg,
		rpc:      rpc.NewClient(),
		resolver: chainctx.NewResolver(chainctx.Config{DefaultABI: cfg.DefaultABI}),
	}
}

// BalanceRequest selects the native path when TokenAddress is empty and the
// token path otherwise.
type BalanceRequest struct {
	Address      string
	Network      string
	RPCURL       string
	TokenAddress string
}

// TransferRequest describes a value or token transfer. TokenAddress present
// means token transfer (Data is ignored); absent means native transfer.
type TransferRequest struct {
	Recipient    string
	Amount       string // decimal, display units
	Network      string
	RPCURL       string
	PrivateKey   string
	GasPriceGwei string  // override; empty means fetched default
	TokenAddress string
	Nonce        *uint64 // override; nil means fetched pending nonce
	Data         string  // UTF-8 payload, native transfers only
	GasLimit     uint64  // override; 0 means estimate
}

// WalletInfo is the payload for account-resolution operations.
type WalletInfo struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey,omitempty"`
	Mnemonic   string `json:"mnemonic,omitempty"`
}

// TokenInfo is derived read-only token metadata. TotalSupply is already
// divided by 10^decimals and truncated to an integer; fractional supply, if
// any, is lost (known precision loss).
type TokenInfo struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Address     string `json:"address"`
	Decimals    uint8  `json:"decimals"`
	TotalSupply string `json:"totalSupply"`
}

// TransactionInfo is a transaction-by-hash lookup result.
type TransactionInfo struct {
	Hash     string `json:"hash"`
	To       string `json:"to,omitempty"`
	Value    string `json:"value"`
	Nonce    uint64 `json:"nonce"`
	Gas      uint64 `json:"gas"`
	GasPrice string `json:"gasPrice"`
	Pending  bool   `json:"pending"`
}

// GetBalance returns the native or token balance in display units. The value
// is display precision, not ledger precision.
func (s *Service) GetBalance(ctx context.Context, req BalanceRequest) (string, error) {
	if !common.IsHexAddress(req.Address) {
		return "", fmt.Errorf("invalid address %q", req.Address)
	}
	holder := common.HexToAddress(req.Address)

	// Native path
	if req.TokenAddress == "" {
		cctx, err := s.resolver.Resolve(ctx, req.RPCURL, chainctx.Options{})
		if err != nil {
			return "", err
		}
		defer cctx.Close()

		raw, err := cctx.Client.BalanceAt(ctx, holder, nil)
		if err != nil {
			return "", fmt.Errorf("fetch balance: %w", err)
		}
		return token.FromUnits(raw, token.NativeDecimals).String(), nil
	}

	// Token path
	cctx, err := s.resolver.Resolve(ctx, req.RPCURL, chainctx.Options{ContractAddress: req.TokenAddress})
	if err != nil {
		return "", err
	}
	defer cctx.Close()

	// decimals and balanceOf are independent reads
	var decimals uint8
	var raw *big.Int
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		decimals, err = s.readDecimals(groupCtx, cctx)
		return err
	})
	group.Go(func() error {
		out, err := cctx.CallView(groupCtx, "balanceOf", holder)
		if err != nil {
			return fmt.Errorf("read balanceOf: %w", err)
		}
		raw = *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
		return nil
	})
	if err := group.Wait(); err != nil {
		return "", err
	}

	return token.FromUnits(raw, decimals).String(), nil
}

// GetTokenInfo reads the four metadata fields of a token contract
// concurrently. An unresolvable contract raises token.ErrNotFound.
func (s *Service) GetTokenInfo(ctx context.Context, rpcURL, tokenAddress string) (*TokenInfo, error) {
	cctx, err := s.resolver.Resolve(ctx, rpcURL, chainctx.Options{ContractAddress: tokenAddress})
	if err != nil {
		if errors.Is(err, chainctx.ErrInvalidAddress) {
			return nil, fmt.Errorf("%w: %v", token.ErrNotFound, err)
		}
		return nil, err
	}
	defer cctx.Close()

	info := &TokenInfo{Address: cctx.ContractAddress.Hex()}
	var supply *big.Int

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		out, err := cctx.CallView(groupCtx, "name")
		if err != nil {
			return fmt.Errorf("read name: %w", err)
		}
		info.Name = *abi.ConvertType(out[0], new(string)).(*string)
		return nil
	})
	group.Go(func() error {
		out, err := cctx.CallView(groupCtx, "symbol")
		if err != nil {
			return fmt.Errorf("read symbol: %w", err)
		}
		info.Symbol = *abi.ConvertType(out[0], new(string)).(*string)
		return nil
	})
	group.Go(func() error {
		var err error
		info.Decimals, err = s.readDecimals(groupCtx, cctx)
		return err
	})
	group.Go(func() error {
		out, err := cctx.CallView(groupCtx, "totalSupply")
		if err != nil {
			return fmt.Errorf("read totalSupply: %w", err)
		}
		supply = *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
		return nil
	})
	if err := group.Wait(); err != nil {
		// A transport drop mid-read is a connectivity failure, not a verdict
		// on the contract.
		var netErr net.Error
		if errors.As(err, &netErr) {
			return nil, fmt.Errorf("%w: %v", chainctx.ErrConnectivity, err)
		}
		// A contract that cannot answer the standard reads is not a token.
		return nil, fmt.Errorf("%w: %v", token.ErrNotFound, err)
	}

	info.TotalSupply = token.FromUnits(supply, info.Decimals).Truncate(0).String()
	return info, nil
}

// GetTransaction looks up a transaction by hash over a bare context.
func (s *Service) GetTransaction(ctx context.Context, rpcURL, hash string) (*TransactionInfo, error) {
	cctx, err := s.resolver.Resolve(ctx, rpcURL, chainctx.Options{})
	if err != nil {
		return nil, err
	}
	defer cctx.Close()

	tx, pending, err := cctx.Client.TransactionByHash(ctx, common.HexToHash(hash))
	if err != nil {
		return nil, fmt.Errorf("fetch transaction %s: %w", hash, err)
	}

	info := &TransactionInfo{
		Hash:     tx.Hash().Hex(),
		Value:    token.FromUnits(tx.Value(), token.NativeDecimals).String(),
		Nonce:    tx.Nonce(),
		Gas:      tx.Gas(),
		GasPrice: tx.GasPrice().String(),
		Pending:  pending,
	}
	if tx.To() != nil {
		info.To = tx.To().Hex()
	}
	return info, nil
}

// Transfer resolves a chain context with the private key and (optionally) the
// token address, then routes to exactly one of the token or native paths.
// Failures propagate unchanged; no retry, no nonce re-fetch.
func (s *Service) Transfer(ctx context.Context, req TransferRequest) (string, error) {
	if !common.IsHexAddress(req.Recipient) {
		return "", fmt.Errorf("invalid recipient address %q", req.Recipient)
	}
	recipient := common.HexToAddress(req.Recipient)

	cctx, err := s.resolver.Resolve(ctx, req.RPCURL, chainctx.Options{
		PrivateKey:      req.PrivateKey,
		ContractAddress: req.TokenAddress,
	})
	if err != nil {
		return "", err
	}
	defer cctx.Close()

	var hash string
	var path string
	switch cctx.Kind {
	case chainctx.KindSignerAndContract:
		path = "token"
		hash, err = s.tokenTransfer(ctx, cctx, recipient, req)
	default:
		path = "native"
		hash, err = s.nativeTransfer(ctx, cctx, recipient, req)
	}
	monitor.ObserveTransfer(path, err == nil)
	if err != nil {
		return "", err
	}

	logger.Info("transfer submitted",
		zap.String("path", path),
		zap.String("network", req.Network),
		zap.String("hash", hash))
	return hash, nil
}

func (s *Service) tokenTransfer(ctx context.Context, cctx *chainctx.Context, recipient common.Address, req TransferRequest) (string, error) {
	decimals, err := s.readDecimals(ctx, cctx)
	if err != nil {
		return "", err
	}
	units, err := token.ParseAmount(req.Amount, decimals)
	if err != nil {
		return "", err
	}

	opts, err := cctx.TransactOpts(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", txbuilder.ErrSubmission, err)
	}
	// Caller overrides win over the fetched defaults, field by field.
	if req.GasPriceGwei != "" {
		opts.GasPrice, err = token.GweiToWei(req.GasPriceGwei)
		if err != nil {
			return "", err
		}
	}
	if req.Nonce != nil {
		opts.Nonce = new(big.Int).SetUint64(*req.Nonce)
	}
	opts.GasLimit = req.GasLimit // 0 delegates to on-the-fly estimation

	tx, err := cctx.Contract.Transact(opts, "transfer", recipient, units)
	if err != nil {
		return "", fmt.Errorf("%w: %v", txbuilder.ErrSubmission, err)
	}
	return tx.Hash().Hex(), nil
}

func (s *Service) nativeTransfer(ctx context.Context, cctx *chainctx.Context, recipient common.Address, req TransferRequest) (string, error) {
	value, err := token.ParseAmount(req.Amount, token.NativeDecimals)
	if err != nil {
		return "", err
	}
	data := []byte(req.Data)

	gasPrice := cctx.GasPrice
	if req.GasPriceGwei != "" {
		gasPrice, err = token.GweiToWei(req.GasPriceGwei)
		if err != nil {
			return "", err
		}
	}
	nonce := cctx.Nonce
	if req.Nonce != nil {
		nonce = *req.Nonce
	}
	gasLimit := req.GasLimit
	if gasLimit == 0 {
		gasLimit, err = cctx.Client.EstimateGas(ctx, ethereum.CallMsg{
			From:     cctx.Signer.Address,
			To:       &recipient,
			Value:    value,
			GasPrice: gasPrice,
			Data:     data,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %v", txbuilder.ErrSubmission, err)
		}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &recipient,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.NewEIP155Signer(cctx.ChainID), cctx.Signer.Key())
	if err != nil {
		return "", fmt.Errorf("%w: %v", txbuilder.ErrSubmission, err)
	}
	if err := cctx.Client.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("%w: %v", txbuilder.ErrSubmission, err)
	}
	return signed.Hash().Hex(), nil
}

// SmartContractSend drives the raw pipeline for an arbitrary contract method.
func (s *Service) SmartContractSend(ctx context.Context, req txbuilder.Request) (string, error) {
	if req.ABI == nil {
		defaultABI := s.cfg.DefaultABI
		req.ABI = &defaultABI
	}
	if req.GasPriceGwei == "" {
		req.GasPriceGwei = s.cfg.DefaultGasPriceGwei
	}
	hash, err := txbuilder.Send(ctx, s.rpc, req)
	monitor.ObserveContractSend(err == nil)
	if err != nil {
		return "", err
	}
	logger.Info("contract call broadcast",
		zap.String("method", req.Method),
		zap.String("hash", hash))
	return hash, nil
}

// CreateWallet generates a fresh account plus its recovery phrase.
func (s *Service) CreateWallet(derivationPath string) (*WalletInfo, error) {
	acc, mnemonic, err := account.Generate(s.pathOrDefault(derivationPath))
	if err != nil {
		return nil, err
	}
	monitor.ObserveWalletCreated()
	return &WalletInfo{
		Address:    acc.Address.Hex(),
		PrivateKey: acc.PrivateKeyHex(),
		Mnemonic:   mnemonic,
	}, nil
}

// AddressFromPrivateKey resolves the address behind a private key.
func (s *Service) AddressFromPrivateKey(privateKey string) (string, error) {
	acc, err := account.FromPrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	return acc.Address.Hex(), nil
}

// WalletFromMnemonic re-derives an account from a recovery phrase.
func (s *Service) WalletFromMnemonic(phrase, derivationPath string) (*WalletInfo, error) {
	acc, err := account.FromMnemonic(phrase, s.pathOrDefault(derivationPath))
	if err != nil {
		return nil, err
	}
	return &WalletInfo{
		Address:    acc.Address.Hex(),
		PrivateKey: acc.PrivateKeyHex(),
		Mnemonic:   phrase,
	}, nil
}

// EncryptPrivateKey wraps a private key into a password-protected keystore blob.
func (s *Service) EncryptPrivateKey(privateKey, password string) (string, error) {
	return account.EncryptToKeystore(privateKey, password)
}

// WalletFromKeystore decrypts a keystore blob back into an account.
func (s *Service) WalletFromKeystore(keystoreJSON, password string) (*WalletInfo, error) {
	acc, err := account.FromEncryptedKeystore([]byte(keystoreJSON), password)
	if err != nil {
		return nil, err
	}
	return &WalletInfo{
		Address:    acc.Address.Hex(),
		PrivateKey: acc.PrivateKeyHex(),
	}, nil
}

func (s *Service) readDecimals(ctx context.Context, cctx *chainctx.Context) (uint8, error) {
	out, err := cctx.CallView(ctx, "decimals")
	if err != nil {
		return 0, fmt.Errorf("read decimals: %w", err)
	}
	return *abi.ConvertType(out[0], new(uint8)).(*uint8), nil
}

func (s *Service) pathOrDefault(path string) string {
	if path == "" {
		return s.cfg.DerivationPath
	}
	return path
}
