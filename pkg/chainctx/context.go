package chainctx

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/sync/errgroup"

	"wallet-gateway/pkg/account"
)

// Kind tags which signer/contract combination a resolved context carries,
// so callers branch on one explicit variant instead of repeated nil checks.
type Kind int

const (
	// KindBare is a plain connection: transaction-hash lookups.
	KindBare Kind = iota
	// KindSignerOnly backs native value transfers.
	KindSignerOnly
	// KindContractOnly backs read-only balance and metadata queries.
	KindContractOnly
	// KindSignerAndContract backs token transfers: reads and sends.
	KindSignerAndContract
)

var (
	// ErrConnectivity marks an unreachable or malformed endpoint, or a failed
	// state fetch. No partial context is ever returned behind it.
	ErrConnectivity = errors.New("chain endpoint unavailable")
	// ErrInvalidAddress marks a contract address that is not well-formed.
	ErrInvalidAddress = errors.New("invalid contract address")
)

// Options selects what the context must carry.
type Options struct {
	PrivateKey      string
	ContractAddress string
	ABI             *abi.ABI // nil selects the resolver's default ABI
}

// Config is the resolver's explicit configuration. The default ABI is
// injected here rather than read from a package global, so tests can
// substitute fixtures.
type Config struct {
	DefaultABI abi.ABI
}

// Context is the point-in-time chain state one top-level operation needs.
// Gas price and nonce are fetched fresh on every resolve and never cached:
// a Context must not be shared across concurrent operations.
type Context struct {
	Kind            Kind
	Client          *ethclient.Client
	Signer          *account.Account
	Contract        *bind.BoundContract
	ContractAddress common.Address
	ABI             abi.ABI
	ChainID         *big.Int
	GasPrice        *big.Int
	Nonce           uint64
}

// Close releases the underlying connection.
func (c *Context) Close() {
	if c.Client != nil {
		c.Client.Close()
	}
}

// CallView performs a read-only contract call against the bound contract.
func (c *Context) CallView(ctx context.Context, method string, args ...any) ([]any, error) {
	var out []any
	if err := c.Contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// TransactOpts builds EIP-155 transact options for the resolved signer,
// pre-filled with the fetched gas price and pending nonce. Callers overlay
// their overrides before submitting.
func (c *Context) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(c.Signer.Key(), c.ChainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	opts.GasPrice = new(big.Int).Set(c.GasPrice)
	opts.Nonce = new(big.Int).SetUint64(c.Nonce)
	return opts, nil
}

type Resolver struct {
	cfg Config
}

func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve dials rpcURL and assembles the context variant selected by which
// of opts.PrivateKey / opts.ContractAddress are present. Any fetch failure
// aborts the whole resolve.
func (r *Resolver) Resolve(ctx context.Context, rpcURL string, opts Options) (*Context, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	resolved := &Context{Kind: KindBare, Client: client}

	// 1. Signer, if a private key was given
	if opts.PrivateKey != "" {
		signer, err := account.FromPrivateKey(opts.PrivateKey)
		if err != nil {
			client.Close()
			return nil, err
		}
		resolved.Signer = signer
		resolved.Kind = KindSignerOnly
	}

	// 2. Contract binding, if a contract address was given
	if opts.ContractAddress != "" {
		if !common.IsHexAddress(opts.ContractAddress) {
			client.Close()
			return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, opts.ContractAddress)
		}
		resolved.ContractAddress = common.HexToAddress(opts.ContractAddress)
		if opts.ABI != nil {
			resolved.ABI = *opts.ABI
		} else {
			resolved.ABI = r.cfg.DefaultABI
		}
		resolved.Contract = bind.NewBoundContract(resolved.ContractAddress, resolved.ABI, client, client, client)
		if resolved.Signer != nil {
			resolved.Kind = KindSignerAndContract
		} else {
			resolved.Kind = KindContractOnly
		}
	}

	// 3. Point-in-time chain state; independent reads run concurrently
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		price, err := client.SuggestGasPrice(groupCtx)
		if err != nil {
			return fmt.Errorf("fetch gas price: %w", err)
		}
		resolved.GasPrice = price
		return nil
	})
	if resolved.Signer != nil {
		group.Go(func() error {
			nonce, err := client.PendingNonceAt(groupCtx, resolved.Signer.Address)
			if err != nil {
				return fmt.Errorf("fetch pending nonce: %w", err)
			}
			resolved.Nonce = nonce
			return nil
		})
		group.Go(func() error {
			chainID, err := client.ChainID(groupCtx)
			if err != nil {
				return fmt.Errorf("fetch chain id: %w", err)
			}
			resolved.ChainID = chainID
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	return resolved, nil
}
