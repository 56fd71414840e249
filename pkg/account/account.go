package account

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"

	"wallet-gateway/pkg/safe_random"
)

// DefaultDerivationPath is the BIP-44 path for the first Ethereum account.
const DefaultDerivationPath = "m/44'/60'/0'/0/0"

// entropyBits yields a 12-word BIP-39 phrase.
const entropyBits = 128

var (
	ErrInvalidKey      = errors.New("invalid private key")
	ErrInvalidMnemonic = errors.New("invalid mnemonic phrase")
	ErrDecryption      = errors.New("keystore decryption failed")
)

// Account is a resolved signing identity: a checksummed address plus the
// private key backing it. Accounts are value objects; nothing here persists
// them.
type Account struct {
	Address common.Address
	key     *ecdsa.PrivateKey
}

// Key returns the signing key.
func (a *Account) Key() *ecdsa.PrivateKey {
	return a.key
}

// PrivateKeyHex returns the key as a bare hex string (no 0x prefix).
func (a *Account) PrivateKeyHex() string {
	return hex.EncodeToString(crypto.FromECDSA(a.key))
}

// FromPrivateKey resolves an account from a hex-encoded private key, with or
// without a 0x prefix. Deterministic: the same key always yields the same
// address.
func FromPrivateKey(privHex string) (*Account, error) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(privHex), "0x")
	key, err := crypto.HexToECDSA(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return fromKey(key), nil
}

// FromMnemonic derives an account from a BIP-39 phrase at the given
// derivation path (DefaultDerivationPath when empty).
func FromMnemonic(phrase, derivationPath string) (*Account, error) {
	if !bip39.IsMnemonicValid(phrase) {
		return nil, ErrInvalidMnemonic
	}
	seed := bip39.NewSeed(phrase, "")

	key, err := deriveKey(seed, pathOrDefault(derivationPath))
	if err != nil {
		return nil, err
	}
	return fromKey(key), nil
}

// Generate creates a fresh account from new entropy and returns it together
// with the recovery phrase. Feeding the phrase back through FromMnemonic with
// the same path reproduces the account.
func Generate(derivationPath string) (*Account, string, error) {
	entropy, err := safe_random.GenerateRandomBytes(entropyBits / 8)
	if err != nil {
		return nil, "", err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, "", fmt.Errorf("generate mnemonic: %w", err)
	}

	acc, err := FromMnemonic(mnemonic, derivationPath)
	if err != nil {
		return nil, "", err
	}
	return acc, mnemonic, nil
}

func fromKey(key *ecdsa.PrivateKey) *Account {
	return &Account{
		Address: crypto.PubkeyToAddress(key.PublicKey),
		key:     key,
	}
}

func pathOrDefault(path string) string {
	if strings.TrimSpace(path) == "" {
		return DefaultDerivationPath
	}
	return path
}
