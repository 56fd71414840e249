package account

import (
	"crypto/ecdsa"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// deriveKey walks a BIP-32 derivation path from a BIP-39 seed and returns the
// child private key. Supported formats: m/44'/60'/0'/0/0 or m/44h/60h/0h/0/0.
func deriveKey(seed []byte, path string) (*ecdsa.PrivateKey, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}

	indices, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	current := master
	for _, index := range indices {
		current, err = current.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("derive path %s: %w", path, err)
		}
	}

	ecKey, err := current.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("derive path %s: %w", path, err)
	}
	return ecKey.ToECDSA(), nil
}

// parsePath splits a derivation path into child indices, applying the
// hardened offset for segments suffixed with ' or h.
func parsePath(path string) ([]uint32, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(path), "m/")
	if trimmed == "" {
		return nil, fmt.Errorf("empty derivation path")
	}

	segments := strings.Split(trimmed, "/")
	indices := make([]uint32, 0, len(segments))
	for _, segment := range segments {
		hardened := false
		if strings.HasSuffix(segment, "'") || strings.HasSuffix(segment, "h") {
			hardened = true
			segment = segment[:len(segment)-1]
		}

		value, err := strconv.ParseUint(segment, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid path segment %q: %v", segment, err)
		}

		index := uint32(value)
		if hardened {
			index += hdkeychain.HardenedKeyStart
		}
		indices = append(indices, index)
	}
	return indices, nil
}
