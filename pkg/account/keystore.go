package account

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/google/uuid"
)

// EncryptToKeystore encrypts a private key into a Web3 Secret Storage (V3)
// JSON blob protected by password. The scrypt KDF makes this CPU-intensive;
// callers on a hot path should run it on its own goroutine.
func EncryptToKeystore(privHex, password string) (string, error) {
	acc, err := FromPrivateKey(privHex)
	if err != nil {
		return "", err
	}

	key := &keystore.Key{
		Id:         uuid.New(),
		Address:    acc.Address,
		PrivateKey: acc.key,
	}
	blob, err := keystore.EncryptKey(key, password, keystore.StandardScryptN, keystore.StandardScryptP)
	if err != nil {
		return "", fmt.Errorf("encrypt keystore: %w", err)
	}
	return string(blob), nil
}

// FromEncryptedKeystore decrypts a V3 keystore blob. A wrong password or a
// malformed blob fails with ErrDecryption and never yields an account.
func FromEncryptedKeystore(keystoreJSON []byte, password string) (*Account, error) {
	key, err := keystore.DecryptKey(keystoreJSON, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return fromKey(key.PrivateKey), nil
}
