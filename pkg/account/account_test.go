package account

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known hardhat development vectors; the mnemonic derives the key at the
// default path, so both resolution routes must land on the same account.
const (
	hardhatKey      = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	hardhatAddress  = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	hardhatMnemonic = "test test test test test test test test test test test junk"
)

func TestFromPrivateKey(t *testing.T) {
	acc, err := FromPrivateKey(hardhatKey)
	require.NoError(t, err)
	assert.Equal(t, hardhatAddress, acc.Address.Hex())
	assert.Equal(t, hardhatKey, acc.PrivateKeyHex())

	// The 0x prefix and surrounding whitespace are tolerated.
	prefixed, err := FromPrivateKey("  0x" + hardhatKey + " ")
	require.NoError(t, err)
	assert.Equal(t, acc.Address, prefixed.Address)
}

func TestFromPrivateKeyInvalid(t *testing.T) {
	for _, bad := range []string{"", "0x", "zzzz", hardhatKey[:10]} {
		_, err := FromPrivateKey(bad)
		assert.ErrorIs(t, err, ErrInvalidKey, "input %q", bad)
	}
}

func TestFromMnemonicKnownVector(t *testing.T) {
	acc, err := FromMnemonic(hardhatMnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, hardhatAddress, acc.Address.Hex())
	assert.Equal(t, hardhatKey, acc.PrivateKeyHex())
}

func TestFromMnemonicPathSensitivity(t *testing.T) {
	first, err := FromMnemonic(hardhatMnemonic, "m/44'/60'/0'/0/0")
	require.NoError(t, err)
	second, err := FromMnemonic(hardhatMnemonic, "m/44'/60'/0'/0/1")
	require.NoError(t, err)
	assert.NotEqual(t, first.Address, second.Address)

	// The h suffix is an accepted alias for the apostrophe hardening marker.
	aliased, err := FromMnemonic(hardhatMnemonic, "m/44h/60h/0h/0/0")
	require.NoError(t, err)
	assert.Equal(t, first.Address, aliased.Address)
}

func TestFromMnemonicInvalid(t *testing.T) {
	for _, bad := range []string{"", "not a phrase", strings.Repeat("test ", 11) + "test"} {
		_, err := FromMnemonic(bad, "")
		assert.ErrorIs(t, err, ErrInvalidMnemonic, "input %q", bad)
	}
}

func TestGenerateRoundTrip(t *testing.T) {
	acc, mnemonic, err := Generate("")
	require.NoError(t, err)
	assert.Len(t, strings.Fields(mnemonic), 12)

	rederived, err := FromMnemonic(mnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, acc.Address, rederived.Address)
	assert.Equal(t, acc.PrivateKeyHex(), rederived.PrivateKeyHex())

	// Two generations never collide.
	other, _, err := Generate("")
	require.NoError(t, err)
	assert.NotEqual(t, acc.Address, other.Address)
}

func TestKeystoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt KDF is slow")
	}

	blob, err := EncryptToKeystore(hardhatKey, "correct horse")
	require.NoError(t, err)
	assert.Contains(t, blob, "crypto")

	acc, err := FromEncryptedKeystore([]byte(blob), "correct horse")
	require.NoError(t, err)
	assert.Equal(t, hardhatAddress, acc.Address.Hex())
	assert.Equal(t, hardhatKey, acc.PrivateKeyHex())

	_, err = FromEncryptedKeystore([]byte(blob), "wrong password")
	assert.ErrorIs(t, err, ErrDecryption)

	_, err = FromEncryptedKeystore([]byte("{not a keystore}"), "correct horse")
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestParsePath(t *testing.T) {
	indices, err := parsePath(DefaultDerivationPath)
	require.NoError(t, err)
	require.Len(t, indices, 5)
	// First three components are hardened.
	assert.Equal(t, uint32(44+hdkeychain.HardenedKeyStart), indices[0])
	assert.Equal(t, uint32(60+hdkeychain.HardenedKeyStart), indices[1])
	assert.Equal(t, uint32(0+hdkeychain.HardenedKeyStart), indices[2])
	assert.Equal(t, uint32(0), indices[3])
	assert.Equal(t, uint32(0), indices[4])
}

func TestParsePathRejects(t *testing.T) {
	for _, bad := range []string{"", "m/", "m/44'/x/0", "m/-1"} {
		_, err := parsePath(bad)
		assert.Error(t, err, "path %q", bad)
	}
}
