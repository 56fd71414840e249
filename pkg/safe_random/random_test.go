package safe_random

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomBytes(t *testing.T) {
	b, err := GenerateRandomBytes(32)
	if err != nil {
		t.Fatalf("GenerateRandomBytes failed: %v", err)
	}
	assert.Len(t, b, 32)

	// All-zero output would mean the CSPRNG was never consulted.
	allZero := true
	for _, v := range b {
		if v != 0 {
			allZero = false
			break
		}
	}
	assert.False(t, allZero, "random bytes should not be all zero")
}

func TestGenerateRandomHexString(t *testing.T) {
	s, err := GenerateRandomHexString(16)
	if err != nil {
		t.Fatalf("GenerateRandomHexString failed: %v", err)
	}
	assert.Len(t, s, 32)

	_, err = hex.DecodeString(s)
	assert.NoError(t, err)
}

func TestGenerateRandomInt(t *testing.T) {
	max := big.NewInt(1000)
	v, err := GenerateRandomInt(max)
	if err != nil {
		t.Fatalf("GenerateRandomInt failed: %v", err)
	}
	assert.True(t, v.Sign() >= 0)
	assert.True(t, v.Cmp(max) < 0)

	_, err = GenerateRandomInt(big.NewInt(0))
	assert.Error(t, err)
}
