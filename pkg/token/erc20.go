package token

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ErrNotFound is raised when no token contract can be resolved at the given
// address: malformed address or no readable standard-token interface.
var ErrNotFound = errors.New("token contract not found")

// StandardABIJSON describes the standard fungible-token (ERC-20) interface
// used whenever a caller supplies a token address without an explicit ABI.
// It is a static configuration artifact, never fetched at runtime.
const StandardABIJSON = `[
  {"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
  {"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
  {"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
  {"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

// StandardABI parses the default token interface.
func StandardABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(StandardABIJSON))
}

// MustStandardABI is StandardABI for initialization paths where the embedded
// JSON is known good.
func MustStandardABI() abi.ABI {
	parsed, err := StandardABI()
	if err != nil {
		panic(err)
	}
	return parsed
}
