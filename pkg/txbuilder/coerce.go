package txbuilder

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// coerceArgs validates dynamically-typed call parameters (as they arrive from
// JSON) against the ABI's declared input types and converts them to the
// concrete Go values the ABI encoder expects. A count or type mismatch is an
// encoding failure, not a silent truncation.
func coerceArgs(method abi.Method, params []any) ([]any, error) {
	if len(params) != len(method.Inputs) {
		return nil, fmt.Errorf("method %s expects %d params, got %d",
			method.Name, len(method.Inputs), len(params))
	}

	out := make([]any, len(params))
	for i, input := range method.Inputs {
		value, err := coerceValue(input.Type, params[i])
		if err != nil {
			return nil, fmt.Errorf("param %d (%s %s): %v", i, input.Name, input.Type.String(), err)
		}
		out[i] = value
	}
	return out, nil
}

func coerceValue(t abi.Type, v any) (any, error) {
	switch t.T {
	case abi.AddressTy:
		s, ok := v.(string)
		if !ok || !common.IsHexAddress(s) {
			return nil, fmt.Errorf("expected address, got %v", v)
		}
		return common.HexToAddress(s), nil

	case abi.UintTy:
		n, err := toBigInt(v)
		if err != nil {
			return nil, err
		}
		if n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %s for unsigned type", n)
		}
		if err := checkBits(n, t.Size); err != nil {
			return nil, err
		}
		switch t.Size {
		case 8:
			return uint8(n.Uint64()), nil
		case 16:
			return uint16(n.Uint64()), nil
		case 32:
			return uint32(n.Uint64()), nil
		case 64:
			return n.Uint64(), nil
		default:
			return n, nil
		}

	case abi.IntTy:
		n, err := toBigInt(v)
		if err != nil {
			return nil, err
		}
		if err := checkSignedBits(n, t.Size); err != nil {
			return nil, err
		}
		switch t.Size {
		case 8:
			return int8(n.Int64()), nil
		case 16:
			return int16(n.Int64()), nil
		case 32:
			return int32(n.Int64()), nil
		case 64:
			return n.Int64(), nil
		default:
			return n, nil
		}

	case abi.BoolTy:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return nil, fmt.Errorf("expected bool, got %q", b)
			}
			return parsed, nil
		default:
			return nil, fmt.Errorf("expected bool, got %v", v)
		}

	case abi.StringTy:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %v", v)
		}
		return s, nil

	case abi.BytesTy:
		return toBytes(v)

	case abi.FixedBytesTy:
		b, err := toBytes(v)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(b))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case abi.SliceTy, abi.ArrayTy:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, fmt.Errorf("expected array, got %v", v)
		}
		if t.T == abi.ArrayTy && rv.Len() != t.Size {
			return nil, fmt.Errorf("expected %d elements, got %d", t.Size, rv.Len())
		}
		var out reflect.Value
		if t.T == abi.SliceTy {
			out = reflect.MakeSlice(t.GetType(), rv.Len(), rv.Len())
		} else {
			out = reflect.New(t.GetType()).Elem()
		}
		for i := 0; i < rv.Len(); i++ {
			elem, err := coerceValue(*t.Elem, rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element %d: %v", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(elem))
		}
		return out.Interface(), nil

	default:
		return nil, fmt.Errorf("unsupported ABI type %s", t.String())
	}
}

// toBigInt accepts the numeric shapes a JSON decoder can hand us: Go ints,
// float64 with no fractional part, decimal strings, and 0x-hex strings.
func toBigInt(v any) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		return n, nil
	case int:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case float64:
		if math.IsInf(n, 0) || n != math.Trunc(n) {
			return nil, fmt.Errorf("non-integer value %v", n)
		}
		// Beyond 2^53 the float has already lost integer precision upstream.
		if math.Abs(n) >= 1<<53 {
			return nil, fmt.Errorf("value %v exceeds float integer precision, pass it as a string", n)
		}
		return big.NewInt(int64(n)), nil
	case string:
		s := strings.TrimSpace(n)
		base := 10
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s = s[2:]
			base = 16
		}
		parsed, ok := new(big.Int).SetString(s, base)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", n)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("expected integer, got %T", v)
	}
}

func toBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		decoded, err := hex.DecodeString(strings.TrimPrefix(b, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid hex bytes %q", b)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("expected bytes, got %T", v)
	}
}

func checkBits(n *big.Int, bits int) error {
	if n.BitLen() > bits {
		return fmt.Errorf("value %s overflows uint%d", n, bits)
	}
	return nil
}

// checkSignedBits enforces the two's-complement range [-2^(bits-1), 2^(bits-1)-1].
func checkSignedBits(n *big.Int, bits int) error {
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	max := new(big.Int).Sub(limit, big.NewInt(1))
	min := new(big.Int).Neg(limit)
	if n.Cmp(min) < 0 || n.Cmp(max) > 0 {
		return fmt.Errorf("value %s overflows int%d", n, bits)
	}
	return nil
}
