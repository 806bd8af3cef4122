package models

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// BigIntTag prefixes every big integer written to durable storage.
// Consumers that decode the document with float64 numbers would otherwise
// round values above 2^53.
const BigIntTag = "__bigint__"

// BigInt is an arbitrary precision integer with tagged JSON encoding
type BigInt struct {
	*big.Int
}

// NewBigInt wraps v. A nil v is encoded as JSON null.
func NewBigInt(v *big.Int) BigInt {
	return BigInt{Int: v}
}

// BigIntFromUint64 wraps an unsigned 64-bit value
func BigIntFromUint64(v uint64) BigInt {
	return BigInt{Int: new(big.Int).SetUint64(v)}
}

// ParseBigInt parses a base-10 integer, with or without the storage tag
func ParseBigInt(s string) (BigInt, error) {
	s = strings.TrimPrefix(s, BigIntTag)
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return BigInt{}, fmt.Errorf("invalid integer %q", s)
	}
	return BigInt{Int: v}, nil
}

// String returns the decimal form, "0" for a nil value
func (b BigInt) String() string {
	if b.Int == nil {
		return "0"
	}
	return b.Int.String()
}

// Equal compares by value; nil equals zero
func (b BigInt) Equal(other BigInt) bool {
	return b.orZero().Cmp(other.orZero()) == 0
}

func (b BigInt) orZero() *big.Int {
	if b.Int == nil {
		return new(big.Int)
	}
	return b.Int
}

// MarshalJSON writes the tagged string form
func (b BigInt) MarshalJSON() ([]byte, error) {
	if b.Int == nil {
		return []byte("null"), nil
	}
	return json.Marshal(BigIntTag + b.Int.String())
}

// UnmarshalJSON accepts the tagged string form, an untagged decimal string
// or a bare JSON number.
func (b *BigInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		b.Int = nil
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}

	parsed, err := ParseBigInt(raw)
	if err != nil {
		return err
	}
	b.Int = parsed.Int
	return nil
}
