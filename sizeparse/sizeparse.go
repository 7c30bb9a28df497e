package sizeparse

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/grailbio/base/errors"
)

var suffixPattern = regexp.MustCompile(`^(-?[0-9]+)([a-zA-Z]*)$`)

var (
	kilo    = big.NewInt(1024)
	kiloDec = big.NewInt(1000)
)

var binarySuffixes = map[string]int64{
	"": 0, "b": 0,
	"k": 1, "m": 2, "g": 3, "t": 4, "p": 5, "e": 6, "z": 7, "y": 8,
}

var decimalSuffixes = map[string]int64{
	"kb": 1, "mb": 2, "gb": 3, "tb": 4, "pb": 5, "eb": 6, "zb": 7, "yb": 8,
}

func multiplier(suffix string) (*big.Int, error) {
	suffix = strings.ToLower(suffix)
	if p, ok := binarySuffixes[suffix]; ok {
		return new(big.Int).Exp(kilo, big.NewInt(p), nil), nil
	}
	if p, ok := decimalSuffixes[suffix]; ok {
		return new(big.Int).Exp(kiloDec, big.NewInt(p), nil), nil
	}
	return nil, errors.E(fmt.Sprintf("unknown size suffix %q", suffix))
}

// Parse parses a du-style filesize specification for the -l/--limit flag:
// an integer followed by an optional case-insensitive unit suffix (b=1,
// k/kb, m/mb, g/gb, ..., y/yb), ported from
// json_bpatch/target.py:parse_filesize. Uses math/big internally because
// the z/zb and y/yb multipliers (1024^7 and up, 1000^7 and up) do not fit
// in 64 bits on their own; a result outside int64 is an error.
func Parse(s string) (int64, error) {
	m := suffixPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, errors.E(fmt.Sprintf("invalid filesize specification %q", s))
	}
	number, suffix := m[1], m[2]
	n, ok := new(big.Int).SetString(number, 10)
	if !ok {
		return 0, errors.E(fmt.Sprintf("invalid filesize specification %q", s))
	}
	mult, err := multiplier(suffix)
	if err != nil {
		return 0, errors.E(err, fmt.Sprintf("invalid filesize specification %q", s))
	}
	result := new(big.Int).Mul(n, mult)
	if !result.IsInt64() {
		return 0, errors.E(fmt.Sprintf("filesize specification %q is too large", s))
	}
	return result.Int64(), nil
}
