package summary

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

type integerRange struct {
	min, max decimal.Decimal
}

var integerRanges = map[Kind]integerRange{
	KindByte:  {decimal.NewFromInt(math.MinInt8), decimal.NewFromInt(math.MaxInt8)},
	KindShort: {decimal.NewFromInt(math.MinInt16), decimal.NewFromInt(math.MaxInt16)},
	KindChar:  {decimal.Zero, decimal.NewFromInt(math.MaxUint16)},
	KindInt:   {decimal.NewFromInt(math.MinInt32), decimal.NewFromInt(math.MaxInt32)},
	KindLong:  {decimal.NewFromInt(math.MinInt64), decimal.NewFromInt(math.MaxInt64)},
}

// ParseValue parses one textual value for kind.
//
// Integral kinds go through decimal so that "1e3" or "42.0" are accepted as
// long as they denote an integer inside the kind's range; a char also accepts
// a single character. Float and double accept anything strconv.ParseFloat
// does, including NaN, Inf and -0. Booleans accept strconv.ParseBool forms.
func ParseValue(kind Kind, token string) (Value, error) {
	token = strings.TrimSpace(token)

	switch kind {
	case KindFloat, KindDouble:
		f, err := strconv.ParseFloat(token, floatBits(kind))
		if errors.Is(err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("%w: %q for %s", ErrValueOutOfRange, token, kind)
		}
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a %s", ErrInvalidValue, token, kind)
		}
		return Value{Float: f}, nil
	case KindBoolean:
		b, err := strconv.ParseBool(token)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a %s", ErrInvalidValue, token, kind)
		}
		return Value{Bool: b}, nil
	}

	r, ok := integerRanges[kind]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	d, err := decimal.NewFromString(token)
	if err != nil {
		if kind == KindChar && utf8.RuneCountInString(token) == 1 {
			c, _ := utf8.DecodeRuneInString(token)
			if c <= math.MaxUint16 {
				return Value{Int: int64(c)}, nil
			}
			return Value{}, fmt.Errorf("%w: %q outside the basic multilingual plane", ErrValueOutOfRange, token)
		}
		return Value{}, fmt.Errorf("%w: %q is not a %s", ErrInvalidValue, token, kind)
	}
	if !d.IsInteger() {
		return Value{}, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, token)
	}
	if d.LessThan(r.min) || d.GreaterThan(r.max) {
		return Value{}, fmt.Errorf("%w: %s outside [%s, %s] for %s", ErrValueOutOfRange, d, r.min, r.max, kind)
	}
	return Value{Int: d.IntPart()}, nil
}
