package summary

import (
	"errors"
	"fmt"

	"github.com/aevon-lab/primstats/internal/core/stats"
)

// Kind names the primitive type an accumulator summarises.
type Kind string

const (
	KindByte    Kind = "byte"
	KindShort   Kind = "short"
	KindChar    Kind = "char"
	KindInt     Kind = "int"
	KindLong    Kind = "long"
	KindFloat   Kind = "float"
	KindDouble  Kind = "double"
	KindBoolean Kind = "boolean"
)

var (
	ErrUnknownKind     = errors.New("unknown accumulator kind")
	ErrKindMismatch    = errors.New("accumulator kinds differ")
	ErrInvalidValue    = errors.New("invalid value")
	ErrValueOutOfRange = errors.New("value out of range")
)

// Value is one parsed primitive. Only the lane matching the accumulator's
// kind is read: Int for integral kinds, Float for float and double, Bool for
// boolean.
type Value struct {
	Int   int64
	Float float64
	Bool  bool
}

// Accumulator is the kind-independent view of a typed accumulator from the
// stats package. It is used where the kind is only known at runtime
// (persisted snapshots, the HTTP API, the CLI).
type Accumulator interface {
	Kind() Kind
	Count() int64
	Average() float64

	// Record folds one value. The caller guarantees v came from ParseValue
	// for the same kind.
	Record(v Value)

	// RecordString parses token for this kind and folds it.
	RecordString(token string) error

	// Merge absorbs other, which must be of the same kind. other is not modified.
	Merge(other Accumulator) error

	Snapshot() Snapshot
	Report() Report
	String() string
}

// Factory returns an empty accumulator.
type Factory func() Accumulator

// Kinds is the registry of supported accumulator kinds.
var Kinds = map[Kind]Factory{
	KindByte:    func() Accumulator { return &intAccumulator[int8]{kind: KindByte, s: stats.NewByteStats()} },
	KindShort:   func() Accumulator { return &intAccumulator[int16]{kind: KindShort, s: stats.NewShortStats()} },
	KindChar:    func() Accumulator { return &intAccumulator[uint16]{kind: KindChar, s: stats.NewCharStats()} },
	KindInt:     func() Accumulator { return &intAccumulator[int32]{kind: KindInt, s: stats.NewIntegerStats()} },
	KindLong:    func() Accumulator { return &intAccumulator[int64]{kind: KindLong, s: stats.NewLongStats()} },
	KindFloat:   func() Accumulator { return &floatAccumulator[float32]{kind: KindFloat, s: stats.NewFloatStats32()} },
	KindDouble:  func() Accumulator { return &floatAccumulator[float64]{kind: KindDouble, s: stats.NewDoubleStats()} },
	KindBoolean: func() Accumulator { return &boolAccumulator{s: stats.NewBoolStats()} },
}

// ValidKind reports whether k is a registered kind.
func ValidKind(k Kind) bool {
	_, ok := Kinds[k]
	return ok
}

// New returns an empty accumulator of kind k.
func New(k Kind) (Accumulator, error) {
	f, ok := Kinds[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	return f(), nil
}
