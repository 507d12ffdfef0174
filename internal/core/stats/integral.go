package stats

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Primitive widths the integral accumulator is instantiated over.
type (
	ByteStats    = IntStats[int8]
	ShortStats   = IntStats[int16]
	CharStats    = IntStats[uint16]
	IntegerStats = IntStats[int32]
	LongStats    = IntStats[int64]
)

func NewByteStats() *ByteStats       { return NewIntStats[int8]() }
func NewShortStats() *ShortStats     { return NewIntStats[int16]() }
func NewCharStats() *CharStats       { return NewIntStats[uint16]() }
func NewIntegerStats() *IntegerStats { return NewIntStats[int32]() }
func NewLongStats() *LongStats       { return NewIntStats[int64]() }

// Policy supplies the arithmetic an IntStats uses to fold values and combine
// partial results. Nil fields fall back to the default widened arithmetic.
type Policy[T constraints.Integer] struct {
	Fold    func(sum int64, v T) int64
	Combine func(a, b int64) int64
	PickMin func(a, b T) T
	PickMax func(a, b T) T
}

// DefaultPolicy returns the widened-sum policy with ordinary min/max.
func DefaultPolicy[T constraints.Integer]() Policy[T] {
	return Policy[T]{
		Fold:    func(sum int64, v T) int64 { return sum + int64(v) },
		Combine: func(a, b int64) int64 { return a + b },
		PickMin: func(a, b T) T { return min(a, b) },
		PickMax: func(a, b T) T { return max(a, b) },
	}
}

func (p Policy[T]) withDefaults() Policy[T] {
	d := DefaultPolicy[T]()
	if p.Fold == nil {
		p.Fold = d.Fold
	}
	if p.Combine == nil {
		p.Combine = d.Combine
	}
	if p.PickMin == nil {
		p.PickMin = d.PickMin
	}
	if p.PickMax == nil {
		p.PickMax = d.PickMax
	}
	return p
}

// IntStats is a running count/sum/min/max over integral values.
//
// The sum is widened to int64 and is not checked for overflow; 64-bit inputs
// wrap the same way int64 addition does.
//
// IntStats is not safe for concurrent mutation. Fold partitions into separate
// accumulators and combine them with Merge.
type IntStats[T constraints.Integer] struct {
	count  int64
	sum    int64
	min    T
	max    T
	policy *Policy[T]
}

// NewIntStats returns an empty accumulator. Its min is the largest value of T
// and its max the smallest, so [min, max] is an empty range.
func NewIntStats[T constraints.Integer]() *IntStats[T] {
	lo, hi := integerBounds[T]()
	return &IntStats[T]{min: hi, max: lo}
}

// NewIntStatsWithPolicy returns an empty accumulator that folds and combines
// through p.
func NewIntStatsWithPolicy[T constraints.Integer](p Policy[T]) *IntStats[T] {
	s := NewIntStats[T]()
	p = p.withDefaults()
	s.policy = &p
	return s
}

// NewIntStatsFrom returns an accumulator seeded with a previously computed
// state. A zero count yields an empty accumulator whatever the other
// arguments are.
func NewIntStatsFrom[T constraints.Integer](count int64, minVal, maxVal T, sum int64) (*IntStats[T], error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrInvalidArgument, count)
	}
	if count == 0 {
		return NewIntStats[T](), nil
	}
	if minVal > maxVal {
		return nil, fmt.Errorf("%w: min %d greater than max %d", ErrInvalidArgument, minVal, maxVal)
	}
	return &IntStats[T]{count: count, sum: sum, min: minVal, max: maxVal}, nil
}

// Record folds v into the accumulator.
func (s *IntStats[T]) Record(v T) {
	s.count++
	if s.policy != nil {
		s.sum = s.policy.Fold(s.sum, v)
		s.min = s.policy.PickMin(s.min, v)
		s.max = s.policy.PickMax(s.max, v)
		return
	}
	s.sum += int64(v)
	s.min = min(s.min, v)
	s.max = max(s.max, v)
}

// Merge absorbs other into s. other is left unchanged.
func (s *IntStats[T]) Merge(other *IntStats[T]) {
	s.count += other.count
	if s.policy != nil {
		s.sum = s.policy.Combine(s.sum, other.sum)
		s.min = s.policy.PickMin(s.min, other.min)
		s.max = s.policy.PickMax(s.max, other.max)
		return
	}
	s.sum += other.sum
	s.min = min(s.min, other.min)
	s.max = max(s.max, other.max)
}

func (s *IntStats[T]) Count() int64 { return s.count }
func (s *IntStats[T]) Sum() int64   { return s.sum }
func (s *IntStats[T]) Min() T       { return s.min }
func (s *IntStats[T]) Max() T       { return s.max }

// Average returns the arithmetic mean, or 0 when nothing was recorded.
func (s *IntStats[T]) Average() float64 {
	if s.count == 0 {
		return 0
	}
	return float64(s.sum) / float64(s.count)
}

func (s *IntStats[T]) String() string {
	return fmt.Sprintf("IntStats{count=%d, sum=%d, min=%d, average=%f, max=%d}",
		s.count, s.sum, s.min, s.Average(), s.max)
}

// integerBounds returns the smallest and largest values representable by T.
func integerBounds[T constraints.Integer]() (lo, hi T) {
	hi = ^T(0)
	if hi > 0 {
		return 0, hi
	}
	// Signed: find the highest bit below the sign bit.
	hi = 1
	for hi<<1 > 0 {
		hi <<= 1
	}
	hi |= hi - 1
	return -hi - 1, hi
}
