package stats

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

type (
	FloatStats32 = FloatStats[float32]
	DoubleStats  = FloatStats[float64]
)

func NewFloatStats32() *FloatStats32 { return NewFloatStats[float32]() }
func NewDoubleStats() *DoubleStats   { return NewFloatStats[float64]() }

// FloatStats is a running count/sum/min/max over floating-point values.
//
// The sum is accumulated in float64 with Kahan compensation, alongside a plain
// running sum that is used when the compensated sum degenerates to NaN while
// the plain sum is infinite. Min and max follow IEEE semantics: a recorded NaN
// makes both NaN, and -0 orders below +0.
type FloatStats[F constraints.Float] struct {
	count        int64
	sum          float64
	compensation float64
	simpleSum    float64
	min          F
	max          F
}

// NewFloatStats returns an empty accumulator with min +Inf and max -Inf.
func NewFloatStats[F constraints.Float]() *FloatStats[F] {
	return &FloatStats[F]{min: F(math.Inf(1)), max: F(math.Inf(-1))}
}

// NewFloatStatsFrom returns an accumulator seeded with a previously computed
// state. With a positive count, min must not exceed max and min, max and sum
// must either all be NaN or none of them.
func NewFloatStatsFrom[F constraints.Float](count int64, minVal, maxVal F, sum float64) (*FloatStats[F], error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrInvalidArgument, count)
	}
	if count == 0 {
		return NewFloatStats[F](), nil
	}
	if minVal > maxVal {
		return nil, fmt.Errorf("%w: min %v greater than max %v", ErrInvalidArgument, minVal, maxVal)
	}
	nans := 0
	for _, v := range [...]float64{float64(minVal), float64(maxVal), sum} {
		if math.IsNaN(v) {
			nans++
		}
	}
	if nans > 0 && nans < 3 {
		return nil, fmt.Errorf("%w: min, max and sum must all be NaN or none of them", ErrInvalidArgument)
	}
	s := &FloatStats[F]{
		count:     count,
		sum:       sum,
		simpleSum: sum,
		min:       minVal,
		max:       maxVal,
	}
	if nans == 3 {
		// Same state a recorded NaN leaves behind.
		s.compensation = math.NaN()
	}
	return s, nil
}

// Record folds v into the accumulator.
func (s *FloatStats[F]) Record(v F) {
	s.count++
	s.simpleSum += float64(v)
	s.add(float64(v))
	s.min = minFloat(s.min, v)
	s.max = maxFloat(s.max, v)
}

// Merge absorbs other into s. other is left unchanged.
func (s *FloatStats[F]) Merge(other *FloatStats[F]) {
	s.count += other.count
	s.simpleSum += other.simpleSum
	s.add(other.sum)
	// Subtract the other side's outstanding error through the same step.
	s.add(-other.compensation)
	s.min = minFloat(s.min, other.min)
	s.max = maxFloat(s.max, other.max)
}

// add is one Kahan summation step.
func (s *FloatStats[F]) add(v float64) {
	tmp := v - s.compensation
	next := s.sum + tmp
	s.compensation = (next - s.sum) - tmp
	s.sum = next
}

func (s *FloatStats[F]) Count() int64 { return s.count }
func (s *FloatStats[F]) Min() F       { return s.min }
func (s *FloatStats[F]) Max() F       { return s.max }

// Sum returns the compensated sum. If compensation produced NaN from
// cancelling infinities while the plain sum is infinite, the plain sum wins.
func (s *FloatStats[F]) Sum() float64 {
	tmp := s.sum - s.compensation
	if math.IsNaN(tmp) && math.IsInf(s.simpleSum, 0) {
		return s.simpleSum
	}
	return tmp
}

// Average returns Sum()/Count(), or 0 when nothing was recorded.
func (s *FloatStats[F]) Average() float64 {
	if s.count == 0 {
		return 0
	}
	return s.Sum() / float64(s.count)
}

func (s *FloatStats[F]) String() string {
	return fmt.Sprintf("FloatStats{count=%d, sum=%f, min=%f, average=%f, max=%f}",
		s.count, s.Sum(), s.min, s.Average(), s.max)
}

// math.Min and math.Max already order -0 below +0 and propagate NaN.
func minFloat[F constraints.Float](a, b F) F {
	return F(math.Min(float64(a), float64(b)))
}

func maxFloat[F constraints.Float](a, b F) F {
	return F(math.Max(float64(a), float64(b)))
}

// FloatState is the complete internal state of a FloatStats, including the
// compensation term, so a persisted accumulator keeps its accuracy.
type FloatState[F constraints.Float] struct {
	Count        int64
	Sum          float64
	Compensation float64
	SimpleSum    float64
	Min          F
	Max          F
}

func (s *FloatStats[F]) State() FloatState[F] {
	return FloatState[F]{
		Count:        s.count,
		Sum:          s.sum,
		Compensation: s.compensation,
		SimpleSum:    s.simpleSum,
		Min:          s.min,
		Max:          s.max,
	}
}

// FloatStatsFromState rebuilds an accumulator from a State. Min and max must
// be ordered and agree on NaN-ness. A NaN min means a NaN was recorded, which
// leaves every sum part NaN, so a state with NaN extremes and a finite sum
// part is rejected.
func FloatStatsFromState[F constraints.Float](st FloatState[F]) (*FloatStats[F], error) {
	if st.Count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrInvalidArgument, st.Count)
	}
	if st.Count == 0 {
		return NewFloatStats[F](), nil
	}
	if st.Min > st.Max {
		return nil, fmt.Errorf("%w: min %v greater than max %v", ErrInvalidArgument, st.Min, st.Max)
	}
	if math.IsNaN(float64(st.Min)) != math.IsNaN(float64(st.Max)) {
		return nil, fmt.Errorf("%w: min and max must both be NaN or neither", ErrInvalidArgument)
	}
	if math.IsNaN(float64(st.Min)) &&
		!(math.IsNaN(st.Sum) && math.IsNaN(st.Compensation) && math.IsNaN(st.SimpleSum)) {
		return nil, fmt.Errorf("%w: NaN min and max require NaN sum, compensation and simple sum", ErrInvalidArgument)
	}
	return &FloatStats[F]{
		count:        st.Count,
		sum:          st.Sum,
		compensation: st.Compensation,
		simpleSum:    st.SimpleSum,
		min:          st.Min,
		max:          st.Max,
	}, nil
}
