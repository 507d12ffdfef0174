package summary

import (
	"fmt"
	"strconv"

	"github.com/aevon-lab/primstats/internal/core/stats"
	"golang.org/x/exp/constraints"
)

// Snapshot is the persisted form of an accumulator. Numbers are kept as
// strings so NaN, the infinities and -0 survive JSON and YAML.
//
// Compensation and SimpleSum are only set for float and double. A float
// snapshot without SimpleSum is treated as a caller-supplied seed and goes
// through the stricter (count, min, max, sum) validation.
type Snapshot struct {
	Kind         Kind   `json:"kind" yaml:"kind"`
	Count        int64  `json:"count" yaml:"count"`
	Min          string `json:"min,omitempty" yaml:"min,omitempty"`
	Max          string `json:"max,omitempty" yaml:"max,omitempty"`
	Sum          string `json:"sum,omitempty" yaml:"sum,omitempty"`
	Compensation string `json:"compensation,omitempty" yaml:"compensation,omitempty"`
	SimpleSum    string `json:"simple_sum,omitempty" yaml:"simple_sum,omitempty"`
	Trues        int64  `json:"trues,omitempty" yaml:"trues,omitempty"`
}

// Report is the read-only view returned to API and CLI callers.
type Report struct {
	Kind    Kind   `json:"kind"`
	Count   int64  `json:"count"`
	Sum     string `json:"sum"`
	Min     string `json:"min"`
	Max     string `json:"max"`
	Average string `json:"average"`
}

// Restore rebuilds an accumulator from a snapshot. Inconsistent snapshots
// fail with an error wrapping stats.ErrInvalidArgument.
func Restore(s Snapshot) (Accumulator, error) {
	switch s.Kind {
	case KindByte:
		return restoreInt[int8](s)
	case KindShort:
		return restoreInt[int16](s)
	case KindChar:
		return restoreInt[uint16](s)
	case KindInt:
		return restoreInt[int32](s)
	case KindLong:
		return restoreInt[int64](s)
	case KindFloat:
		return restoreFloat[float32](s)
	case KindDouble:
		return restoreFloat[float64](s)
	case KindBoolean:
		b, err := stats.NewBoolStatsFrom(s.Count, s.Trues)
		if err != nil {
			return nil, err
		}
		return &boolAccumulator{s: b}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
}

func restoreInt[T constraints.Integer](s Snapshot) (Accumulator, error) {
	if s.Count == 0 {
		return New(s.Kind)
	}
	minVal, err := parseIntField[T]("min", s.Min)
	if err != nil {
		return nil, err
	}
	maxVal, err := parseIntField[T]("max", s.Max)
	if err != nil {
		return nil, err
	}
	sum, err := strconv.ParseInt(s.Sum, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot sum %q", ErrInvalidValue, s.Sum)
	}
	is, err := stats.NewIntStatsFrom(s.Count, minVal, maxVal, sum)
	if err != nil {
		return nil, err
	}
	return &intAccumulator[T]{kind: s.Kind, s: is}, nil
}

func parseIntField[T constraints.Integer](name, raw string) (T, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: snapshot %s %q", ErrInvalidValue, name, raw)
	}
	if int64(T(v)) != v {
		return 0, fmt.Errorf("%w: snapshot %s %d", ErrValueOutOfRange, name, v)
	}
	return T(v), nil
}

func restoreFloat[F constraints.Float](s Snapshot) (Accumulator, error) {
	if s.Count == 0 {
		return New(s.Kind)
	}
	var fields [3]float64
	for i, raw := range [3]string{s.Min, s.Max, s.Sum} {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: snapshot field %q", ErrInvalidValue, raw)
		}
		fields[i] = f
	}
	minVal, maxVal, sum := F(fields[0]), F(fields[1]), fields[2]

	if s.SimpleSum == "" {
		fs, err := stats.NewFloatStatsFrom(s.Count, minVal, maxVal, sum)
		if err != nil {
			return nil, err
		}
		return &floatAccumulator[F]{kind: s.Kind, s: fs}, nil
	}

	compensation, err := strconv.ParseFloat(s.Compensation, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot compensation %q", ErrInvalidValue, s.Compensation)
	}
	simpleSum, err := strconv.ParseFloat(s.SimpleSum, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot simple_sum %q", ErrInvalidValue, s.SimpleSum)
	}
	fs, err := stats.FloatStatsFromState(stats.FloatState[F]{
		Count:        s.Count,
		Sum:          sum,
		Compensation: compensation,
		SimpleSum:    simpleSum,
		Min:          minVal,
		Max:          maxVal,
	})
	if err != nil {
		return nil, err
	}
	return &floatAccumulator[F]{kind: s.Kind, s: fs}, nil
}
