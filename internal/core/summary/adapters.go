package summary

import (
	"fmt"
	"strconv"

	"github.com/aevon-lab/primstats/internal/core/stats"
	"golang.org/x/exp/constraints"
)

type intAccumulator[T constraints.Integer] struct {
	kind Kind
	s    *stats.IntStats[T]
}

func (a *intAccumulator[T]) Kind() Kind       { return a.kind }
func (a *intAccumulator[T]) Count() int64     { return a.s.Count() }
func (a *intAccumulator[T]) Average() float64 { return a.s.Average() }
func (a *intAccumulator[T]) Record(v Value)   { a.s.Record(T(v.Int)) }
func (a *intAccumulator[T]) String() string   { return string(a.kind) + a.s.String() }

func (a *intAccumulator[T]) RecordString(token string) error {
	v, err := ParseValue(a.kind, token)
	if err != nil {
		return err
	}
	a.Record(v)
	return nil
}

func (a *intAccumulator[T]) Merge(other Accumulator) error {
	if other == nil {
		return fmt.Errorf("%w: nil into %s", ErrKindMismatch, a.kind)
	}
	o, ok := other.(*intAccumulator[T])
	if !ok || o.kind != a.kind {
		return fmt.Errorf("%w: %s into %s", ErrKindMismatch, other.Kind(), a.kind)
	}
	a.s.Merge(o.s)
	return nil
}

func (a *intAccumulator[T]) Snapshot() Snapshot {
	return Snapshot{
		Kind:  a.kind,
		Count: a.s.Count(),
		Min:   strconv.FormatInt(int64(a.s.Min()), 10),
		Max:   strconv.FormatInt(int64(a.s.Max()), 10),
		Sum:   strconv.FormatInt(a.s.Sum(), 10),
	}
}

func (a *intAccumulator[T]) Report() Report {
	snap := a.Snapshot()
	return Report{
		Kind:    a.kind,
		Count:   snap.Count,
		Sum:     snap.Sum,
		Min:     snap.Min,
		Max:     snap.Max,
		Average: formatFloat(a.s.Average(), 64),
	}
}

type floatAccumulator[F constraints.Float] struct {
	kind Kind
	s    *stats.FloatStats[F]
}

func (a *floatAccumulator[F]) Kind() Kind       { return a.kind }
func (a *floatAccumulator[F]) Count() int64     { return a.s.Count() }
func (a *floatAccumulator[F]) Average() float64 { return a.s.Average() }
func (a *floatAccumulator[F]) Record(v Value)   { a.s.Record(F(v.Float)) }
func (a *floatAccumulator[F]) String() string   { return string(a.kind) + a.s.String() }

func (a *floatAccumulator[F]) RecordString(token string) error {
	v, err := ParseValue(a.kind, token)
	if err != nil {
		return err
	}
	a.Record(v)
	return nil
}

func (a *floatAccumulator[F]) Merge(other Accumulator) error {
	if other == nil {
		return fmt.Errorf("%w: nil into %s", ErrKindMismatch, a.kind)
	}
	o, ok := other.(*floatAccumulator[F])
	if !ok || o.kind != a.kind {
		return fmt.Errorf("%w: %s into %s", ErrKindMismatch, other.Kind(), a.kind)
	}
	a.s.Merge(o.s)
	return nil
}

func (a *floatAccumulator[F]) Snapshot() Snapshot {
	st := a.s.State()
	bits := floatBits(a.kind)
	return Snapshot{
		Kind:         a.kind,
		Count:        st.Count,
		Min:          formatFloat(float64(st.Min), bits),
		Max:          formatFloat(float64(st.Max), bits),
		Sum:          formatFloat(st.Sum, 64),
		Compensation: formatFloat(st.Compensation, 64),
		SimpleSum:    formatFloat(st.SimpleSum, 64),
	}
}

func (a *floatAccumulator[F]) Report() Report {
	bits := floatBits(a.kind)
	return Report{
		Kind:    a.kind,
		Count:   a.s.Count(),
		Sum:     formatFloat(a.s.Sum(), 64),
		Min:     formatFloat(float64(a.s.Min()), bits),
		Max:     formatFloat(float64(a.s.Max()), bits),
		Average: formatFloat(a.s.Average(), 64),
	}
}

type boolAccumulator struct {
	s *stats.BoolStats
}

func (a *boolAccumulator) Kind() Kind       { return KindBoolean }
func (a *boolAccumulator) Count() int64     { return a.s.Count() }
func (a *boolAccumulator) Average() float64 { return a.s.Average() }
func (a *boolAccumulator) Record(v Value)   { a.s.Record(v.Bool) }
func (a *boolAccumulator) String() string   { return string(KindBoolean) + a.s.String() }

func (a *boolAccumulator) RecordString(token string) error {
	v, err := ParseValue(KindBoolean, token)
	if err != nil {
		return err
	}
	a.Record(v)
	return nil
}

func (a *boolAccumulator) Merge(other Accumulator) error {
	if other == nil {
		return fmt.Errorf("%w: nil into %s", ErrKindMismatch, KindBoolean)
	}
	o, ok := other.(*boolAccumulator)
	if !ok {
		return fmt.Errorf("%w: %s into %s", ErrKindMismatch, other.Kind(), KindBoolean)
	}
	a.s.Merge(o.s)
	return nil
}

func (a *boolAccumulator) Snapshot() Snapshot {
	return Snapshot{
		Kind:  KindBoolean,
		Count: a.s.Count(),
		Trues: a.s.TrueCount(),
	}
}

func (a *boolAccumulator) Report() Report {
	return Report{
		Kind:    KindBoolean,
		Count:   a.s.Count(),
		Sum:     strconv.FormatInt(a.s.TrueCount(), 10),
		Min:     strconv.FormatBool(a.s.Min()),
		Max:     strconv.FormatBool(a.s.Max()),
		Average: formatFloat(a.s.Average(), 64),
	}
}

func floatBits(k Kind) int {
	if k == KindFloat {
		return 32
	}
	return 64
}

func formatFloat(f float64, bits int) string {
	return strconv.FormatFloat(f, 'g', -1, bits)
}
