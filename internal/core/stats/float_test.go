package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFloatStats_Empty(t *testing.T) {
	s := NewFloatStats[float64]()
	require.Equal(t, int64(0), s.Count())
	require.Equal(t, 0.0, s.Sum())
	require.Equal(t, 0.0, s.Average())
	require.True(t, math.IsInf(s.Min(), 1))
	require.True(t, math.IsInf(s.Max(), -1))

	f := NewFloatStats32()
	require.True(t, math.IsInf(float64(f.Min()), 1))
	require.True(t, math.IsInf(float64(f.Max()), -1))
}

func TestFloatStats_Record(t *testing.T) {
	s := NewFloatStats[float32]()
	for _, v := range []float32{1.5, -2.25, 4} {
		s.Record(v)
	}
	require.Equal(t, int64(3), s.Count())
	require.Equal(t, 3.25, s.Sum())
	require.Equal(t, float32(-2.25), s.Min())
	require.Equal(t, float32(4), s.Max())
	require.InDelta(t, 3.25/3, s.Average(), 1e-12)
}

func TestFloatStats_NegativeZeroIsSmaller(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{name: "positive first", values: []float64{0, math.Copysign(0, -1)}},
		{name: "negative first", values: []float64{math.Copysign(0, -1), 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewFloatStats[float64]()
			for _, v := range tc.values {
				s.Record(v)
			}
			require.Equal(t, 0.0, s.Min())
			require.True(t, math.Signbit(s.Min()), "min should be -0")
			require.False(t, math.Signbit(s.Max()), "max should be +0")
		})
	}

	f := NewFloatStats[float32]()
	f.Record(0)
	f.Record(float32(math.Copysign(0, -1)))
	require.True(t, math.Signbit(float64(f.Min())))
}

func TestFloatStats_NaNPropagates(t *testing.T) {
	s := NewFloatStats[float64]()
	s.Record(1)
	s.Record(math.NaN())
	s.Record(2)

	require.True(t, math.IsNaN(s.Min()))
	require.True(t, math.IsNaN(s.Max()))
	require.True(t, math.IsNaN(s.Sum()))
	require.Equal(t, int64(3), s.Count())
}

func TestFloatStats_InfiniteSums(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantSum float64
	}{
		{name: "single positive infinity", values: []float64{math.Inf(1)}, wantSum: math.Inf(1)},
		{name: "infinity plus finite", values: []float64{math.Inf(1), 1}, wantSum: math.Inf(1)},
		{name: "two positive infinities", values: []float64{math.Inf(1), math.Inf(1)}, wantSum: math.Inf(1)},
		{name: "two negative infinities", values: []float64{math.Inf(-1), math.Inf(-1)}, wantSum: math.Inf(-1)},
		{name: "opposite infinities", values: []float64{math.Inf(1), math.Inf(-1)}, wantSum: math.NaN()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewFloatStats[float64]()
			naive := 0.0
			for _, v := range tc.values {
				s.Record(v)
				naive += v
			}
			if math.IsNaN(tc.wantSum) {
				require.True(t, math.IsNaN(s.Sum()))
				require.True(t, math.IsNaN(naive))
				return
			}
			require.Equal(t, tc.wantSum, s.Sum())
			require.Equal(t, naive, s.Sum())
		})
	}
}

func TestFloatStats_MergeInfinity(t *testing.T) {
	a := NewFloatStats[float64]()
	a.Record(math.Inf(1))
	b := NewFloatStats[float64]()
	b.Record(3)

	b.Merge(a)
	require.Equal(t, math.Inf(1), b.Sum())
	require.Equal(t, math.Inf(1), b.Max())
	require.Equal(t, 3.0, b.Min())
}

func TestFloatStats_CompensatedSumIsAccurate(t *testing.T) {
	s := NewFloatStats[float64]()
	naive := 0.0
	exact := decimal.Zero
	for i := 0; i < 1000; i++ {
		s.Record(0.1)
		naive += 0.1
		exact = exact.Add(decimal.NewFromFloat(0.1))
	}

	want := exact.InexactFloat64()
	require.Equal(t, 100.0, want)
	require.InDelta(t, want, s.Sum(), 1e-12)
	require.Less(t, math.Abs(s.Sum()-want), math.Abs(naive-want))
}

func TestFloatStats_MergeOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := make([]float64, 2000)
	exact := decimal.Zero
	for i := range values {
		values[i] = rng.Float64()*1e6 - 5e5
		exact = exact.Add(decimal.NewFromFloat(values[i]))
	}
	want := exact.InexactFloat64()

	whole := NewFloatStats[float64]()
	for _, v := range values {
		whole.Record(v)
	}
	require.InDelta(t, want, whole.Sum(), 1e-6)

	for trial := 0; trial < 25; trial++ {
		partials := splitInto(rng, values, NewFloatStats[float64])
		rng.Shuffle(len(partials), func(i, j int) { partials[i], partials[j] = partials[j], partials[i] })

		left := NewFloatStats[float64]()
		for _, p := range partials {
			left.Merge(p)
		}
		tree := mergeTree(partials)

		for _, got := range []*FloatStats[float64]{left, tree} {
			require.Equal(t, whole.Count(), got.Count())
			require.Equal(t, whole.Min(), got.Min())
			require.Equal(t, whole.Max(), got.Max())
			require.InDelta(t, want, got.Sum(), 1e-6)
		}
	}
}

func TestFloatStats_MergeLeavesOtherUnchanged(t *testing.T) {
	a := NewFloatStats[float64]()
	a.Record(1e16)
	b := NewFloatStats[float64]()
	b.Record(1)
	b.Record(1e-3)
	before := *b

	a.Merge(b)
	require.Equal(t, before, *b)
	require.Equal(t, int64(3), a.Count())
}

func TestNewFloatStatsFrom(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name      string
		count     int64
		min       float64
		max       float64
		sum       float64
		wantError bool
	}{
		{name: "negative count", count: -1, min: 1, max: 2, sum: 3, wantError: true},
		{name: "min greater than max", count: 5, min: 10, max: 1, sum: 20, wantError: true},
		{name: "only min is NaN", count: 2, min: nan, max: 1, sum: 2, wantError: true},
		{name: "only sum is NaN", count: 2, min: 1, max: 1, sum: nan, wantError: true},
		{name: "min and max NaN but not sum", count: 2, min: nan, max: nan, sum: 2, wantError: true},
		{name: "all NaN", count: 2, min: nan, max: nan, sum: nan},
		{name: "consistent", count: 3, min: -1.5, max: 4, sum: 3},
		{name: "infinite extremes with NaN sum", count: 2, min: math.Inf(-1), max: math.Inf(1), sum: nan, wantError: true},
		{name: "infinite extremes", count: 2, min: math.Inf(-1), max: math.Inf(1), sum: math.Inf(1)},
		{name: "zero count ignores the rest", count: 0, min: 10, max: 1, sum: nan},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewFloatStatsFrom(tc.count, tc.min, tc.max, tc.sum)
			if tc.wantError {
				require.ErrorIs(t, err, ErrInvalidArgument)
				require.Nil(t, s)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.count, s.Count())
			if tc.count == 0 {
				require.Equal(t, NewFloatStats[float64](), s)
			}
		})
	}
}

func TestFloatStats_SeededThenRecorded(t *testing.T) {
	s, err := NewFloatStatsFrom[float64](2, 1, 3, 4)
	require.NoError(t, err)

	s.Record(5)
	require.Equal(t, int64(3), s.Count())
	require.Equal(t, 9.0, s.Sum())
	require.Equal(t, 1.0, s.Min())
	require.Equal(t, 5.0, s.Max())
	require.Equal(t, 3.0, s.Average())
}

func TestFloatStats_String(t *testing.T) {
	s := NewFloatStats[float64]()
	s.Record(2)
	require.Contains(t, s.String(), "count=1")
}

func TestFloatStats_StateRoundTrip(t *testing.T) {
	s := NewFloatStats[float64]()
	s.Record(math.Inf(1))
	s.Record(math.Inf(-1))

	// The validated seed constructor cannot express this state.
	_, err := NewFloatStatsFrom(s.Count(), s.Min(), s.Max(), s.Sum())
	require.ErrorIs(t, err, ErrInvalidArgument)

	restored, err := FloatStatsFromState(s.State())
	require.NoError(t, err)
	require.Equal(t, s.Count(), restored.Count())
	require.Equal(t, s.Min(), restored.Min())
	require.Equal(t, s.Max(), restored.Max())
	require.True(t, math.IsNaN(restored.Sum()))

	acc := NewFloatStats[float64]()
	for i := 0; i < 10; i++ {
		acc.Record(0.1)
	}
	again, err := FloatStatsFromState(acc.State())
	require.NoError(t, err)
	require.Equal(t, acc.Sum(), again.Sum())
	require.Equal(t, acc.State(), again.State())
}

func TestFloatStatsFromState_Validation(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name  string
		state FloatState[float64]
	}{
		{name: "negative count", state: FloatState[float64]{Count: -1}},
		{name: "min above max", state: FloatState[float64]{Count: 1, Min: 2, Max: 1}},
		{name: "only min NaN", state: FloatState[float64]{Count: 1, Min: nan, Max: 1}},
		{name: "NaN extremes with finite sums", state: FloatState[float64]{Count: 3, Min: nan, Max: nan, Sum: 5, SimpleSum: 5}},
		{name: "NaN extremes with finite simple sum", state: FloatState[float64]{Count: 3, Min: nan, Max: nan, Sum: nan, Compensation: nan, SimpleSum: 5}},
		{name: "NaN extremes with finite compensation", state: FloatState[float64]{Count: 3, Min: nan, Max: nan, Sum: nan, SimpleSum: nan}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FloatStatsFromState(tc.state)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}

	empty, err := FloatStatsFromState(FloatState[float32]{Count: 0, Min: 5, Max: 1})
	require.NoError(t, err)
	require.Equal(t, NewFloatStats[float32](), empty)
}

func TestFloatStatsFromState_NaNSeed(t *testing.T) {
	seeded, err := NewFloatStatsFrom(2, math.NaN(), math.NaN(), math.NaN())
	require.NoError(t, err)

	restored, err := FloatStatsFromState(seeded.State())
	require.NoError(t, err)
	require.Equal(t, int64(2), restored.Count())
	require.True(t, math.IsNaN(restored.Sum()))
}

func TestFloatStatsFromState_RecordedNaN(t *testing.T) {
	s := NewDoubleStats()
	s.Record(1)
	s.Record(math.NaN())
	s.Record(4)

	restored, err := FloatStatsFromState(s.State())
	require.NoError(t, err)
	require.True(t, math.IsNaN(restored.Sum()))
	require.True(t, math.IsNaN(restored.Min()))
	require.True(t, math.IsNaN(restored.Max()))
}
