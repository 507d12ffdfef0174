package stats

import "fmt"

// BoolStats counts true and false values.
//
// Min is the logical AND of everything recorded and Max the logical OR, which
// makes an empty accumulator report Min true and Max false: the same inverted
// empty range the numeric accumulators use. Average is the fraction of true
// values.
type BoolStats struct {
	count int64
	trues int64
}

// NewBoolStats returns an empty accumulator.
func NewBoolStats() *BoolStats {
	return &BoolStats{}
}

// NewBoolStatsFrom returns an accumulator seeded with count values of which
// trues were true.
func NewBoolStatsFrom(count, trues int64) (*BoolStats, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrInvalidArgument, count)
	}
	if trues < 0 || trues > count {
		return nil, fmt.Errorf("%w: true count %d outside [0, %d]", ErrInvalidArgument, trues, count)
	}
	return &BoolStats{count: count, trues: trues}, nil
}

func (s *BoolStats) Record(v bool) {
	s.count++
	if v {
		s.trues++
	}
}

func (s *BoolStats) Merge(other *BoolStats) {
	s.count += other.count
	s.trues += other.trues
}

func (s *BoolStats) Count() int64      { return s.count }
func (s *BoolStats) TrueCount() int64  { return s.trues }
func (s *BoolStats) FalseCount() int64 { return s.count - s.trues }
func (s *BoolStats) Min() bool         { return s.trues == s.count }
func (s *BoolStats) Max() bool         { return s.trues > 0 }

func (s *BoolStats) Average() float64 {
	if s.count == 0 {
		return 0
	}
	return float64(s.trues) / float64(s.count)
}

func (s *BoolStats) String() string {
	return fmt.Sprintf("BoolStats{count=%d, trues=%d, min=%t, max=%t}",
		s.count, s.trues, s.Min(), s.Max())
}
