package stats

import (
	"errors"
	"fmt"
)

var (
	// ErrOpen is returned when the input cannot be opened or fetched.
	ErrOpen = errors.New("could not open input")
	// ErrRead is returned when the input fails part way through.
	ErrRead = errors.New("could not read input")
)

// Column positions within a population record.
const (
	YearColumn       = 0
	PrefectureColumn = 2
	PopulationColumn = 7
)

// Years are the two census years being compared.
type Years struct {
	Earlier int `json:"earlier" yaml:"earlier"`
	Later   int `json:"later" yaml:"later"`
}

// DefaultYears are the 2010 and 2015 national censuses.
var DefaultYears = Years{Earlier: 2010, Later: 2015}

func (y Years) Validate() error {
	if y.Earlier == y.Later {
		return fmt.Errorf("target years must differ, both are %d", y.Earlier)
	}
	return nil
}

// PrefectureStats holds the running population sums for one prefecture.
// Change stays unset until Finalize is called.
type PrefectureStats struct {
	Popu10    float64 `json:"popu10"`
	Popu15    float64 `json:"popu15"`
	Change    float64 `json:"change"`
	Finalized bool    `json:"finalized"`
}

// Finalize computes Change as Popu15 / Popu10. Division by zero is left to
// float semantics and yields +Inf or NaN. Calling it again is a no-op.
func (s *PrefectureStats) Finalize() {
	if s.Finalized {
		return
	}
	s.Change = s.Popu15 / s.Popu10
	s.Finalized = true
}

// RankingEntry pairs a prefecture with its finalized stats.
type RankingEntry struct {
	Prefecture string          `json:"prefecture"`
	Stats      PrefectureStats `json:"stats"`
}
