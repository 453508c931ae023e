package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
)

// Report is a finished ranking, kept so it can be shown again without
// re-reading the input.
type Report struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	Years     Years          `json:"years"`
	Generated time.Time      `json:"generated"`
	Skipped   int            `json:"skipped"`
	Entries   []RankingEntry `json:"entries"`
}

func NewReport(source string, years Years, entries []RankingEntry) *Report {
	return &Report{
		ID:        uuid.New().String(),
		Source:    source,
		Years:     years,
		Generated: time.Now(),
		Entries:   entries,
	}
}

// LoadIfExists reads a saved report. found is false when the file does not
// exist.
func LoadIfExists(reportFile string) (r *Report, found bool, err error) {
	data, err := os.ReadFile(reportFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("could not read report '%s': %w", reportFile, err)
	}

	r = new(Report)
	if err := json.Unmarshal(data, r); err != nil {
		return nil, false, fmt.Errorf("could not parse report '%s': %w", reportFile, err)
	}
	return r, true, nil
}

func (r *Report) Save(reportFile string) error {
	js, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode report: %w", err)
	}
	if err := os.WriteFile(reportFile, js, 0644); err != nil {
		return fmt.Errorf("could not write report '%s': %w", reportFile, err)
	}
	return nil
}

// Dump pretty-prints any value for debugging.
func Dump(w io.Writer, o interface{}) {
	spew.Fdump(w, o)
}

// JSON has no encoding for NaN and infinities, so non-finite values are
// stored as strings.
type jsonStats struct {
	Popu10    jsonFloat `json:"popu10"`
	Popu15    jsonFloat `json:"popu15"`
	Change    jsonFloat `json:"change"`
	Finalized bool      `json:"finalized"`
}

type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(strconv.FormatFloat(v, 'f', -1, 64))
	}
	return json.Marshal(v)
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number '%s': %w", s, err)
		}
		*f = jsonFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

func (s PrefectureStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonStats{
		Popu10:    jsonFloat(s.Popu10),
		Popu15:    jsonFloat(s.Popu15),
		Change:    jsonFloat(s.Change),
		Finalized: s.Finalized,
	})
}

func (s *PrefectureStats) UnmarshalJSON(data []byte) error {
	var js jsonStats
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	*s = PrefectureStats{
		Popu10:    float64(js.Popu10),
		Popu15:    float64(js.Popu15),
		Change:    float64(js.Change),
		Finalized: js.Finalized,
	}
	return nil
}
