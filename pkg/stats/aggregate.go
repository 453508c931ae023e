package stats

import (
	"math"
	"strings"

	"go.uber.org/zap"
)

// Aggregator sums population per prefecture for the two target years.
// It is not safe for concurrent use.
type Aggregator struct {
	years     Years
	delimiter string
	log       *zap.Logger

	prefs   map[string]*PrefectureStats
	order   []string
	skipped int
}

func NewAggregator(years Years, delimiter string, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	if delimiter == "" {
		delimiter = ","
	}
	return &Aggregator{
		years:     years,
		delimiter: delimiter,
		log:       log,
		prefs:     make(map[string]*PrefectureStats),
	}
}

// Add splits a raw line on the delimiter and aggregates it.
func (a *Aggregator) Add(line string) {
	a.AddRow(strings.Split(line, a.delimiter))
}

// AddRow aggregates one record. Rows for other years are ignored, and so are
// rows whose year is not a number.
func (a *Aggregator) AddRow(cols []string) {
	if len(cols) <= PopulationColumn {
		a.skipped++
		a.log.Debug("Skipping short row", zap.Int("columns", len(cols)))
		return
	}

	year := parseInt(cols[YearColumn])
	if year != float64(a.years.Earlier) && year != float64(a.years.Later) {
		return
	}

	prefecture := cols[PrefectureColumn]
	popu := parseInt(cols[PopulationColumn])

	s := a.getOrInsert(prefecture)
	if year == float64(a.years.Earlier) {
		s.Popu10 += popu
	} else {
		s.Popu15 += popu
	}
}

func (a *Aggregator) getOrInsert(prefecture string) *PrefectureStats {
	s, ok := a.prefs[prefecture]
	if !ok {
		s = &PrefectureStats{}
		a.prefs[prefecture] = s
		a.order = append(a.order, prefecture)
	}
	return s
}

// Get returns the stats collected so far for a prefecture.
func (a *Aggregator) Get(prefecture string) (PrefectureStats, bool) {
	s, ok := a.prefs[prefecture]
	if !ok {
		return PrefectureStats{}, false
	}
	return *s, true
}

// Len is the number of distinct prefectures seen in target-year rows.
func (a *Aggregator) Len() int {
	return len(a.order)
}

// Skipped is the number of rows dropped for lacking the population column.
func (a *Aggregator) Skipped() int {
	return a.skipped
}

// parseInt reads a leading base-10 integer the way a lenient text parser
// would: leading whitespace and a sign are allowed, trailing garbage is
// ignored, and no digits at all gives NaN.
func parseInt(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f\u00a0\ufeff")

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	var n float64
	digits := 0
	for ; digits < len(s); digits++ {
		c := s[digits]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + float64(c-'0')
	}
	if digits == 0 {
		return math.NaN()
	}
	if neg {
		n = -n
	}
	return n
}
