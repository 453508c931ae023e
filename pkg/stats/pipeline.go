package stats

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// RunArgs describe one ranking run.
type RunArgs struct {
	Input   string
	Years   Years
	Options Options
	Log     *zap.Logger
}

// Run reads the whole input, aggregates it and returns the finished report.
// Nothing is returned on an open or read failure, so callers never see a
// partial ranking.
func Run(ctx context.Context, a RunArgs) (*Report, error) {
	log := a.Log
	if log == nil {
		log = zap.NewNop()
	}
	if err := a.Years.Validate(); err != nil {
		return nil, err
	}

	src, err := Open(ctx, a.Input, a.Options)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	log.Debug("Reading input", zap.String("input", a.Input))

	agg := NewAggregator(a.Years, a.Options.Delimiter, log)
	rows := 0
	for src.Next() {
		agg.AddRow(src.Row())
		rows++
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("reading '%s': %w", a.Input, err)
	}

	agg.Finalize()
	r := NewReport(a.Input, a.Years, agg.Ranking())
	r.Skipped = agg.Skipped()

	log.Info("Ranked prefectures",
		zap.String("input", a.Input),
		zap.Int("rows", rows),
		zap.Int("skipped", agg.Skipped()),
		zap.Int("prefectures", agg.Len()))

	return r, nil
}
