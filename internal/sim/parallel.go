package sim

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/san-kum/orrery/internal/config"
)

// Ensemble runs independent headless engines, one per seed.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart int64
	metrics   func() []Metric
	log       *log.Logger
}

// NewEnsemble prepares numRuns runs with seeds seedStart, seedStart+1, ...
// metrics builds a fresh metric set per run.
func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64, metrics func() []Metric, logger *log.Logger) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, metrics: metrics, log: logger}
}

func (e *Ensemble) Run(ctx context.Context, ticks int) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.cfg.Clone()
			cfgCopy.Seed = e.seedStart + int64(idx)

			eng, err := New(cfgCopy, e.log)
			if err != nil {
				errs[idx] = err
				return
			}
			if e.metrics != nil {
				for _, m := range e.metrics() {
					eng.AddMetric(m)
				}
			}
			results[idx], errs[idx] = eng.Run(ctx, ticks, nil)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
