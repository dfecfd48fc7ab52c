package cargo

import (
	"errors"
	"fmt"
	"time"
)

// Runner wraps a Querier with the collection throttling policy: a fixed
// pacing delay before every fresh query, and a single cooldown-then-retry
// when the remote signals rate limiting. A second rate-limit failure
// propagates to the caller and is fatal for the run.
type Runner struct {
	querier  Querier
	pacing   time.Duration
	cooldown time.Duration
	sleep    func(time.Duration)
}

// NewRunner returns a Runner with the given pacing and cooldown delays.
func NewRunner(q Querier, pacing, cooldown time.Duration) *Runner {
	return &Runner{
		querier:  q,
		pacing:   pacing,
		cooldown: cooldown,
		sleep:    time.Sleep,
	}
}

// Run paces, executes q, and retries exactly once after a cooldown if the
// remote reported throttling. Non-rate-limit errors are returned as-is.
func (r *Runner) Run(q Query) ([]Row, error) {
	r.sleep(r.pacing)

	rows, err := r.querier.Run(q)
	if err == nil {
		return rows, nil
	}
	if !errors.Is(err, ErrRateLimited) {
		return nil, err
	}

	r.sleep(r.cooldown)
	rows, err = r.querier.Run(q)
	if err != nil {
		return nil, fmt.Errorf("retry after rate limit: %w", err)
	}
	return rows, nil
}
