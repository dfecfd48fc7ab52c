package cargo

import (
	"errors"
	"testing"
	"time"
)

// scriptedQuerier returns the queued results in order, one per Run call.
type scriptedQuerier struct {
	results []scriptedResult
	calls   int
}

type scriptedResult struct {
	rows []Row
	err  error
}

func (s *scriptedQuerier) Run(q Query) ([]Row, error) {
	if s.calls >= len(s.results) {
		panic("scriptedQuerier: unexpected extra call")
	}
	r := s.results[s.calls]
	s.calls++
	return r.rows, r.err
}

func newTestRunner(q Querier) (*Runner, *[]time.Duration) {
	r := NewRunner(q, 2*time.Second, 30*time.Second)
	var slept []time.Duration
	r.sleep = func(d time.Duration) { slept = append(slept, d) }
	return r, &slept
}

func TestRunner_Success(t *testing.T) {
	q := &scriptedQuerier{results: []scriptedResult{
		{rows: []Row{{"MatchId": "m1"}}},
	}}
	r, slept := newTestRunner(q)

	rows, err := r.Run(Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Get("MatchId") != "m1" {
		t.Errorf("unexpected rows: %+v", rows)
	}
	// Only the pacing sleep, no cooldown.
	if len(*slept) != 1 || (*slept)[0] != 2*time.Second {
		t.Errorf("expected one 2s pacing sleep, got %v", *slept)
	}
}

func TestRunner_RetriesOnceOnRateLimit(t *testing.T) {
	q := &scriptedQuerier{results: []scriptedResult{
		{err: ErrRateLimited},
		{rows: []Row{{"MatchId": "m1"}}},
	}}
	r, slept := newTestRunner(q)

	rows, err := r.Run(Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if q.calls != 2 {
		t.Errorf("expected 2 calls, got %d", q.calls)
	}
	want := []time.Duration{2 * time.Second, 30 * time.Second}
	if len(*slept) != 2 || (*slept)[0] != want[0] || (*slept)[1] != want[1] {
		t.Errorf("expected sleeps %v, got %v", want, *slept)
	}
}

func TestRunner_SecondRateLimitIsFatal(t *testing.T) {
	q := &scriptedQuerier{results: []scriptedResult{
		{err: ErrRateLimited},
		{err: ErrRateLimited},
	}}
	r, _ := newTestRunner(q)

	_, err := r.Run(Query{})
	if err == nil {
		t.Fatal("expected error after second rate limit")
	}
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected wrapped ErrRateLimited, got %v", err)
	}
	if q.calls != 2 {
		t.Errorf("expected exactly 2 calls (one retry), got %d", q.calls)
	}
}

func TestRunner_NoRetryOnOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	q := &scriptedQuerier{results: []scriptedResult{{err: boom}}}
	r, slept := newTestRunner(q)

	_, err := r.Run(Query{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
	if q.calls != 1 {
		t.Errorf("expected 1 call (no retry), got %d", q.calls)
	}
	if len(*slept) != 1 {
		t.Errorf("expected only the pacing sleep, got %v", *slept)
	}
}
