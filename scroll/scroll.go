// Package scroll drives a lazily-loading directory page until its entry
// count stabilizes, keeping the best attempt across retries.
package scroll

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Page is the minimal surface the scroller needs from the browser layer.
type Page interface {
	ScrollToBottom(ctx context.Context) error
	ScrollBy(ctx context.Context, pixels int) error
	ScrollLastEntryIntoView(ctx context.Context) error
	// TriggerLoadMore clicks a "load more" control if the page has one.
	TriggerLoadMore(ctx context.Context) (bool, error)
	Settle(ctx context.Context, d time.Duration) error
	CountEntries(ctx context.Context) (int, error)
}

// Config holds the scroller's tunables.
type Config struct {
	MaxAttempts     int
	AttemptTimeout  time.Duration
	StabilityWindow int
	ScrollDelay     time.Duration
	// ViewportStep is the pixel height of one incremental scroll step.
	ViewportStep int
	// StepCount is how many incremental steps each attempt takes.
	StepCount int
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:     5,
		AttemptTimeout:  45 * time.Second,
		StabilityWindow: 3,
		ScrollDelay:     2 * time.Second,
		ViewportStep:    1080,
		StepCount:       4,
	}
}

// Attempt records the outcome of one scroll attempt.
type Attempt struct {
	Number    int
	Count     int
	Converged bool
}

// Result is the outcome of a full scroller run.
type Result struct {
	Attempts []Attempt
	Best     Attempt
	// Converged is true when the best attempt saw the entry count hold
	// steady for the stability window. Callers must treat a non-converged
	// result as best-effort partial coverage, not a complete listing.
	Converged bool
}

// Scroller ensures the maximum number of entry elements are present in the
// rendered DOM before extraction begins.
type Scroller struct {
	config Config
}

// New creates a scroller with the given configuration.
func New(config Config) *Scroller {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	if config.StabilityWindow <= 0 {
		config.StabilityWindow = 1
	}
	return &Scroller{config: config}
}

// Run executes up to MaxAttempts scroll attempts against the page and folds
// the attempts into the best result. Non-convergence is degraded output, not
// an error; browser failures other than attempt timeouts propagate.
func (s *Scroller) Run(ctx context.Context, page Page) (Result, error) {
	var attempts []Attempt

	for i := 0; i < s.config.MaxAttempts; i++ {
		attempt, err := s.runAttempt(ctx, page, i+1)
		attempts = append(attempts, attempt)

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				// Attempt-scoped timeout: keep what this attempt measured
				// and move on to the next one.
				log.Printf("scroll attempt %d timed out at %d entries", i+1, attempt.Count)
				continue
			}
			return fold(attempts), fmt.Errorf("scroll attempt %d: %v", i+1, err)
		}

		log.Printf("scroll attempt %d finished with %d entries (converged=%v)",
			attempt.Number, attempt.Count, attempt.Converged)

		if attempt.Converged && i > 0 && attempt.Count == attempts[i-1].Count {
			// Two consecutive attempts agree; further attempts cannot add
			// coverage on a page that has stopped loading.
			break
		}
	}

	return fold(attempts), nil
}

// fold selects the highest-count attempt as authoritative. A later attempt
// regressing (transient render glitch) never displaces an earlier, fuller
// one; ties resolve to the earliest attempt.
func fold(attempts []Attempt) Result {
	result := Result{Attempts: attempts}
	for _, a := range attempts {
		if a.Count > result.Best.Count {
			result.Best = a
		}
	}
	result.Converged = result.Best.Converged
	return result
}

// runAttempt applies the strategy sequence with interleaved measurements
// until the count is stable for the stability window or the sequence ends.
func (s *Scroller) runAttempt(parent context.Context, page Page, number int) (Attempt, error) {
	ctx := parent
	if s.config.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, s.config.AttemptTimeout)
		defer cancel()
	}

	attempt := Attempt{Number: number}
	lastCount := -1
	stable := 0

	measure := func() error {
		count, err := page.CountEntries(ctx)
		if err != nil {
			return err
		}
		if count == lastCount {
			stable++
		} else {
			stable = 0
			lastCount = count
		}
		if count > attempt.Count {
			attempt.Count = count
		}
		return nil
	}

	for _, step := range s.strategies(page) {
		if err := step(ctx); err != nil {
			return attempt, err
		}
		if err := page.Settle(ctx, s.config.ScrollDelay); err != nil {
			return attempt, err
		}
		if err := measure(); err != nil {
			return attempt, err
		}
		if stable >= s.config.StabilityWindow {
			attempt.Converged = true
			return attempt, nil
		}
	}

	return attempt, nil
}

// strategies is the fixed per-attempt sequence of distinct scroll moves.
func (s *Scroller) strategies(page Page) []func(context.Context) error {
	steps := []func(context.Context) error{page.ScrollToBottom}

	for i := 0; i < s.config.StepCount; i++ {
		steps = append(steps, func(ctx context.Context) error {
			return page.ScrollBy(ctx, s.config.ViewportStep)
		})
	}

	steps = append(steps,
		page.ScrollLastEntryIntoView,
		func(ctx context.Context) error {
			_, err := page.TriggerLoadMore(ctx)
			return err
		},
		page.ScrollToBottom,
		// Final settle pass: two extra measurements so a page that stopped
		// producing entries can reach the stability window.
		func(ctx context.Context) error { return page.Settle(ctx, s.config.ScrollDelay) },
		func(ctx context.Context) error { return page.Settle(ctx, s.config.ScrollDelay) },
	)
	return steps
}
