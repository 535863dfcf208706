package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy is a fixed-count, fixed-interval poll budget.
type Policy struct {
	Attempts int
	Interval time.Duration

	// Sleep is substituted in tests; nil means time.Sleep.
	Sleep func(time.Duration)
}

// ErrExhausted is returned by Do when the condition never became true
// within the attempt budget.
type ErrExhausted struct {
	Attempts int
}

func (e *ErrExhausted) Error() string {
	return fmt.Sprintf("condition not met after %d attempts", e.Attempts)
}

// Do invokes check up to p.Attempts times, sleeping p.Interval between
// attempts. It stops early when check returns true or a non-nil error.
func (p Policy) Do(ctx context.Context, check func(context.Context) (bool, error)) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for i := 0; i < p.Attempts; i++ {
		if i > 0 {
			sleep(p.Interval)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := check(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return &ErrExhausted{Attempts: p.Attempts}
}
