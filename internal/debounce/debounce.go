// Package debounce turns raw search-field edits into committed queries.
package debounce

import (
	"context"
	"strings"
	"time"
)

const DefaultWindow = 500 * time.Millisecond

// Debounce emits the latest value from in once no new value has arrived for
// window. Every new value restarts the timer. Values are trimmed.
//
// Closing in flushes a pending value and closes the output. Cancelling ctx
// drops a pending value and closes the output.
func Debounce(ctx context.Context, in <-chan string, window time.Duration) <-chan string {
	if window <= 0 {
		window = DefaultWindow
	}
	out := make(chan string)

	go func() {
		defer close(out)

		var (
			timer   *time.Timer
			fire    <-chan time.Time
			pending string
			waiting bool
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		emit := func(value string) bool {
			select {
			case out <- value:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case text, ok := <-in:
				if !ok {
					if waiting {
						emit(pending)
					}
					return
				}
				pending = strings.TrimSpace(text)
				waiting = true
				if timer == nil {
					timer = time.NewTimer(window)
				} else {
					timer.Reset(window)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				waiting = false
				if !emit(pending) {
					return
				}
			}
		}
	}()

	return out
}
