package playwrightimpl

import "context"

// await runs a blocking page call and gives up when ctx ends. Playwright calls take
// no context, so an abandoned call keeps running until the page default timeout
// or the browser context is closed.
func await[T any](ctx context.Context, call func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := call()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
