package lifecycle

import (
	"context"
)

// Run starts a run of cfg on a new Sampler and blocks until it completes.
//
// host must service its update thread on another goroutine: Run schedules
// Start through host.Defer and waits for the completion handler. If ctx is
// done first, Run returns ctx.Err(); the run itself is not cancelled and
// still terminates on its own.
func Run(ctx context.Context, host Host, cfg Config, opts ...Option) (*Result, error) {
	return New(host, opts...).Run(ctx, cfg)
}

// Run starts cfg on s via the host's update thread and waits for the result.
func (s *Sampler) Run(ctx context.Context, cfg Config) (*Result, error) {
	done := make(chan *Result, 1)
	errc := make(chan error, 1)

	s.host.Defer(func() {
		err := s.Start(cfg, func(r *Result) {
			done <- r
		})
		if err != nil {
			errc <- err
		}
	})

	select {
	case r := <-done:
		return r, nil
	case err := <-errc:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
