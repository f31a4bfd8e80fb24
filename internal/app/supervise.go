package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Service is a side task that runs alongside the session, such as the
// status server. Run must return once ctx is cancelled.
type Service interface {
	Run(ctx context.Context) error
}

// Supervise runs the session and the services in one errgroup. The first
// error cancels the others; a session that ends cleanly also stops the
// services.
func Supervise(ctx context.Context, session Service, services ...Service) error {
	g, gctx := errgroup.WithContext(ctx)
	sctx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error {
		defer stop()
		return session.Run(sctx)
	})
	for _, s := range services {
		g.Go(func() error {
			return s.Run(sctx)
		})
	}
	return g.Wait()
}
