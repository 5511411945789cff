package notify

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Multi fans a notification out to several notifiers at once
type Multi []Notifier

// Notify delivers to every notifier and returns the first error. One
// failing notifier does not cancel delivery to the others.
func (m Multi) Notify(ctx context.Context, n *Notification) error {
	var g errgroup.Group
	for _, notifier := range m {
		notifier := notifier
		g.Go(func() error {
			return notifier.Notify(ctx, n)
		})
	}
	return g.Wait()
}
