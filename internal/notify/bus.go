package notify

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Listener receives notifications from a Bus
type Listener interface {
	HandleNotification(ctx context.Context, n *Notification) error
	Priority() int
	ID() string
}

// Bus hands notifications to in-process listeners in priority order
type Bus struct {
	listeners []Listener
	logger    *zap.Logger
	mu        sync.RWMutex
}

// NewBus creates a bus with no listeners
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{logger: logger}
}

// Subscribe adds a listener
func (b *Bus) Subscribe(listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = append(b.listeners, listener)
	sort.SliceStable(b.listeners, func(i, j int) bool {
		return b.listeners[i].Priority() < b.listeners[j].Priority()
	})

	b.logger.Debug("listener subscribed",
		zap.String("listener_id", listener.ID()),
		zap.Int("priority", listener.Priority()))
}

// Unsubscribe removes a listener by ID
func (b *Bus) Unsubscribe(listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, l := range b.listeners {
		if l.ID() == listenerID {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Notify delivers n to every listener. A failing listener is logged and
// the rest still run.
func (b *Bus) Notify(ctx context.Context, n *Notification) error {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	for _, l := range listeners {
		if err := l.HandleNotification(ctx, n); err != nil {
			b.logger.Warn("listener failed",
				zap.String("listener_id", l.ID()),
				zap.String("kind", n.Kind),
				zap.Error(err))
		}
	}
	return nil
}
