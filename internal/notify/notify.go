// Package notify broadcasts cosmetic feedback such as pool changes. Delivery
// is best effort: nothing in the engine depends on a notification arriving.
package notify

import (
	"context"
	"strings"
)

//go:generate mockgen -destination=mock/mock_notifier.go -package=mocknotify -source=notify.go

// KindPoolChange is a change to an actor's health or endurance
const KindPoolChange = "pool-change"

// ColorEndurance tints endurance changes. Other pools use the default color.
const ColorEndurance = "#427ef5"

// Notification is one broadcast
type Notification struct {
	Kind      string   `json:"kind"`
	TargetIDs []string `json:"targetIds"`
	Path      string   `json:"path,omitempty"`
	Delta     float64  `json:"delta"`
	Color     string   `json:"color,omitempty"`
}

// Notifier delivers notifications
type Notifier interface {
	Notify(ctx context.Context, n *Notification) error
}

// PoolChange builds the notification for a pool delta
func PoolChange(targetID, path string, delta float64) *Notification {
	n := &Notification{
		Kind:      KindPoolChange,
		TargetIDs: []string{targetID},
		Path:      path,
		Delta:     delta,
	}
	if strings.HasPrefix(path, "endurance") {
		n.Color = ColorEndurance
	}
	return n
}

// Nop drops every notification
type Nop struct{}

func (Nop) Notify(context.Context, *Notification) error { return nil }
