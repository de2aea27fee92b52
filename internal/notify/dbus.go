//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = "/org/freedesktop/Notifications"
	busMethod = busName + ".Notify"
)

type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without a bus it returns Nop.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Nop{}, nil //nolint:nilerr // notifications are optional
	}
	return &busNotifier{obj: conn.Object(busName, busPath)}, nil
}

func (b *busNotifier) Notify(n Notification) error {
	if err := b.obj.Call(busMethod, 0, notifyArgs(n)...).Err; err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

// notifyArgs orders n as app_name, replaces_id, app_icon, summary, body,
// actions, hints, expire_timeout.
func notifyArgs(n Notification) []any {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(AppName),
	}
	return []any{
		AppName,
		uint32(0),
		n.Icon,
		n.Title,
		n.Body,
		[]string{},
		hints,
		int32(n.Timeout.Milliseconds()), //nolint:gosec // seconds-scale timeouts
	}
}
