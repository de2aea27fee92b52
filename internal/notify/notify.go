// Package notify posts desktop notifications over the session D-Bus.
// Where no bus is reachable every call succeeds silently.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// AppName is announced to the notification server.
const AppName = "saavn"

// Urgency is the freedesktop notification priority.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification is a fire-and-forget desktop message.
type Notification struct {
	Title   string
	Body    string
	Icon    string // freedesktop icon name
	Timeout time.Duration
	Urgency Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	Notify(n Notification) error
}

// Downloaded describes a finished download of size bytes saved as name.
func Downloaded(name string, size int64) Notification {
	return Notification{
		Title:   "Download complete",
		Body:    fmt.Sprintf("%s (%s)", name, humanize.Bytes(uint64(max(size, 0)))),
		Icon:    "folder-download",
		Timeout: 5 * time.Second,
		Urgency: UrgencyNormal,
	}
}

// DownloadFailed describes a download that fell back to the browser.
func DownloadFailed(name string, err error) Notification {
	return Notification{
		Title:   "Download failed",
		Body:    fmt.Sprintf("%s: %v. Opened in browser instead.", name, err),
		Icon:    "dialog-warning",
		Timeout: 8 * time.Second,
		Urgency: UrgencyCritical,
	}
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(Notification) error { return nil }

// Recorder keeps sent notifications in memory. Used by tests.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *Recorder) Notify(n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

// Sent returns the notifications received so far.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}
