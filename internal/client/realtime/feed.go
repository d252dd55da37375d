package realtime

import (
	"sync"

	"github.com/dmitrijs2005/lawlink/internal/client/models"
)

// MessageLog is the ordered, append-only message list backing a chat view.
// Messages appear exactly in the order they were appended; the transport's
// delivery order is preserved as-is.
type MessageLog struct {
	mu   sync.Mutex
	msgs []models.ChatMessage
}

func NewMessageLog(history []models.ChatMessage) *MessageLog {
	l := &MessageLog{}
	l.msgs = append(l.msgs, history...)
	return l
}

func (l *MessageLog) Append(msg models.ChatMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

// All returns a copy of the log in order.
func (l *MessageLog) All() []models.ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.ChatMessage, len(l.msgs))
	copy(out, l.msgs)
	return out
}

func (l *MessageLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.msgs)
}

// NotificationFeed backs the notification bell: newest first, with an
// unread counter incremented on every push.
type NotificationFeed struct {
	mu     sync.Mutex
	items  []models.Notification
	unread int
}

func NewNotificationFeed(existing []models.Notification, unread int) *NotificationFeed {
	f := &NotificationFeed{unread: unread}
	f.items = append(f.items, existing...)
	return f
}

// Push prepends a freshly received notification and bumps the unread count.
func (f *NotificationFeed) Push(n models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]models.Notification{n}, f.items...)
	f.unread++
}

// MarkRead marks one notification read locally and decrements the counter.
func (f *NotificationFeed) MarkRead(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id && !f.items[i].IsRead {
			f.items[i].IsRead = true
			if f.unread > 0 {
				f.unread--
			}
			return
		}
	}
}

// MarkAllRead clears the unread counter and flags every item read.
func (f *NotificationFeed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		f.items[i].IsRead = true
	}
	f.unread = 0
}

// All returns a copy, newest first.
func (f *NotificationFeed) All() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Notification, len(f.items))
	copy(out, f.items)
	return out
}

func (f *NotificationFeed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}
