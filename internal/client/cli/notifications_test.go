package cli

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lawlink/internal/client/models"
	"github.com/dmitrijs2005/lawlink/internal/client/realtime"
)

func TestWatch_SnapshotJoinAndQuit(t *testing.T) {
	fc := &fakeClient{
		NotificationsRet: []models.Notification{
			{ID: 1, Title: "Enquiry", Message: "accepted", IsRead: true},
		},
	}
	a := newTestApp(t, fc,
		models.Identity{ID: 5, Username: "anna", Role: models.RoleClient},
		"/quit\n")

	transport := &stubTransport{closed: make(chan struct{})}
	a.dialer = &stubDialer{transport: transport}

	require.NoError(t, a.Watch(context.Background()))

	transport.mu.Lock()
	joins := transport.writes
	transport.mu.Unlock()
	require.Equal(t, 1, joins, "identity join is sent on connect")

	select {
	case <-transport.closed:
	default:
		t.Fatal("transport not released after watch ended")
	}
}

func TestWatch_PushedNotificationEntersFeed(t *testing.T) {
	transport := &stubTransport{closed: make(chan struct{}), in: make(chan []byte, 1)}
	conn := realtime.New(realtime.Options{
		URL:    "ws://hub",
		UserID: 5,
		Dialer: &stubDialer{transport: transport},
		Logger: testLogger(),
	})

	feed := realtime.NewNotificationFeed(nil, 0)
	unsubscribe := watchNotifications(conn, feed)
	defer unsubscribe()

	require.NoError(t, conn.Open(context.Background()))
	defer conn.Close()

	env, err := realtime.NewEnvelope(realtime.TypeNotification, models.Notification{
		ID:      9,
		Title:   "Consultation",
		Message: "booked",
	})
	require.NoError(t, err)
	data, err := json.Marshal(env)
	require.NoError(t, err)
	transport.in <- data

	require.Eventually(t, func() bool { return feed.Unread() == 1 },
		time.Second, 5*time.Millisecond)

	all := feed.All()
	require.NotEmpty(t, all)
	require.Equal(t, int64(9), all[0].ID, "push prepends the newest notification")
}
