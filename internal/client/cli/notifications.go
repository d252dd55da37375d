package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/lawlink/internal/client/api"
	"github.com/dmitrijs2005/lawlink/internal/client/models"
	"github.com/dmitrijs2005/lawlink/internal/client/realtime"
)

// Notifications prints the notification feed, newest first, with the unread
// count from the backend.
func (a *App) Notifications(ctx context.Context) error {
	userID := a.sessions.Current().Identity.ID

	items, err := a.client.Notifications(ctx, userID)
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}
	unread, err := a.client.UnreadCount(ctx, userID)
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	feed := realtime.NewNotificationFeed(items, unread)

	fmt.Printf("Notifications (%d unread):\n", feed.Unread())
	for _, n := range feed.All() {
		marker := " "
		if !n.IsRead {
			marker = "*"
		}
		fmt.Printf("%s #%d %s: %s\n", marker, n.ID, n.Title, n.Message)
	}
	return nil
}

// Watch follows the notification feed live: it loads the current snapshot,
// joins the realtime hub, and prints notifications as the hub pushes them,
// until the user types /quit.
func (a *App) Watch(ctx context.Context) error {
	userID := a.sessions.Current().Identity.ID

	items, err := a.client.Notifications(ctx, userID)
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}
	unread, err := a.client.UnreadCount(ctx, userID)
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	feed := realtime.NewNotificationFeed(items, unread)

	conn := realtime.New(realtime.Options{
		URL:    a.config.HubURL,
		UserID: userID,
		Dialer: a.dialer,
		Logger: a.log,
	})

	unsubscribe := watchNotifications(conn, feed)
	defer unsubscribe()

	if err := conn.Open(ctx); err != nil {
		fmt.Println("Could not connect to the messaging hub:", err.Error())
		return err
	}
	defer conn.Close()

	fmt.Printf("Watching notifications (%d unread); /quit to leave.\n", feed.Unread())
	for {
		line, err := getSimpleText(a.reader, "", os.Stdout)
		if err != nil {
			return err
		}
		if line == "/quit" {
			return nil
		}
	}
}

// watchNotifications prepends each pushed notification to the feed and
// echoes it to the terminal with the updated unread count.
func watchNotifications(conn *realtime.Conn, feed *realtime.NotificationFeed) (unsubscribe func()) {
	return conn.OnNotification(func(n models.Notification) {
		feed.Push(n)
		fmt.Printf("* #%d %s: %s (%d unread)\n", n.ID, n.Title, n.Message, feed.Unread())
	})
}

// MarkRead marks a single notification read.
func (a *App) MarkRead(ctx context.Context) error {
	id, err := GetID(a.reader, "Enter notification id", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	if err := a.client.MarkNotificationRead(ctx, id); err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}
	fmt.Printf("Notification #%d marked read\n", id)
	return nil
}

// MarkAllRead marks every notification read on the backend.
func (a *App) MarkAllRead(ctx context.Context) error {
	userID := a.sessions.Current().Identity.ID
	if err := a.client.MarkAllNotificationsRead(ctx, userID); err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}
	fmt.Println("All notifications marked read")
	return nil
}
