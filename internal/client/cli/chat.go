package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/lawlink/internal/client/api"
	"github.com/dmitrijs2005/lawlink/internal/client/models"
	"github.com/dmitrijs2005/lawlink/internal/client/realtime"
)

// Chat opens a live conversation with another user: it loads the stored
// history, joins the realtime hub, and then reads lines from the terminal
// until the user types /quit. Incoming messages from the peer are printed
// as they arrive.
func (a *App) Chat(ctx context.Context) error {
	peerID, err := GetID(a.reader, "Enter user id to chat with", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	history, err := a.client.ChatHistory(ctx, peerID)
	if err != nil {
		fmt.Println(api.ErrorMessage(err))
		return err
	}

	log := realtime.NewMessageLog(history)
	for _, m := range history {
		printChatMessage(m)
	}

	conn := realtime.New(realtime.Options{
		URL:    a.config.HubURL,
		UserID: a.sessions.Current().Identity.ID,
		Dialer: a.dialer,
		Logger: a.log,
	})

	self := a.sessions.Current().Identity.ID
	unsubscribe := conn.OnChatMessage(func(m models.ChatMessage) {
		if m.SenderID != peerID && m.ReceiverID != peerID {
			return
		}
		log.Append(m)
		if m.SenderID != self {
			printChatMessage(m)
		}
	})
	defer unsubscribe()

	if err := conn.Open(ctx); err != nil {
		fmt.Println("Could not connect to the messaging hub:", err.Error())
		return err
	}
	defer conn.Close()

	fmt.Println("Connected. Type a message and press Enter; /quit to leave.")
	for {
		line, err := getSimpleText(a.reader, "", os.Stdout)
		if err != nil {
			return err
		}
		if line == "/quit" {
			return nil
		}
		if line == "" {
			continue
		}
		if err := a.client.SendChatMessage(ctx, peerID, line); err != nil {
			fmt.Println(api.ErrorMessage(err))
			continue
		}
		log.Append(models.ChatMessage{
			SenderID:   self,
			ReceiverID: peerID,
			Message:    line,
			SentAt:     time.Now(),
		})
	}
}

func printChatMessage(m models.ChatMessage) {
	name := m.SenderName
	if name == "" {
		name = fmt.Sprintf("user %d", m.SenderID)
	}
	fmt.Printf("[%s] %s: %s\n", m.SentAt.Format("15:04"), name, m.Message)
}
