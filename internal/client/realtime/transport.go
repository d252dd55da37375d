package realtime

import (
	"context"
	"fmt"

	"github.com/coder/websocket"
)

const maxReadBytes = 1 << 20 // 1MiB

// Transport is one established channel to the hub. Implementations must be
// safe for one concurrent reader plus one concurrent writer.
type Transport interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}

// Dialer establishes transports. The websocket implementation is the
// production one; tests use a scripted fake.
type Dialer interface {
	Dial(ctx context.Context, url string) (Transport, error)
}

// WSDialer dials the hub over websocket.
type WSDialer struct{}

func (WSDialer) Dial(ctx context.Context, url string) (Transport, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing hub: %w", err)
	}
	conn.SetReadLimit(maxReadBytes)
	return &wsTransport{conn: conn}, nil
}

type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) Read(ctx context.Context) ([]byte, error) {
	_, data, err := t.conn.Read(ctx)
	return data, err
}

func (t *wsTransport) Write(ctx context.Context, data []byte) error {
	return t.conn.Write(ctx, websocket.MessageText, data)
}

func (t *wsTransport) Close() error {
	return t.conn.Close(websocket.StatusNormalClosure, "bye")
}
