package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lawlink/internal/client/models"
	"github.com/dmitrijs2005/lawlink/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewZerologLogger(zerolog.Nop())
}

// ---- fake transport / dialer ----

type fakeTransport struct {
	in chan []byte

	mu     sync.Mutex
	writes [][]byte

	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		in:     make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

func (t *fakeTransport) Read(ctx context.Context) ([]byte, error) {
	select {
	case data := <-t.in:
		return data, nil
	case <-t.closed:
		return nil, errors.New("transport closed")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (t *fakeTransport) Write(ctx context.Context, data []byte) error {
	select {
	case <-t.closed:
		return errors.New("transport closed")
	default:
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writes = append(t.writes, append([]byte(nil), data...))
	return nil
}

func (t *fakeTransport) Close() error {
	t.closeOnce.Do(func() { close(t.closed) })
	return nil
}

func (t *fakeTransport) isClosed() bool {
	select {
	case <-t.closed:
		return true
	default:
		return false
	}
}

func (t *fakeTransport) sentEnvelopes(tb testing.TB) []Envelope {
	tb.Helper()
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Envelope, 0, len(t.writes))
	for _, w := range t.writes {
		var env Envelope
		require.NoError(tb, json.Unmarshal(w, &env))
		out = append(out, env)
	}
	return out
}

// push delivers a server event to the client.
func (t *fakeTransport) push(tb testing.TB, eventType string, payload any) {
	tb.Helper()
	env, err := NewEnvelope(eventType, payload)
	require.NoError(tb, err)
	data, err := json.Marshal(env)
	require.NoError(tb, err)
	t.in <- data
}

// drop simulates a transport-level failure.
func (t *fakeTransport) drop() { _ = t.Close() }

type fakeDialer struct {
	mu         sync.Mutex
	transports []*fakeTransport
	errs       []error
	dials      int
	onDial     func()
}

func (d *fakeDialer) Dial(ctx context.Context, url string) (Transport, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dials++
	if d.onDial != nil {
		d.onDial()
	}
	if len(d.errs) > 0 {
		err := d.errs[0]
		d.errs = d.errs[1:]
		return nil, err
	}
	if len(d.transports) == 0 {
		return nil, errors.New("no transport scripted")
	}
	t := d.transports[0]
	d.transports = d.transports[1:]
	return t, nil
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

func newTestConn(d Dialer, userID int64) *Conn {
	return New(Options{
		URL:                 "ws://hub.test/ws",
		UserID:              userID,
		Dialer:              d,
		Logger:              testLogger(),
		ReconnectBaseDelay:  time.Millisecond,
		ReconnectMaxRetries: 3,
	})
}

// ---- tests ----

func TestOpen_TransitionsAndJoinsExactlyOnce(t *testing.T) {
	transport := newFakeTransport()
	dialer := &fakeDialer{transports: []*fakeTransport{transport}}

	conn := newTestConn(dialer, 9)
	require.Equal(t, StateDisconnected, conn.State())

	dialer.onDial = func() {
		require.Equal(t, StateConnecting, conn.State())
	}

	require.NoError(t, conn.Open(context.Background()))
	defer conn.Close()

	require.Equal(t, StateConnected, conn.State())

	sent := transport.sentEnvelopes(t)
	require.Len(t, sent, 1, "join is issued exactly once per transport")
	require.Equal(t, TypeJoin, sent[0].Type)

	var join JoinPayload
	require.NoError(t, json.Unmarshal(sent[0].Payload, &join))
	require.Equal(t, "9", join.UserID)
	require.Equal(t, 1, conn.JoinsSent())
}

func TestOpen_DialFailure_ReturnsDisconnected(t *testing.T) {
	dialer := &fakeDialer{errs: []error{errors.New("refused")}}
	conn := newTestConn(dialer, 1)

	require.Error(t, conn.Open(context.Background()))
	require.Equal(t, StateDisconnected, conn.State())
}

func TestDispatch_PreservesTransportOrder(t *testing.T) {
	transport := newFakeTransport()
	dialer := &fakeDialer{transports: []*fakeTransport{transport}}
	conn := newTestConn(dialer, 9)

	log := NewMessageLog(nil)
	conn.OnChatMessage(log.Append)

	require.NoError(t, conn.Open(context.Background()))
	defer conn.Close()

	for _, text := range []string{"A", "B", "C"} {
		transport.push(t, TypeMessage, models.ChatMessage{SenderName: "anna", Message: text})
	}

	require.Eventually(t, func() bool { return log.Len() == 3 }, time.Second, time.Millisecond)

	msgs := log.All()
	require.Equal(t, "A", msgs[0].Message)
	require.Equal(t, "B", msgs[1].Message)
	require.Equal(t, "C", msgs[2].Message)
}

func TestOn_UnsubscribeStopsDelivery(t *testing.T) {
	transport := newFakeTransport()
	dialer := &fakeDialer{transports: []*fakeTransport{transport}}
	conn := newTestConn(dialer, 9)

	log := NewMessageLog(nil)
	unsubscribe := conn.OnChatMessage(log.Append)

	require.NoError(t, conn.Open(context.Background()))
	defer conn.Close()

	transport.push(t, TypeMessage, models.ChatMessage{Message: "first"})
	require.Eventually(t, func() bool { return log.Len() == 1 }, time.Second, time.Millisecond)

	unsubscribe()
	transport.push(t, TypeMessage, models.ChatMessage{Message: "second"})
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, 1, log.Len())
}

func TestClose_ReleasesTransportAndStopsDelivery(t *testing.T) {
	transport := newFakeTransport()
	dialer := &fakeDialer{transports: []*fakeTransport{transport}}
	conn := newTestConn(dialer, 9)

	log := NewMessageLog(nil)
	conn.OnChatMessage(log.Append)

	require.NoError(t, conn.Open(context.Background()))
	conn.Close()

	require.Equal(t, StateDisconnected, conn.State())
	require.True(t, transport.isClosed())
	require.Equal(t, 1, dialer.dialCount(), "closing must not trigger a reconnect")

	conn.Close() // idempotent
}

func TestReconnect_RedialsAndRejoins(t *testing.T) {
	first := newFakeTransport()
	second := newFakeTransport()
	dialer := &fakeDialer{transports: []*fakeTransport{first, second}}
	conn := newTestConn(dialer, 9)

	log := NewMessageLog(nil)
	conn.OnChatMessage(log.Append)

	require.NoError(t, conn.Open(context.Background()))
	defer conn.Close()

	first.drop()

	require.Eventually(t, func() bool {
		return conn.State() == StateConnected && conn.JoinsSent() == 2
	}, time.Second, time.Millisecond, "reconnect must re-issue the identity join")

	joins := second.sentEnvelopes(t)
	require.Len(t, joins, 1)
	require.Equal(t, TypeJoin, joins[0].Type)

	// Events on the new transport still reach the same handlers.
	second.push(t, TypeMessage, models.ChatMessage{Message: "after reconnect"})
	require.Eventually(t, func() bool { return log.Len() == 1 }, time.Second, time.Millisecond)
}

func TestReconnect_ExhaustedRetries_SettlesDisconnected(t *testing.T) {
	first := newFakeTransport()
	dialer := &fakeDialer{
		transports: []*fakeTransport{first},
		errs:       []error{},
	}
	conn := newTestConn(dialer, 9)

	require.NoError(t, conn.Open(context.Background()))
	defer conn.Close()

	// All subsequent dials fail.
	dialer.mu.Lock()
	dialer.errs = []error{
		errors.New("down"), errors.New("down"), errors.New("down"), errors.New("down"),
	}
	dialer.mu.Unlock()

	first.drop()

	require.Eventually(t, func() bool {
		return conn.State() == StateDisconnected
	}, 2*time.Second, time.Millisecond)
}

func TestDispatch_IgnoresUnknownAndInvalidEnvelopes(t *testing.T) {
	transport := newFakeTransport()
	dialer := &fakeDialer{transports: []*fakeTransport{transport}}
	conn := newTestConn(dialer, 9)

	log := NewMessageLog(nil)
	conn.OnChatMessage(log.Append)

	require.NoError(t, conn.Open(context.Background()))
	defer conn.Close()

	transport.in <- []byte("not json")
	transport.in <- []byte(`{"v":"v0","type":"message"}`)
	transport.push(t, "mystery", map[string]string{"x": "y"})
	transport.push(t, TypeMessage, models.ChatMessage{Message: "valid"})

	require.Eventually(t, func() bool { return log.Len() == 1 }, time.Second, time.Millisecond)
	require.Equal(t, "valid", log.All()[0].Message)
}
