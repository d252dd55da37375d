package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/lawlink/internal/client/models"
	"github.com/dmitrijs2005/lawlink/internal/logging"
)

// State is the transport lifecycle state of a Conn.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "disconnected"
	}
}

// Handler receives one inbound envelope. Handlers run on the read loop
// goroutine in transport-delivery order; no resequencing or dedup is done.
type Handler func(env Envelope)

// Options configure a Conn.
type Options struct {
	// URL of the messaging hub endpoint.
	URL string
	// UserID scopes the join so the server routes events to this connection.
	// Must match the current session's identity or events misroute.
	UserID int64
	// Dialer defaults to WSDialer.
	Dialer Dialer
	// Logger for connection diagnostics. Failures are logged, never
	// surfaced as user-visible errors.
	Logger logging.Logger

	// ReconnectBaseDelay seeds the exponential backoff after a transport
	// drop. Defaults to 500ms.
	ReconnectBaseDelay time.Duration
	// ReconnectMaxRetries caps redial attempts per drop. Defaults to 5;
	// once exhausted the connection settles in StateDisconnected and the
	// view keeps whatever history it already fetched over REST.
	ReconnectMaxRetries uint64
}

// Conn is one live channel to the messaging hub, owned by a single view.
// Open establishes it; Close releases the transport so sockets do not leak
// across navigations.
type Conn struct {
	opts   Options
	dialer Dialer
	log    logging.Logger

	mu        sync.Mutex
	state     State
	transport Transport
	handlers  map[string]map[int]Handler
	nextSub   int
	joins     int

	done      chan struct{}
	cancel    context.CancelFunc
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func New(opts Options) *Conn {
	if opts.Dialer == nil {
		opts.Dialer = WSDialer{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewZerologLogger(zerolog.Nop())
	}
	if opts.ReconnectBaseDelay <= 0 {
		opts.ReconnectBaseDelay = 500 * time.Millisecond
	}
	if opts.ReconnectMaxRetries == 0 {
		opts.ReconnectMaxRetries = 5
	}
	return &Conn{
		opts:     opts,
		dialer:   opts.Dialer,
		log:      opts.Logger.With("component", "realtime", "user_id", opts.UserID),
		handlers: make(map[string]map[int]Handler),
		done:     make(chan struct{}),
	}
}

// State returns the current transport state.
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open dials the hub, issues the identity-scoped join exactly once for the
// established transport, and starts the read loop. It is called on view
// mount, once the current identity is known.
func (c *Conn) Open(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateDisconnected {
		c.mu.Unlock()
		return errors.New("connection already open")
	}
	c.state = StateConnecting
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	t, err := c.dialer.Dial(ctx, c.opts.URL)
	if err != nil {
		c.setState(StateDisconnected)
		return err
	}
	if err := c.sendJoin(ctx, t); err != nil {
		_ = t.Close()
		c.setState(StateDisconnected)
		return err
	}

	c.mu.Lock()
	c.transport = t
	c.state = StateConnected
	c.mu.Unlock()

	c.log.Info(ctx, "hub connected")

	c.wg.Add(1)
	go c.readLoop(ctx, t)
	return nil
}

func (c *Conn) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Conn) sendJoin(ctx context.Context, t Transport) error {
	env, err := NewEnvelope(TypeJoin, JoinPayload{UserID: strconv.FormatInt(c.opts.UserID, 10)})
	if err != nil {
		return err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	if err := t.Write(ctx, data); err != nil {
		return err
	}
	c.mu.Lock()
	c.joins++
	c.mu.Unlock()
	return nil
}

// On registers a handler for one event type and returns its unsubscribe
// function. Unsubscribing is deterministic: after it returns, the handler
// is never invoked again.
func (c *Conn) On(eventType string, h Handler) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSub++
	id := c.nextSub
	if c.handlers[eventType] == nil {
		c.handlers[eventType] = make(map[int]Handler)
	}
	c.handlers[eventType][id] = h

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.handlers[eventType], id)
	}
}

// OnChatMessage registers a typed handler for chat message receipts.
func (c *Conn) OnChatMessage(fn func(models.ChatMessage)) (unsubscribe func()) {
	return c.On(TypeMessage, func(env Envelope) {
		var msg models.ChatMessage
		if err := json.Unmarshal(env.Payload, &msg); err != nil {
			c.log.Warn(context.Background(), "dropping malformed message payload", "err", err)
			return
		}
		fn(msg)
	})
}

// OnNotification registers a typed handler for notification receipts.
func (c *Conn) OnNotification(fn func(models.Notification)) (unsubscribe func()) {
	return c.On(TypeNotification, func(env Envelope) {
		var n models.Notification
		if err := json.Unmarshal(env.Payload, &n); err != nil {
			c.log.Warn(context.Background(), "dropping malformed notification payload", "err", err)
			return
		}
		fn(n)
	})
}

func (c *Conn) dispatch(env Envelope) {
	if err := env.Validate(); err != nil {
		c.log.Warn(context.Background(), "dropping invalid envelope", "err", err)
		return
	}

	c.mu.Lock()
	hs := make([]Handler, 0, len(c.handlers[env.Type]))
	for _, h := range c.handlers[env.Type] {
		hs = append(hs, h)
	}
	c.mu.Unlock()

	for _, h := range hs {
		h(env)
	}
}

func (c *Conn) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Conn) readLoop(ctx context.Context, t Transport) {
	defer c.wg.Done()

	for {
		data, err := t.Read(ctx)
		if err != nil {
			if c.closed() || ctx.Err() != nil {
				return
			}
			c.log.Warn(ctx, "hub transport dropped", "err", err)
			next, ok := c.reconnect(ctx)
			if !ok {
				c.setState(StateDisconnected)
				return
			}
			t = next
			continue
		}

		if c.closed() {
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.log.Warn(ctx, "dropping undecodable frame", "err", err)
			continue
		}
		c.dispatch(env)
	}
}

// reconnect redials with capped exponential backoff and re-issues the
// identity join before the connection is considered established again.
// The join is not optional: without it the server has no route for this
// identity and the view would silently stop receiving events.
func (c *Conn) reconnect(ctx context.Context) (Transport, bool) {
	c.mu.Lock()
	old := c.transport
	c.transport = nil
	c.state = StateReconnecting
	c.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	var established Transport
	backoff := retry.WithMaxRetries(c.opts.ReconnectMaxRetries, retry.NewExponential(c.opts.ReconnectBaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if c.closed() {
			return errors.New("connection closed")
		}
		t, err := c.dialer.Dial(ctx, c.opts.URL)
		if err != nil {
			return retry.RetryableError(err)
		}
		if err := c.sendJoin(ctx, t); err != nil {
			_ = t.Close()
			return retry.RetryableError(err)
		}
		established = t
		return nil
	})
	if err != nil || c.closed() {
		if established != nil {
			_ = established.Close()
		}
		c.log.Error(ctx, "hub reconnect failed; live updates disabled", "err", err)
		return nil, false
	}

	c.mu.Lock()
	c.transport = established
	c.state = StateConnected
	c.mu.Unlock()

	c.log.Info(ctx, "hub reconnected")
	return established, true
}

// Close releases the transport and stops event delivery. Idempotent; called
// on view unmount.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)

		c.mu.Lock()
		if c.cancel != nil {
			c.cancel()
		}
		t := c.transport
		c.transport = nil
		c.state = StateDisconnected
		c.handlers = make(map[string]map[int]Handler)
		c.mu.Unlock()

		if t != nil {
			_ = t.Close()
		}
		c.wg.Wait()
	})
}

// JoinsSent reports how many identity joins were written over the life of
// the connection (one per established transport).
func (c *Conn) JoinsSent() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.joins
}
