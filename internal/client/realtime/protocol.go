// Package realtime maintains a live channel to the messaging hub for
// exactly as long as a dependent view is mounted. Each view owns an
// independent connection; there is no cross-view sharing.
package realtime

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Version is the protocol version identifier embedded into every envelope.
const Version = "v1"

// Event types (wire-stable).
const (
	// TypeJoin subscribes this connection to events for one identity
	// (client -> server). The server routes subsequent pushes to it.
	TypeJoin = "join"
	// TypeMessage delivers a chat message (server -> client).
	TypeMessage = "message"
	// TypeNotification delivers a notification (server -> client).
	TypeNotification = "notification"
)

// Envelope is the canonical wire wrapper.
type Envelope struct {
	V       string          `json:"v"`
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	TS      time.Time       `json:"ts,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Validate performs structural validation for an inbound Envelope.
func (e Envelope) Validate() error {
	if e.V != Version {
		return fmt.Errorf("unsupported protocol version: %q", e.V)
	}
	if e.Type == "" {
		return errors.New("missing field: type")
	}
	switch e.Type {
	case TypeJoin, TypeMessage, TypeNotification:
		return nil
	default:
		return fmt.Errorf("unknown type: %q", e.Type)
	}
}

// JoinPayload scopes the connection to the current identity. UserID is a
// string on the wire, matching the hub contract.
type JoinPayload struct {
	UserID string `json:"user_id"`
}

// NewEnvelope wraps a payload for sending; the id is a fresh ulid.
func NewEnvelope(eventType string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		V:       Version,
		Type:    eventType,
		ID:      ulid.MustNew(ulid.Now(), rand.Reader).String(),
		TS:      time.Now().UTC(),
		Payload: raw,
	}, nil
}
