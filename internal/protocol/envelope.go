// Package protocol defines the JSON envelopes exchanged over a
// switchboard websocket connection. Every envelope carries a `type`
// discriminator; inbound envelopes are validated here before they reach
// the router.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/calliof/switchboard/internal/domain"
)

// Inbound envelope types.
const (
	TypeLogin          = "login"
	TypePrivateMessage = "private_message"
	TypeFormSubmission = "form_submission"
)

// Outbound envelope types. TypePrivateMessage is used in both directions.
const (
	TypeWelcome          = "welcome"
	TypeAgentStatus      = "agent_status"
	TypeSupportStatus    = "support_status"
	TypeClearChat        = "clear_chat"
	TypeUserAssigned     = "user_assigned"
	TypeUserReconnected  = "user_reconnected"
	TypeUserDisconnected = "user_disconnected"
	TypeError            = "error"
)

var (
	ErrMalformed   = errors.New("malformed envelope")
	ErrUnknownType = errors.New("unknown envelope type")
)

// Envelope is the wire shape for every message. Which fields are set
// depends on Type; Validate enforces the per-variant requirements for
// inbound envelopes.
type Envelope struct {
	Type string `json:"type"`

	// login
	UserID string      `json:"userId,omitempty"`
	Role   domain.Role `json:"role,omitempty"`

	// private_message (both directions)
	Message     string `json:"message,omitempty"`
	SenderID    string `json:"senderId,omitempty"`
	RecipientID string `json:"recipientId,omitempty"`
	SenderRole  string `json:"senderRole,omitempty"`
	SenderName  string `json:"senderName,omitempty"`

	// form_submission
	Data map[string]string `json:"data,omitempty"`

	// bot reply content
	Buttons []domain.Button `json:"buttons,omitempty"`
	Options []domain.Option `json:"options,omitempty"`
	Form    *domain.Form    `json:"form,omitempty"`

	// agent_status / support_status / roster notifications
	AgentID        string `json:"agentId,omitempty"`
	AgentAvailable *bool  `json:"agentAvailable,omitempty"`
	ClearPrevious  bool   `json:"clearPrevious,omitempty"`

	// Internal marks agent-side notifications meant for dashboard state,
	// not the visible transcript.
	Internal bool `json:"internal,omitempty"`
}

// Decode parses and validates an inbound envelope.
func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := env.Validate(); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// Validate checks the per-variant required fields for inbound envelopes.
func (e Envelope) Validate() error {
	switch e.Type {
	case TypeLogin:
		if e.UserID == "" || e.Role == "" {
			return fmt.Errorf("%w: missing userId or role", ErrMalformed)
		}
		if !e.Role.Valid() {
			return fmt.Errorf("%w: invalid role %q", ErrMalformed, e.Role)
		}
	case TypePrivateMessage:
		if e.Message == "" {
			return fmt.Errorf("%w: missing message", ErrMalformed)
		}
	case TypeFormSubmission:
		if e.SenderID == "" {
			return fmt.Errorf("%w: missing senderId", ErrMalformed)
		}
		if len(e.Data) == 0 {
			return fmt.Errorf("%w: missing data", ErrMalformed)
		}
	case "":
		return fmt.Errorf("%w: missing type", ErrMalformed)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, e.Type)
	}
	return nil
}
