package domain

import "time"

// Stage is the conversation stage of a user session.
type Stage string

const (
	// StageCategory is the initial stage: the user is browsing canned
	// options or chatting with the automated responder.
	StageCategory Stage = "category"

	// StageWithAgent means every inbound user message is forwarded
	// verbatim to the assigned agent.
	StageWithAgent Stage = "with_agent"

	// StagePostAgent is the transitional stage entered right after a
	// user-initiated exit from an agent conversation. The next inbound
	// message is consumed by a welcome-back reply.
	StagePostAgent Stage = "post_agent"
)

// Turn roles in a session's rolling history.
const (
	TurnUser      = "user"
	TurnAssistant = "assistant"
)

// Turn is a single entry in a session's rolling message history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session tracks the per-user conversation state. It is created on first
// contact and lives for the lifetime of the user identifier.
type Session struct {
	UserID   string            `json:"userId"`
	Stage    Stage             `json:"stage"`
	Data     map[string]string `json:"data,omitempty"`
	History  []Turn            `json:"history,omitempty"`
	ThreadID string            `json:"threadId"`

	// JustLeftAgent marks that the user exited an agent conversation and
	// the next message should be consumed into a welcome-back reply.
	JustLeftAgent bool `json:"justLeftAgent,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReconnectRecord is the short-lived persisted hint used to restore
// routing state after a dropped connection. For agents the recorded
// AgentID equals the agent's own identifier.
type ReconnectRecord struct {
	UserID    string    `json:"userId"`
	Role      Role      `json:"role"`
	AgentID   string    `json:"agentId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
