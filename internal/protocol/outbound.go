package protocol

import "github.com/calliof/switchboard/internal/domain"

// BotSenderName is the display name attached to automated replies.
const BotSenderName = "AI Assistant"

// AgentSenderName formats the display name for a live agent.
func AgentSenderName(agentID string) string {
	return "Agent " + agentID
}

// NewWelcome builds the one-time greeting sent to a fresh user session.
func NewWelcome(reply domain.Reply) Envelope {
	return Envelope{
		Type:       TypeWelcome,
		Message:    reply.Message,
		Buttons:    reply.Buttons,
		Options:    reply.Options,
		Form:       reply.Form,
		SenderRole: "bot",
		SenderName: BotSenderName,
	}
}

// NewError builds a generic error envelope.
func NewError(message string) Envelope {
	return Envelope{Type: TypeError, Message: message}
}

// NewAgentStatus confirms to an agent that it is online.
func NewAgentStatus(agentID string) Envelope {
	return Envelope{
		Type:       TypeAgentStatus,
		AgentID:    agentID,
		Message:    "You are now online as " + AgentSenderName(agentID),
		SenderRole: string(domain.RoleAgent),
		SenderName: AgentSenderName(agentID),
	}
}

// NewSupportStatus tells a user about a change in live-agent availability.
func NewSupportStatus(available bool, agentID, message string) Envelope {
	env := Envelope{
		Type:           TypeSupportStatus,
		AgentAvailable: &available,
		AgentID:        agentID,
		Message:        message,
	}
	if available {
		env.SenderRole = string(domain.RoleAgent)
		env.SenderName = AgentSenderName(agentID)
		env.ClearPrevious = true
	} else {
		env.SenderRole = "bot"
		env.SenderName = BotSenderName
	}
	return env
}

// NewClearChat instructs the client to reset the visible transcript
// before an agent handoff.
func NewClearChat() Envelope {
	return Envelope{Type: TypeClearChat, Message: "Switching to agent chat..."}
}

// NewUserAssigned notifies an agent that a user joined its roster.
func NewUserAssigned(userID string) Envelope {
	return Envelope{
		Type:     TypeUserAssigned,
		UserID:   userID,
		Message:  "A new user (" + userID + ") has been assigned to you.",
		Internal: true,
	}
}

// NewUserReconnected notifies an agent that an assigned user reconnected.
func NewUserReconnected(userID string) Envelope {
	return Envelope{Type: TypeUserReconnected, UserID: userID, Internal: true}
}

// NewUserDisconnected notifies an agent that a user left its roster.
func NewUserDisconnected(userID, message string) Envelope {
	return Envelope{Type: TypeUserDisconnected, UserID: userID, Message: message}
}

// NewChatLine builds a routed person-to-person chat message.
func NewChatLine(senderID, recipientID, message string, senderRole domain.Role) Envelope {
	env := Envelope{
		Type:        TypePrivateMessage,
		SenderID:    senderID,
		RecipientID: recipientID,
		Message:     message,
		SenderRole:  string(senderRole),
	}
	if senderRole == domain.RoleAgent {
		env.SenderName = AgentSenderName(senderID)
	}
	return env
}

// NewBotReply builds an automated reply addressed to a user, carrying any
// catalog buttons, options, or form.
func NewBotReply(recipientID string, reply domain.Reply) Envelope {
	return Envelope{
		Type:        TypePrivateMessage,
		SenderID:    "bot",
		RecipientID: recipientID,
		Message:     reply.Message,
		Buttons:     reply.Buttons,
		Options:     reply.Options,
		Form:        reply.Form,
		SenderRole:  "bot",
		SenderName:  BotSenderName,
	}
}
