package hub

import (
	"context"

	"github.com/calliof/switchboard/internal/content"
	"github.com/calliof/switchboard/internal/domain"
	"github.com/calliof/switchboard/internal/protocol"
)

// HandleLogin processes a login envelope on a fresh connection. It
// returns the identity the connection is now bound to, or ok=false when
// the login was rejected (the rejection envelope has already been sent).
func (h *Hub) HandleLogin(ctx context.Context, conn Conn, env protocol.Envelope) (string, domain.Role, bool) {
	id, role := env.UserID, env.Role

	if !h.attempts.ShouldAllow(id) {
		h.log.Warn().Str("id", id).Msg("login rejected by attempt guard")
		conn.Send(protocol.NewError("Too many connection attempts. Please wait a moment and try again."))
		return "", "", false
	}

	// Last-writer-wins: close the stale handle before replacing it so
	// the old transport cannot keep draining messages meant for the new
	// one. A repeated login on the same transport just rebinds in place.
	if prev, ok := h.registry.Lookup(id); ok && prev.Conn != conn {
		prev.Conn.Close()
	}
	h.registry.Register(id, role, conn)

	if role == domain.RoleAgent {
		h.agentLogin(id, conn)
	} else {
		h.userLogin(id, conn)
	}
	return id, role, true
}

func (h *Hub) agentLogin(agentID string, conn Conn) {
	h.presence.MarkOnline(agentID)
	h.assignments.EnsureAgent(agentID)
	h.reconnects.Persist(agentID, domain.RoleAgent, agentID)
	conn.Send(protocol.NewAgentStatus(agentID))
	h.log.Info().Str("agent_id", agentID).Int("online", h.presence.OnlineCount()).Msg("agent online")
}

func (h *Hub) userLogin(userID string, conn Conn) {
	rec, hasRec := h.reconnects.Get(userID)

	assigned, _ := h.assignments.AgentOf(userID)
	if assigned == "" && hasRec {
		assigned = rec.AgentID
	}

	if assigned != "" && h.presence.IsOnline(assigned) {
		// Resume the agent conversation on the new transport.
		h.assignments.Assign(userID, assigned)
		h.sessions.SetStage(userID, domain.StageWithAgent)
		h.reconnects.Persist(userID, domain.RoleUser, assigned)

		conn.Send(protocol.NewClearChat())
		conn.Send(protocol.NewSupportStatus(true, assigned,
			"You're reconnected to "+protocol.AgentSenderName(assigned)+"."))
		if agentConn, ok := h.registry.Lookup(assigned); ok {
			agentConn.Conn.Send(protocol.NewUserReconnected(userID))
		}
		h.log.Info().Str("user_id", userID).Str("agent_id", assigned).Msg("user resumed agent conversation")
		return
	}

	h.sessions.GetOrCreate(userID)
	if h.sessions.Stage(userID) == domain.StageWithAgent {
		// The recorded agent is gone; the session falls back to
		// automated routing. The post-agent stage is left alone so the
		// welcome-back still fires after an explicit exit.
		h.sessions.SetStage(userID, domain.StageCategory)
	}
	h.reconnects.Persist(userID, domain.RoleUser, "")
	if !hasRec {
		// Only genuinely new sessions get the greeting; reconnecting
		// users already have a transcript on screen.
		welcome, _ := content.Lookup(content.KeyWelcome)
		conn.Send(protocol.NewWelcome(welcome))
	}
	h.log.Info().Str("user_id", userID).Bool("reconnect", hasRec).Msg("user online")
}

// HandlePrivateMessage routes a chat message from a logged-in sender.
func (h *Hub) HandlePrivateMessage(ctx context.Context, conn Conn, senderID string, senderRole domain.Role, env protocol.Envelope) {
	if senderID == "" {
		conn.Send(protocol.NewError("You must log in before sending messages."))
		return
	}
	if senderRole == domain.RoleAgent {
		h.routeAgentMessage(conn, senderID, env)
		return
	}
	h.routeUserMessage(ctx, conn, senderID, env.Message)
}

func (h *Hub) routeAgentMessage(conn Conn, agentID string, env protocol.Envelope) {
	if env.RecipientID == "" {
		conn.Send(protocol.NewError("Agent messages must include a recipientId."))
		return
	}
	assigned, _ := h.assignments.AgentOf(env.RecipientID)
	if assigned != agentID {
		h.log.Warn().Str("agent_id", agentID).Str("recipient_id", env.RecipientID).Msg("agent message to unassigned user blocked")
		conn.Send(protocol.NewError("You are not assigned to this user."))
		return
	}
	userConn, ok := h.registry.Lookup(env.RecipientID)
	if !ok {
		conn.Send(protocol.NewError("User " + env.RecipientID + " is not connected."))
		return
	}
	userConn.Conn.Send(protocol.NewChatLine(agentID, env.RecipientID, env.Message, domain.RoleAgent))
}

func (h *Hub) routeUserMessage(ctx context.Context, conn Conn, userID, message string) {
	h.sessions.GetOrCreate(userID)

	agentID, _ := h.assignments.AgentOf(userID)
	agentLive := agentID != "" && h.presence.IsOnline(agentID)

	switch {
	case agentLive && content.IsExitTrigger(message):
		h.endAgentConversation(conn, userID, agentID)
	case agentLive:
		if agentConn, ok := h.registry.Lookup(agentID); ok {
			agentConn.Conn.Send(protocol.NewChatLine(userID, agentID, message, domain.RoleUser))
		}
	case content.IsAgentRequest(message):
		h.requestAgent(conn, userID, message)
	default:
		h.composeReply(ctx, userID, message)
	}
}

func (h *Hub) endAgentConversation(conn Conn, userID, agentID string) {
	h.assignments.Unassign(userID)
	h.sessions.MarkLeftAgent(userID)
	h.reconnects.Persist(userID, domain.RoleUser, "")

	if agentConn, ok := h.registry.Lookup(agentID); ok {
		agentConn.Conn.Send(protocol.NewUserDisconnected(userID, "User has ended the chat."))
	}
	exit, _ := content.Lookup(content.KeyExitChat)
	conn.Send(protocol.NewBotReply(userID, exit))
	h.log.Info().Str("user_id", userID).Str("agent_id", agentID).Msg("user ended agent conversation")
}

func (h *Hub) requestAgent(conn Conn, userID, message string) {
	agentID, ok := h.balancer.Pick()
	if !ok {
		h.log.Info().Str("user_id", userID).Msg("agent requested but none online")
		form, _ := content.Lookup(content.KeyAgentUnavailableForm)
		conn.Send(protocol.NewBotReply(userID, form))
		return
	}

	h.assignments.Assign(userID, agentID)
	h.sessions.SetStage(userID, domain.StageWithAgent)
	h.reconnects.Persist(userID, domain.RoleUser, agentID)

	conn.Send(protocol.NewClearChat())
	conn.Send(protocol.NewSupportStatus(true, agentID,
		"You're now connected to "+protocol.AgentSenderName(agentID)+"."))

	if agentConn, ok := h.registry.Lookup(agentID); ok {
		agentConn.Conn.Send(protocol.NewUserAssigned(userID))
		// Forward the triggering message so the agent has context.
		agentConn.Conn.Send(protocol.NewChatLine(userID, agentID, message, domain.RoleUser))
	}
	h.log.Info().Str("user_id", userID).Str("agent_id", agentID).Int("load", h.assignments.Load(agentID)).Msg("user assigned to agent")
}

// composeReply produces the automated answer for a category-stage user
// message: the post-agent welcome back, a canned catalog reply, or a
// responder call. Responder calls for the same user are serialized so
// their history updates never interleave; the reply is delivered to
// whatever connection the user has when composition finishes, and is
// dropped if the user is gone.
func (h *Hub) composeReply(ctx context.Context, userID, message string) {
	if h.sessions.ConsumeWelcomeBack(userID) {
		welcome, _ := content.Lookup(content.KeyWelcome)
		h.deliverBotReply(userID, welcome)
		return
	}

	if key := content.MatchIntent(message); key != "" {
		reply, _ := content.Lookup(key)
		h.deliverBotReply(userID, reply)
		return
	}

	mu := h.sessions.ComposeLock(userID)
	mu.Lock()
	defer mu.Unlock()

	h.sessions.AppendTurn(userID, domain.TurnUser, message)
	turns := h.sessions.ResponderTurns(userID)

	reply, err := h.responder.Complete(ctx, turns)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Str("provider", h.responder.Name()).Msg("responder call failed")
		h.deliverBotReply(userID, content.Fallback())
		return
	}
	h.sessions.AppendTurn(userID, domain.TurnAssistant, reply.Message)
	h.deliverBotReply(userID, reply)
}

func (h *Hub) deliverBotReply(userID string, reply domain.Reply) {
	c, ok := h.registry.Lookup(userID)
	if !ok {
		h.log.Debug().Str("user_id", userID).Msg("dropping reply for disconnected user")
		return
	}
	c.Conn.Send(protocol.NewBotReply(userID, reply))
}

// HandleFormSubmission stores a contact-form lead and acknowledges it.
// Persistence failures are logged but never break the conversation.
func (h *Hub) HandleFormSubmission(ctx context.Context, conn Conn, env protocol.Envelope) {
	if _, err := h.leads.Save(env.SenderID, env.Data); err != nil {
		h.log.Error().Err(err).Str("user_id", env.SenderID).Msg("saving lead failed")
	} else {
		h.log.Info().Str("user_id", env.SenderID).Msg("lead saved")
	}
	conn.Send(protocol.NewBotReply(env.SenderID, domain.Reply{
		Message: "✅ Thank you! Our team will contact you soon.",
	}))
}

// HandleDisconnect cleans up after a connection closes. Agents are taken
// out of presence and their roster entry dropped; their users keep a
// stale assignment pointer so they can resume if the agent returns.
// Users are unbound from their agent immediately. The closing conn must
// be passed so a stale close racing a fast re-login cannot tear down the
// newer binding.
func (h *Hub) HandleDisconnect(id string, role domain.Role, conn Conn) {
	if id == "" {
		return
	}
	if !h.registry.Remove(id, conn) {
		h.log.Debug().Str("id", id).Msg("stale disconnect ignored")
		return
	}

	if role == domain.RoleAgent {
		h.presence.MarkOffline(id)
		users := h.assignments.DropAgent(id)
		h.log.Info().Str("agent_id", id).Int("users", len(users)).Msg("agent offline")
		return
	}

	if agentID, ok := h.assignments.Unassign(id); ok {
		h.reconnects.Persist(id, domain.RoleUser, agentID)
		h.log.Info().Str("user_id", id).Str("agent_id", agentID).Msg("user disconnected mid-conversation")
		return
	}
	h.log.Info().Str("user_id", id).Msg("user disconnected")
}
