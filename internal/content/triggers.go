package content

import (
	"regexp"
	"strings"
)

// agentRequestRe matches a user asking to be connected to a human.
var agentRequestRe = regexp.MustCompile(`(?i)\b(agent|human|support)\b`)

// exitTriggers end an agent conversation when any of them appears in a
// lowercased, trimmed user message.
var exitTriggers = []string{"exit", "disconnect", "end chat", "stop"}

// IsAgentRequest reports whether the message asks for a live agent.
func IsAgentRequest(message string) bool {
	return agentRequestRe.MatchString(message)
}

// IsExitTrigger reports whether the message ends an agent conversation.
func IsExitTrigger(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, t := range exitTriggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// MatchIntent maps a user message to a canned catalog key, or "" when the
// message should go to the automated responder instead. Agent-request and
// exit phrases are handled earlier in the routing flow and are not
// matched here.
func MatchIntent(message string) string {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "hi", "hello", "hey", "greetings"):
		return KeyWelcome
	case containsAny(lower, "course", "learn", "explore"):
		return KeyExploreCourses
	case containsAny(lower, "challenge", "problem", "practice"):
		return KeyFindChallenges
	case containsAny(lower, "tip", "advice", "help"):
		return KeyCodingTips
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
