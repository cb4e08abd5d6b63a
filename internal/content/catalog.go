// Package content holds the canned bot messages, buttons, and forms, and
// the keyword triggers that route a user message without a responder call.
package content

import "github.com/calliof/switchboard/internal/domain"

// Symbolic catalog keys.
const (
	KeyWelcome              = "WELCOME"
	KeyAgentUnavailableForm = "AGENT_UNAVAILABLE_FORM"
	KeyExploreCourses       = "EXPLORE_COURSES"
	KeyFindChallenges       = "FIND_CHALLENGES"
	KeyCodingTips           = "CODING_TIPS"
	KeyTalkToAgent          = "TALK_TO_AGENT"
	KeyConfused             = "CONFUSED"
	KeyExitChat             = "EXIT_CHAT"
)

var talkToAgentButton = domain.Button{Label: "Talk to Agent", Value: "talk to agent"}

// catalog is the read-only lookup table from symbolic key to reply.
var catalog = map[string]domain.Reply{
	KeyWelcome: {
		Message: "Hi there! 👋 How can I help you with coding today?",
		Buttons: []domain.Button{
			{Label: "Explore Courses", Value: "explore courses"},
			{Label: "Find Challenges", Value: "find challenges"},
			{Label: "Show Coding Tips", Value: "coding tips"},
			talkToAgentButton,
		},
	},
	KeyAgentUnavailableForm: {
		Message: "No agents are currently available. Please leave your contact details and we'll get back to you.",
		Form: &domain.Form{
			Fields: []domain.FormField{
				{Label: "Name", Name: "name", Type: "text", Required: true},
				{Label: "Email", Name: "email", Type: "email", Required: true},
				{Label: "Phone", Name: "phone", Type: "tel"},
				{Label: "Message", Name: "message", Type: "textarea"},
			},
			SubmitLabel: "Submit",
		},
	},
	KeyExploreCourses: {
		Message: "Which course would you like to explore?",
		Options: []domain.Option{
			{Label: "JavaScript Basics", Value: "js_basics"},
			{Label: "Python for Beginners", Value: "python_beginners"},
			{Label: "React Essentials", Value: "react_essentials"},
		},
		Buttons: []domain.Button{
			{Label: "Find Challenges", Value: "find challenges"},
			{Label: "Show Coding Tips", Value: "coding tips"},
		},
	},
	KeyFindChallenges: {
		Message: "Which coding challenge would you like to try?",
		Options: []domain.Option{
			{Label: "FizzBuzz", Value: "fizzbuzz"},
			{Label: "Palindrome Checker", Value: "palindrome"},
			{Label: "Prime Numbers", Value: "prime_numbers"},
		},
		Buttons: []domain.Button{
			{Label: "Explore Courses", Value: "explore courses"},
			{Label: "Show Coding Tips", Value: "coding tips"},
		},
	},
	KeyCodingTips: {
		Message: "Tip: Break big problems into small steps and test as you go!",
		Buttons: []domain.Button{
			{Label: "Explore Courses", Value: "explore courses"},
			{Label: "Find Challenges", Value: "find challenges"},
		},
	},
	KeyTalkToAgent: {
		Message: "Connecting you to a human agent...",
	},
	KeyConfused: {
		Message: "I'm not sure what you mean. Would you like to talk to a human agent?",
		Buttons: []domain.Button{talkToAgentButton},
	},
	KeyExitChat: {
		Message: "You've been disconnected from the agent. You're now chatting with our AI assistant 🤖.",
		Buttons: []domain.Button{
			{Label: "Explore Courses", Value: "explore courses"},
			talkToAgentButton,
		},
	},
}

// Lookup returns the canned reply for a symbolic key.
func Lookup(key string) (domain.Reply, bool) {
	r, ok := catalog[key]
	return r, ok
}

// Fallback is the fixed reply used when the automated responder fails.
// It is never surfaced as a raw error to the end user.
func Fallback() domain.Reply {
	return domain.Reply{
		Message: "I'm having trouble processing your request. Would you like to talk to a human agent?",
		Buttons: []domain.Button{talkToAgentButton},
	}
}
