package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_AllKeys(t *testing.T) {
	keys := []string{
		KeyWelcome, KeyAgentUnavailableForm, KeyExploreCourses,
		KeyFindChallenges, KeyCodingTips, KeyTalkToAgent,
		KeyConfused, KeyExitChat,
	}
	for _, key := range keys {
		reply, ok := Lookup(key)
		require.True(t, ok, "key %s should exist", key)
		assert.NotEmpty(t, reply.Message, "key %s should have a message", key)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("NOPE")
	assert.False(t, ok)
}

func TestLookup_ContactForm(t *testing.T) {
	reply, ok := Lookup(KeyAgentUnavailableForm)
	require.True(t, ok)
	require.NotNil(t, reply.Form)
	assert.Len(t, reply.Form.Fields, 4)
	assert.Equal(t, "email", reply.Form.Fields[1].Name)
	assert.True(t, reply.Form.Fields[1].Required)
}

func TestFallback(t *testing.T) {
	reply := Fallback()
	assert.Contains(t, reply.Message, "human agent")
	require.Len(t, reply.Buttons, 1)
	assert.Equal(t, "talk to agent", reply.Buttons[0].Value)
}

func TestIsAgentRequest(t *testing.T) {
	assert.True(t, IsAgentRequest("I need an agent"))
	assert.True(t, IsAgentRequest("can I talk to a HUMAN please"))
	assert.True(t, IsAgentRequest("support"))
	assert.False(t, IsAgentRequest("supporting evidence"), "word boundary should not match substrings")
	assert.False(t, IsAgentRequest("how do I write a loop"))
}

func TestIsExitTrigger(t *testing.T) {
	assert.True(t, IsExitTrigger("stop"))
	assert.True(t, IsExitTrigger("  End Chat  "))
	assert.True(t, IsExitTrigger("please disconnect me"))
	assert.True(t, IsExitTrigger("I want to exit now"))
	assert.False(t, IsExitTrigger("keep going"))
}

func TestMatchIntent(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"hello there", KeyWelcome},
		{"I want to explore courses", KeyExploreCourses},
		{"find challenges", KeyFindChallenges},
		{"any coding tips?", KeyCodingTips},
		{"what is a goroutine", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchIntent(tt.message), "message %q", tt.message)
	}
}
