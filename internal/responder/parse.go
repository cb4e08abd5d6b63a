package responder

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/calliof/switchboard/internal/domain"
)

// fenceOpenRe strips a leading ```json or ``` marker.
var fenceOpenRe = regexp.MustCompile("(?i)^```(?:json)?\\s*")

// fenceCloseRe strips a trailing ``` marker.
var fenceCloseRe = regexp.MustCompile("```\\s*$")

// ParseReply turns raw model output into a structured reply. Models are
// prompted to answer with a JSON object but frequently wrap it in a
// Markdown code fence or ignore the instruction entirely; anything that
// does not parse is treated as a plain-text message.
func ParseReply(content string) domain.Reply {
	cleaned := strings.TrimSpace(content)
	cleaned = fenceOpenRe.ReplaceAllString(cleaned, "")
	cleaned = fenceCloseRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	var reply domain.Reply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil || reply.Message == "" {
		return domain.Reply{Message: cleaned}
	}
	return reply
}
