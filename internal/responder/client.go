// Package responder wraps the automated conversational-reply generator
// consumed by the routing hub. The hub hands it the last few turns of a
// conversation and gets back a structured reply; any failure is recovered
// by the caller with the fixed fallback from the content catalog.
package responder

import (
	"context"

	"github.com/calliof/switchboard/internal/domain"
)

// Client is the narrow contract the hub depends on.
type Client interface {
	// Complete generates a structured reply from the ordered conversation
	// turns (most recent last, at most the bounded history window).
	Complete(ctx context.Context, turns []domain.Turn) (domain.Reply, error)

	// Name returns the provider name (e.g. "groq", "mock").
	Name() string
}
