package domain

import "time"

// Lead is a contact-capture submission from a user who could not reach a
// live agent.
type Lead struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Contact   map[string]string `json:"contact"`
	CreatedAt time.Time         `json:"createdAt"`
}
