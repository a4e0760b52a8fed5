package domain

import "context"

// CardRepository defines read access to the card catalog.
type CardRepository interface {
	ListActive(ctx context.Context, filter CardFilter) ([]*Card, error)
	GetByID(ctx context.Context, id string) (*Card, error)
}

// SessionStore defines conversation persistence. Save is idempotent with
// last-write-wins semantics; both backends implement identical behavior.
type SessionStore interface {
	Save(ctx context.Context, conversation *Conversation) error
	FindBySessionID(ctx context.Context, sessionID string) (*Conversation, error)
}

// DialogueClient is the narrow contract with the external language service.
// Implementations may fail or time out; callers must degrade to rule-based
// text. A nil client is a valid configuration.
type DialogueClient interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
