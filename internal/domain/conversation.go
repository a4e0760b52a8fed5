package domain

import "time"

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Step tracks how far a conversation has progressed.
type Step string

const (
	StepGreeting        Step = "greeting"
	StepGathering       Step = "gathering"
	StepReady           Step = "ready_for_recommendations"
	StepRecommendations Step = "recommendations_provided"
)

// GreetingMessage is the fixed opening prompt seeded into every new session.
const GreetingMessage = "Hello! I'm here to help you find the perfect credit card for your needs. " +
	"Let's start by understanding your financial profile. What's your approximate annual income?"

// Message is one entry in a conversation timeline.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Recommendation is one cached ranking entry persisted with the session.
type Recommendation struct {
	CardID    string    `json:"cardId"`
	Score     int       `json:"score"`
	Reasons   []string  `json:"reasons"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is one user's session: the message history, the evolving
// profile, and the last computed recommendations.
type Conversation struct {
	SessionID       string           `json:"sessionId"`
	Messages        []Message        `json:"messages"`
	Profile         UserProfile      `json:"profile"`
	Step            Step             `json:"step"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// NewConversation creates a session in its initial state: the greeting step
// with the opening prompt already in the log.
func NewConversation(sessionID string, now time.Time) *Conversation {
	return &Conversation{
		SessionID: sessionID,
		Messages: []Message{
			{Role: RoleAssistant, Content: GreetingMessage, Timestamp: now},
		},
		Profile:   NewUserProfile(),
		Step:      StepGreeting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Ready reports whether enough profile information exists to recommend:
// income plus at least one spending category or card-type preference.
// Once true it stays true, since income is never unset.
func (c *Conversation) Ready() bool {
	return c.Profile.Income > 0 &&
		(c.Profile.HasSpendingSignal() || len(c.Profile.Preferences.CardTypes) > 0)
}

// Reset restores the initial state without changing the session id:
// single greeting message, empty profile, no recommendations.
func (c *Conversation) Reset(now time.Time) {
	c.Messages = []Message{
		{Role: RoleAssistant, Content: GreetingMessage, Timestamp: now},
	}
	c.Profile = NewUserProfile()
	c.Step = StepGreeting
	c.Recommendations = nil
	c.UpdatedAt = now
}
