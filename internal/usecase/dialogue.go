package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cardcompass/backend/internal/domain"
)

const defaultDialogueTimeout = 10 * time.Second

// DialogueService is the single gateway to the external language service.
// Every caller goes through it and degrades identically: on a nil client,
// a timeout, or any error, the deterministic keyword decision table answers
// instead and the request still succeeds.
type DialogueService struct {
	client  domain.DialogueClient // nil is a valid configuration
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// NewDialogueService creates the dialogue gateway. A nil client disables the
// external service entirely; fallback text is used for every reply.
func NewDialogueService(client domain.DialogueClient, timeout time.Duration, logger *zap.SugaredLogger) *DialogueService {
	if timeout <= 0 {
		timeout = defaultDialogueTimeout
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &DialogueService{client: client, timeout: timeout, logger: logger}
}

// Reply produces the assistant's next conversational turn. Never returns an
// error: external failures fall back to the decision table. The external
// call is bounded by the configured timeout and is never retried.
func (d *DialogueService) Reply(ctx context.Context, messages []domain.Message) string {
	if d.client != nil {
		callCtx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		text, err := d.client.Complete(callCtx, messages)
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		if err != nil {
			d.logger.Warnw("dialogue service failed, using fallback", "error", err)
		}
	}
	return fallbackReply(messages)
}

// fallbackReply is the fixed decision table keyed on keywords in the latest
// user utterance. It walks the user through income, spending, benefits and
// credit score in order.
func fallbackReply(messages []domain.Message) string {
	last := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			last = strings.ToLower(messages[i].Content)
			break
		}
	}

	switch {
	case containsAny(last, "income", "salary", "earn"):
		return "Great! Now tell me about your primary spending categories. Do you spend more on fuel, dining, travel, or online shopping?"
	case containsAny(last, "spending", "spend", "fuel", "dining", "travel", "shopping", "grocery"):
		return "That's helpful! What kind of benefits are you looking for? Cashback, travel rewards, or lounge access?"
	case containsAny(last, "benefit", "cashback", "reward", "lounge"):
		return "Perfect! Do you have any existing credit cards, and what's your approximate credit score range?"
	case containsAny(last, "credit score", "card", "excellent", "good", "fair", "poor"):
		return "Thank you for the information! I now have enough details to provide personalized credit card recommendations for you."
	default:
		return "Could you tell me more about your annual income and spending habits so I can recommend the best credit cards for you?"
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// ExplainCard generates supplementary prose for one recommended card. The
// rule-based reasons from GenerateReasons always come first in API output;
// this text is appended when the external service is available and silently
// omitted degradation-free when it is not.
func (d *DialogueService) ExplainCard(ctx context.Context, card *domain.Card, profile domain.UserProfile, score int) string {
	if d.client == nil {
		return ""
	}

	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Explain in 2-3 short sentences why the %s by %s (annual fee Rs. %.0f, %s rate %.1f%%) "+
			"suits a user with annual income Rs. %.0f and spending focus %q. Recommendation score: %d/100.",
		card.Name, card.Issuer, card.AnnualFee, card.RewardType, card.RewardRate,
		profile.Income, profile.PrimaryCategory(), score,
	)

	text, err := d.client.Complete(callCtx, []domain.Message{
		{Role: domain.RoleUser, Content: prompt, Timestamp: time.Now()},
	})
	if err != nil {
		d.logger.Warnw("explanation call failed, omitting prose", "card_id", card.ID, "error", err)
		return ""
	}
	return strings.TrimSpace(text)
}
