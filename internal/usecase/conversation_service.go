package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/cardcompass/backend/internal/domain"
)

// Recommendation limits. Callers may ask for fewer; requests above the cap
// are clamped, not rejected.
const (
	DefaultRecommendationLimit = 5
	MaxRecommendationLimit     = 10
)

// ConversationService orchestrates a session: extraction on every message,
// readiness tracking, and recommendation requests. Each session is
// single-writer; the transport layer serializes requests per session id.
type ConversationService struct {
	sessions domain.SessionStore
	cards    domain.CardRepository
	dialogue *DialogueService
	scoring  *ScoringService
	logger   *zap.SugaredLogger
	now      func() time.Time
}

// NewConversationService wires the conversation orchestrator.
func NewConversationService(
	sessions domain.SessionStore,
	cards domain.CardRepository,
	dialogue *DialogueService,
	scoring *ScoringService,
	logger *zap.SugaredLogger,
) *ConversationService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ConversationService{
		sessions: sessions,
		cards:    cards,
		dialogue: dialogue,
		scoring:  scoring,
		logger:   logger,
		now:      time.Now,
	}
}

// StartSession creates a session seeded with the fixed greeting prompt.
// The session id is minted by the caller; the core treats it as opaque.
func (s *ConversationService) StartSession(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidRequest
	}

	conv := domain.NewConversation(sessionID, s.now())
	if err := s.sessions.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("saving new session: %w", err)
	}

	s.logger.Infow("session started", "session_id", sessionID)
	return conv, nil
}

// MessageResult is what one conversational turn produces.
type MessageResult struct {
	Reply        string      `json:"reply"`
	Step         domain.Step `json:"step"`
	CanRecommend bool        `json:"canRecommend"`
}

// HandleMessage processes one user utterance: append it, fold it into the
// profile, generate the assistant reply, re-check readiness, persist.
func (s *ConversationService) HandleMessage(ctx context.Context, sessionID, utterance string) (*MessageResult, error) {
	if sessionID == "" || utterance == "" {
		return nil, domain.ErrInvalidRequest
	}

	conv, err := s.sessions.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	conv.Messages = append(conv.Messages, domain.Message{
		Role:      domain.RoleUser,
		Content:   utterance,
		Timestamp: now,
	})

	conv.Profile = ExtractProfile(conv.Profile, utterance)

	reply := s.dialogue.Reply(ctx, conv.Messages)
	conv.Messages = append(conv.Messages, domain.Message{
		Role:      domain.RoleAssistant,
		Content:   reply,
		Timestamp: s.now(),
	})

	// Step only moves forward here; recommendations_provided is reached via
	// an explicit recommendation request, never automatically.
	if conv.Step == domain.StepGreeting {
		conv.Step = domain.StepGathering
	}
	if conv.Step == domain.StepGathering && conv.Ready() {
		conv.Step = domain.StepReady
	}
	conv.UpdatedAt = s.now()

	if err := s.sessions.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	return &MessageResult{
		Reply:        reply,
		Step:         conv.Step,
		CanRecommend: conv.Ready(),
	}, nil
}

// GetConversation returns the full session state.
func (s *ConversationService) GetConversation(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.sessions.FindBySessionID(ctx, sessionID)
}

// ResetSession restores the session to its initial state, keeping the id.
func (s *ConversationService) ResetSession(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	conv, err := s.sessions.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	conv.Reset(s.now())
	if err := s.sessions.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("saving reset session: %w", err)
	}

	s.logger.Infow("session reset", "session_id", sessionID)
	return conv, nil
}

// ScoredCard is one entry in a ranked recommendation response.
type ScoredCard struct {
	Card        *domain.Card `json:"card"`
	Score       int          `json:"score"`
	Reasons     []string     `json:"reasons"`
	Explanation string       `json:"explanation,omitempty"`
	Simulation  *Simulation  `json:"simulation,omitempty"`
}

// Recommend ranks the active catalog against the session's current profile
// and returns the top results, enriched with reasons, a reward simulation
// and optional LLM prose. A non-nil override profile is used instead of the
// session's accumulated one for this request only; it is how callers supply
// explicit monthly spending amounts and a fee ceiling that free-text
// extraction cannot produce. The ranking is computed fresh on every request;
// later profile changes do not retroactively update a returned ranking.
// An empty catalog yields an empty list, not an error.
func (s *ConversationService) Recommend(ctx context.Context, sessionID string, limit int, override *domain.UserProfile) ([]ScoredCard, error) {
	conv, err := s.sessions.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	profile := conv.Profile
	if override != nil {
		for category, amount := range override.MonthlySpending {
			if category == "" || amount < 0 {
				return nil, domain.ErrInvalidRequest
			}
		}
		profile = override.Clone()
	}

	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	if limit > MaxRecommendationLimit {
		limit = MaxRecommendationLimit
	}

	cards, err := s.cards.ListActive(ctx, domain.CardFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}

	ranked := s.rank(cards, profile)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	now := s.now()
	conv.Recommendations = conv.Recommendations[:0]
	for i := range ranked {
		sim := SimulateRewards(ranked[i].Card, profile.MonthlySpending)
		ranked[i].Simulation = &sim
		ranked[i].Explanation = s.dialogue.ExplainCard(ctx, ranked[i].Card, profile, ranked[i].Score)

		conv.Recommendations = append(conv.Recommendations, domain.Recommendation{
			CardID:    ranked[i].Card.ID,
			Score:     ranked[i].Score,
			Reasons:   ranked[i].Reasons,
			Timestamp: now,
		})
	}

	conv.Step = domain.StepRecommendations
	conv.UpdatedAt = now
	if err := s.sessions.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("saving recommendations: %w", err)
	}

	s.logger.Infow("recommendations computed",
		"session_id", sessionID,
		"catalog_size", len(cards),
		"returned", len(ranked))

	return ranked, nil
}

// rank scores every card and sorts descending, breaking score ties by
// rating and then by id for a stable order.
func (s *ConversationService) rank(cards []*domain.Card, profile domain.UserProfile) []ScoredCard {
	ranked := make([]ScoredCard, 0, len(cards))
	for _, card := range cards {
		score := s.scoring.Score(card, profile)
		ranked = append(ranked, ScoredCard{
			Card:    card,
			Score:   score,
			Reasons: GenerateReasons(card, profile),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Card.Rating != ranked[j].Card.Rating {
			return ranked[i].Card.Rating > ranked[j].Card.Rating
		}
		return ranked[i].Card.ID < ranked[j].Card.ID
	})
	return ranked
}

// CachedRecommendations returns the last persisted ranking for a session.
func (s *ConversationService) CachedRecommendations(ctx context.Context, sessionID string) ([]domain.Recommendation, domain.UserProfile, error) {
	conv, err := s.sessions.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, domain.UserProfile{}, err
	}
	if len(conv.Recommendations) == 0 {
		return nil, domain.UserProfile{}, domain.ErrNoRecommendations
	}
	return conv.Recommendations, conv.Profile, nil
}

// ExplainSingleCard scores one card against the session profile and returns
// the scored entry with reasons and optional prose.
func (s *ConversationService) ExplainSingleCard(ctx context.Context, sessionID, cardID string) (*ScoredCard, error) {
	conv, err := s.sessions.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	score := s.scoring.Score(card, conv.Profile)
	sim := SimulateRewards(card, conv.Profile.MonthlySpending)
	return &ScoredCard{
		Card:        card,
		Score:       score,
		Reasons:     GenerateReasons(card, conv.Profile),
		Explanation: s.dialogue.ExplainCard(ctx, card, conv.Profile, score),
		Simulation:  &sim,
	}, nil
}

// Simulate runs a reward simulation for an arbitrary card and spending map,
// independent of any session.
func (s *ConversationService) Simulate(ctx context.Context, cardID string, monthlySpending map[string]float64) (*Simulation, error) {
	if cardID == "" {
		return nil, domain.ErrInvalidRequest
	}
	for category, amount := range monthlySpending {
		if category == "" || amount < 0 {
			return nil, domain.ErrInvalidRequest
		}
	}

	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	sim := SimulateRewards(card, monthlySpending)
	return &sim, nil
}
