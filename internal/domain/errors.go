package domain

import "errors"

var (
	// ErrSessionNotFound is returned when no conversation exists for a session id
	ErrSessionNotFound = errors.New("conversation session not found")

	// ErrCardNotFound is returned when a card id does not exist in the catalog
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrLLMUnavailable is returned when the dialogue service call fails or times out.
	// Callers recover via the rule-based fallback; this error never reaches the API.
	ErrLLMUnavailable = errors.New("dialogue service unavailable")

	// ErrStoreUnavailable is returned when the durable session store cannot be reached
	ErrStoreUnavailable = errors.New("session store unavailable")

	// ErrNoRecommendations is returned when a session has no cached recommendations yet
	ErrNoRecommendations = errors.New("no recommendations for this session")

	// ErrRateLimited is returned when a client exceeds the per-IP request limit
	ErrRateLimited = errors.New("rate limit exceeded")
)
