package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cardcompass/backend/config"
	"github.com/cardcompass/backend/internal/infrastructure/catalog"
	"github.com/cardcompass/backend/internal/infrastructure/store"
	"github.com/cardcompass/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

// setupTestRouter wires a full router against in-memory infrastructure and
// the rule-based dialogue fallback only.
func setupTestRouter() *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Store: config.StoreConfig{
			Type: "memory",
		},
		RateLimit: config.RateLimitConfig{
			PerIP: 10000, // effectively unlimited for tests
		},
	}

	cards := catalog.NewMemoryCatalog()
	cards.Load(catalog.SeedCards())

	conversations := usecase.NewConversationService(
		store.NewMemoryStore(),
		cards,
		usecase.NewDialogueService(nil, time.Second, nil),
		usecase.NewScoringService(),
		nil,
	)
	comparisons := usecase.NewComparisonService(cards)

	handler := NewHandler(conversations, comparisons, cards)
	return SetupRouter(cfg, handler)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response %q: %v", w.Body.String(), err)
		}
	}
	return w, response
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter()

	w, response := doJSON(t, router, "GET", "/health", "")

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}
	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
}

func TestChatFlow(t *testing.T) {
	router := setupTestRouter()

	// Start a session.
	w, response := doJSON(t, router, "POST", "/api/v1/chat/start", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("start: Status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	sessionID, _ := response["sessionId"].(string)
	if sessionID == "" {
		t.Fatal("start: empty sessionId")
	}
	greeting, _ := response["message"].(string)
	if greeting == "" {
		t.Fatal("start: empty greeting")
	}

	// One informative message should reach readiness.
	w, response = doJSON(t, router, "POST", "/api/v1/chat/message",
		`{"sessionId": "`+sessionID+`", "message": "My income is 6 lakh and I spend mostly on dining and travel"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("message: Status = %d: %s", w.Code, w.Body.String())
	}
	if response["canRecommend"] != true {
		t.Errorf("canRecommend = %v, want true", response["canRecommend"])
	}
	if response["currentStep"] != "ready_for_recommendations" {
		t.Errorf("currentStep = %v, want ready_for_recommendations", response["currentStep"])
	}

	// The session state is retrievable.
	w, response = doJSON(t, router, "GET", "/api/v1/chat/"+sessionID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: Status = %d", w.Code)
	}
	conv, ok := response["conversation"].(map[string]interface{})
	if !ok {
		t.Fatal("get: no conversation in response")
	}
	messages, _ := conv["messages"].([]interface{})
	if len(messages) != 3 { // greeting, user, assistant
		t.Errorf("got %d messages, want 3", len(messages))
	}

	// Recommendations.
	w, response = doJSON(t, router, "POST", "/api/v1/recommendations",
		`{"sessionId": "`+sessionID+`", "limit": 3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("recommend: Status = %d: %s", w.Code, w.Body.String())
	}
	recs, _ := response["recommendations"].([]interface{})
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}
	first, _ := recs[0].(map[string]interface{})
	if first["score"] == nil || first["card"] == nil || first["simulation"] == nil {
		t.Errorf("recommendation missing fields: %v", first)
	}

	// Cached ranking is served by GET.
	w, response = doJSON(t, router, "GET", "/api/v1/recommendations/"+sessionID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("cached: Status = %d: %s", w.Code, w.Body.String())
	}
	cached, _ := response["recommendations"].([]interface{})
	if len(cached) != 3 {
		t.Errorf("got %d cached recommendations, want 3", len(cached))
	}
	if response["userProfile"] == nil {
		t.Error("cached: no userProfile in response")
	}

	// Reset keeps the id and clears state.
	w, response = doJSON(t, router, "POST", "/api/v1/chat/"+sessionID+"/reset", "")
	if w.Code != http.StatusOK {
		t.Fatalf("reset: Status = %d", w.Code)
	}
	if response["sessionId"] != sessionID {
		t.Errorf("reset changed sessionId to %v", response["sessionId"])
	}

	w, _ = doJSON(t, router, "GET", "/api/v1/recommendations/"+sessionID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("cached after reset: Status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestRecommendationsWithProfileOverride(t *testing.T) {
	router := setupTestRouter()

	_, start := doJSON(t, router, "POST", "/api/v1/chat/start", "")
	sessionID := start["sessionId"].(string)

	// The body profile replaces the session's extracted one for this request.
	w, response := doJSON(t, router, "POST", "/api/v1/recommendations",
		`{"sessionId": "`+sessionID+`", "limit": 10, "userProfile": {
			"income": 600000,
			"spendingCategories": {"online": true},
			"monthlySpending": {"online": 2000},
			"preferences": {"maxAnnualFee": 1000}
		}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d: %s", w.Code, w.Body.String())
	}

	recs, _ := response["recommendations"].([]interface{})
	if len(recs) == 0 {
		t.Fatal("no recommendations")
	}
	for _, entry := range recs {
		rec, _ := entry.(map[string]interface{})
		card, _ := rec["card"].(map[string]interface{})
		if card["id"] != "icici-amazon-pay" {
			continue
		}
		sim, _ := rec["simulation"].(map[string]interface{})
		if sim["annualReward"].(float64) != 1200 {
			t.Errorf("annualReward = %v, want 1200 from supplied spending", sim["annualReward"])
		}
		return
	}
	t.Error("icici-amazon-pay not in results")
}

func TestChatValidation(t *testing.T) {
	router := setupTestRouter()

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
	}{
		{"message without body", "POST", "/api/v1/chat/message", "", http.StatusBadRequest},
		{"message without session", "POST", "/api/v1/chat/message", `{"message": "hi"}`, http.StatusBadRequest},
		{"message for unknown session", "POST", "/api/v1/chat/message", `{"sessionId": "nope", "message": "hi"}`, http.StatusNotFound},
		{"get unknown session", "GET", "/api/v1/chat/nope", "", http.StatusNotFound},
		{"reset unknown session", "POST", "/api/v1/chat/nope/reset", "", http.StatusNotFound},
		{"recommend without session", "POST", "/api/v1/recommendations", `{"limit": 3}`, http.StatusBadRequest},
		{"recommend unknown session", "POST", "/api/v1/recommendations", `{"sessionId": "nope"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := doJSON(t, router, tt.method, tt.path, tt.body)
			if w.Code != tt.wantCode {
				t.Errorf("Status = %d, want %d: %s", w.Code, tt.wantCode, w.Body.String())
			}
			if response["success"] != false {
				t.Errorf("success = %v, want false", response["success"])
			}
		})
	}
}

func TestCardEndpoints(t *testing.T) {
	router := setupTestRouter()

	t.Run("list all", func(t *testing.T) {
		w, response := doJSON(t, router, "GET", "/api/v1/cards", "")
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d", w.Code)
		}
		cards, _ := response["cards"].([]interface{})
		if len(cards) == 0 {
			t.Fatal("empty catalog")
		}
		if int(response["total"].(float64)) != len(cards) {
			t.Errorf("total = %v does not match cards length %d", response["total"], len(cards))
		}
	})

	t.Run("filter by type and fee", func(t *testing.T) {
		w, response := doJSON(t, router, "GET", "/api/v1/cards?type=cashback&maxAnnualFee=0", "")
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d", w.Code)
		}
		cards, _ := response["cards"].([]interface{})
		if len(cards) != 1 {
			t.Fatalf("got %d cards, want 1", len(cards))
		}
		card, _ := cards[0].(map[string]interface{})
		if card["id"] != "icici-amazon-pay" {
			t.Errorf("card id = %v, want icici-amazon-pay", card["id"])
		}
	})

	t.Run("invalid fee filter", func(t *testing.T) {
		w, _ := doJSON(t, router, "GET", "/api/v1/cards?maxAnnualFee=lots", "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		w, response := doJSON(t, router, "GET", "/api/v1/cards/axis-ace", "")
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d", w.Code)
		}
		card, _ := response["card"].(map[string]interface{})
		if card["name"] != "Axis Bank Ace Credit Card" {
			t.Errorf("name = %v", card["name"])
		}
	})

	t.Run("get unknown id", func(t *testing.T) {
		w, _ := doJSON(t, router, "GET", "/api/v1/cards/missing", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("explain requires session", func(t *testing.T) {
		w, _ := doJSON(t, router, "GET", "/api/v1/cards/axis-ace/explain", "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("explain against a session", func(t *testing.T) {
		_, start := doJSON(t, router, "POST", "/api/v1/chat/start", "")
		sessionID := start["sessionId"].(string)
		doJSON(t, router, "POST", "/api/v1/chat/message",
			`{"sessionId": "`+sessionID+`", "message": "income is 6 lakh, mostly online shopping"}`)

		w, response := doJSON(t, router, "GET", "/api/v1/cards/icici-amazon-pay/explain?sessionId="+sessionID, "")
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d: %s", w.Code, w.Body.String())
		}
		rec, _ := response["recommendation"].(map[string]interface{})
		if rec["score"] == nil {
			t.Error("no score in explanation")
		}
		reasons, _ := rec["reasons"].([]interface{})
		if len(reasons) == 0 {
			t.Error("no reasons in explanation")
		}
	})
}

func TestSimulateEndpoint(t *testing.T) {
	router := setupTestRouter()

	t.Run("valid simulation", func(t *testing.T) {
		w, response := doJSON(t, router, "POST", "/api/v1/recommendations/simulate",
			`{"cardId": "icici-amazon-pay", "monthlySpending": {"online": 2000}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d: %s", w.Code, w.Body.String())
		}
		sim, _ := response["simulation"].(map[string]interface{})
		if sim["annualReward"].(float64) != 1200 {
			t.Errorf("annualReward = %v, want 1200", sim["annualReward"])
		}
		if sim["netBenefit"].(float64) != 1200 {
			t.Errorf("netBenefit = %v, want 1200", sim["netBenefit"])
		}
	})

	t.Run("missing body", func(t *testing.T) {
		w, _ := doJSON(t, router, "POST", "/api/v1/recommendations/simulate", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("unknown card", func(t *testing.T) {
		w, _ := doJSON(t, router, "POST", "/api/v1/recommendations/simulate",
			`{"cardId": "missing", "monthlySpending": {"online": 100}}`)
		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

func TestCompareEndpoint(t *testing.T) {
	router := setupTestRouter()

	t.Run("valid comparison", func(t *testing.T) {
		w, response := doJSON(t, router, "POST", "/api/v1/compare",
			`{"cardIds": ["icici-amazon-pay", "sbi-simplyclick"]}`)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d: %s", w.Code, w.Body.String())
		}
		cmp, _ := response["comparison"].(map[string]interface{})
		cards, _ := cmp["cards"].([]interface{})
		if len(cards) != 2 {
			t.Errorf("got %d cards, want 2", len(cards))
		}
		fees, _ := cmp["fees"].(map[string]interface{})
		if fees["lowestAnnualFee"].(float64) != 0 {
			t.Errorf("lowestAnnualFee = %v, want 0", fees["lowestAnnualFee"])
		}
	})

	t.Run("single card rejected", func(t *testing.T) {
		w, _ := doJSON(t, router, "POST", "/api/v1/compare", `{"cardIds": ["icici-amazon-pay"]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("unknown card fails whole request", func(t *testing.T) {
		w, _ := doJSON(t, router, "POST", "/api/v1/compare", `{"cardIds": ["icici-amazon-pay", "missing"]}`)
		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}
