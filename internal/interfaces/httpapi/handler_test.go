package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/maccabipedia/clubstats/internal/infrastructure/repository/memory"
	"github.com/maccabipedia/clubstats/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	repo := memory.NewMatchRepository(memory.SeedMatches())
	handler := NewHandler(
		repo,
		usecase.NewStreakService(nil),
		usecase.NewComebackService(),
		usecase.NewRankingService(),
		nil,
	)
	return NewRouter(handler, nil)
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeCollection(t *testing.T, body []byte) collectionDTO {
	t.Helper()
	var envelope struct {
		Data collectionDTO `json:"data"`
	}
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode collection envelope: %v", err)
	}
	return envelope.Data
}

func decodeRanks(t *testing.T, body []byte) []usecase.Rank {
	t.Helper()
	var envelope struct {
		Data []usecase.Rank `json:"data"`
	}
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode ranks envelope: %v", err)
	}
	return envelope.Data
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestRouter(t), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestListMatches(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/v1/matches")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	c := decodeCollection(t, rec.Body.Bytes())
	if c.Length != 6 || len(c.Matches) != 6 {
		t.Fatalf("collection = %d/%d matches, want 6", c.Length, len(c.Matches))
	}
	if c.Description != "all games" {
		t.Fatalf("Description = %q", c.Description)
	}
}

func TestListMatchesAppliesQueryFilters(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/v1/matches?venue=home&competition=Ligat+Ha%27Al")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	c := decodeCollection(t, rec.Body.Bytes())
	if c.Length != 3 {
		t.Fatalf("home league games = %d, want 3", c.Length)
	}
	for _, m := range c.Matches {
		if !m.HomeGame {
			t.Fatalf("away game leaked through the venue filter: %+v", m)
		}
	}
}

func TestListMatchesRejectsBadVenue(t *testing.T) {
	rec := get(t, newTestRouter(t), "/v1/matches?venue=sideways")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLongestStreakEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/v1/streaks/wins/longest")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	c := decodeCollection(t, rec.Body.Bytes())
	if c.Length != 2 {
		t.Fatalf("longest win streak = %d, want 2", c.Length)
	}
	if c.Description != "all games + Longest run: wins" {
		t.Fatalf("Description = %q", c.Description)
	}
}

func TestLongestStreakRejectsUnknownCategory(t *testing.T) {
	rec := get(t, newTestRouter(t), "/v1/streaks/draws/longest")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPlayerPlayedStreakEndpoint(t *testing.T) {
	rec := get(t, newTestRouter(t), "/v1/players/Dor%20Micha/streaks/played")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	c := decodeCollection(t, rec.Body.Bytes())
	// Micha sat out the fifth game, so four in a row is his best.
	if c.Length != 4 {
		t.Fatalf("played streak = %d, want 4", c.Length)
	}
}

func TestComebackWinsEndpoint(t *testing.T) {
	rec := get(t, newTestRouter(t), "/v1/comebacks/wins?deficit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	c := decodeCollection(t, rec.Body.Bytes())
	if c.Length != 1 || c.Matches[0].Opponent != "Hapoel Beer Sheva" {
		t.Fatalf("comeback wins = %+v", c)
	}
}

func TestComebackWinsRejectsZeroDeficit(t *testing.T) {
	rec := get(t, newTestRouter(t), "/v1/comebacks/wins?deficit=0")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTopScorersEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/v1/rankings/scorers")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	ranks := decodeRanks(t, rec.Body.Bytes())
	if len(ranks) == 0 || ranks[0].Name != "Eran Levi" || ranks[0].Value != 6 {
		t.Fatalf("top scorer = %+v, want Eran Levi with 6", ranks)
	}

	limited := decodeRanks(t, get(t, router, "/v1/rankings/scorers?limit=1").Body.Bytes())
	if len(limited) != 1 {
		t.Fatalf("limited ranks = %d, want 1", len(limited))
	}
}

func TestRankingRejectsMalformedLimit(t *testing.T) {
	rec := get(t, newTestRouter(t), "/v1/rankings/scorers?limit=lots")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMostCardedRejectsUnknownKind(t *testing.T) {
	rec := get(t, newTestRouter(t), "/v1/rankings/cards?kind=blue")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
