package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/maccabipedia/clubstats/internal/domain/event"
	"github.com/maccabipedia/clubstats/internal/domain/games"
	"github.com/maccabipedia/clubstats/internal/domain/match"
	"github.com/maccabipedia/clubstats/internal/platform/logging"
	"github.com/maccabipedia/clubstats/internal/usecase"
)

const defaultLateGoalMinute = 85

type Handler struct {
	repo      match.Repository
	streaks   *usecase.StreakService
	comebacks *usecase.ComebackService
	rankings  *usecase.RankingService
	logger    *logging.Logger
}

func NewHandler(
	repo match.Repository,
	streaks *usecase.StreakService,
	comebacks *usecase.ComebackService,
	rankings *usecase.RankingService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:      repo,
		streaks:   streaks,
		comebacks: comebacks,
		rankings:  rankings,
		logger:    logger,
	}
}

type matchDTO struct {
	Date          string `json:"date"`
	Competition   string `json:"competition"`
	Fixture       string `json:"fixture,omitempty"`
	Season        string `json:"season"`
	Stadium       string `json:"stadium,omitempty"`
	HomeTeam      string `json:"homeTeam"`
	AwayTeam      string `json:"awayTeam"`
	ClubScore     int    `json:"clubScore"`
	OpponentScore int    `json:"opponentScore"`
	Opponent      string `json:"opponent"`
	HomeGame      bool   `json:"homeGame"`
	Result        string `json:"result"`
}

type collectionDTO struct {
	Description string     `json:"description"`
	Length      int        `json:"length"`
	Matches     []matchDTO `json:"matches"`
}

func toMatchDTO(m match.Match) matchDTO {
	return matchDTO{
		Date:          m.Date.Format("2006-01-02"),
		Competition:   m.Competition,
		Fixture:       m.Fixture,
		Season:        m.Season,
		Stadium:       m.Stadium,
		HomeTeam:      m.Home.Name,
		AwayTeam:      m.Away.Name,
		ClubScore:     m.ClubScore(),
		OpponentScore: m.OpponentScore(),
		Opponent:      m.OpponentName(),
		HomeGame:      m.HomeGame(),
		Result:        string(m.Result()),
	}
}

func toCollectionDTO(c games.Collection) collectionDTO {
	out := collectionDTO{
		Description: c.Description,
		Length:      c.Len(),
		Matches:     make([]matchDTO, 0, c.Len()),
	}
	for _, m := range c.Matches {
		out.Matches = append(out.Matches, toMatchDTO(m))
	}
	return out
}

// collection loads the full dataset and applies the shared query filters
// (season, competition, opponent, venue) every read endpoint accepts.
func (h *Handler) collection(r *http.Request) (games.Collection, error) {
	matches, err := h.repo.ListAll(r.Context())
	if err != nil {
		return games.Collection{}, fmt.Errorf("list matches: %w", err)
	}

	c := games.New(matches, "all games")
	query := r.URL.Query()
	if season := strings.TrimSpace(query.Get("season")); season != "" {
		c = c.InSeason(season)
	}
	if competition := strings.TrimSpace(query.Get("competition")); competition != "" {
		c = c.InCompetition(competition)
	}
	if opponent := strings.TrimSpace(query.Get("opponent")); opponent != "" {
		c = c.AgainstOpponent(opponent)
	}
	switch strings.ToLower(strings.TrimSpace(query.Get("venue"))) {
	case "":
	case "home":
		c = c.HomeGames()
	case "away":
		c = c.AwayGames()
	default:
		return games.Collection{}, fmt.Errorf("%w: venue must be home or away", usecase.ErrInvalidInput)
	}
	return c, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return value, nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	c, err := h.collection(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toCollectionDTO(c))
}

func (h *Handler) LongestStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LongestStreak")
	defer span.End()

	c, err := h.collection(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var run games.Collection
	switch category := r.PathValue("category"); category {
	case "wins":
		run = h.streaks.LongestWinStreak(ctx, c)
	case "unbeaten":
		run = h.streaks.LongestUnbeatenStreak(ctx, c)
	case "losses":
		run = h.streaks.LongestLossStreak(ctx, c)
	case "ties":
		run = h.streaks.LongestTieStreak(ctx, c)
	case "clean-sheets":
		run = h.streaks.LongestCleanSheetStreak(ctx, c)
	case "scoring":
		minGoals, err := queryInt(r, "min", 1)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		run = h.streaks.LongestScoringStreak(ctx, c, minGoals)
	default:
		writeError(ctx, w, fmt.Errorf("%w: unknown streak category %q", usecase.ErrInvalidInput, category))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toCollectionDTO(run))
}

func (h *Handler) CurrentStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CurrentStreak")
	defer span.End()

	c, err := h.collection(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var run games.Collection
	switch category := r.PathValue("category"); category {
	case "wins":
		run = h.streaks.CurrentWinStreak(ctx, c)
	case "unbeaten":
		run = h.streaks.CurrentUnbeatenStreak(ctx, c)
	default:
		writeError(ctx, w, fmt.Errorf("%w: current streak supports wins or unbeaten, got %q", usecase.ErrInvalidInput, category))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toCollectionDTO(run))
}

func (h *Handler) SimilarStreaks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimilarStreaks")
	defer span.End()

	c, err := h.collection(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	minLength, err := queryInt(r, "min", 2)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var runs []games.Collection
	switch category := r.PathValue("category"); category {
	case "wins":
		runs = h.streaks.WinStreaksOfAtLeast(ctx, c, minLength)
	case "unbeaten":
		runs = h.streaks.UnbeatenStreaksOfAtLeast(ctx, c, minLength)
	default:
		writeError(ctx, w, fmt.Errorf("%w: streak runs support wins or unbeaten, got %q", usecase.ErrInvalidInput, category))
		return
	}

	out := make([]collectionDTO, 0, len(runs))
	for _, run := range runs {
		out = append(out, toCollectionDTO(run))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) PlayerScoringStreak(w http.ResponseWriter, r *http.Request) {
	h.playerStreak(w, r, "httpapi.Handler.PlayerScoringStreak", h.streaks.PlayerLongestScoringStreak)
}

func (h *Handler) PlayerPlayedStreak(w http.ResponseWriter, r *http.Request) {
	h.playerStreak(w, r, "httpapi.Handler.PlayerPlayedStreak", h.streaks.PlayerLongestPlayedStreak)
}

func (h *Handler) playerStreak(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	compute func(ctx context.Context, c games.Collection, name string) games.Collection,
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		writeError(ctx, w, fmt.Errorf("%w: player name is required", usecase.ErrInvalidInput))
		return
	}

	c, err := h.collection(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toCollectionDTO(compute(ctx, c, name)))
}

func (h *Handler) BiggestComebacks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BiggestComebacks")
	defer span.End()

	c, err := h.collection(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toCollectionDTO(h.comebacks.BiggestComebacks(ctx, c)))
}

func (h *Handler) ComebackWins(w http.ResponseWriter, r *http.Request) {
	h.comebackFrom(w, r, "httpapi.Handler.ComebackWins", h.comebacks.WonFromExactly)
}

func (h *Handler) ComebackTies(w http.ResponseWriter, r *http.Request) {
	h.comebackFrom(w, r, "httpapi.Handler.ComebackTies", h.comebacks.TiedFromExactly)
}

func (h *Handler) comebackFrom(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	compute func(ctx context.Context, c games.Collection, deficit int) games.Collection,
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	deficit, err := queryInt(r, "deficit", 1)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if deficit < 1 {
		writeError(ctx, w, fmt.Errorf("%w: deficit must be >= 1", usecase.ErrInvalidInput))
		return
	}

	c, err := h.collection(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toCollectionDTO(compute(ctx, c, deficit)))
}

func (h *Handler) TopScorers(w http.ResponseWriter, r *http.Request) {
	h.ranking(w, r, "httpapi.Handler.TopScorers", h.rankings.TopScorers)
}

func (h *Handler) TopAssisters(w http.ResponseWriter, r *http.Request) {
	h.ranking(w, r, "httpapi.Handler.TopAssisters", h.rankings.TopAssisters)
}

func (h *Handler) MostAppearances(w http.ResponseWriter, r *http.Request) {
	h.ranking(w, r, "httpapi.Handler.MostAppearances", h.rankings.MostAppearances)
}

func (h *Handler) WinningGoalScorers(w http.ResponseWriter, r *http.Request) {
	h.ranking(w, r, "httpapi.Handler.WinningGoalScorers", h.rankings.WinningGoalScorers)
}

func (h *Handler) EqualizingGoalScorers(w http.ResponseWriter, r *http.Request) {
	h.ranking(w, r, "httpapi.Handler.EqualizingGoalScorers", h.rankings.EqualizingGoalScorers)
}

func (h *Handler) ranking(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	compute func(ctx context.Context, c games.Collection) []usecase.Rank,
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	c, err := h.collection(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	ranks, err := limitRanks(r, compute(ctx, c))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, ranks)
}

func (h *Handler) MostCarded(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MostCarded")
	defer span.End()

	var kind event.Kind
	switch card := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("kind"))); card {
	case "", "yellow":
		kind = event.KindYellowCard
	case "red":
		kind = event.KindRedCard
	default:
		writeError(ctx, w, fmt.Errorf("%w: card kind must be yellow or red, got %q", usecase.ErrInvalidInput, card))
		return
	}

	c, err := h.collection(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	ranks, err := limitRanks(r, h.rankings.MostCarded(ctx, c, kind))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, ranks)
}

func (h *Handler) CoachRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CoachRanking")
	defer span.End()

	c, err := h.collection(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var ranks []usecase.Rank
	switch by := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("by"))); by {
	case "", "wins":
		ranks = h.rankings.CoachesByWins(ctx, c)
	case "matches":
		ranks = h.rankings.CoachesByMatches(ctx, c)
	default:
		writeError(ctx, w, fmt.Errorf("%w: coaches ranking supports by=wins or by=matches, got %q", usecase.ErrInvalidInput, by))
		return
	}
	ranks, err = limitRanks(r, ranks)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, ranks)
}

func (h *Handler) RefereeRanking(w http.ResponseWriter, r *http.Request) {
	h.ranking(w, r, "httpapi.Handler.RefereeRanking", h.rankings.RefereesByMatches)
}

func (h *Handler) OpponentRanking(w http.ResponseWriter, r *http.Request) {
	h.ranking(w, r, "httpapi.Handler.OpponentRanking", h.rankings.OpponentsByClubWins)
}

func (h *Handler) LateGoalScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LateGoalScorers")
	defer span.End()

	fromMinute, err := queryInt(r, "from", defaultLateGoalMinute)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	c, err := h.collection(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	ranks, err := limitRanks(r, h.rankings.LateGoalScorers(ctx, c, fromMinute))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, ranks)
}

func limitRanks(r *http.Request, ranks []usecase.Rank) ([]usecase.Rank, error) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit >= len(ranks) {
		return ranks, nil
	}
	return ranks[:limit], nil
}
