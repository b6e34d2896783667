package httpapi

import (
	"net/http"

	"github.com/maccabipedia/clubstats/internal/platform/logging"
)

func NewRouter(handler *Handler, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, recoverPanic(logger, mux)))
}

func registerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)

	mux.HandleFunc("GET /v1/matches", handler.ListMatches)

	mux.HandleFunc("GET /v1/streaks/{category}/longest", handler.LongestStreak)
	mux.HandleFunc("GET /v1/streaks/{category}/current", handler.CurrentStreak)
	mux.HandleFunc("GET /v1/streaks/{category}/runs", handler.SimilarStreaks)
	mux.HandleFunc("GET /v1/players/{name}/streaks/scoring", handler.PlayerScoringStreak)
	mux.HandleFunc("GET /v1/players/{name}/streaks/played", handler.PlayerPlayedStreak)

	mux.HandleFunc("GET /v1/comebacks/biggest", handler.BiggestComebacks)
	mux.HandleFunc("GET /v1/comebacks/wins", handler.ComebackWins)
	mux.HandleFunc("GET /v1/comebacks/ties", handler.ComebackTies)

	mux.HandleFunc("GET /v1/rankings/scorers", handler.TopScorers)
	mux.HandleFunc("GET /v1/rankings/assisters", handler.TopAssisters)
	mux.HandleFunc("GET /v1/rankings/appearances", handler.MostAppearances)
	mux.HandleFunc("GET /v1/rankings/cards", handler.MostCarded)
	mux.HandleFunc("GET /v1/rankings/coaches", handler.CoachRanking)
	mux.HandleFunc("GET /v1/rankings/referees", handler.RefereeRanking)
	mux.HandleFunc("GET /v1/rankings/opponents", handler.OpponentRanking)
	mux.HandleFunc("GET /v1/rankings/winning-goals", handler.WinningGoalScorers)
	mux.HandleFunc("GET /v1/rankings/equalizers", handler.EqualizingGoalScorers)
	mux.HandleFunc("GET /v1/rankings/late-goals", handler.LateGoalScorers)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
