package usecase

import (
	"context"
	"fmt"
	"io"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/maccabipedia/clubstats/internal/domain/games"
	"github.com/maccabipedia/clubstats/internal/domain/match"
)

// MatchRow is the one-record-per-match interchange shape.
type MatchRow struct {
	Date            string `json:"date"`
	Stadium         string `json:"stadium"`
	Attendance      int    `json:"attendance"`
	Referee         string `json:"referee"`
	Competition     string `json:"competition"`
	Fixture         string `json:"fixture"`
	Season          string `json:"season"`
	TechnicalResult bool   `json:"technical_result"`
	HomeTeam        string `json:"home_team"`
	HomeScore       int    `json:"home_score"`
	HomeCoach       string `json:"home_coach"`
	AwayTeam        string `json:"away_team"`
	AwayScore       int    `json:"away_score"`
	AwayCoach       string `json:"away_coach"`
}

// EventRow is the one-record-per-player-event interchange shape.
type EventRow struct {
	Date        string `json:"date"`
	Competition string `json:"competition"`
	Season      string `json:"season"`
	Team        string `json:"team"`
	PlayerName  string `json:"player_name"`
	EventKind   string `json:"event_kind"`
	Minute      int    `json:"minute"`
	GoalType    string `json:"goal_type,omitempty"`
	AssistType  string `json:"assist_type,omitempty"`
}

// RowSink persists flattened rows; the postgres repository implements it.
type RowSink interface {
	ReplaceMatchRows(ctx context.Context, rows []MatchRow) error
	ReplaceEventRows(ctx context.Context, rows []EventRow) error
}

// ExportService flattens a collection into row-oriented records for
// serialization. The format carries everything needed to re-derive the
// aggregate stats, so an export round-trips.
type ExportService struct {
	sink RowSink
}

// NewExportService builds the service; sink may be nil when only in-memory
// flattening is needed.
func NewExportService(sink RowSink) *ExportService {
	return &ExportService{sink: sink}
}

func (s *ExportService) Flatten(ctx context.Context, c games.Collection) ([]MatchRow, []EventRow) {
	_, span := startUsecaseSpan(ctx, "usecase.ExportService.Flatten")
	defer span.End()

	matchRows := make([]MatchRow, 0, len(c.Matches))
	var eventRows []EventRow
	for i := range c.Matches {
		m := &c.Matches[i]
		matchRows = append(matchRows, flattenMatch(m))
		eventRows = append(eventRows, flattenEvents(m)...)
	}
	return matchRows, eventRows
}

func flattenMatch(m *match.Match) MatchRow {
	return MatchRow{
		Date:            m.Date.Format("2006-01-02"),
		Stadium:         m.Stadium,
		Attendance:      m.Attendance,
		Referee:         m.Referee,
		Competition:     m.Competition,
		Fixture:         m.Fixture,
		Season:          m.Season,
		TechnicalResult: m.TechnicalResult,
		HomeTeam:        m.Home.Name,
		HomeScore:       m.Home.Score,
		HomeCoach:       m.Home.Coach,
		AwayTeam:        m.Away.Name,
		AwayScore:       m.Away.Score,
		AwayCoach:       m.Away.Coach,
	}
}

func flattenEvents(m *match.Match) []EventRow {
	var rows []EventRow
	for _, entry := range m.Timeline() {
		team := m.Home.Name
		if entry.Side == match.SideAway {
			team = m.Away.Name
		}
		rows = append(rows, EventRow{
			Date:        m.Date.Format("2006-01-02"),
			Competition: m.Competition,
			Season:      m.Season,
			Team:        team,
			PlayerName:  entry.PlayerName,
			EventKind:   string(entry.Event.Kind),
			Minute:      entry.Event.Minute(),
			GoalType:    string(entry.Event.GoalType),
			AssistType:  string(entry.Event.AssistType),
		})
	}
	return rows
}

// EncodeJSONL writes one JSON object per line. Row buffers come from a pool
// since exports cover thousands of rows.
func EncodeJSONL[T any](w io.Writer, rows []T) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i := range rows {
		encoded, err := sonic.ConfigDefault.Marshal(rows[i])
		if err != nil {
			return fmt.Errorf("marshal export row: %w", err)
		}
		buf.Reset()
		if _, err := buf.Write(encoded); err != nil {
			return fmt.Errorf("buffer export row: %w", err)
		}
		if err := buf.WriteByte('\n'); err != nil {
			return fmt.Errorf("buffer export row: %w", err)
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	return nil
}

// DecodeJSONL parses rows produced by EncodeJSONL.
func DecodeJSONL[T any](data []byte) ([]T, error) {
	var rows []T
	start := 0
	for i := 0; i <= len(data); i++ {
		if i != len(data) && data[i] != '\n' {
			continue
		}
		line := data[start:i]
		start = i + 1
		if len(line) == 0 {
			continue
		}
		var row T
		if err := sonic.ConfigDefault.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("unmarshal export row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// RowAggregates are the sanity totals re-derived from flattened rows.
type RowAggregates struct {
	Matches    int
	TotalGoals int
	GoalEvents int
}

// AggregateRows recomputes totals from the interchange rows; they must
// equal the totals computed directly from the objects.
func AggregateRows(matchRows []MatchRow, eventRows []EventRow) RowAggregates {
	agg := RowAggregates{Matches: len(matchRows)}
	for _, row := range matchRows {
		agg.TotalGoals += row.HomeScore + row.AwayScore
	}
	for _, row := range eventRows {
		if row.EventKind == "GOAL" {
			agg.GoalEvents++
		}
	}
	return agg
}

// Persist writes both row sets to the configured sink.
func (s *ExportService) Persist(ctx context.Context, c games.Collection) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.Persist")
	defer span.End()

	if s.sink == nil {
		return fmt.Errorf("%w: no row sink configured", ErrInvalidInput)
	}

	matchRows, eventRows := s.Flatten(ctx, c)
	if err := s.sink.ReplaceMatchRows(ctx, matchRows); err != nil {
		return fmt.Errorf("persist match rows: %w", err)
	}
	if err := s.sink.ReplaceEventRows(ctx, eventRows); err != nil {
		return fmt.Errorf("persist event rows: %w", err)
	}
	return nil
}
