package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"

	"github.com/maccabipedia/clubstats/internal/domain/event"
	"github.com/maccabipedia/clubstats/internal/domain/match"
	"github.com/maccabipedia/clubstats/internal/domain/rawdata"
	"github.com/maccabipedia/clubstats/internal/platform/logging"
)

const defaultIngestWorkers = 4

// hebrewMonths decodes the source's month names. Date strings arrive as
// free text like "15 באוגוסט 1995"; the leading bet prefix is stripped
// before lookup.
var hebrewMonths = map[string]time.Month{
	"ינואר":   time.January,
	"פברואר":  time.February,
	"מרץ":     time.March,
	"מרס":     time.March,
	"אפריל":   time.April,
	"מאי":     time.May,
	"יוני":    time.June,
	"יולי":    time.July,
	"אוגוסט":  time.August,
	"ספטמבר":  time.September,
	"אוקטובר": time.October,
	"נובמבר":  time.November,
	"דצמבר":   time.December,
}

// IngestionService turns raw parsed records into Match entities. Records
// that fail validation, date decoding, or club-side resolution are rejected
// one by one with a log line; the rest of the batch continues.
type IngestionService struct {
	validate *validator.Validate
	variants match.NameVariants
	workers  int
	logger   *logging.Logger
}

func NewIngestionService(variants match.NameVariants, workers int, logger *logging.Logger) *IngestionService {
	if workers < 1 {
		workers = defaultIngestWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		validate: validator.New(),
		variants: variants,
		workers:  workers,
		logger:   logger,
	}
}

// Ingest builds matches from a batch of raw records, in parallel, and
// returns them date-sorted. The returned count is how many records were
// rejected.
func (s *IngestionService) Ingest(ctx context.Context, records []rawdata.MatchRecord) ([]match.Match, int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Ingest")
	defer span.End()

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, 0, fmt.Errorf("create ingest worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		matches  []match.Match
		rejected int
		workers  sync.WaitGroup
	)

	for i := range records {
		record := records[i]
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			built, buildErr := s.buildMatch(record)
			mu.Lock()
			defer mu.Unlock()
			if buildErr != nil {
				rejected++
				s.logger.WarnContext(ctx, "rejecting raw match record",
					"date", record.Date,
					"home", record.HomeTeam.Name,
					"away", record.AwayTeam.Name,
					"error", buildErr,
				)
				return
			}
			matches = append(matches, built)
		}); err != nil {
			workers.Done()
			return nil, 0, fmt.Errorf("submit ingest task: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date.Before(matches[j].Date)
	})
	return matches, rejected, nil
}

func (s *IngestionService) buildMatch(record rawdata.MatchRecord) (match.Match, error) {
	if err := s.validate.Struct(record); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	date, err := ParseSourceDate(record.Date)
	if err != nil {
		return match.Match{}, fmt.Errorf("parse date %q: %w", record.Date, err)
	}

	built := match.Match{
		Competition:     strings.TrimSpace(record.Competition),
		Fixture:         strings.TrimSpace(record.Fixture),
		Date:            date,
		Stadium:         strings.TrimSpace(record.Stadium),
		Attendance:      record.Attendance,
		Referee:         strings.TrimSpace(record.Referee),
		Season:          strings.TrimSpace(record.Season),
		TechnicalResult: record.TechnicalResult,
		Home:            buildTeam(record.HomeTeam),
		Away:            buildTeam(record.AwayTeam),
		HalfParsed:      buildOrphans(record.HalfParsed),
	}

	if err := built.ResolveClubSide(s.variants); err != nil {
		return match.Match{}, err
	}
	return built, nil
}

func buildTeam(record rawdata.TeamRecord) match.Team {
	team := match.Team{
		Name:        strings.TrimSpace(record.Name),
		CurrentName: strings.TrimSpace(record.CurrentName),
		Coach:       strings.TrimSpace(record.Coach),
		Score:       record.Score,
	}
	for _, p := range record.Players {
		player := match.Player{Name: strings.TrimSpace(p.Name), Number: p.Number}
		for _, e := range p.Events {
			player.AddEvent(buildEvent(e))
		}
		team.Players = append(team.Players, player)
	}
	return team
}

func buildEvent(record rawdata.EventRecord) event.Event {
	kind := event.ParseKind(record.Kind)
	switch kind {
	case event.KindGoal:
		return event.Goal(record.Minute, event.ParseGoalType(record.GoalType))
	case event.KindAssist:
		return event.Assist(record.Minute, event.ParseAssistType(record.AssistType))
	default:
		return event.At(kind, record.Minute)
	}
}

func buildOrphans(records []rawdata.OrphanGoal) []match.HalfParsedEvent {
	var out []match.HalfParsedEvent
	for _, o := range records {
		out = append(out, match.HalfParsedEvent{
			Name:     strings.TrimSpace(o.Name),
			Offset:   time.Duration(o.Minute) * time.Minute,
			GoalType: event.ParseGoalType(o.GoalType),
		})
	}
	return out
}

// ParseSourceDate decodes the source's free-text date: "<day> <month> <year>"
// with a Hebrew month name, the month usually carrying a leading bet
// ("באוגוסט"). ISO dates are accepted too since the cargo API emits them.
func ParseSourceDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidInput)
	}

	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return match.Day(parsed), nil
	}

	fields := strings.Fields(value)
	if len(fields) != 3 {
		return time.Time{}, fmt.Errorf("%w: expected day, month, year in %q", ErrInvalidInput, value)
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: bad day %q", ErrInvalidInput, fields[0])
	}

	monthName := strings.TrimPrefix(fields[1], "ב")
	month, ok := hebrewMonths[monthName]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unknown month %q", ErrInvalidInput, fields[1])
	}

	year, err := strconv.Atoi(fields[2])
	if err != nil || year < 1900 {
		return time.Time{}, fmt.Errorf("%w: bad year %q", ErrInvalidInput, fields[2])
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}
