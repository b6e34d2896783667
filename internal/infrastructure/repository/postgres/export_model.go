package postgres

import "github.com/maccabipedia/clubstats/internal/usecase"

const insertMatchRow = `
INSERT INTO match_rows (
	date, stadium, attendance, referee, competition, fixture, season,
	technical_result, home_team, home_score, home_coach, away_team, away_score, away_coach
) VALUES (
	:date, :stadium, :attendance, :referee, :competition, :fixture, :season,
	:technical_result, :home_team, :home_score, :home_coach, :away_team, :away_score, :away_coach
)`

const insertEventRow = `
INSERT INTO event_rows (
	date, competition, season, team, player_name, event_kind, minute, goal_type, assist_type
) VALUES (
	:date, :competition, :season, :team, :player_name, :event_kind, :minute, :goal_type, :assist_type
)`

type matchRowTableModel struct {
	Date            string `db:"date"`
	Stadium         string `db:"stadium"`
	Attendance      int    `db:"attendance"`
	Referee         string `db:"referee"`
	Competition     string `db:"competition"`
	Fixture         string `db:"fixture"`
	Season          string `db:"season"`
	TechnicalResult bool   `db:"technical_result"`
	HomeTeam        string `db:"home_team"`
	HomeScore       int    `db:"home_score"`
	HomeCoach       string `db:"home_coach"`
	AwayTeam        string `db:"away_team"`
	AwayScore       int    `db:"away_score"`
	AwayCoach       string `db:"away_coach"`
}

type eventRowTableModel struct {
	Date        string `db:"date"`
	Competition string `db:"competition"`
	Season      string `db:"season"`
	Team        string `db:"team"`
	PlayerName  string `db:"player_name"`
	EventKind   string `db:"event_kind"`
	Minute      int    `db:"minute"`
	GoalType    string `db:"goal_type"`
	AssistType  string `db:"assist_type"`
}

func matchRowModel(row usecase.MatchRow) matchRowTableModel {
	return matchRowTableModel{
		Date:            row.Date,
		Stadium:         row.Stadium,
		Attendance:      row.Attendance,
		Referee:         row.Referee,
		Competition:     row.Competition,
		Fixture:         row.Fixture,
		Season:          row.Season,
		TechnicalResult: row.TechnicalResult,
		HomeTeam:        row.HomeTeam,
		HomeScore:       row.HomeScore,
		HomeCoach:       row.HomeCoach,
		AwayTeam:        row.AwayTeam,
		AwayScore:       row.AwayScore,
		AwayCoach:       row.AwayCoach,
	}
}

func eventRowModel(row usecase.EventRow) eventRowTableModel {
	return eventRowTableModel{
		Date:        row.Date,
		Competition: row.Competition,
		Season:      row.Season,
		Team:        row.Team,
		PlayerName:  row.PlayerName,
		EventKind:   row.EventKind,
		Minute:      row.Minute,
		GoalType:    row.GoalType,
		AssistType:  row.AssistType,
	}
}
