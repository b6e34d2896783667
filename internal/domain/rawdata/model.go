package rawdata

// MatchRecord is the parser-facing shape of one scraped match page or one
// cargo-query row. Field names follow the upstream JSON. Dates arrive as the
// source's free-text, month-name-in-Hebrew form and are decoded during
// ingestion.
type MatchRecord struct {
	Competition     string       `json:"competition" validate:"required"`
	Fixture         string       `json:"fixture"`
	Date            string       `json:"date" validate:"required"`
	Stadium         string       `json:"stadium"`
	Attendance      int          `json:"attendance" validate:"gte=0"`
	Referee         string       `json:"referee"`
	Season          string       `json:"season" validate:"required"`
	TechnicalResult bool         `json:"technical_result"`
	HomeTeam        TeamRecord   `json:"home_team" validate:"required"`
	AwayTeam        TeamRecord   `json:"away_team" validate:"required"`
	HalfParsed      []OrphanGoal `json:"half_parsed_events,omitempty"`
}

type TeamRecord struct {
	Name        string         `json:"name" validate:"required"`
	CurrentName string         `json:"current_name,omitempty"`
	Coach       string         `json:"coach"`
	Score       int            `json:"score" validate:"gte=0"`
	Players     []PlayerRecord `json:"players" validate:"dive"`
}

type PlayerRecord struct {
	Name   string        `json:"name" validate:"required"`
	Number *int          `json:"number,omitempty"`
	Events []EventRecord `json:"events" validate:"dive"`
}

type EventRecord struct {
	Kind       string `json:"kind" validate:"required"`
	Minute     int    `json:"minute" validate:"gte=0"`
	GoalType   string `json:"goal_type,omitempty"`
	AssistType string `json:"assist_type,omitempty"`
}

// OrphanGoal is a secondary-source goal the parser could not attribute to a
// squad player.
type OrphanGoal struct {
	Name     string `json:"name" validate:"required"`
	Minute   int    `json:"minute" validate:"gte=0"`
	GoalType string `json:"goal_type,omitempty"`
}
