package profile

import (
	"strings"
	"time"
)

// BirthdateTable maps a player's full name to their date of birth. It is
// built explicitly from a loaded record set and passed to the queries that
// need it; there is no lazily initialized global.
type BirthdateTable map[string]time.Time

type BirthdateRecord struct {
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
}

// NewBirthdateTable builds a table from loaded records, skipping rows whose
// date does not parse as YYYY-MM-DD.
func NewBirthdateTable(records []BirthdateRecord) BirthdateTable {
	table := make(BirthdateTable, len(records))
	for _, rec := range records {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			continue
		}
		born, err := time.Parse("2006-01-02", strings.TrimSpace(rec.Birthday))
		if err != nil {
			continue
		}
		table[name] = born
	}
	return table
}

func (t BirthdateTable) Birthday(name string) (time.Time, bool) {
	born, ok := t[strings.TrimSpace(name)]
	return born, ok
}

// AgeAt returns full years between birth and the given date, or -1 when the
// player is unknown.
func (t BirthdateTable) AgeAt(name string, at time.Time) int {
	born, ok := t.Birthday(name)
	if !ok {
		return -1
	}
	age := at.Year() - born.Year()
	anniversary := time.Date(at.Year(), born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)
	if at.Before(anniversary) {
		age--
	}
	return age
}

// IsBirthday reports whether the given date falls on the player's birthday.
func (t BirthdateTable) IsBirthday(name string, at time.Time) bool {
	born, ok := t.Birthday(name)
	if !ok {
		return false
	}
	return born.Month() == at.Month() && born.Day() == at.Day()
}
