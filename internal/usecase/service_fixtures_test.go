package usecase

import (
	"time"

	"github.com/maccabipedia/clubstats/internal/domain/event"
	"github.com/maccabipedia/clubstats/internal/domain/match"
)

var clubVariants = match.NameVariants{"Maccabi Tel Aviv", "Maccabi Tel-Aviv"}

func dayAt(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

// clubMatch builds an oriented match with an opponent squad left empty;
// tests that need opponent events construct the match by hand.
func clubMatch(day, opponent string, clubScore, oppScore int, home bool, clubPlayers ...match.Player) match.Match {
	club := match.Team{
		Name:    "Maccabi Tel Aviv",
		Coach:   "Slavisa Jokanovic",
		Score:   clubScore,
		Players: clubPlayers,
	}
	opp := match.Team{Name: opponent, Coach: "Guy Levy", Score: oppScore}

	m := match.Match{
		Competition: "Ligat Ha'Al",
		Date:        dayAt(day),
		Stadium:     "Bloomfield",
		Referee:     "Orel Grinfeld",
		Season:      "2015/16",
	}
	if home {
		m.Home, m.Away = club, opp
		m.SetClubSide(match.SideHome)
	} else {
		m.Home, m.Away = opp, club
		m.SetClubSide(match.SideAway)
	}
	return m
}

func appearing(name string, goals ...int) match.Player {
	events := []event.Event{event.At(event.KindLineUp, 0)}
	for _, minute := range goals {
		events = append(events, event.Goal(minute, event.GoalTypeNormal))
	}
	return match.Player{Name: name, Events: events}
}

// serviceSeason is six games with the result sequence W W L W T W. Eran Levi
// plays in all but the fifth game and scores in the first two.
func serviceSeason() []match.Match {
	return []match.Match{
		clubMatch("2015-08-22", "Hapoel Haifa", 2, 0, true, appearing("Eran Levi", 31)),
		clubMatch("2015-08-29", "Hapoel Beer Sheva", 3, 2, false, appearing("Eran Levi", 58)),
		clubMatch("2015-09-12", "Beitar Jerusalem", 0, 1, false, appearing("Eran Levi")),
		clubMatch("2015-09-19", "Bnei Yehuda", 1, 0, true, appearing("Eran Levi")),
		clubMatch("2015-09-26", "Hapoel Tel Aviv", 2, 2, true),
		clubMatch("2015-10-03", "Hapoel Haifa", 4, 1, true, appearing("Eran Levi")),
	}
}

func intPtr(v int) *int { return &v }
