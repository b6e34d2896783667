package games

import (
	"time"

	"github.com/maccabipedia/clubstats/internal/domain/event"
	"github.com/maccabipedia/clubstats/internal/domain/match"
)

func dayAt(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func testMatch(day, competition, opponent string, clubScore, oppScore int, home bool, clubPlayers ...match.Player) match.Match {
	club := match.Team{
		Name:    "Maccabi Tel Aviv",
		Coach:   "Slavisa Jokanovic",
		Score:   clubScore,
		Players: clubPlayers,
	}
	opp := match.Team{Name: opponent, Coach: "Guy Levy", Score: oppScore}

	m := match.Match{
		Competition: competition,
		Date:        dayAt(day),
		Stadium:     "Bloomfield",
		Referee:     "Orel Grinfeld",
		Season:      "2015/16",
	}
	if !home {
		m.Stadium = "Sammy Ofer"
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

func starter(name string, goals ...int) match.Player {
	events := []event.Event{event.At(event.KindLineUp, 0)}
	for _, minute := range goals {
		events = append(events, event.Goal(minute, event.GoalTypeNormal))
	}
	return match.Player{Name: name, Events: events}
}

// testSeason is six games with the result sequence W W L W T W.
func testSeason() []match.Match {
	return []match.Match{
		testMatch("2015-08-22", "Ligat Ha'Al", "Hapoel Haifa", 2, 0, true, starter("Eran Levi", 31)),
		testMatch("2015-08-29", "Ligat Ha'Al", "Hapoel Beer Sheva", 3, 2, false, starter("Eran Levi", 58)),
		testMatch("2015-09-12", "Ligat Ha'Al", "Beitar Jerusalem", 0, 1, false, starter("Eran Levi")),
		testMatch("2015-09-19", "Ligat Ha'Al", "Bnei Yehuda", 1, 0, true, starter("Eran Levi")),
		testMatch("2015-09-26", "Ligat Ha'Al", "Hapoel Tel Aviv", 2, 2, true),
		testMatch("2015-10-03", "State Cup", "Hapoel Haifa", 4, 1, true, starter("Eran Levi")),
	}
}
