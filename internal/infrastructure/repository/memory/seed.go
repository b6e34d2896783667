package memory

import (
	"time"

	"github.com/maccabipedia/clubstats/internal/domain/event"
	"github.com/maccabipedia/clubstats/internal/domain/match"
)

// SeedClubVariants lists the club names the seed data plays under.
func SeedClubVariants() match.NameVariants {
	return match.NameVariants{"Maccabi Tel Aviv", "Maccabi Tel-Aviv"}
}

func seedDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int {
	return &v
}

// SeedMatches is a small season slice with enough variety to exercise the
// analytical layer: a comeback win, an own-goal game, a losing run and a
// trailing win run.
func SeedMatches() []match.Match {
	matches := []match.Match{
		// Opening win, clean sheet.
		seedMatch(seedDay(2015, time.August, 22), "Ligat Ha'Al", "Round 1", "Bloomfield", "Hapoel Haifa", true, 2, 0,
			clubSquad(
				seedPlayer("Eran Levi", 10, event.At(event.KindLineUp, 0), event.At(event.KindCaptain, 0), event.Goal(31, event.GoalTypeNormal)),
				seedPlayer("Dor Micha", 18, event.At(event.KindLineUp, 0), event.Goal(76, event.GoalTypeHeader)),
				seedPlayer("Avi Cohen", 4, event.At(event.KindLineUp, 0), event.At(event.KindYellowCard, 55)),
			),
			opponentSquad("Hapoel Haifa",
				seedPlayer("Roi Dahan", 7, event.At(event.KindLineUp, 0), event.At(event.KindCaptain, 0)),
			),
		),
		// Comeback: down 0-2, won 3-2.
		seedMatch(seedDay(2015, time.August, 29), "Ligat Ha'Al", "Round 2", "Sammy Ofer", "Hapoel Beer Sheva", false, 3, 2,
			clubSquad(
				seedPlayer("Eran Levi", 10, event.At(event.KindLineUp, 0), event.At(event.KindCaptain, 0), event.Goal(58, event.GoalTypePenalty), event.Goal(89, event.GoalTypeNormal)),
				seedPlayer("Dor Micha", 18, event.At(event.KindLineUp, 0), event.Goal(71, event.GoalTypeNormal)),
				seedPlayer("Tal Ben Haim", 11, event.At(event.KindSubIn, 60)),
			),
			opponentSquad("Hapoel Beer Sheva",
				seedPlayer("Nir Bitton", 6, event.At(event.KindLineUp, 0), event.At(event.KindCaptain, 0), event.Goal(12, event.GoalTypeNormal), event.Goal(39, event.GoalTypeFreeKick)),
			),
		),
		// Loss away.
		seedMatch(seedDay(2015, time.September, 12), "Ligat Ha'Al", "Round 3", "Teddy", "Beitar Jerusalem", false, 0, 1,
			clubSquad(
				seedPlayer("Eran Levi", 10, event.At(event.KindLineUp, 0), event.At(event.KindCaptain, 0)),
				seedPlayer("Dor Micha", 18, event.At(event.KindLineUp, 0), event.At(event.KindYellowCard, 80)),
			),
			opponentSquad("Beitar Jerusalem",
				seedPlayer("Itay Shechter", 9, event.At(event.KindLineUp, 0), event.At(event.KindCaptain, 0), event.Goal(66, event.GoalTypeNormal)),
			),
		),
		// Opponent own goal decides it.
		seedMatch(seedDay(2015, time.September, 19), "Ligat Ha'Al", "Round 4", "Bloomfield", "Bnei Yehuda", true, 1, 0,
			clubSquad(
				seedPlayer("Eran Levi", 10, event.At(event.KindLineUp, 0), event.At(event.KindCaptain, 0)),
				seedPlayer("Dor Micha", 18, event.At(event.KindLineUp, 0)),
			),
			opponentSquad("Bnei Yehuda",
				seedPlayer("Dudu Biton", 5, event.At(event.KindLineUp, 0), event.At(event.KindCaptain, 0), event.Goal(52, event.GoalTypeOwnGoal)),
			),
		),
		// Scoring tie.
		seedMatch(seedDay(2015, time.September, 26), "Ligat Ha'Al", "Round 5", "Bloomfield", "Hapoel Tel Aviv", true, 2, 2,
			clubSquad(
				seedPlayer("Eran Levi", 10, event.At(event.KindLineUp, 0), event.At(event.KindCaptain, 0), event.Goal(21, event.GoalTypeNormal)),
				seedPlayer("Tal Ben Haim", 11, event.At(event.KindSubIn, 46), event.Goal(83, event.GoalTypeNormal)),
			),
			opponentSquad("Hapoel Tel Aviv",
				seedPlayer("Eli Dasa", 2, event.At(event.KindLineUp, 0), event.At(event.KindCaptain, 0), event.Goal(10, event.GoalTypeNormal), event.Goal(70, event.GoalTypeNormal)),
			),
		),
		// Cup win closing the sample.
		seedMatch(seedDay(2015, time.October, 3), "State Cup", "Round of 16", "Bloomfield", "Hapoel Haifa", true, 4, 1,
			clubSquad(
				seedPlayer("Eran Levi", 10, event.At(event.KindLineUp, 0), event.At(event.KindCaptain, 0), event.Goal(14, event.GoalTypeNormal), event.Goal(49, event.GoalTypeNormal)),
				seedPlayer("Dor Micha", 18, event.At(event.KindLineUp, 0), event.Goal(33, event.GoalTypeHeader)),
				seedPlayer("Tal Ben Haim", 11, event.At(event.KindSubIn, 62), event.Goal(88, event.GoalTypeNormal)),
			),
			opponentSquad("Hapoel Haifa",
				seedPlayer("Roi Dahan", 7, event.At(event.KindLineUp, 0), event.At(event.KindCaptain, 0), event.Goal(25, event.GoalTypeNormal)),
			),
		),
	}
	return matches
}

func seedPlayer(name string, number int, events ...event.Event) match.Player {
	return match.Player{Name: name, Number: intPtr(number), Events: events}
}

type seedSquad struct {
	name    string
	coach   string
	players []match.Player
}

func clubSquad(players ...match.Player) seedSquad {
	return seedSquad{name: "Maccabi Tel Aviv", coach: "Slavisa Jokanovic", players: players}
}

func opponentSquad(name string, players ...match.Player) seedSquad {
	return seedSquad{name: name, coach: "Guy Levy", players: players}
}

func seedMatch(day time.Time, competition, fixture, stadium, opponent string, clubHome bool, clubScore, oppScore int, club, opp seedSquad) match.Match {
	opp.name = opponent

	clubTeam := match.Team{Name: club.name, Coach: club.coach, Score: clubScore, Players: club.players}
	oppTeam := match.Team{Name: opp.name, Coach: opp.coach, Score: oppScore, Players: opp.players}

	m := match.Match{
		Competition: competition,
		Fixture:     fixture,
		Date:        day,
		Stadium:     stadium,
		Attendance:  12000,
		Referee:     "Orel Grinfeld",
		Season:      "2015/16",
	}
	if clubHome {
		m.Home, m.Away = clubTeam, oppTeam
		m.SetClubSide(match.SideHome)
	} else {
		m.Home, m.Away = oppTeam, clubTeam
		m.SetClubSide(match.SideAway)
	}
	return m
}
