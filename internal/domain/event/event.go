package event

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies what happened to a player during a match.
type Kind string

const (
	KindGoal           Kind = "GOAL"
	KindRedCard        Kind = "RED_CARD"
	KindYellowCard     Kind = "YELLOW_CARD"
	KindLineUp         Kind = "LINE_UP"
	KindSubIn          Kind = "SUBSTITUTION_IN"
	KindSubOut         Kind = "SUBSTITUTION_OUT"
	KindAssist         Kind = "ASSIST"
	KindCaptain        Kind = "CAPTAIN"
	KindPenaltyMissed  Kind = "PENALTY_MISSED"
	KindPenaltyStopped Kind = "PENALTY_STOPPED"
	KindBenched        Kind = "BENCHED"
	KindUnknown        Kind = "UNKNOWN"
)

// GoalType refines a KindGoal event.
type GoalType string

const (
	GoalTypeNormal        GoalType = "NORMAL"
	GoalTypeHeader        GoalType = "HEADER"
	GoalTypeFreeKick      GoalType = "FREE_KICK"
	GoalTypePenalty       GoalType = "PENALTY"
	GoalTypeOwnGoal       GoalType = "OWN_GOAL"
	GoalTypeBicycleKick   GoalType = "BICYCLE_KICK"
	GoalTypeUncategorized GoalType = "UNCATEGORIZED"
	GoalTypeUnknown       GoalType = "UNKNOWN"
)

// AssistType refines a KindAssist event.
type AssistType string

const (
	AssistTypeNormal   AssistType = "NORMAL"
	AssistTypeCorner   AssistType = "CORNER"
	AssistTypeFreeKick AssistType = "FREE_KICK"
	AssistTypeThrowIn  AssistType = "THROW_IN"
	AssistTypeUnknown  AssistType = "UNKNOWN"
)

// Event is one recorded occurrence for a player in a match. GoalType is only
// meaningful when Kind is KindGoal, AssistType when Kind is KindAssist; both
// stay empty otherwise.
type Event struct {
	Kind       Kind
	Offset     time.Duration
	GoalType   GoalType
	AssistType AssistType
}

// Same reports whether two events carry the same lookup key. Subtype is
// deliberately not part of the key, so two goals by the same player in the
// same minute collide; callers that search by key must handle that.
func (e Event) Same(other Event) bool {
	return e.Kind == other.Kind && e.Offset == other.Offset
}

func (e Event) IsGoal() bool {
	return e.Kind == KindGoal
}

func (e Event) IsOwnGoal() bool {
	return e.Kind == KindGoal && e.GoalType == GoalTypeOwnGoal
}

// Minute is the whole minute since kickoff, as printed in match reports.
func (e Event) Minute() int {
	return int(e.Offset / time.Minute)
}

func (e Event) String() string {
	switch e.Kind {
	case KindGoal:
		return fmt.Sprintf("%s(%s) at %d'", e.Kind, e.GoalType, e.Minute())
	case KindAssist:
		return fmt.Sprintf("%s(%s) at %d'", e.Kind, e.AssistType, e.Minute())
	default:
		return fmt.Sprintf("%s at %d'", e.Kind, e.Minute())
	}
}

// Goal builds a goal event at the given minute.
func Goal(minute int, goalType GoalType) Event {
	if goalType == "" {
		goalType = GoalTypeUnknown
	}
	return Event{Kind: KindGoal, Offset: time.Duration(minute) * time.Minute, GoalType: goalType}
}

// Assist builds an assist event at the given minute.
func Assist(minute int, assistType AssistType) Event {
	if assistType == "" {
		assistType = AssistTypeUnknown
	}
	return Event{Kind: KindAssist, Offset: time.Duration(minute) * time.Minute, AssistType: assistType}
}

// At builds a plain event of the given kind at the given minute.
func At(kind Kind, minute int) Event {
	return Event{Kind: kind, Offset: time.Duration(minute) * time.Minute}
}

func ParseKind(value string) Kind {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "GOAL":
		return KindGoal
	case "RED_CARD", "RED":
		return KindRedCard
	case "YELLOW_CARD", "YELLOW":
		return KindYellowCard
	case "LINE_UP", "LINEUP":
		return KindLineUp
	case "SUBSTITUTION_IN", "SUB_IN":
		return KindSubIn
	case "SUBSTITUTION_OUT", "SUB_OUT":
		return KindSubOut
	case "ASSIST":
		return KindAssist
	case "CAPTAIN":
		return KindCaptain
	case "PENALTY_MISSED":
		return KindPenaltyMissed
	case "PENALTY_STOPPED":
		return KindPenaltyStopped
	case "BENCHED":
		return KindBenched
	default:
		return KindUnknown
	}
}

func ParseGoalType(value string) GoalType {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", "UNKNOWN":
		return GoalTypeUnknown
	case "NORMAL":
		return GoalTypeNormal
	case "HEADER":
		return GoalTypeHeader
	case "FREE_KICK", "FREEKICK":
		return GoalTypeFreeKick
	case "PENALTY":
		return GoalTypePenalty
	case "OWN_GOAL", "OWNGOAL":
		return GoalTypeOwnGoal
	case "BICYCLE_KICK":
		return GoalTypeBicycleKick
	default:
		return GoalTypeUncategorized
	}
}

func ParseAssistType(value string) AssistType {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "NORMAL":
		return AssistTypeNormal
	case "CORNER":
		return AssistTypeCorner
	case "FREE_KICK", "FREEKICK":
		return AssistTypeFreeKick
	case "THROW_IN":
		return AssistTypeThrowIn
	default:
		return AssistTypeUnknown
	}
}
