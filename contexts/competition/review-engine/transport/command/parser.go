package command

import (
	"strconv"
	"strings"

	"codecomp/contexts/competition/review-engine/application/dispatcher"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"
)

// Input is one inbound chat message plus the identity and channel facts
// the transport already knows.
type Input struct {
	Text          string
	ActorID       string
	IsAdmin       bool
	Channel       dispatcher.ChannelKind
	MessageURL    string
	AttachmentRef string
}

var standingsAliases = map[string]struct{}{
	"standings":   {},
	"standing":    {},
	"leaderboard": {},
	"leader":      {},
	"leaderbord":  {},
}

var queueAliases = map[string]struct{}{
	"queue":               {},
	"resend queue":        {},
	"resend review queue": {},
}

// Parse maps free-form message text onto a structured command. The
// second return is false when the text is not a command at all, so
// ordinary chatter passes through untouched. Recognized commands with
// malformed arguments return ErrInvalidInput.
func Parse(input Input) (dispatcher.Command, bool, error) {
	text := normalize(input.Text)
	raw := collapse(input.Text)
	if text == "" {
		return dispatcher.Command{}, false, nil
	}

	base := dispatcher.Command{
		ActorID:       strings.TrimSpace(input.ActorID),
		IsAdmin:       input.IsAdmin,
		Channel:       input.Channel,
		MessageURL:    strings.TrimSpace(input.MessageURL),
		AttachmentRef: strings.TrimSpace(input.AttachmentRef),
	}

	// Admin submit is matched before the plain "challenge" prefix so
	// that "admin submit red challenge done" never reads as a member
	// submission.
	if _, matched := trimPrefixAny(text, "admin submit "); matched {
		cmd := base
		cmd.Verb = dispatcher.VerbAdminSubmit
		rawRest := tailAfterFields(raw, 2)
		team, memberText := splitFirstWord(rawRest)
		if team == "" {
			return dispatcher.Command{}, true, domainerrors.ErrInvalidInput
		}
		cmd.Team = team
		cmd.MemberText = memberText
		return cmd, true, nil
	}

	if _, known := standingsAliases[text]; known {
		cmd := base
		cmd.Verb = dispatcher.VerbStandings
		return cmd, true, nil
	}

	if rest, matched := trimPrefixAny(text, "challenge randomize", "challenge randomise"); matched {
		cmd := base
		cmd.Verb = dispatcher.VerbRandomChallenge
		switch normalize(rest) {
		case "", "available", "unclaimed":
			cmd.RandomScope = dispatcher.RandomScopeUnclaimed
		case "team", "my team":
			cmd.RandomScope = dispatcher.RandomScopeTeam
		default:
			return dispatcher.Command{}, true, domainerrors.ErrInvalidInput
		}
		return cmd, true, nil
	}

	if rest, matched := trimPrefixAny(text, "challenges left", "challenge left"); matched {
		cmd := base
		cmd.Verb = dispatcher.VerbChallengesLeft
		team, pointsFilter := parseChallengesLeftArgs(normalize(rest))
		cmd.Team = team
		cmd.PointsFilter = pointsFilter
		return cmd, true, nil
	}

	if text == "reset semester" {
		cmd := base
		cmd.Verb = dispatcher.VerbResetSemester
		return cmd, true, nil
	}

	if _, known := queueAliases[text]; known {
		cmd := base
		cmd.Verb = dispatcher.VerbQueue
		return cmd, true, nil
	}

	// "suprise" is a tolerated typo from day one; nobody spells it
	// right in a hurry.
	if _, matched := trimPrefixAny(text, "surprise ", "suprise "); matched {
		cmd := base
		cmd.Verb = dispatcher.VerbSurprise
		points, name, err := parseSurpriseArgs(tailAfterFields(raw, 1))
		if err != nil {
			return dispatcher.Command{}, true, err
		}
		cmd.SurprisePoints = points
		cmd.ChallengeName = name
		return cmd, true, nil
	}

	if strings.HasPrefix(text, "challenge") {
		cmd := base
		cmd.Verb = dispatcher.VerbSubmit
		cmd.MemberText = tailAfterFields(raw, 1)
		return cmd, true, nil
	}

	return dispatcher.Command{}, false, nil
}

// normalize collapses runs of whitespace and lowercases, so commands
// tolerate stray spaces and casing.
func normalize(text string) string {
	return strings.ToLower(collapse(text))
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func trimPrefixAny(text string, prefixes ...string) (string, bool) {
	for _, prefix := range prefixes {
		if strings.HasPrefix(text, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(text, prefix)), true
		}
		if text == strings.TrimSpace(prefix) {
			return "", true
		}
	}
	return "", false
}

// tailAfterFields returns the raw text with its first n whitespace
// separated words removed, preserving the original casing of the rest.
func tailAfterFields(raw string, n int) string {
	fields := strings.Fields(raw)
	if len(fields) <= n {
		return ""
	}
	return strings.Join(fields[n:], " ")
}

func splitFirstWord(text string) (string, string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// parseChallengesLeftArgs reads "[team] [points]" where the points may
// carry a trailing "pts" token. Both parts are optional.
func parseChallengesLeftArgs(rest string) (string, *int) {
	parts := strings.Fields(rest)
	if len(parts) == 0 {
		return "", nil
	}

	var pointsFilter *int
	last := parts[len(parts)-1]
	if last == "pts" && len(parts) > 1 {
		if value, err := strconv.Atoi(parts[len(parts)-2]); err == nil {
			pointsFilter = &value
			parts = parts[:len(parts)-2]
		}
	} else if value, err := strconv.Atoi(last); err == nil {
		pointsFilter = &value
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, " "), pointsFilter
}

// parseSurpriseArgs reads "[points] [challenge name] | [optional prize]".
// The prize, when present, stays part of the announced name.
func parseSurpriseArgs(rest string) (int, string, error) {
	first, remainder := splitFirstWord(rest)
	if first == "" || remainder == "" {
		return 0, "", domainerrors.ErrInvalidInput
	}
	points, err := strconv.Atoi(first)
	if err != nil {
		return 0, "", domainerrors.ErrInvalidInput
	}
	name := remainder
	if idx := strings.Index(name, "|"); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}
	if name == "" {
		return 0, "", domainerrors.ErrInvalidInput
	}
	return points, name, nil
}
