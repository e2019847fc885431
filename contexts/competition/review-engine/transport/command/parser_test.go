package command

import (
	"errors"
	"testing"

	"codecomp/contexts/competition/review-engine/application/dispatcher"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"
)

func parseText(t *testing.T, text string) (dispatcher.Command, bool, error) {
	t.Helper()
	return Parse(Input{
		Text:          text,
		ActorID:       "U-1",
		Channel:       dispatcher.ChannelChallenge,
		AttachmentRef: "https://files.slack.com/photo.jpg",
	})
}

func TestParseStandingsAliases(t *testing.T) {
	for _, text := range []string{
		"standings",
		"Standing",
		"LEADERBOARD",
		"leader",
		"leaderbord",
		"  standings  ",
	} {
		cmd, matched, err := parseText(t, text)
		if err != nil || !matched {
			t.Fatalf("%q: expected standings match, got matched=%v err=%v", text, matched, err)
		}
		if cmd.Verb != dispatcher.VerbStandings {
			t.Fatalf("%q: expected standings verb, got %s", text, cmd.Verb)
		}
	}
}

func TestParseRandomizeScopes(t *testing.T) {
	cases := []struct {
		text  string
		scope dispatcher.RandomScope
	}{
		{"challenge randomize", dispatcher.RandomScopeUnclaimed},
		{"challenge randomise", dispatcher.RandomScopeUnclaimed},
		{"challenge randomize available", dispatcher.RandomScopeUnclaimed},
		{"challenge randomize unclaimed", dispatcher.RandomScopeUnclaimed},
		{"challenge randomize team", dispatcher.RandomScopeTeam},
		{"challenge randomise my team", dispatcher.RandomScopeTeam},
	}
	for _, tc := range cases {
		cmd, matched, err := parseText(t, tc.text)
		if err != nil || !matched {
			t.Fatalf("%q: expected match, got matched=%v err=%v", tc.text, matched, err)
		}
		if cmd.Verb != dispatcher.VerbRandomChallenge || cmd.RandomScope != tc.scope {
			t.Fatalf("%q: got verb=%s scope=%s", tc.text, cmd.Verb, cmd.RandomScope)
		}
	}

	_, matched, err := parseText(t, "challenge randomize everything")
	if !matched || !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid scope error, got matched=%v err=%v", matched, err)
	}
}

func TestParseChallengesLeftArguments(t *testing.T) {
	five := 5
	minusTwo := -2
	cases := []struct {
		text   string
		team   string
		points *int
	}{
		{"challenges left", "", nil},
		{"challenge left", "", nil},
		{"challenges left red", "red", nil},
		{"challenges left red 5", "red", &five},
		{"challenges left red 5 pts", "red", &five},
		{"challenges left -2", "", &minusTwo},
		{"challenges left team rocket 5", "team rocket", &five},
	}
	for _, tc := range cases {
		cmd, matched, err := parseText(t, tc.text)
		if err != nil || !matched {
			t.Fatalf("%q: expected match, got matched=%v err=%v", tc.text, matched, err)
		}
		if cmd.Verb != dispatcher.VerbChallengesLeft {
			t.Fatalf("%q: expected challenges_left verb, got %s", tc.text, cmd.Verb)
		}
		if cmd.Team != tc.team {
			t.Fatalf("%q: expected team %q, got %q", tc.text, tc.team, cmd.Team)
		}
		switch {
		case tc.points == nil && cmd.PointsFilter != nil:
			t.Fatalf("%q: expected no points filter, got %d", tc.text, *cmd.PointsFilter)
		case tc.points != nil && (cmd.PointsFilter == nil || *cmd.PointsFilter != *tc.points):
			t.Fatalf("%q: expected points filter %d, got %v", tc.text, *tc.points, cmd.PointsFilter)
		}
	}
}

func TestParseQueueAliases(t *testing.T) {
	for _, text := range []string{"queue", "resend queue", "Resend Review Queue"} {
		cmd, matched, err := parseText(t, text)
		if err != nil || !matched {
			t.Fatalf("%q: expected match, got matched=%v err=%v", text, matched, err)
		}
		if cmd.Verb != dispatcher.VerbQueue {
			t.Fatalf("%q: expected queue verb, got %s", text, cmd.Verb)
		}
	}
}

func TestParseResetSemester(t *testing.T) {
	cmd, matched, err := parseText(t, "Reset   Semester")
	if err != nil || !matched {
		t.Fatalf("expected match, got matched=%v err=%v", matched, err)
	}
	if cmd.Verb != dispatcher.VerbResetSemester {
		t.Fatalf("expected reset verb, got %s", cmd.Verb)
	}
}

func TestParseSurprise(t *testing.T) {
	cmd, matched, err := parseText(t, "surprise 5 Scavenger Hunt | pizza party")
	if err != nil || !matched {
		t.Fatalf("expected match, got matched=%v err=%v", matched, err)
	}
	if cmd.Verb != dispatcher.VerbSurprise {
		t.Fatalf("expected surprise verb, got %s", cmd.Verb)
	}
	if cmd.SurprisePoints != 5 {
		t.Fatalf("expected 5 points, got %d", cmd.SurprisePoints)
	}
	if cmd.ChallengeName != "Scavenger Hunt" {
		t.Fatalf("expected prize stripped from name, got %q", cmd.ChallengeName)
	}

	cmd, matched, err = parseText(t, "suprise 3 Midnight Snack Run")
	if err != nil || !matched {
		t.Fatalf("typo alias should match, got matched=%v err=%v", matched, err)
	}
	if cmd.SurprisePoints != 3 || cmd.ChallengeName != "Midnight Snack Run" {
		t.Fatalf("got points=%d name=%q", cmd.SurprisePoints, cmd.ChallengeName)
	}

	for _, text := range []string{"surprise five Hunt", "surprise 5", "surprise 5 | only a prize"} {
		_, matched, err := parseText(t, text)
		if !matched || !errors.Is(err, domainerrors.ErrInvalidInput) {
			t.Fatalf("%q: expected invalid input, got matched=%v err=%v", text, matched, err)
		}
	}
}

func TestParseAdminSubmitBeatsChallengePrefix(t *testing.T) {
	cmd, matched, err := parseText(t, "admin submit Red challenge done over DM")
	if err != nil || !matched {
		t.Fatalf("expected match, got matched=%v err=%v", matched, err)
	}
	if cmd.Verb != dispatcher.VerbAdminSubmit {
		t.Fatalf("expected admin_submit verb, got %s", cmd.Verb)
	}
	if cmd.Team != "Red" {
		t.Fatalf("expected team Red, got %q", cmd.Team)
	}
	if cmd.MemberText != "challenge done over DM" {
		t.Fatalf("expected raw-case description, got %q", cmd.MemberText)
	}

	_, matched, err = parseText(t, "admin submit")
	if !matched || !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("bare admin submit: expected invalid input, got matched=%v err=%v", matched, err)
	}
}

func TestParseSubmitPreservesDescriptionCase(t *testing.T) {
	cmd, matched, err := parseText(t, "Challenge We Climbed Ben Nevis")
	if err != nil || !matched {
		t.Fatalf("expected match, got matched=%v err=%v", matched, err)
	}
	if cmd.Verb != dispatcher.VerbSubmit {
		t.Fatalf("expected submit verb, got %s", cmd.Verb)
	}
	if cmd.MemberText != "We Climbed Ben Nevis" {
		t.Fatalf("expected original casing, got %q", cmd.MemberText)
	}
}

func TestParseIgnoresOrdinaryChatter(t *testing.T) {
	for _, text := range []string{"", "   ", "hello there", "what a great day", "chal"} {
		_, matched, err := parseText(t, text)
		if matched || err != nil {
			t.Fatalf("%q: expected no match, got matched=%v err=%v", text, matched, err)
		}
	}
}

func TestParseCarriesTransportFacts(t *testing.T) {
	cmd, matched, err := Parse(Input{
		Text:          "challenge we did it",
		ActorID:       "  U-9  ",
		IsAdmin:       true,
		Channel:       dispatcher.ChannelReview,
		MessageURL:    "https://slack.com/archives/C1/p100",
		AttachmentRef: "https://files.slack.com/img.jpg",
	})
	if err != nil || !matched {
		t.Fatalf("expected match, got matched=%v err=%v", matched, err)
	}
	if cmd.ActorID != "U-9" || !cmd.IsAdmin || cmd.Channel != dispatcher.ChannelReview {
		t.Fatalf("transport facts lost: %+v", cmd)
	}
	if cmd.MessageURL == "" || cmd.AttachmentRef == "" {
		t.Fatalf("expected attachment and message url carried through")
	}
}
