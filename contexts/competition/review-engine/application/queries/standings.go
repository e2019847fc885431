package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"codecomp/contexts/competition/review-engine/ports"
)

// bookkeepingTeam is the roster team reserved for admins; it never
// appears on the leaderboard.
const bookkeepingTeam = "admin"

type TeamStanding struct {
	Team        string
	TotalPoints int
}

type StandingsUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

// Standings recomputes totals from the full ledger on every call. The
// ledger is append-only, so the sum is order-independent and a replay
// after recovery lands on the same totals.
func (uc StandingsUseCase) Standings(ctx context.Context) ([]TeamStanding, error) {
	entries, err := uc.Repository.ListLedger(ctx)
	if err != nil {
		return nil, err
	}
	members, err := uc.Repository.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	for _, entry := range entries {
		team := strings.TrimSpace(entry.Team)
		if team == "" {
			continue
		}
		totals[team] += entry.PointsDelta
	}
	// Roster teams with no ledger rows still rank, at zero.
	for _, member := range members {
		team := strings.TrimSpace(member.Team)
		if team == "" {
			continue
		}
		if _, seen := totals[team]; !seen {
			totals[team] = 0
		}
	}

	standings := make([]TeamStanding, 0, len(totals))
	for team, total := range totals {
		if strings.EqualFold(team, bookkeepingTeam) {
			continue
		}
		standings = append(standings, TeamStanding{Team: team, TotalPoints: total})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].TotalPoints == standings[j].TotalPoints {
			return standings[i].Team < standings[j].Team
		}
		return standings[i].TotalPoints > standings[j].TotalPoints
	})
	return standings, nil
}
