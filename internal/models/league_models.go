package models

import "strings"

const (
	SlotBench = "BE"
	SlotIR    = "IR"

	PositionFlex = "FLEX"
	PositionDST  = "D/ST"

	OpponentBye = "Bye"

	// Rules-table key holding the comma separated FLEX eligible positions.
	FlexEligibleKey = "FLEX Eligible"
)

// RosterRules is the lineup slot layout for one season.
type RosterRules struct {
	Season       int
	IsDefault    bool
	Slots        map[string]int `validate:"dive,gte=0"`
	FlexEligible []string
}

// SlotCount returns the number of slots configured for position.
func (r RosterRules) SlotCount(position string) int {
	return r.Slots[NormalizePosition(position)]
}

// PlayerWeekEntry is one player's line on one team's roster for one week.
type PlayerWeekEntry struct {
	PlayerID        string   `json:"playerId"`
	Name            string   `json:"name" validate:"required"`
	Position        string   `json:"position"`
	ProTeam         string   `json:"proTeam"`
	SlotPosition    string   `json:"slotPosition"`
	ProjectedPoints *float64 `json:"projectedPoints"`
	ActualPoints    *float64 `json:"actualPoints"`
}

// IsActive reports whether the player occupies a starting slot.
func (p PlayerWeekEntry) IsActive() bool {
	return !IsReserveSlot(p.SlotPosition)
}

// Points returns actual points, 0 when the player has none recorded.
func (p PlayerWeekEntry) Points() float64 {
	if p.ActualPoints == nil {
		return 0
	}
	return *p.ActualPoints
}

// Key identifies the player across weeks.
func (p PlayerWeekEntry) Key() string {
	if p.PlayerID != "" {
		return p.PlayerID
	}
	return strings.ToLower(p.Name) + "|" + p.Position
}

// TeamWeek is a team's full roster for one week.
type TeamWeek struct {
	Season   int               `json:"season"`
	Week     int               `json:"week"`
	TeamID   string            `json:"teamId"`
	TeamName string            `json:"teamName"`
	Owner    string            `json:"owner"`
	Roster   []PlayerWeekEntry `json:"roster"`
}

// Label is the name shown for the team, falling back to the owner.
func (t TeamWeek) Label() string {
	if t.TeamName != "" {
		return t.TeamName
	}
	return t.Owner
}

// SeasonGameRecord is one team's side of one game from the league score table.
type SeasonGameRecord struct {
	GameID        string  `json:"gameId"`
	Season        int     `json:"season" validate:"gt=0"`
	Week          int     `json:"week" validate:"gt=0"`
	LeagueWeek    int     `json:"leagueWeek"`
	SeasonPeriod  string  `json:"seasonPeriod"`
	Team          string  `json:"team" validate:"required"`
	Opponent      string  `json:"opponent" validate:"required"`
	TeamScore     float64 `json:"teamScore"`
	OpponentScore float64 `json:"opponentScore"`
	ScoreDiff     float64 `json:"scoreDiff"`
	WeekRank      int     `json:"weekRank,omitempty"`
}

// Unplayed reports a 0-0 game, which the league files use for games that
// have not happened yet.
func (r SeasonGameRecord) Unplayed() bool {
	return r.TeamScore == 0 && r.OpponentScore == 0
}

func (r SeasonGameRecord) IsBye() bool {
	return strings.EqualFold(strings.TrimSpace(r.Opponent), OpponentBye)
}

// IsPlayoff reports whether the game belongs to any post-season bracket,
// including the gulag.
func (r SeasonGameRecord) IsPlayoff() bool {
	switch strings.ToLower(strings.TrimSpace(r.SeasonPeriod)) {
	case "", "regular", "regular season":
		return false
	}
	return true
}

// Before orders records chronologically by season then week.
func (r SeasonGameRecord) Before(o SeasonGameRecord) bool {
	if r.Season != o.Season {
		return r.Season < o.Season
	}
	return r.Week < o.Week
}
