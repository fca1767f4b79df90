package models

// Wire shapes of the static league files. Everything scalar is a Flex type;
// internal/api/league turns these into the typed records above.

type RosterRuleRow struct {
	Season FlexString            `json:"Season"`
	Slots  map[string]FlexString `json:"Slots"`
}

type RosterFile struct {
	Teams []RosterFileTeam `json:"teams"`
}

type RosterFileTeam struct {
	TeamID   FlexString         `json:"team_id"`
	TeamName FlexString         `json:"team_name"`
	Owner    FlexString         `json:"owner"`
	Roster   []RosterFilePlayer `json:"roster"`
}

type RosterFilePlayer struct {
	PlayerID        FlexString `json:"playerId"`
	Name            FlexString `json:"name"`
	Position        FlexString `json:"position"`
	ProTeam         FlexString `json:"proTeam"`
	SlotPosition    FlexString `json:"slotPosition"`
	ProjectedPoints FlexFloat  `json:"projectedPoints"`
	ActualPoints    FlexFloat  `json:"actualPoints"`
}

type ScoreRow struct {
	GameID        FlexString `json:"Game ID"`
	Season        FlexInt    `json:"Season"`
	Week          FlexInt    `json:"Week"`
	LeagueWeek    FlexInt    `json:"League Week"`
	SeasonPeriod  FlexString `json:"Season Period"`
	Team          FlexString `json:"Team"`
	Opponent      FlexString `json:"Opponent"`
	TeamScore     FlexFloat  `json:"Team Score"`
	OpponentScore FlexFloat  `json:"Opponent Score"`
	ScoreDiff     FlexFloat  `json:"Score Diff"`
	WeekRank      FlexInt    `json:"Week Rank"`
}
