package models

type ImprovementKind string

const (
	ImprovementSwap  ImprovementKind = "swap"
	ImprovementEmpty ImprovementKind = "empty"
)

// Improvement is one accepted lineup change. Active is nil for an empty slot
// fill.
type Improvement struct {
	Kind       ImprovementKind  `json:"kind"`
	Position   string           `json:"position"`
	Bench      PlayerWeekEntry  `json:"bench"`
	Active     *PlayerWeekEntry `json:"active,omitempty"`
	Difference float64          `json:"difference"`
}

type OptimizationResult struct {
	ActualPoints         float64       `json:"actualPoints"`
	OptimalPoints        float64       `json:"optimalPoints"`
	PointsLeftOnBench    float64       `json:"pointsLeftOnBench"`
	OptimizationScore    int           `json:"optimizationScore"`
	AcceptedImprovements []Improvement `json:"acceptedImprovements"`
}

// TeamOptimization ties an optimization result to the team week it scored.
type TeamOptimization struct {
	Season   int    `json:"season"`
	Week     int    `json:"week"`
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	Owner    string `json:"owner"`
	OptimizationResult
}

// TeamEfficiency summarizes a team's lineup decisions across a season.
type TeamEfficiency struct {
	TeamID            string  `json:"teamId"`
	TeamName          string  `json:"teamName"`
	Owner             string  `json:"owner"`
	Weeks             int     `json:"weeks"`
	ActualPoints      float64 `json:"actualPoints"`
	OptimalPoints     float64 `json:"optimalPoints"`
	PointsLeftOnBench float64 `json:"pointsLeftOnBench"`
	AverageScore      float64 `json:"averageScore"`
	SeasonScore       int     `json:"seasonScore"`
	BestWeek          int     `json:"bestWeek"`
	BestScore         int     `json:"bestScore"`
	WorstWeek         int     `json:"worstWeek"`
	WorstScore        int     `json:"worstScore"`
}

// PlayerTotal is a player's accumulated production over a span of weeks.
type PlayerTotal struct {
	PlayerID    string  `json:"playerId"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	ProTeam     string  `json:"proTeam"`
	Team        string  `json:"team"`
	Owner       string  `json:"owner"`
	TotalPoints float64 `json:"totalPoints"`
	WeeksPlayed int     `json:"weeksPlayed"`
	PPG         float64 `json:"ppg"`
}

// AllProTeam maps a position to its slots. Every position has exactly as
// many entries as it has slots; a nil entry is a slot nobody qualified for.
type AllProTeam map[string][]*PlayerTotal

type AllProSelection struct {
	Positions      []string       `json:"positions"`
	PositionLimits map[string]int `json:"positionLimits"`
	First          AllProTeam     `json:"first"`
	Second         AllProTeam     `json:"second"`
	Third          AllProTeam     `json:"third"`
}

// Matchup is a single deduplicated game between two teams.
type Matchup struct {
	GameID        string  `json:"gameId"`
	Season        int     `json:"season"`
	Week          int     `json:"week"`
	SeasonPeriod  string  `json:"seasonPeriod"`
	Team1         string  `json:"team1"`
	Team2         string  `json:"team2"`
	Score1        float64 `json:"score1"`
	Score2        float64 `json:"score2"`
	CombinedScore float64 `json:"combinedScore"`
	Margin        float64 `json:"margin"`
}

// Winner returns the higher scoring team, or "" on a tie.
func (m Matchup) Winner() string {
	switch {
	case m.Score1 > m.Score2:
		return m.Team1
	case m.Score2 > m.Score1:
		return m.Team2
	}
	return ""
}

type NotableGames struct {
	Highest  []Matchup `json:"highest"`
	Lowest   []Matchup `json:"lowest"`
	Blowouts []Matchup `json:"blowouts"`
	Closest  []Matchup `json:"closest"`
}

type RecordLine struct {
	Games  int     `json:"games"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Ties   int     `json:"ties"`
	WinPct float64 `json:"winPct"`
}

type Streak struct {
	Result string `json:"result"`
	Length int    `json:"length"`
}

type RivalrySummary struct {
	Team             string             `json:"team"`
	Opponent         string             `json:"opponent"`
	Games            int                `json:"games"`
	Wins             int                `json:"wins"`
	Losses           int                `json:"losses"`
	Ties             int                `json:"ties"`
	WinPct           float64            `json:"winPct"`
	PointsFor        float64            `json:"pointsFor"`
	PointsAgainst    float64            `json:"pointsAgainst"`
	PPGFor           float64            `json:"ppgFor"`
	PPGAgainst       float64            `json:"ppgAgainst"`
	PointDiff        float64            `json:"pointDiff"`
	Streak           Streak             `json:"streak"`
	LongestWinStreak int                `json:"longestWinStreak"`
	LastGame         *SeasonGameRecord  `json:"lastGame,omitempty"`
	Overall          RecordLine         `json:"overall"`
	Playoff          RecordLine         `json:"playoff"`
	Matchups         []SeasonGameRecord `json:"matchups"`
}

type StandingsRow struct {
	Rank          int     `json:"rank"`
	Team          string  `json:"team"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	WinPct        float64 `json:"winPct"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

// PlayerMatch is a player search hit.
type PlayerMatch struct {
	PlayerTotal
	Similarity   float64 `json:"similarity"`
	SlotPosition string  `json:"slotPosition"`
	Week         int     `json:"week"`
}
