package models

// InGameMetrics lists the per-match in-game serve statistics carried for each
// player, in canonical order.
var InGameMetrics = [...]string{
	"ace", "df", "svpt", "1stIn", "1stWon",
	"2ndWon", "SvGms", "bpSaved", "bpFaced",
}

// NumInGameMetrics is the number of in-game metrics per player.
const NumInGameMetrics = len(InGameMetrics)

// TourneyLevels lists the one-hot encoded tournament levels.
var TourneyLevels = [...]string{"A", "D", "F", "G", "M"}

// EntryCodes lists the one-hot encoded tournament entry codes. A player with no
// entry code (main draw) has every entry flag false.
var EntryCodes = [...]string{"ALT", "LL", "PR", "Q", "SE", "SR", "WC"}

// RawMatch is a single winner/loser-oriented row parsed from a yearly ATP CSV.
// Optional numeric fields are nil when the source cell is empty.
type RawMatch struct {
	TourneyID    string
	TourneyName  string
	Surface      string
	DrawSize     *float64
	TourneyLevel string
	TourneyDate  int // yyyymmdd
	MatchNum     int

	WinnerID         int
	WinnerSeed       *float64
	WinnerEntry      string
	WinnerName       string
	WinnerHand       string
	WinnerHeight     *float64
	WinnerIOC        string
	WinnerAge        *float64
	WinnerRank       *float64
	WinnerRankPoints *float64

	LoserID         int
	LoserSeed       *float64
	LoserEntry      string
	LoserName       string
	LoserHand       string
	LoserHeight     *float64
	LoserIOC        string
	LoserAge        *float64
	LoserRank       *float64
	LoserRankPoints *float64

	Score   string
	BestOf  string
	Round   string
	Minutes *float64

	WinnerInGame [NumInGameMetrics]*float64
	LoserInGame  [NumInGameMetrics]*float64
}

// PlayerSide holds the cleaned per-player attributes of one side of a match.
// Rank and seed are stored in reciprocal space.
type PlayerSide struct {
	ID         int
	Name       string
	Seed       float64
	WasSeeded  bool
	Entry      string
	HandL      bool
	HandR      bool
	Height     float64
	IOC        int
	Age        float64
	Rank       float64
	RankPoints float64
	InGame     [NumInGameMetrics]float64
}

// CleanMatch is a winner/loser-oriented match after cleaning and imputation.
type CleanMatch struct {
	Year         int
	Month        int
	Day          int
	Surface      Surface
	TourneyLevel string
	DrawSize     float64
	Winner       PlayerSide
	Loser        PlayerSide
}

// MatchRecord is the canonical pair-oriented match consumed by the feature
// engineering pipeline. Players[0] is player_1 and Players[1] is player_2;
// Player1Won carries the randomized binary label.
type MatchRecord struct {
	Year         int
	Month        int
	Day          int
	Surface      Surface
	TourneyLevel string
	DrawSize     float64
	Player1Won   bool
	Players      [2]PlayerSide
}
