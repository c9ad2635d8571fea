package models

// PredictionRequest is the body of POST /prediction.
type PredictionRequest struct {
	Player1ID    int     `json:"player_1_id" validate:"required,gt=0"`
	Player2ID    int     `json:"player_2_id" validate:"required,gt=0"`
	Player1Entry string  `json:"player_1_entry"`
	Player2Entry string  `json:"player_2_entry"`
	Surface      string  `json:"surface" validate:"required"`
	TourneyLevel string  `json:"tourney_level" validate:"required"`
	DrawSize     float64 `json:"draw_size" validate:"required,gt=0"`
}

// PredictionResponse is the body returned by POST /prediction. WinnerPlayer
// is the side number (1 or 2) and Confidence a percentage in [0, 100].
type PredictionResponse struct {
	WinnerPlayer int     `json:"winner_player"`
	Confidence   float64 `json:"confidence"`
}

// PlayerStatistics is the body returned by GET /player_statistics/{player_id}.
type PlayerStatistics struct {
	Name       string  `json:"name"`
	IOC        int     `json:"ioc"`
	Rank       int     `json:"rank"`
	Hand       string  `json:"hand"`
	Age        float64 `json:"age"`
	Height     float64 `json:"height"`
	RankPoints float64 `json:"rank_points"`
	Elo        float64 `json:"elo"`
	WinRate    float64 `json:"win_rate"`
	WonMatch   int     `json:"won_match"`
	LostMatch  int     `json:"lost_match"`
	TotalMatch int     `json:"total_match"`
}
