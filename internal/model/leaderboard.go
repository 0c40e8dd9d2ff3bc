package model

type GetLeaderboardRequest struct {
	Limit int `json:"limit" form:"limit"`
}

type GetLeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}
