package common

const RedisKeyLeaderboard = "leaderboard:wld_earned"
