package common

import "fmt"

func RedisKeyLeaderBoard(metric string, offset, limit int) string {
	return fmt.Sprintf("leaderboard:%s:%d:%d", metric, offset, limit)
}
