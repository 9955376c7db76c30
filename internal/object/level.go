package object

import "time"

// Difficulty curve.
const (
	baseMaxSpeed      = 200.0
	maxSpeedPerLevel  = 50.0
	minSwarmSpeed     = 30.0
	speedPerEnemy     = 10.0
	lastEnemyBoost    = 2.0
	baseEnemyFireRate = 3500 * time.Millisecond
)

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	return level
}

// MaxSpeed returns the swarm's base maximum speed for a level.
func MaxSpeed(level int) float64 {
	return baseMaxSpeed + float64(clampLevel(level))*maxSpeedPerLevel
}

// SwarmSpeed returns the horizontal swarm speed for count surviving enemies.
// Fewer enemies move faster; a lone survivor moves at double the base maximum.
func SwarmSpeed(count, level int) float64 {
	top := MaxSpeed(level)
	if count == 1 {
		return top * lastEnemyBoost
	}
	return max(minSwarmSpeed, top-float64(count)*speedPerEnemy)
}

// EnemyFireRate returns the time between enemy volleys for a level.
func EnemyFireRate(level int) time.Duration {
	return time.Duration(float64(baseEnemyFireRate) / float64(clampLevel(level)))
}

// ShotsPerVolley returns how many enemy shots a volley requests.
func ShotsPerVolley(level int) int {
	return clampLevel(level)
}
