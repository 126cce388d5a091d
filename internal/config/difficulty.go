package config

// EnemyCount returns how many adversaries an island of the given tier spawns.
func (c Config) EnemyCount(tier int) int {
	if tier < 0 {
		return 0
	}
	return tier
}

// ObstacleCount returns how many beat obstacles an island of the given tier spawns.
func (c Config) ObstacleCount(tier int) int {
	if tier < 0 {
		tier = 0
	}
	return tier + c.Obstacles.Extra
}

// EnemySpeed returns the speed scalar of adversaries on the given tier.
// Speed grows linearly from the base.
func (c Config) EnemySpeed(tier int) float64 {
	return c.Enemies.BaseSpeed + float64(tier)*c.Enemies.SpeedPerTier
}
